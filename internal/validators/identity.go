package validators

import (
	"regexp"
	"strings"
)

var (
	documentPattern = regexp.MustCompile(`^[0-9A-Za-z]{4,20}$`)
	phonePattern    = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
)

// NormalizePhone strips the separators people usually type.
func NormalizePhone(phone string) string {
	return strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", ".", "").Replace(strings.TrimSpace(phone))
}

func IsDocumentValid(document string) bool {
	return documentPattern.MatchString(strings.TrimSpace(document))
}

func IsPhoneValid(phone string) bool {
	return phonePattern.MatchString(NormalizePhone(phone))
}
