package httperr

import (
	"errors"
	"fmt"
)

// Kind classifies a business failure so callers can react without parsing codes.
type Kind string

const (
	KindValidation    Kind = "validation"
	KindNotFound      Kind = "not_found"
	KindConflict      Kind = "conflict"
	KindAuthorization Kind = "authorization"
)

type BusinessError struct {
	Kind    Kind
	Code    string
	Message string
}

func (e BusinessError) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return e.Code + ": " + e.Message
}

// ErrBusiness builds a validation failure identified only by its code.
func ErrBusiness(code string) error {
	return BusinessError{Kind: KindValidation, Code: code}
}

func ErrValidation(code, format string, args ...any) error {
	return newError(KindValidation, code, format, args...)
}

func ErrNotFound(code, format string, args ...any) error {
	return newError(KindNotFound, code, format, args...)
}

func ErrConflict(code, format string, args ...any) error {
	return newError(KindConflict, code, format, args...)
}

func ErrAuthorization(code, format string, args ...any) error {
	return newError(KindAuthorization, code, format, args...)
}

func newError(kind Kind, code, format string, args ...any) error {
	return BusinessError{
		Kind:    kind,
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func IsKind(err error, kind Kind) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind == kind
	}
	return false
}

// AsBusiness unwraps err into a BusinessError when it carries one.
func AsBusiness(err error) (BusinessError, bool) {
	var be BusinessError
	ok := errors.As(err, &be)
	return be, ok
}
