package reminder

import (
	"fmt"
	"time"
)

// FormatRemaining renders the time left until start in whole minutes:
// "Now", "N minutes" or "Hh Mm".
func FormatRemaining(now, start time.Time) string {
	minutes := int(start.Sub(now) / time.Minute)

	switch {
	case minutes <= 0:
		return "Now"
	case minutes < 60:
		return fmt.Sprintf("%d minutes", minutes)
	default:
		return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
	}
}
