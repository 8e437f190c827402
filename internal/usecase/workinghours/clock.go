package workinghours

import (
	"fmt"
	"time"
)

// formatClock renders an offset from midnight as "15:04".
func formatClock(d time.Duration) string {
	return fmt.Sprintf("%02d:%02d", int(d.Hours()), int(d.Minutes())%60)
}
