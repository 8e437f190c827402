package appointment

import "time"

type AvailabilityInput struct {
	EmployeeID uint
	ServiceID  uint
	Date       time.Time
}

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ToTimeSlots renders start times as "15:04" windows of the given length.
func ToTimeSlots(starts []time.Time, duration time.Duration) []TimeSlot {
	out := make([]TimeSlot, 0, len(starts))
	for _, s := range starts {
		out = append(out, TimeSlot{
			Start: s.Format("15:04"),
			End:   s.Add(duration).Format("15:04"),
		})
	}
	return out
}
