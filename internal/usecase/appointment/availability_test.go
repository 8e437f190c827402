package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/agenda-citas/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-citas/internal/httperr"
)

func clocks(ts []time.Time) []string {
	out := make([]string, 0, len(ts))
	for _, t := range ts {
		out = append(out, t.Format("15:04"))
	}
	return out
}

func newCalculator(repo *memoryRepo, includeCancelled bool) *AvailabilityCalculator {
	return NewAvailabilityCalculator(
		NewWorkingHoursCalendar(repo),
		NewConflictDetector(repo, includeCancelled),
		30*time.Minute,
		30*time.Minute,
	)
}

func TestWorkingHoursCalendar(t *testing.T) {
	repo := newMemoryRepo()
	emp := repo.addEmployee("Laura")
	repo.addInterval(emp.ID, 1, "14:00", "18:00")
	repo.addInterval(emp.ID, 1, "08:00", "12:00")
	off := repo.addInterval(emp.ID, 2, "08:00", "12:00")
	off.Active = false
	require.NoError(t, repo.SaveInterval(context.Background(), &off))

	cal := NewWorkingHoursCalendar(repo)
	ctx := context.Background()

	intervals, err := cal.ActiveIntervalsFor(ctx, emp.ID, 1)
	require.NoError(t, err)
	require.Len(t, intervals, 2)
	assert.Equal(t, "08:00", intervals[0].StartTime)

	works, err := cal.WorksOn(ctx, emp.ID, 1)
	require.NoError(t, err)
	assert.True(t, works)

	works, err = cal.WorksOn(ctx, emp.ID, 2)
	require.NoError(t, err)
	assert.False(t, works, "inactive intervals do not count")

	covered, err := cal.Covers(ctx, emp.ID, monday(11, 30), monday(12, 0))
	require.NoError(t, err)
	assert.True(t, covered)

	covered, err = cal.Covers(ctx, emp.ID, monday(11, 45), monday(12, 15))
	require.NoError(t, err)
	assert.False(t, covered)

	covered, err = cal.Covers(ctx, emp.ID, monday(11, 30), monday(14, 30))
	require.NoError(t, err)
	assert.False(t, covered, "a window spanning the break is not inside one interval")
}

func TestConflictDetector(t *testing.T) {
	repo := newMemoryRepo()
	emp := repo.addEmployee("Laura")
	other := repo.addEmployee("Pedro")
	svc := repo.addService("Corte", 30)
	repo.addAppointment(emp.ID, svc.ID, monday(10, 30), 30, domain.StatusScheduled)

	d := NewConflictDetector(repo, false)
	ctx := context.Background()

	busy, err := d.HasConflict(ctx, emp.ID, monday(10, 0), monday(10, 30))
	require.NoError(t, err)
	assert.False(t, busy, "back to back is allowed")

	busy, err = d.HasConflict(ctx, emp.ID, monday(10, 0), monday(10, 31))
	require.NoError(t, err)
	assert.True(t, busy)

	busy, err = d.HasConflict(ctx, other.ID, monday(10, 0), monday(11, 0))
	require.NoError(t, err)
	assert.False(t, busy, "only the same employee conflicts")
}

func TestConflictDetectorCancelledPolicy(t *testing.T) {
	repo := newMemoryRepo()
	emp := repo.addEmployee("Laura")
	svc := repo.addService("Corte", 30)
	ap := repo.addAppointment(emp.ID, svc.ID, monday(9, 0), 30, domain.StatusCancelled)
	ctx := context.Background()

	busy, err := NewConflictDetector(repo, false).HasConflict(ctx, emp.ID, monday(9, 0), monday(9, 30))
	require.NoError(t, err)
	assert.False(t, busy, "a cancelled booking frees its slot")

	busy, err = NewConflictDetector(repo, true).HasConflict(ctx, emp.ID, monday(9, 0), monday(9, 30))
	require.NoError(t, err)
	assert.True(t, busy, "any status blocks when cancelled bookings are included")

	busy, err = NewConflictDetector(repo, true).HasConflictExcluding(ctx, emp.ID, monday(9, 0), monday(9, 30), ap.ID)
	require.NoError(t, err)
	assert.False(t, busy)
}

func TestAvailableSlotsSkipsBookedWindows(t *testing.T) {
	repo := newMemoryRepo()
	emp := repo.addEmployee("Laura")
	svc := repo.addService("Corte", 30)
	repo.addInterval(emp.ID, 1, "08:00", "12:00")
	repo.addAppointment(emp.ID, svc.ID, monday(9, 0), 60, domain.StatusScheduled)
	repo.addAppointment(emp.ID, svc.ID, monday(10, 0), 30, domain.StatusCancelled)

	slots, err := newCalculator(repo, false).AvailableSlots(context.Background(), emp.ID, monday(0, 0), 30)
	require.NoError(t, err)
	assert.Equal(t, []string{"08:00", "08:30", "10:00", "10:30", "11:00", "11:30"}, clocks(slots))

	slots, err = newCalculator(repo, true).AvailableSlots(context.Background(), emp.ID, monday(0, 0), 30)
	require.NoError(t, err)
	assert.Equal(t, []string{"08:00", "08:30", "10:30", "11:00", "11:30"}, clocks(slots))
}

func TestAvailableSlotsNeverOverlapBookings(t *testing.T) {
	repo := newMemoryRepo()
	emp := repo.addEmployee("Laura")
	svc := repo.addService("Color", 45)
	repo.addInterval(emp.ID, 1, "08:00", "18:00")

	booked := []struct{ h, m, minutes int }{{8, 15, 30}, {10, 0, 90}, {13, 40, 20}, {16, 30, 45}}
	for _, b := range booked {
		repo.addAppointment(emp.ID, svc.ID, monday(b.h, b.m), b.minutes, domain.StatusScheduled)
	}

	for _, minutes := range []int{15, 30, 45, 60, 120} {
		slots, err := newCalculator(repo, false).AvailableSlots(context.Background(), emp.ID, monday(0, 0), minutes)
		require.NoError(t, err)

		for _, s := range slots {
			end := s.Add(time.Duration(minutes) * time.Minute)
			assert.False(t, end.After(monday(18, 0)), "slot %s runs past closing", s.Format("15:04"))
			for _, b := range booked {
				bs := monday(b.h, b.m)
				be := bs.Add(time.Duration(b.minutes) * time.Minute)
				assert.False(t, domain.Overlaps(s, end, bs, be),
					"%d-minute slot %s overlaps booking %s", minutes, s.Format("15:04"), bs.Format("15:04"))
			}
		}
	}
}

func TestAvailableSlotsSplitShifts(t *testing.T) {
	repo := newMemoryRepo()
	emp := repo.addEmployee("Laura")
	repo.addInterval(emp.ID, 1, "14:00", "16:00")
	repo.addInterval(emp.ID, 1, "08:00", "10:00")

	slots, err := newCalculator(repo, false).AvailableSlots(context.Background(), emp.ID, monday(7, 0), 60)
	require.NoError(t, err)
	assert.Equal(t, []string{"08:00", "08:30", "09:00", "14:00", "14:30", "15:00"}, clocks(slots))
}

func TestAvailableSlotsKeepsDuplicatesFromOverlappingIntervals(t *testing.T) {
	repo := newMemoryRepo()
	emp := repo.addEmployee("Laura")
	repo.addInterval(emp.ID, 1, "08:00", "10:00")
	repo.addInterval(emp.ID, 1, "09:00", "10:00")

	slots, err := newCalculator(repo, false).AvailableSlots(context.Background(), emp.ID, monday(0, 0), 60)
	require.NoError(t, err)
	assert.Equal(t, []string{"08:00", "08:30", "09:00", "09:00"}, clocks(slots))
}

func TestAvailableSlotsEdgeCases(t *testing.T) {
	repo := newMemoryRepo()
	emp := repo.addEmployee("Laura")
	repo.addInterval(emp.ID, 1, "08:00", "09:00")
	calc := newCalculator(repo, false)
	ctx := context.Background()

	slots, err := calc.AvailableSlots(ctx, emp.ID, monday(0, 0).AddDate(0, 0, 1), 30)
	require.NoError(t, err)
	assert.NotNil(t, slots)
	assert.Empty(t, slots, "no intervals on tuesday")

	slots, err = calc.AvailableSlots(ctx, emp.ID, monday(0, 0), 90)
	require.NoError(t, err)
	assert.Empty(t, slots, "service longer than the interval")

	_, err = calc.AvailableSlots(ctx, emp.ID, monday(0, 0), 0)
	assert.True(t, httperr.IsBusiness(err, "invalid_duration"))
}

func TestHasAnyAvailability(t *testing.T) {
	repo := newMemoryRepo()
	emp := repo.addEmployee("Laura")
	svc := repo.addService("Corte", 30)
	repo.addInterval(emp.ID, 1, "08:00", "09:00")
	calc := newCalculator(repo, false)
	ctx := context.Background()

	ok, err := calc.HasAnyAvailability(ctx, emp.ID, monday(0, 0))
	require.NoError(t, err)
	assert.True(t, ok)

	repo.addAppointment(emp.ID, svc.ID, monday(8, 0), 60, domain.StatusScheduled)

	ok, err = calc.HasAnyAvailability(ctx, emp.ID, monday(0, 0))
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = calc.HasAnyAvailability(ctx, emp.ID, monday(0, 0).AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.False(t, ok)
}
