package appointment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/agenda-citas/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-citas/internal/httperr"
)

func TestSetStatus(t *testing.T) {
	f := newBookingFixture(t, 30)
	ap := f.repo.addAppointment(f.employee.ID, f.service.ID, monday(9, 0), 30, domain.StatusScheduled)
	uc := NewSetStatus(f.deps)
	ctx := context.Background()

	got, err := uc.Execute(ctx, ap.ID, "no_show", "admin")
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusNoShow), got.Status)

	got, err = uc.Execute(ctx, ap.ID, "scheduled", "admin")
	require.NoError(t, err, "no transition table is enforced")
	assert.Equal(t, string(domain.StatusScheduled), got.Status)

	_, err = uc.Execute(ctx, ap.ID, "done", "admin")
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))

	stored, _ := f.repo.stored(ap.ID)
	assert.Equal(t, string(domain.StatusScheduled), stored.Status)

	_, err = uc.Execute(ctx, 999, "fulfilled", "admin")
	assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))
}

func TestDeleteAppointment(t *testing.T) {
	f := newBookingFixture(t, 30)
	ap := f.repo.addAppointment(f.employee.ID, f.service.ID, monday(9, 0), 30, domain.StatusFulfilled)
	uc := NewDeleteAppointment(f.deps)
	ctx := context.Background()

	require.NoError(t, uc.Execute(ctx, ap.ID, "admin"), "historical appointments can be deleted")

	_, ok := f.repo.stored(ap.ID)
	assert.False(t, ok)

	err := uc.Execute(ctx, ap.ID, "admin")
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))
}

func TestReschedule(t *testing.T) {
	f := newBookingFixture(t, 30)
	ap := f.repo.addAppointment(f.employee.ID, f.service.ID, monday(9, 0), 30, domain.StatusScheduled)
	f.repo.addAppointment(f.employee.ID, f.service.ID, monday(10, 0), 30, domain.StatusScheduled)
	uc := NewReschedule(f.deps)
	ctx := context.Background()

	require.NoError(t, f.repo.MarkReminderSent(ctx, ap.ID))

	got, err := uc.Execute(ctx, ap.ID, monday(9, 15), "admin")
	require.NoError(t, err, "overlapping its own old window is fine")
	assert.Equal(t, monday(9, 45), got.EndTime)

	_, err = uc.Execute(ctx, ap.ID, monday(9, 45), "admin")
	assert.True(t, httperr.IsBusiness(err, "time_conflict"))

	_, err = uc.Execute(ctx, ap.ID, monday(11, 45), "admin")
	assert.True(t, httperr.IsBusiness(err, "outside_working_hours"))

	stored, _ := f.repo.stored(ap.ID)
	assert.Equal(t, monday(9, 15), stored.StartTime)
	assert.True(t, stored.ReminderSent, "moving never clears the reminder flag")

	cancelled := f.repo.addAppointment(f.employee.ID, f.service.ID, monday(11, 0), 30, domain.StatusCancelled)
	_, err = uc.Execute(ctx, cancelled.ID, monday(11, 30), "admin")
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

func TestClientAppointments(t *testing.T) {
	f := newBookingFixture(t, 30)
	scheduled := f.repo.addAppointment(f.employee.ID, f.service.ID, monday(9, 0), 30, domain.StatusScheduled)
	fulfilled := f.repo.addAppointment(f.employee.ID, f.service.ID, monday(10, 0), 30, domain.StatusFulfilled)
	uc := NewClientAppointments(f.deps)
	ctx := context.Background()
	owner := ClientIdentity{Document: "1010", Phone: "3001234567"}

	list, err := uc.List(ctx, owner)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, scheduled.ID, list[0].ID)
	assert.Equal(t, "Laura", list[0].EmployeeName)
	assert.Equal(t, "Corte", list[0].ServiceName)

	exists, err := uc.Exists(ctx, owner)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = uc.Exists(ctx, ClientIdentity{Document: "1010", Phone: "000"})
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = uc.List(ctx, ClientIdentity{Document: "", Phone: "300"})
	assert.True(t, httperr.IsBusiness(err, "client_identity_required"))

	_, err = uc.Cancel(ctx, scheduled.ID, ClientIdentity{Document: "2020", Phone: "3001234567"})
	assert.True(t, httperr.IsKind(err, httperr.KindAuthorization))

	_, err = uc.Cancel(ctx, fulfilled.ID, owner)
	assert.True(t, httperr.IsKind(err, httperr.KindConflict))

	_, err = uc.Cancel(ctx, 999, owner)
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))

	got, err := uc.Cancel(ctx, scheduled.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), got.Status)

	_, err = uc.Cancel(ctx, scheduled.ID, owner)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"), "a second cancel is rejected")

	list, err = uc.List(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestListAppointments(t *testing.T) {
	f := newBookingFixture(t, 30)
	f.repo.addAppointment(f.employee.ID, f.service.ID, monday(9, 0), 30, domain.StatusScheduled)
	f.repo.addAppointment(f.employee.ID, f.service.ID, monday(23, 30), 30, domain.StatusScheduled)
	f.repo.addAppointment(f.employee.ID, f.service.ID, monday(9, 0).AddDate(0, 0, 1), 30, domain.StatusScheduled)
	uc := NewListAppointments(f.repo)
	ctx := context.Background()

	day, err := uc.ByDate(ctx, f.employee.ID, monday(15, 0))
	require.NoError(t, err)
	require.Len(t, day, 2)
	assert.Equal(t, monday(9, 0), day[0].StartTime)

	month, err := uc.ByMonth(ctx, f.employee.ID, 2026, 10, monday(0, 0).Location())
	require.NoError(t, err)
	assert.Len(t, month, 3)

	_, err = uc.ByDate(ctx, 999, monday(0, 0))
	assert.True(t, httperr.IsBusiness(err, "employee_not_found"))
}
