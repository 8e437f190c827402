package appointment

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/agenda-citas/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-citas/internal/httperr"
)

func TestGetAvailabilityUsesCacheUntilInvalidated(t *testing.T) {
	f := newBookingFixture(t, 60)
	uc := NewGetAvailability(f.deps, newCalculator(f.repo, false))
	ctx := context.Background()
	in := domain.AvailabilityInput{EmployeeID: f.employee.ID, ServiceID: f.service.ID, Date: monday(0, 0)}

	slots, err := uc.Execute(ctx, in)
	require.NoError(t, err)
	require.Len(t, slots, 7)
	assert.Equal(t, domain.TimeSlot{Start: "08:00", End: "09:00"}, slots[0])
	assert.Equal(t, domain.TimeSlot{Start: "11:00", End: "12:00"}, slots[6])

	_, err = uc.Execute(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.deps.Metrics.AvailabilityCache.WithLabelValues("hit")))

	_, err = f.uc.Execute(ctx, f.input(monday(8, 0)))
	require.NoError(t, err)

	slots, err = uc.Execute(ctx, in)
	require.NoError(t, err)
	assert.Len(t, slots, 5, "08:00 and 08:30 are gone after the booking")
	assert.Equal(t, 2.0, testutil.ToFloat64(f.deps.Metrics.AvailabilityCache.WithLabelValues("miss")))
}

func TestGetAvailabilityNotFound(t *testing.T) {
	f := newBookingFixture(t, 30)
	uc := NewGetAvailability(f.deps, newCalculator(f.repo, false))
	ctx := context.Background()

	_, err := uc.Execute(ctx, domain.AvailabilityInput{EmployeeID: 404, ServiceID: f.service.ID, Date: monday(0, 0)})
	assert.True(t, httperr.IsBusiness(err, "employee_not_found"))

	_, err = uc.Execute(ctx, domain.AvailabilityInput{EmployeeID: f.employee.ID, ServiceID: 404, Date: monday(0, 0)})
	assert.True(t, httperr.IsBusiness(err, "service_not_found"))

	_, err = uc.HasAny(ctx, 404, monday(0, 0))
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))

	ok, err := uc.HasAny(ctx, f.employee.ID, monday(0, 0))
	require.NoError(t, err)
	assert.True(t, ok)
}
