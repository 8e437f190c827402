package reminder

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/agenda-citas/internal/domain/appointment"
)

func TestSchedulerRunsImmediateTick(t *testing.T) {
	store := newFakeStore()
	store.add(1, time.Now().Add(10*time.Minute), domain.StatusScheduled)
	s := newScanner(store)

	sched := NewScheduler(s, "@every 1h", time.UTC, zap.NewNop())
	require.NoError(t, sched.Start())
	defer sched.Stop()

	assert.True(t, s.Active().Has(1))
}

func TestSchedulerRejectsBadSpec(t *testing.T) {
	sched := NewScheduler(newScanner(newFakeStore()), "every minute", time.UTC, zap.NewNop())
	assert.Error(t, sched.Start())
}

func TestRunOnceSurvivesPanics(t *testing.T) {
	store := newFakeStore()
	store.panicOnList = true
	s := newScanner(store)
	sched := NewScheduler(s, "", time.UTC, zap.NewNop())

	assert.NotPanics(t, sched.RunOnce)
	assert.NotPanics(t, sched.RunOnce)
	assert.Equal(t, 2.0, testutil.ToFloat64(s.metrics.ReminderTickErrors))
}
