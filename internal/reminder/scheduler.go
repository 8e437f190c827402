package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler runs Scanner.Tick on a cron spec for the lifetime of the process.
type Scheduler struct {
	cron    *cron.Cron
	scanner *Scanner
	spec    string
	timeout time.Duration
	now     func() time.Time
	log     *zap.Logger
}

func NewScheduler(scanner *Scanner, spec string, loc *time.Location, log *zap.Logger) *Scheduler {
	if spec == "" {
		spec = "@every 60s"
	}
	if loc == nil {
		loc = time.Local
	}

	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		scanner: scanner,
		spec:    spec,
		timeout: 50 * time.Second,
		now:     func() time.Time { return time.Now().In(loc) },
		log:     log.Named("reminder.scheduler"),
	}
}

// Start runs one tick right away, then registers the recurring job.
func (s *Scheduler) Start() error {
	s.RunOnce()

	if _, err := s.cron.AddFunc(s.spec, s.RunOnce); err != nil {
		return fmt.Errorf("scheduling reminder scan %q: %w", s.spec, err)
	}

	s.cron.Start()
	s.log.Info("reminder scheduler started", zap.String("spec", s.spec))
	return nil
}

// Stop waits for a running tick to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info("reminder scheduler stopped")
}

// RunOnce executes a single tick. Errors and panics are logged and never
// escape, so the schedule keeps going.
func (s *Scheduler) RunOnce() {
	defer func() {
		if r := recover(); r != nil {
			s.scanner.metrics.ReminderTickErrors.Inc()
			s.log.Error("reminder tick panicked", zap.Any("panic", r))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := s.scanner.Tick(ctx, s.now()); err != nil {
		s.scanner.metrics.ReminderTickErrors.Inc()
		s.log.Error("reminder tick failed", zap.Error(err))
	}
}
