package reminder

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/agenda-citas/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-citas/internal/metrics"
	"github.com/BruksfildServices01/agenda-citas/internal/models"
)

// Store is the slice of persistence the scanner reads and writes.
type Store interface {
	ListReminderCandidates(ctx context.Context, from, to time.Time) ([]models.Appointment, error)
	MarkReminderSent(ctx context.Context, id uint) error
	GetAppointment(ctx context.Context, id uint) (*models.Appointment, error)
}

type ActiveReminderView struct {
	AppointmentID uint      `json:"appointment_id"`
	ClientName    string    `json:"client_name"`
	EmployeeName  string    `json:"employee_name"`
	ServiceName   string    `json:"service_name"`
	StartTime     time.Time `json:"start_time"`
	Remaining     string    `json:"remaining"`
}

// Scanner promotes upcoming appointments into the active set and marks them
// as reminded. It owns the set; handlers only read or dismiss through it.
type Scanner struct {
	store     Store
	set       *ActiveSet
	lead      time.Duration
	retention time.Duration

	log     *zap.Logger
	metrics *metrics.Collector
}

func NewScanner(
	store Store,
	lead time.Duration,
	retention time.Duration,
	log *zap.Logger,
	m *metrics.Collector,
) *Scanner {
	return &Scanner{
		store:     store,
		set:       NewActiveSet(),
		lead:      lead,
		retention: retention,
		log:       log.Named("reminder"),
		metrics:   m,
	}
}

// Tick runs one scan at now. A failed write-back removes the entry again so
// the next tick retries it. The sweep always runs.
func (s *Scanner) Tick(ctx context.Context, now time.Time) error {
	s.metrics.ReminderTicks.Inc()

	var errs []error
	promoted := 0

	candidates, err := s.store.ListReminderCandidates(ctx, now, now.Add(s.lead))
	if err != nil {
		errs = append(errs, fmt.Errorf("listing reminder candidates: %w", err))
	}

	for _, ap := range candidates {
		if !s.set.Add(ap.ID, ap.StartTime) {
			continue
		}

		if err := s.store.MarkReminderSent(ctx, ap.ID); err != nil {
			s.set.Remove(ap.ID)
			errs = append(errs, fmt.Errorf("marking appointment %d: %w", ap.ID, err))
			continue
		}

		promoted++
		s.log.Info("appointment entered reminder window",
			zap.Uint("appointment_id", ap.ID),
			zap.Time("start_time", ap.StartTime),
		)
	}

	if err := s.followMoves(ctx); err != nil {
		errs = append(errs, err)
	}

	swept := s.set.Sweep(now.Add(-s.retention))

	s.metrics.RemindersPromoted.Add(float64(promoted))
	s.metrics.RemindersActive.Set(float64(s.set.Len()))

	if promoted > 0 || swept > 0 {
		s.log.Debug("reminder tick",
			zap.Int("promoted", promoted),
			zap.Int("swept", swept),
			zap.Int("active", s.set.Len()),
		)
	}

	return errors.Join(errs...)
}

// followMoves re-keys entries whose appointment was rescheduled so the sweep
// runs against the current start. Deleted appointments are dropped.
func (s *Scanner) followMoves(ctx context.Context) error {
	for id, start := range s.set.Snapshot() {
		ap, err := s.store.GetAppointment(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrRecordNotFound) {
				s.set.Remove(id)
				continue
			}
			return fmt.Errorf("loading appointment %d: %w", id, err)
		}

		if !ap.StartTime.Equal(start) {
			s.set.Rekey(id, ap.StartTime)
			s.log.Debug("reminder follows rescheduled appointment",
				zap.Uint("appointment_id", id),
				zap.Time("start_time", ap.StartTime),
			)
		}
	}
	return nil
}

// ListActive resolves the active set against the store, ordered by start.
// Appointments deleted since promotion are skipped.
func (s *Scanner) ListActive(ctx context.Context, now time.Time) ([]ActiveReminderView, error) {
	snapshot := s.set.Snapshot()

	out := make([]ActiveReminderView, 0, len(snapshot))
	for id := range snapshot {
		ap, err := s.store.GetAppointment(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrRecordNotFound) {
				continue
			}
			return nil, fmt.Errorf("loading appointment %d: %w", id, err)
		}

		view := ActiveReminderView{
			AppointmentID: ap.ID,
			ClientName:    ap.ClientName,
			StartTime:     ap.StartTime,
			Remaining:     FormatRemaining(now, ap.StartTime),
		}
		if ap.Employee != nil {
			view.EmployeeName = ap.Employee.Name
		}
		if ap.Service != nil {
			view.ServiceName = ap.Service.Name
		}
		out = append(out, view)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].StartTime.Equal(out[j].StartTime) {
			return out[i].AppointmentID < out[j].AppointmentID
		}
		return out[i].StartTime.Before(out[j].StartTime)
	})

	return out, nil
}

// Dismiss removes the appointment from the active set. Unknown ids are ignored.
func (s *Scanner) Dismiss(id uint) {
	s.set.Remove(id)
	s.metrics.RemindersActive.Set(float64(s.set.Len()))
}

func (s *Scanner) Active() *ActiveSet {
	return s.set
}
