package audit

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/agenda-citas/internal/metrics"
)

type Event struct {
	Principal  string    `json:"principal"`
	Action     string    `json:"action"`
	Entity     string    `json:"entity"`
	EntityID   *uint     `json:"entity_id,omitempty"`
	Metadata   any       `json:"metadata,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Sink receives every dispatched event. A failing sink never blocks the others.
type Sink interface {
	Name() string
	Write(ctx context.Context, ev Event) error
}

type Dispatcher struct {
	sinks   []Sink
	log     *zap.Logger
	metrics *metrics.Collector

	queue chan Event
	done  chan struct{}

	mu     sync.RWMutex
	closed bool
}

func NewDispatcher(log *zap.Logger, m *metrics.Collector, bufferSize int, sinks ...Sink) *Dispatcher {
	if bufferSize <= 0 {
		bufferSize = 100
	}

	d := &Dispatcher{
		sinks:   sinks,
		log:     log.Named("audit"),
		metrics: m,
		queue:   make(chan Event, bufferSize),
		done:    make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		for _, s := range d.sinks {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			err := s.Write(ctx, ev)
			cancel()

			if err != nil {
				d.log.Warn("audit sink failed",
					zap.String("sink", s.Name()),
					zap.String("action", ev.Action),
					zap.Error(err),
				)
				continue
			}
			d.metrics.AuditEntriesTotal.WithLabelValues(s.Name()).Inc()
		}
	}
}

// Dispatch enqueues ev without blocking. When the buffer is full the event is dropped.
func (d *Dispatcher) Dispatch(ev Event) {
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return
	}

	select {
	case d.queue <- ev:
	default:
		d.metrics.AuditBufferDropped.Inc()
		d.log.Warn("audit queue full, dropping event", zap.String("action", ev.Action))
	}
}

// Close stops accepting events and waits until the queue is drained.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	<-d.done
}
