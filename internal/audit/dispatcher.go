package audit

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	ActionBookingCreated       = "booking_created"
	ActionBookingStatusUpdated = "booking_status_updated"
	ActionBookingCancelled     = "booking_cancelled"
	ActionReviewCreated        = "review_created"
	ActionChefRatingRepaired   = "chef_rating_repaired"

	queueSize    = 100
	writeTimeout = 5 * time.Second
)

type Event struct {
	ActorUserID *uint
	Action      string
	Entity      string
	EntityID    *uint
	Metadata    any
}

type sink interface {
	Log(ctx context.Context, ev Event) error
}

// Dispatcher writes events on a background worker. A nil *Dispatcher drops
// everything, so callers never have to check.
type Dispatcher struct {
	sink  sink
	log   zerolog.Logger
	queue chan Event

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

func NewDispatcher(logger *Logger, log zerolog.Logger) *Dispatcher {
	return newDispatcher(logger, log)
}

func newDispatcher(s sink, log zerolog.Logger) *Dispatcher {
	d := &Dispatcher{
		sink:  s,
		log:   log.With().Str("component", "audit").Logger(),
		queue: make(chan Event, queueSize),
		done:  make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		if err := d.sink.Log(ctx, ev); err != nil {
			d.log.Error().Err(err).Str("action", ev.Action).Msg("audit write failed")
		}
		cancel()
	}
}

// Dispatch queues ev. After Close it drops ev with a warning.
func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.log.Warn().Str("action", ev.Action).Msg("audit dispatcher closed, dropping event")
		return
	}

	select {
	case d.queue <- ev:
	default:
		// queue full: drop, never block the request
		d.log.Warn().Str("action", ev.Action).Msg("audit queue full, dropping event")
	}
}

// Close stops accepting events and waits for the queue to drain.
// It is safe to call more than once, and concurrently with Dispatch.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}

	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	<-d.done
}

// Uint returns a pointer to v, for Event id fields.
func Uint(v uint) *uint {
	return &v
}
