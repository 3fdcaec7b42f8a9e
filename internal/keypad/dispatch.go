package keypad

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"
)

const (
	// DefaultQueueSize is the number of events that can wait for the handler.
	DefaultQueueSize = 32
	// DefaultSettleDelay is the minimum time a handled event holds the
	// queue. It is the only debounce the keypad gets.
	DefaultSettleDelay = 500 * time.Microsecond
)

// ErrQueueFull is returned by Post when the queue has no free slot.
var ErrQueueFull = errors.New("keypad: event queue full")

// Event is one column edge together with the row that was energized when
// the edge was seen.
type Event struct {
	Column int
	Row    int
}

// Handler processes one event. Handlers are never run concurrently.
type Handler func(Event)

// Dispatcher is the single serialized queue all column work goes through.
type Dispatcher struct {
	events chan Event
	handle Handler
	settle time.Duration
	logger *slog.Logger

	dropped atomic.Uint64
}

func NewDispatcher(size int, settle time.Duration, handle Handler, logger *slog.Logger) *Dispatcher {
	if size <= 0 {
		size = DefaultQueueSize
	}
	if settle < 0 {
		settle = 0
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		events: make(chan Event, size),
		handle: handle,
		settle: settle,
		logger: logger,
	}
}

// Post queues ev without blocking. It is safe to call from any goroutine,
// including edge watchers.
func (d *Dispatcher) Post(ev Event) error {
	select {
	case d.events <- ev:
		return nil
	default:
		d.dropped.Add(1)
		d.logger.Warn("column event dropped", "column", ev.Column, "row", ev.Row)
		return ErrQueueFull
	}
}

// Dropped returns how many events Post has refused.
func (d *Dispatcher) Dropped() uint64 {
	return d.dropped.Load()
}

// Run handles queued events one at a time, in the order they were posted,
// until ctx is done. Every event is followed by the settle delay before the
// next one is taken.
func (d *Dispatcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-d.events:
			d.handle(ev)
			hold(time.Now(), d.settle)
		}
	}
}

// hold spins until dur has passed since start.
func hold(start time.Time, dur time.Duration) {
	for time.Since(start) < dur {
	}
}
