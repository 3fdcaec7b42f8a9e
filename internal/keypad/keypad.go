package keypad

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// ColumnSource reports rising edges on the four column lines. Watch must
// only call edge; the work an edge causes belongs on the dispatch queue.
type ColumnSource interface {
	Watch(ctx context.Context, edge func(column int)) error
}

// Keypad pairs the row scanner with the dispatch queue.
type Keypad struct {
	scanner *Scanner
	queue   *Dispatcher
	logger  *slog.Logger
}

func New(scanner *Scanner, queue *Dispatcher, logger *slog.Logger) *Keypad {
	if logger == nil {
		logger = slog.Default()
	}
	return &Keypad{scanner: scanner, queue: queue, logger: logger}
}

// Edge records a rising edge on column together with the row energized
// right now and queues it.
func (k *Keypad) Edge(column int) {
	ev := Event{Column: column, Row: k.scanner.Row()}
	k.logger.Debug("column edge", "column", ev.Column, "row", ev.Row)
	_ = k.queue.Post(ev)
}

// Run starts the row scan, the column watcher and the dispatch queue and
// blocks until one of them fails or ctx is done.
func (k *Keypad) Run(ctx context.Context, columns ColumnSource) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return k.scanner.Run(ctx) })
	g.Go(func() error { return k.queue.Run(ctx) })
	g.Go(func() error { return columns.Watch(ctx, k.Edge) })
	return g.Wait()
}
