package keypad

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"
)

// DefaultScanInterval is the time each row stays energized. Older builds
// documented 50ms here but always slept for 100.
const DefaultScanInterval = 100 * time.Millisecond

// RowDriver energizes one row line and releases the other three.
type RowDriver interface {
	Drive(row int) error
}

// Scanner rotates the active row. It is the only writer of the row index.
type Scanner struct {
	driver   RowDriver
	interval time.Duration
	logger   *slog.Logger

	row atomic.Int32
}

func NewScanner(driver RowDriver, interval time.Duration, logger *slog.Logger) *Scanner {
	if interval <= 0 {
		interval = DefaultScanInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{driver: driver, interval: interval, logger: logger}
}

// Row returns the row energized most recently. The read is a single atomic
// load, so callers never see a torn value.
func (s *Scanner) Row() int {
	return int(s.row.Load())
}

// Step moves to the next row (0, 1, 2, 3, 0, ...) and drives it.
func (s *Scanner) Step() (int, error) {
	next := (s.Row() + 1) % Rows
	s.row.Store(int32(next))
	if err := s.driver.Drive(next); err != nil {
		return next, fmt.Errorf("drive row %d: %w", next, err)
	}
	return next, nil
}

// Run steps through the rows every interval until ctx is done. A row that
// cannot be driven stops the scan; the keypad is dead without it.
func (s *Scanner) Run(ctx context.Context) error {
	s.logger.Debug("row scan started", "interval", s.interval)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		if _, err := s.Step(); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
