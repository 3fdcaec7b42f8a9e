// Package sim stands in for the keypad hardware so the lock can run on a
// desktop and in tests.
package sim

import (
	"context"
	"fmt"
	"sync"

	"bast-security/keypad-lock/internal/keypad"
)

// Matrix is a simulated 4x4 keypad. A pressed key connects its row to its
// column, so its column edge fires the next time the scanner energizes
// that row. Each press fires exactly once and presses fire in order.
type Matrix struct {
	mu      sync.Mutex
	edge    func(column int)
	pending []keypad.Key
	active  int
}

func NewMatrix() *Matrix {
	return &Matrix{active: -1}
}

// Press queues a key press by symbol.
func (m *Matrix) Press(s keypad.Symbol) error {
	k, ok := keypad.Locate(s)
	if !ok {
		return fmt.Errorf("%w: %q", keypad.ErrNoKey, byte(s))
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending = append(m.pending, k)
	return nil
}

// Pending is the number of presses that have not fired yet.
func (m *Matrix) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}

// Drive implements keypad.RowDriver.
func (m *Matrix) Drive(row int) error {
	if row < 0 || row >= keypad.Rows {
		return fmt.Errorf("sim: no row %d", row)
	}

	m.mu.Lock()
	m.active = row
	var fire func(int)
	column := 0
	if m.edge != nil && len(m.pending) > 0 && m.pending[0].Row == row {
		fire, column = m.edge, m.pending[0].Column
		m.pending = m.pending[1:]
	}
	m.mu.Unlock()

	// the edge fires while the row is still energized
	if fire != nil {
		fire(column)
	}
	return nil
}

// Active returns the energized row, or -1 before the first Drive.
func (m *Matrix) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

// Watch implements keypad.ColumnSource.
func (m *Matrix) Watch(ctx context.Context, edge func(column int)) error {
	m.mu.Lock()
	m.edge = edge
	m.mu.Unlock()

	<-ctx.Done()

	m.mu.Lock()
	m.edge = nil
	m.mu.Unlock()
	return ctx.Err()
}
