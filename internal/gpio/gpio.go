// Package gpio wires the keypad rows, column lines and indicator LEDs to
// Raspberry Pi GPIO through go-rpio. Pin numbers are BCM numbers.
package gpio

import (
	"context"
	"fmt"
	"time"

	"github.com/stianeikeland/go-rpio/v4"

	"bast-security/keypad-lock/internal/keypad"
)

// DefaultPollInterval is how often the column edge flags are read.
const DefaultPollInterval = time.Millisecond

// Open maps the GPIO registers. Close must be called before exit.
func Open() error {
	if err := rpio.Open(); err != nil {
		return fmt.Errorf("open gpio: %w", err)
	}
	return nil
}

func Close() error {
	return rpio.Close()
}

type outputPin interface {
	Output()
	High()
	Low()
}

type inputPin interface {
	Input()
	PullDown()
	Detect(edge rpio.Edge)
	EdgeDetected() bool
}

// Rows drives the four row lines, one high at a time.
type Rows struct {
	pins [keypad.Rows]outputPin
}

func NewRows(pins [keypad.Rows]int) *Rows {
	var r Rows
	for i, n := range pins {
		r.pins[i] = rpio.Pin(n)
	}
	r.setup()
	return &r
}

func (r *Rows) setup() {
	for _, p := range r.pins {
		p.Output()
		p.Low()
	}
}

// Drive implements keypad.RowDriver.
func (r *Rows) Drive(row int) error {
	if row < 0 || row >= keypad.Rows {
		return fmt.Errorf("gpio: no row %d", row)
	}
	for i, p := range r.pins {
		if i != row {
			p.Low()
		}
	}
	r.pins[row].High()
	return nil
}

// Columns watches the four column lines for rising edges.
type Columns struct {
	pins [keypad.Columns]inputPin
	poll time.Duration
}

// NewColumns takes the pins for columns 1 to 4 in order.
func NewColumns(pins [keypad.Columns]int, poll time.Duration) *Columns {
	var c Columns
	for i, n := range pins {
		c.pins[i] = rpio.Pin(n)
	}
	if poll <= 0 {
		poll = DefaultPollInterval
	}
	c.poll = poll
	return &c
}

// Watch implements keypad.ColumnSource. The edge flags latch in hardware,
// so an edge between two polls is still reported once.
func (c *Columns) Watch(ctx context.Context, edge func(column int)) error {
	for _, p := range c.pins {
		p.Input()
		p.PullDown()
		p.Detect(rpio.RiseEdge)
	}
	defer func() {
		for _, p := range c.pins {
			p.Detect(rpio.NoEdge)
		}
	}()

	ticker := time.NewTicker(c.poll)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
		for i, p := range c.pins {
			if p.EdgeDetected() {
				edge(i + 1)
			}
		}
	}
}

// Indicator is a pair of LEDs: A is lit while the indicator is on, B while
// it is off.
type Indicator struct {
	a, b outputPin
}

func NewIndicator(pins [2]int) *Indicator {
	ind := &Indicator{a: rpio.Pin(pins[0]), b: rpio.Pin(pins[1])}
	ind.a.Output()
	ind.b.Output()
	ind.a.Low()
	ind.b.Low()
	return ind
}

// Set implements lock.Indicator.
func (ind *Indicator) Set(on bool) {
	if on {
		ind.b.Low()
		ind.a.High()
	} else {
		ind.a.Low()
		ind.b.High()
	}
}
