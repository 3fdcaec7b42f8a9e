package display

import (
	"fmt"
	"time"
)

// DefaultAddress is the I2C address of the text controller on the
// 16x2 Grove style modules (AiP31068, HD44780 command set).
const DefaultAddress = 0x3E

// Width is the number of characters per line.
const Width = 16

const (
	prefixCommand = 0x80
	prefixData    = 0x40

	cmdClear       = 0x01
	cmdEntryMode   = 0x04
	cmdDisplayCtrl = 0x08
	cmdFunctionSet = 0x20

	entryLeft = 0x02
	displayOn = 0x04
	twoLines  = 0x08
	fiveByTen = 0x04
)

// Bus is the part of an I2C device the LCD needs. periph's i2c.Dev
// satisfies it.
type Bus interface {
	Tx(w, r []byte) error
}

// LCD is a 16x2 character display behind an I2C bus.
type LCD struct {
	bus   Bus
	lines int
	sleep func(time.Duration)
}

func NewLCD(bus Bus, lines int) *LCD {
	if lines <= 0 {
		lines = 2
	}
	return &LCD{bus: bus, lines: lines, sleep: time.Sleep}
}

// Init runs the power-on sequence: function set three times, display on,
// clear, left-to-right entry.
func (l *LCD) Init() error {
	fn := byte(cmdFunctionSet)
	if l.lines > 1 {
		fn |= twoLines
	} else {
		// the 5x10 font only exists in one-line mode
		fn |= fiveByTen
	}

	l.sleep(50 * time.Millisecond)
	for _, wait := range []time.Duration{4500 * time.Microsecond, 150 * time.Microsecond, 0} {
		if err := l.command(fn); err != nil {
			return fmt.Errorf("lcd function set: %w", err)
		}
		l.sleep(wait)
	}
	if err := l.command(cmdDisplayCtrl | displayOn); err != nil {
		return fmt.Errorf("lcd display on: %w", err)
	}
	if err := l.Clear(); err != nil {
		return err
	}
	if err := l.command(cmdEntryMode | entryLeft); err != nil {
		return fmt.Errorf("lcd entry mode: %w", err)
	}
	return nil
}

func (l *LCD) Clear() error {
	if err := l.command(cmdClear); err != nil {
		return fmt.Errorf("lcd clear: %w", err)
	}
	l.sleep(2 * time.Millisecond)
	return nil
}

// Print writes text at the cursor. Characters past the line width are cut.
func (l *LCD) Print(text string) error {
	if len(text) > Width {
		text = text[:Width]
	}
	for i := 0; i < len(text); i++ {
		if err := l.bus.Tx([]byte{prefixData, text[i]}, nil); err != nil {
			return fmt.Errorf("lcd write %q: %w", text, err)
		}
	}
	return nil
}

func (l *LCD) command(c byte) error {
	return l.bus.Tx([]byte{prefixCommand, c}, nil)
}
