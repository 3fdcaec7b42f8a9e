// Package lock decides, key by key, whether the door opens.
package lock

import (
	"errors"
	"fmt"

	"bast-security/keypad-lock/internal/keypad"
)

// CodeLength is the number of keys in a passcode attempt.
const CodeLength = 4

// DefaultPasscode is the code the lock opens for unless configured otherwise.
const DefaultPasscode = "8632"

var ErrBadPasscode = errors.New("lock: invalid passcode")

// Outcome is what one key press did to the entry.
type Outcome int

const (
	// Closed means more keys are needed; the lock stays locked.
	Closed Outcome = iota
	Unlocked
	Reset
	Retry
)

func (o Outcome) String() string {
	switch o {
	case Closed:
		return "closed"
	case Unlocked:
		return "unlocked"
	case Reset:
		return "reset"
	case Retry:
		return "retry"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// Result of a key press. Attempt holds the entered keys when the press
// completed an attempt, and is empty otherwise.
type Result struct {
	Outcome Outcome
	Attempt string
}

// EntryMachine collects key presses into attempts of CodeLength keys.
type EntryMachine struct {
	passcode [CodeLength]keypad.Symbol
	buf      [CodeLength]keypad.Symbol
	count    int
}

// ParsePasscode checks that code is CodeLength pad symbols, none of them
// the reset key.
func ParsePasscode(code string) ([CodeLength]keypad.Symbol, error) {
	var p [CodeLength]keypad.Symbol
	if len(code) != CodeLength {
		return p, fmt.Errorf("%w: want %d keys, got %d", ErrBadPasscode, CodeLength, len(code))
	}
	for i := 0; i < CodeLength; i++ {
		k, ok := keypad.Locate(keypad.Symbol(code[i]))
		if !ok {
			return p, fmt.Errorf("%w: %q is not on the keypad", ErrBadPasscode, code[i])
		}
		if k.IsReset() {
			return p, fmt.Errorf("%w: %q clears the entry", ErrBadPasscode, code[i])
		}
		p[i] = k.Symbol
	}
	return p, nil
}

func NewEntryMachine(passcode [CodeLength]keypad.Symbol) *EntryMachine {
	return &EntryMachine{passcode: passcode}
}

// Count is the number of keys entered since the last reset or attempt.
func (m *EntryMachine) Count() int {
	return m.count
}

// Press adds k to the entry. The reset key always clears the entry, even
// when it would have been the last key of an attempt.
func (m *EntryMachine) Press(k keypad.Key) Result {
	if k.IsReset() {
		m.clear()
		return Result{Outcome: Reset}
	}

	m.buf[m.count] = k.Symbol
	m.count++
	if m.count < CodeLength {
		return Result{Outcome: Closed}
	}

	res := Result{Outcome: Retry, Attempt: string(m.buf[:])}
	if passwordMatch(m.buf, m.passcode) {
		res.Outcome = Unlocked
	}
	m.clear()
	return res
}

func (m *EntryMachine) clear() {
	m.buf = [CodeLength]keypad.Symbol{}
	m.count = 0
}

func passwordMatch(entered, pass [CodeLength]keypad.Symbol) bool {
	for i := 0; i < CodeLength; i++ {
		if entered[i] != pass[i] {
			return false
		}
	}
	return true
}
