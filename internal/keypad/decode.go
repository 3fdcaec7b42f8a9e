// Package keypad scans a 4x4 matrix keypad and turns column edges into
// decoded keys on a single serialized queue.
package keypad

import (
	"errors"
	"fmt"
)

const (
	Rows    = 4
	Columns = 4
)

// ErrNoKey is returned for a (column, row) pair outside the matrix.
var ErrNoKey = errors.New("keypad: no key at position")

// Symbol is the logical value printed on a key.
type Symbol byte

func (s Symbol) String() string {
	return string(rune(s))
}

// Key is a decoded key press. Column is 1-based, Row is 0-based, the way
// the scanner and the column lines number them.
type Key struct {
	Row    int
	Column int
	Symbol Symbol
}

// IsReset reports whether the key clears the current entry. Only the star
// key (column 1 on row 0) resets; the other row 0 keys are ordinary entries.
func (k Key) IsReset() bool {
	return k.Column == 1 && k.Row == 0
}

func (k Key) String() string {
	return fmt.Sprintf("%s (row %d, column %d)", k.Symbol, k.Row, k.Column)
}

//////////For Key Pad//////////
//		col 1	col 2	col 3	col 4
// row 0	*	0	#	D
// row 1	1	2	3	A
// row 2	4	5	6	B
// row 3	7	8	9	C
var keyboardKey = [Rows][Columns]Symbol{
	{'*', '0', '#', 'D'},
	{'1', '2', '3', 'A'},
	{'4', '5', '6', 'B'},
	{'7', '8', '9', 'C'},
}

// Decode maps the column that fired and the row energized at that instant
// to the key at their crossing.
func Decode(column, row int) (Key, error) {
	if column < 1 || column > Columns || row < 0 || row >= Rows {
		return Key{}, fmt.Errorf("%w: column %d, row %d", ErrNoKey, column, row)
	}
	return Key{Row: row, Column: column, Symbol: keyboardKey[row][column-1]}, nil
}

// Locate finds the position of a symbol on the pad. It is the reverse of
// Decode and is used by the simulated matrix.
func Locate(s Symbol) (Key, bool) {
	for row := 0; row < Rows; row++ {
		for column := 0; column < Columns; column++ {
			if keyboardKey[row][column] == s {
				return Key{Row: row, Column: column + 1, Symbol: s}, true
			}
		}
	}
	return Key{}, false
}

// Valid reports whether s is printed on any key.
func Valid(s Symbol) bool {
	_, ok := Locate(s)
	return ok
}
