// Package display drives the character display that shows the lock state.
package display

import (
	"fmt"
	"io"
	"sync"
)

// Display is a character display that can be cleared and written.
type Display interface {
	Clear() error
	Print(text string) error
}

// Console is a Display that writes each printed message as one line.
type Console struct {
	mu  sync.Mutex
	out io.Writer
}

func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

func (c *Console) Clear() error {
	return nil
}

func (c *Console) Print(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := fmt.Fprintf(c.out, "[display] %s\n", text)
	return err
}
