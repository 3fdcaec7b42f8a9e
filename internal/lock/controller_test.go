package lock

import (
	"errors"
	"io"
	"log/slog"
	"testing"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

type fakeDisplay struct {
	calls     []string
	failPrint bool
}

func (d *fakeDisplay) Clear() error {
	d.calls = append(d.calls, "clear")
	return nil
}

func (d *fakeDisplay) Print(text string) error {
	if d.failPrint {
		return errors.New("bus gone")
	}
	d.calls = append(d.calls, text)
	return nil
}

func TestControllerBoot(t *testing.T) {
	d := &fakeDisplay{}
	c := NewController(d, quiet)
	if err := c.Boot(); err != nil {
		t.Fatal(err)
	}
	if len(d.calls) != 2 || d.calls[0] != "clear" || d.calls[1] != "locked" {
		t.Fatalf("boot calls = %v", d.calls)
	}
	if c.State() != StateLocked {
		t.Fatalf("State = %v", c.State())
	}
}

func TestControllerApply(t *testing.T) {
	tests := []struct {
		outcome Outcome
		state   State
		message string
	}{
		{Unlocked, StateUnlocked, "unlocked"},
		{Closed, StateLocked, "locked"},
		{Reset, StateReset, "reset entries"},
		{Retry, StateRetry, "locked,try again"},
	}
	for _, tt := range tests {
		d := &fakeDisplay{}
		c := NewController(d, quiet)
		if err := c.Apply(tt.outcome); err != nil {
			t.Fatal(err)
		}
		if c.State() != tt.state || c.Message() != tt.message {
			t.Errorf("%v: state %v %q, want %v %q", tt.outcome, c.State(), c.Message(), tt.state, tt.message)
		}
		if len(d.calls) != 2 || d.calls[0] != "clear" || d.calls[1] != tt.message {
			t.Errorf("%v: display calls %v", tt.outcome, d.calls)
		}
	}
}

func TestControllerKeepsStateOnDisplayError(t *testing.T) {
	c := NewController(&fakeDisplay{failPrint: true}, quiet)
	if err := c.Apply(Unlocked); err == nil {
		t.Fatal("expected display error")
	}
	if c.State() != StateUnlocked {
		t.Fatalf("State = %v", c.State())
	}
}

func TestControllerUnknownOutcome(t *testing.T) {
	if err := NewController(&fakeDisplay{}, quiet).Apply(Outcome(42)); err == nil {
		t.Fatal("expected error")
	}
}
