package lock

import (
	"fmt"
	"log/slog"

	"bast-security/keypad-lock/internal/display"
)

// State is what the display currently tells the user.
type State int

const (
	StateLocked State = iota
	StateUnlocked
	StateReset
	StateRetry
)

func (s State) String() string {
	switch s {
	case StateLocked:
		return "locked"
	case StateUnlocked:
		return "unlocked"
	case StateReset:
		return "reset"
	case StateRetry:
		return "retry"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

const (
	msgLocked   = "locked"
	msgUnlocked = "unlocked"
	msgReset    = "reset entries"
	msgTryAgain = "locked,try again"
)

// Controller turns entry outcomes into lock state and display messages.
type Controller struct {
	display display.Display
	logger  *slog.Logger

	state   State
	message string
}

func NewController(d display.Display, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{display: d, logger: logger}
}

// Boot shows the power-on message.
func (c *Controller) Boot() error {
	return c.show(StateLocked, msgLocked)
}

// Apply updates the state for o and redraws the display once.
func (c *Controller) Apply(o Outcome) error {
	switch o {
	case Unlocked:
		return c.show(StateUnlocked, msgUnlocked)
	case Closed:
		return c.show(StateLocked, msgLocked)
	case Reset:
		return c.show(StateReset, msgReset)
	case Retry:
		return c.show(StateRetry, msgTryAgain)
	}
	return fmt.Errorf("lock: unknown outcome %v", o)
}

func (c *Controller) State() State {
	return c.state
}

func (c *Controller) Message() string {
	return c.message
}

// show records the new state even when the display cannot be written.
func (c *Controller) show(s State, msg string) error {
	c.state = s
	c.message = msg

	if err := c.display.Clear(); err != nil {
		c.logger.Error("display clear failed", "error", err)
		return err
	}
	if err := c.display.Print(msg); err != nil {
		c.logger.Error("display print failed", "message", msg, "error", err)
		return err
	}
	return nil
}
