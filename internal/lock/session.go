package lock

import (
	"log/slog"

	"github.com/google/uuid"

	"bast-security/keypad-lock/internal/display"
	"bast-security/keypad-lock/internal/keypad"
)

// Indicator is the LED pair that flips on every key press.
type Indicator interface {
	Set(on bool)
}

type noIndicator struct{}

func (noIndicator) Set(bool) {}

// Session owns all mutable lock state. Handle must only be called from the
// keypad dispatch queue.
type Session struct {
	ID uuid.UUID

	entry     *EntryMachine
	control   *Controller
	indicator Indicator
	ledOn     bool
	logger    *slog.Logger
}

func NewSession(passcode [CodeLength]keypad.Symbol, d display.Display, ind Indicator, logger *slog.Logger) *Session {
	if ind == nil {
		ind = noIndicator{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	id := uuid.New()
	logger = logger.With("session", id.String())

	return &Session{
		ID:        id,
		entry:     NewEntryMachine(passcode),
		control:   NewController(d, logger),
		indicator: ind,
		logger:    logger,
	}
}

// Boot puts the display in its power-on state.
func (s *Session) Boot() error {
	s.logger.Info("lock booted")
	return s.control.Boot()
}

// Handle decodes one column event and runs it through the entry.
func (s *Session) Handle(ev keypad.Event) {
	k, err := keypad.Decode(ev.Column, ev.Row)
	if err != nil {
		s.logger.Warn("undecodable column event", "error", err)
		return
	}

	s.toggleLED()
	s.logger.Info("key", "key", k.Symbol.String())

	res := s.entry.Press(k)
	if res.Attempt != "" {
		s.logger.Info("attempt", "attempt", res.Attempt, "outcome", res.Outcome.String())
	}
	_ = s.control.Apply(res.Outcome)
}

func (s *Session) toggleLED() {
	s.ledOn = !s.ledOn
	s.indicator.Set(s.ledOn)
}

func (s *Session) State() State {
	return s.control.State()
}

func (s *Session) Message() string {
	return s.control.Message()
}

func (s *Session) Count() int {
	return s.entry.Count()
}

func (s *Session) IndicatorOn() bool {
	return s.ledOn
}
