// Package config loads the lock configuration from a YAML file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"bast-security/keypad-lock/internal/display"
	"bast-security/keypad-lock/internal/gpio"
	"bast-security/keypad-lock/internal/keypad"
	"bast-security/keypad-lock/internal/lock"
)

var ErrInvalid = errors.New("config: invalid")

const (
	DisplayLCD     = "lcd"
	DisplayConsole = "console"
)

type Config struct {
	Passcode string `yaml:"passcode"`
	LogLevel string `yaml:"log_level"`

	Keypad    Keypad    `yaml:"keypad"`
	Indicator Indicator `yaml:"indicator"`
	Display   Display   `yaml:"display"`
}

type Keypad struct {
	// BCM pins for rows 0 to 3 and columns 1 to 4.
	Rows    []int `yaml:"rows"`
	Columns []int `yaml:"columns"`

	ScanInterval time.Duration `yaml:"scan_interval"`
	SettleDelay  time.Duration `yaml:"settle_delay"`
	PollInterval time.Duration `yaml:"poll_interval"`
	QueueSize    int           `yaml:"queue_size"`
}

type Indicator struct {
	Pins []int `yaml:"pins"`
}

type Display struct {
	Driver  string `yaml:"driver"`
	Bus     string `yaml:"bus"`
	Address uint16 `yaml:"address"`
	Lines   int    `yaml:"lines"`
}

// Default returns the wiring of the reference build. Row and column pins
// keep the ones the keypad was first wired to on the Pi header.
func Default() Config {
	return Config{
		Passcode: lock.DefaultPasscode,
		LogLevel: "info",
		Keypad: Keypad{
			Rows:         []int{10, 3, 4, 27},
			Columns:      []int{22, 9, 17, 11},
			ScanInterval: keypad.DefaultScanInterval,
			SettleDelay:  keypad.DefaultSettleDelay,
			PollInterval: gpio.DefaultPollInterval,
			QueueSize:    keypad.DefaultQueueSize,
		},
		Indicator: Indicator{Pins: []int{5, 6}},
		Display: Display{
			Driver:  DisplayLCD,
			Address: display.DefaultAddress,
			Lines:   2,
		},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, cfg.Validate()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if _, err := lock.ParsePasscode(c.Passcode); err != nil {
		add("passcode: %v", err)
	}
	if _, err := c.Level(); err != nil {
		add("log_level: %v", err)
	}

	if len(c.Keypad.Rows) != keypad.Rows {
		add("keypad.rows: want %d pins, got %d", keypad.Rows, len(c.Keypad.Rows))
	}
	if len(c.Keypad.Columns) != keypad.Columns {
		add("keypad.columns: want %d pins, got %d", keypad.Columns, len(c.Keypad.Columns))
	}
	if len(c.Indicator.Pins) != 2 {
		add("indicator.pins: want 2 pins, got %d", len(c.Indicator.Pins))
	}
	seen := map[int]string{}
	for _, group := range []struct {
		name string
		pins []int
	}{{"keypad.rows", c.Keypad.Rows}, {"keypad.columns", c.Keypad.Columns}, {"indicator.pins", c.Indicator.Pins}} {
		for _, p := range group.pins {
			if p < 0 || p > 27 {
				add("%s: pin %d is not a BCM GPIO", group.name, p)
			}
			if other, ok := seen[p]; ok {
				add("%s: pin %d already used by %s", group.name, p, other)
			}
			seen[p] = group.name
		}
	}

	if c.Keypad.ScanInterval <= 0 {
		add("keypad.scan_interval must be positive")
	}
	if c.Keypad.SettleDelay < 0 {
		add("keypad.settle_delay must not be negative")
	}
	if c.Keypad.PollInterval <= 0 {
		add("keypad.poll_interval must be positive")
	}
	if c.Keypad.QueueSize <= 0 {
		add("keypad.queue_size must be positive")
	}

	switch c.Display.Driver {
	case DisplayLCD:
		if c.Display.Lines < 1 || c.Display.Lines > 2 {
			add("display.lines: want 1 or 2, got %d", c.Display.Lines)
		}
	case DisplayConsole:
	default:
		add("display.driver: unknown driver %q", c.Display.Driver)
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, err
	}
	return l, nil
}

// RowPins returns the row pins as a fixed array. Only valid after Validate.
func (c Config) RowPins() (pins [keypad.Rows]int) {
	copy(pins[:], c.Keypad.Rows)
	return pins
}

func (c Config) ColumnPins() (pins [keypad.Columns]int) {
	copy(pins[:], c.Keypad.Columns)
	return pins
}

func (c Config) IndicatorPins() (pins [2]int) {
	copy(pins[:], c.Indicator.Pins)
	return pins
}
