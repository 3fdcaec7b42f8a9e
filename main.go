package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"bast-security/keypad-lock/internal/config"
	"bast-security/keypad-lock/internal/display"
	"bast-security/keypad-lock/internal/gpio"
	"bast-security/keypad-lock/internal/keypad"
	"bast-security/keypad-lock/internal/lock"
	"bast-security/keypad-lock/internal/sim"
)

/**options read from the command line*/
type options struct {
	configPath string
	feedPath   string
	simulate   bool
	logJSON    bool
}

func main() {
	var opts options

	flag.StringVar(&opts.configPath, "config", "", "Location of a YAML config file (defaults are used when empty)")
	flag.BoolVar(&opts.simulate, "sim", false, "Run against a simulated keypad and console display instead of GPIO")
	flag.StringVar(&opts.feedPath, "feed", "-", "Named pipe to read simulated key presses from, - for stdin")
	flag.BoolVar(&opts.logJSON, "log-json", false, "Log as JSON instead of text")
	flag.Parse()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	level, _ := cfg.Level()
	logger := newLogger(os.Stderr, opts.logJSON, level)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err = run(ctx, cfg, opts, logger)
	stop()

	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("lock stopped", "error", err)
		os.Exit(1)
	}
	logger.Info("lock shut down")
}

func newLogger(out io.Writer, asJSON bool, level slog.Level) *slog.Logger {
	handlerOpts := &slog.HandlerOptions{Level: level}
	if asJSON {
		return slog.New(slog.NewJSONHandler(out, handlerOpts))
	}
	return slog.New(slog.NewTextHandler(out, handlerOpts))
}

// run wires the keypad to the lock session and blocks until the keypad
// stops. Only a hardware failure or ctx ends it.
func run(ctx context.Context, cfg config.Config, opts options, logger *slog.Logger) error {
	passcode, err := lock.ParsePasscode(cfg.Passcode)
	if err != nil {
		return err
	}

	var (
		rows      keypad.RowDriver
		columns   keypad.ColumnSource
		indicator lock.Indicator
	)

	if opts.simulate {
		matrix := sim.NewMatrix()
		rows, columns = matrix, matrix
		indicator = logIndicator{logger: logger}
		go feedKeys(opts.feedPath, matrix, logger)
	} else {
		if err := gpio.Open(); err != nil {
			return err
		}
		defer gpio.Close()

		rows = gpio.NewRows(cfg.RowPins())
		columns = gpio.NewColumns(cfg.ColumnPins(), cfg.Keypad.PollInterval)
		indicator = gpio.NewIndicator(cfg.IndicatorPins())
	}

	screen, closeScreen, err := openDisplay(cfg, opts.simulate)
	if err != nil {
		return err
	}
	defer closeScreen.Close()

	session := lock.NewSession(passcode, screen, indicator, logger)
	if err := session.Boot(); err != nil {
		logger.Warn("boot message not shown", "error", err)
	}

	queue := keypad.NewDispatcher(cfg.Keypad.QueueSize, cfg.Keypad.SettleDelay, session.Handle, logger)
	scanner := keypad.NewScanner(rows, cfg.Keypad.ScanInterval, logger)
	pad := keypad.New(scanner, queue, logger)

	logger.Info("keypad lock running",
		"simulated", opts.simulate,
		"scan_interval", cfg.Keypad.ScanInterval,
		"settle_delay", cfg.Keypad.SettleDelay,
	)
	return pad.Run(ctx, columns)
}

func openDisplay(cfg config.Config, simulate bool) (display.Display, io.Closer, error) {
	if simulate || cfg.Display.Driver == config.DisplayConsole {
		return display.NewConsole(os.Stdout), io.NopCloser(nil), nil
	}
	return display.OpenLCD(cfg.Display.Bus, cfg.Display.Address, cfg.Display.Lines)
}

//reads key presses for the simulated keypad until the feed is closed
func feedKeys(path string, matrix *sim.Matrix, logger *slog.Logger) {
	in, err := sim.OpenFeed(path)
	if err != nil {
		logger.Error("key feed unavailable", "error", err)
		return
	}
	defer in.Close()

	logger.Info("opened key feed", "path", path)
	if err := sim.Feed(in, matrix, logger); err != nil {
		logger.Error("key feed failed", "error", err)
	}
}

// logIndicator stands in for the LED pair in simulation.
type logIndicator struct {
	logger *slog.Logger
}

func (l logIndicator) Set(on bool) {
	l.logger.Debug("indicator", "on", on)
}
