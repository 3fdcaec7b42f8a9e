package sim

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"bast-security/keypad-lock/internal/keypad"
)

// OpenFeed opens the named pipe (or any file) at path for reading key
// presses. "-" reads standard input.
func OpenFeed(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.OpenFile(path, os.O_RDONLY, os.ModeNamedPipe)
	if err != nil {
		return nil, fmt.Errorf("open feed %s: %w", path, err)
	}
	return f, nil
}

// Feed presses the keys spelled by every line read from r, in order, until
// r reaches EOF. Blanks are ignored and symbols not on the pad are logged
// and skipped.
func Feed(r io.Reader, m *Matrix, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	in := bufio.NewScanner(r)
	for in.Scan() {
		line := strings.TrimSpace(in.Text())
		for i := 0; i < len(line); i++ {
			c := line[i]
			if c == ' ' || c == '\t' {
				continue
			}
			if err := m.Press(keypad.Symbol(c)); err != nil {
				logger.Warn("feed skipped symbol", "symbol", string(c))
			}
		}
	}

	if err := in.Err(); err != nil {
		return fmt.Errorf("read feed: %w", err)
	}
	logger.Info("reached EOF for key feed")
	return nil
}
