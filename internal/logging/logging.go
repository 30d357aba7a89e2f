// Package logging holds the process-wide structured logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/log"
)

var (
	mu     sync.RWMutex
	logger = log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          "eigensim",
		ReportTimestamp: true,
		Level:           log.WarnLevel,
	})
)

// Logger returns the shared logger.
func Logger() *log.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// SetLevel parses one of debug, info, warn or error.
func SetLevel(level string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("log level %q: %w", level, err)
	}
	Logger().SetLevel(lvl)
	return nil
}

// SetOutput redirects the shared logger, keeping its level.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	lvl := logger.GetLevel()
	logger = log.NewWithOptions(w, log.Options{
		Prefix:          "eigensim",
		ReportTimestamp: true,
		Level:           lvl,
	})
}
