// Package cli holds the flag groups and process plumbing shared by the
// binaries.
package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Parse loads .env when present and parses args into cfg. It reports false
// when help was requested and printed.
func Parse(cfg any, args []string) (bool, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("load .env: %w", err)
	}
	if _, err := flags.ParseArgs(cfg, args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// NewLogger builds a development logger, or a production JSON logger when
// jsonOutput is set.
func NewLogger(jsonOutput bool) (*zap.Logger, error) {
	if jsonOutput {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// MustLogger is NewLogger for main functions.
func MustLogger(jsonOutput bool) *zap.Logger {
	logger, err := NewLogger(jsonOutput)
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	return logger
}

// Secret reads a sensitive value from the environment only.
func Secret(name string) string {
	return os.Getenv(name)
}
