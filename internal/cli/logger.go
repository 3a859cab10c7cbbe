package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// NewLogger returns a text logger writing to w at level.
// An empty level discards all output.
func NewLogger(w io.Writer, level string) (*slog.Logger, error) {
	if strings.TrimSpace(level) == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), nil
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("--log-level %q: %w", level, ErrInvalidArgs)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}
