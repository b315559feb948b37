// Package logging builds the process-wide slog logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	charmlog "github.com/charmbracelet/log"
)

// New returns a logger writing to w. The text and logfmt formats go through
// charmbracelet/log; json uses the standard slog JSON handler.
func New(w io.Writer, level, format string) (*slog.Logger, error) {
	lvl, err := charmlog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	switch format {
	case "", "text", "logfmt":
		formatter := charmlog.TextFormatter
		if format == "logfmt" {
			formatter = charmlog.LogfmtFormatter
		}
		handler := charmlog.NewWithOptions(w, charmlog.Options{
			Level:           lvl,
			Formatter:       formatter,
			ReportTimestamp: true,
			TimeFormat:      time.RFC3339,
		})
		return slog.New(handler), nil
	case "json":
		// charm and slog share level values
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: slog.Level(lvl),
		})), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}
