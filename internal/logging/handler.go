package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// Formats accepted by NewLogger.
const (
	FormatText   = "text"
	FormatJSON   = "json"
	FormatLogfmt = "logfmt"
)

// Options configures NewLogger.
type Options struct {
	// Level is the minimum level written.
	Level slog.Level

	// Format is one of FormatText, FormatJSON or FormatLogfmt. Empty means
	// FormatText.
	Format string

	// ReportTimestamp prefixes every line with the time.
	ReportTimestamp bool
}

// NewHandler returns a slog.Handler backed by charmbracelet/log, suited to
// interleaving with interactive console output.
func NewHandler(w io.Writer, opts Options) (*log.Logger, error) {
	formatter, err := formatter(opts.Format)
	if err != nil {
		return nil, err
	}

	handler := log.NewWithOptions(w, log.Options{
		Level:           log.Level(opts.Level),
		ReportTimestamp: opts.ReportTimestamp,
		Formatter:       formatter,
	})

	styles := log.DefaultStyles()
	styles.Levels[log.ErrorLevel] = styles.Levels[log.ErrorLevel].SetString("ERROR")
	styles.Levels[log.WarnLevel] = styles.Levels[log.WarnLevel].SetString("WARN").
		Foreground(lipgloss.Color("214"))
	handler.SetStyles(styles)

	return handler, nil
}

// NewLogger returns a *slog.Logger writing through NewHandler.
func NewLogger(w io.Writer, opts Options) (*slog.Logger, error) {
	handler, err := NewHandler(w, opts)
	if err != nil {
		return nil, err
	}
	return slog.New(handler), nil
}

// LevelFromDebug maps the --debug flag to a level.
func LevelFromDebug(debug bool) slog.Level {
	if debug {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

func formatter(format string) (log.Formatter, error) {
	switch strings.ToLower(format) {
	case "", FormatText:
		return log.TextFormatter, nil
	case FormatJSON:
		return log.JSONFormatter, nil
	case FormatLogfmt:
		return log.LogfmtFormatter, nil
	default:
		return 0, fmt.Errorf("unsupported log format %q", format)
	}
}
