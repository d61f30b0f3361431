package writer

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// Format selects the charmbracelet/log formatter used by a Charm writer.
type Format string

const (
	// FormatText renders human-readable lines.
	FormatText Format = "text"
	// FormatJSON renders one JSON object per line.
	FormatJSON Format = "json"
	// FormatLogfmt renders logfmt key=value lines.
	FormatLogfmt Format = "logfmt"
)

// Formats lists the formats a Charm writer understands.
func Formats() []Format {
	return []Format{FormatText, FormatJSON, FormatLogfmt}
}

// Charm routes logger output to a charmbracelet/log logger. Gating already
// happened in the tealog logger, so the underlying logger accepts every
// level.
type Charm struct {
	l *log.Logger
}

// NewCharm returns a Charm writer that writes to w (os.Stderr when nil)
// using the given format. Unknown formats fall back to text.
func NewCharm(w io.Writer, format Format) *Charm {
	if w == nil {
		w = os.Stderr
	}
	l := log.NewWithOptions(w, log.Options{
		Level:           log.DebugLevel,
		ReportTimestamp: true,
		Formatter:       charmFormatter(format),
	})
	return &Charm{l: l}
}

func charmFormatter(format Format) log.Formatter {
	switch format {
	case FormatJSON:
		return log.JSONFormatter
	case FormatLogfmt:
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}

var _ Writer = (*Charm)(nil)

// Log implements Writer.
func (c *Charm) Log(args ...any) { c.l.Debug(joinArgs(args)) }

// Info implements Writer.
func (c *Charm) Info(args ...any) { c.l.Info(joinArgs(args)) }

// Warn implements Writer.
func (c *Charm) Warn(args ...any) { c.l.Warn(joinArgs(args)) }

// Error implements Writer.
func (c *Charm) Error(args ...any) { c.l.Error(joinArgs(args)) }

// ColoredArgsForName returns "name:". Styling is left to the formatter.
func (c *Charm) ColoredArgsForName(name string) []any {
	return []any{name + ":"}
}

// joinArgs joins operands with single spaces, like fmt.Println without the
// trailing newline.
func joinArgs(args []any) string {
	return strings.TrimSuffix(fmt.Sprintln(args...), "\n")
}
