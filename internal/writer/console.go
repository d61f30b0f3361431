package writer

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/fatih/color"
)

// namePalette holds the foreground colors a logger name can be rendered in.
// A name always maps to the same entry so a module keeps its color across
// runs.
var namePalette = []color.Attribute{
	color.FgCyan,
	color.FgGreen,
	color.FgYellow,
	color.FgBlue,
	color.FgMagenta,
	color.FgHiCyan,
	color.FgHiGreen,
	color.FgHiBlue,
	color.FgHiMagenta,
}

// Console writes one line per call, the way a browser console does: Log and
// Info go to the out stream, Warn and Error to the err stream. The logger
// name prefix is colored unless color is disabled.
type Console struct {
	mu      sync.Mutex
	out     io.Writer
	err     io.Writer
	noColor bool
}

// ConsoleOption configures a Console.
type ConsoleOption func(*Console)

// WithNoColor disables ANSI colors in the name prefix.
func WithNoColor(noColor bool) ConsoleOption {
	return func(c *Console) { c.noColor = noColor }
}

// NewConsole returns a Console writing to out and errOut. Nil streams
// default to os.Stdout and os.Stderr.
func NewConsole(out, errOut io.Writer, opts ...ConsoleOption) *Console {
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	c := &Console{out: out, err: errOut, noColor: color.NoColor}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ Writer = (*Console)(nil)

// Log implements Writer.
func (c *Console) Log(args ...any) { c.println(c.out, args) }

// Info implements Writer.
func (c *Console) Info(args ...any) { c.println(c.out, args) }

// Warn implements Writer.
func (c *Console) Warn(args ...any) { c.println(c.err, args) }

// Error implements Writer.
func (c *Console) Error(args ...any) { c.println(c.err, args) }

// ColoredArgsForName returns a single prefix argument, "name:", colored with
// the palette entry picked by hashing name.
func (c *Console) ColoredArgsForName(name string) []any {
	label := name + ":"
	if c.noColor {
		return []any{label}
	}
	col := color.New(NameColor(name))
	col.EnableColor()
	return []any{col.Sprint(label)}
}

func (c *Console) println(w io.Writer, args []any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(w, args...)
}

// NameColor returns the palette color assigned to name.
func NameColor(name string) color.Attribute {
	return namePalette[xxhash.Sum64String(name)%uint64(len(namePalette))]
}
