package writer

import (
	"fmt"
	"io"
)

// Options carries the settings needed to build a built-in writer.
type Options struct {
	Kind    Kind
	Format  Format
	NoColor bool
	Out     io.Writer
	Err     io.Writer
}

// New builds the built-in writer named by opts.Kind. An empty kind selects
// the console writer. Charm and Logrus writers log to opts.Err.
func New(opts Options) (Writer, error) {
	switch opts.Kind {
	case "", KindConsole:
		return NewConsole(opts.Out, opts.Err, WithNoColor(opts.NoColor)), nil
	case KindCharm:
		return NewCharm(opts.Err, opts.Format), nil
	case KindLogrus:
		return NewLogrus(opts.Err), nil
	}
	return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidWriter, opts.Kind)
}
