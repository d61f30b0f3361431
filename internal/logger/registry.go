package logger

import (
	"os"

	"github.com/AbdelazizMoustafa10m/tealog/internal/writer"
)

// WriterRegistry holds the writer shared by every logger of a Pool.
// Loggers read it whenever they rebuild their output methods.
type WriterRegistry struct {
	active writer.Writer
}

// NewWriterRegistry returns a registry whose active writer is w, or a
// console writer on stdout/stderr when w is nil.
func NewWriterRegistry(w writer.Writer) *WriterRegistry {
	if w == nil {
		w = writer.NewConsole(os.Stdout, os.Stderr)
	}
	return &WriterRegistry{active: w}
}

// Writer returns the active writer.
func (r *WriterRegistry) Writer() writer.Writer {
	return r.active
}

// SetWriter validates w, makes it the active writer and rebinds every
// logger in all to it. On a validation error nothing changes.
func (r *WriterRegistry) SetWriter(w writer.Writer, all []*Logger) error {
	if err := writer.Validate(w); err != nil {
		return err
	}

	r.active = w
	for _, l := range all {
		l.updateMethods(true)
	}
	return nil
}
