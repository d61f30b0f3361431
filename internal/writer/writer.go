// Package writer defines the output sink consumed by every logger and ships
// the sinks tealog can install: a colored console writer (the default), a
// charmbracelet/log writer, and a logrus writer.
//
// A Writer is a capability set: one output function per non-silent level
// plus ColoredArgsForName, which supplies the prefix arguments a logger
// prepends to every call. Loggers bind those prefix arguments once, when
// their methods are rebuilt, so ColoredArgsForName is not called per line.
package writer

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrInvalidWriter is returned when a value cannot be installed as the
// active writer.
var ErrInvalidWriter = errors.New("invalid writer")

// Writer is the capability set a sink must provide.
type Writer interface {
	// Log receives debug-level calls.
	Log(args ...any)
	// Info receives info-level calls.
	Info(args ...any)
	// Warn receives warn-level calls.
	Warn(args ...any)
	// Error receives error-level calls.
	Error(args ...any)
	// ColoredArgsForName returns the prefix arguments for the logger called
	// name. They are passed ahead of the caller's own arguments.
	ColoredArgsForName(name string) []any
}

// validator is implemented by writers whose capability set is only known at
// run time, such as Funcs.
type validator interface {
	Validate() error
}

// Validate reports whether w can be installed. A nil interface, a typed nil
// pointer, or a writer whose own Validate method fails are all rejected with
// ErrInvalidWriter.
func Validate(w Writer) error {
	if w == nil {
		return fmt.Errorf("%w: nil", ErrInvalidWriter)
	}
	if v := reflect.ValueOf(w); v.Kind() == reflect.Ptr && v.IsNil() {
		return fmt.Errorf("%w: nil %T", ErrInvalidWriter, w)
	}
	if v, ok := w.(validator); ok {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Funcs adapts five plain functions into a Writer. Every field is required;
// Validate names the ones that are missing.
type Funcs struct {
	LogFunc                func(args ...any)
	InfoFunc               func(args ...any)
	WarnFunc               func(args ...any)
	ErrorFunc              func(args ...any)
	ColoredArgsForNameFunc func(name string) []any
}

var _ Writer = Funcs{}

// Log calls LogFunc.
func (f Funcs) Log(args ...any) { f.LogFunc(args...) }

// Info calls InfoFunc.
func (f Funcs) Info(args ...any) { f.InfoFunc(args...) }

// Warn calls WarnFunc.
func (f Funcs) Warn(args ...any) { f.WarnFunc(args...) }

// Error calls ErrorFunc.
func (f Funcs) Error(args ...any) { f.ErrorFunc(args...) }

// ColoredArgsForName calls ColoredArgsForNameFunc.
func (f Funcs) ColoredArgsForName(name string) []any { return f.ColoredArgsForNameFunc(name) }

// Validate returns ErrInvalidWriter when any function is nil.
func (f Funcs) Validate() error {
	var missing []string
	if f.LogFunc == nil {
		missing = append(missing, "log")
	}
	if f.InfoFunc == nil {
		missing = append(missing, "info")
	}
	if f.WarnFunc == nil {
		missing = append(missing, "warn")
	}
	if f.ErrorFunc == nil {
		missing = append(missing, "error")
	}
	if f.ColoredArgsForNameFunc == nil {
		missing = append(missing, "coloredArgsForName")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %v", ErrInvalidWriter, missing)
	}
	return nil
}

// Kind names a built-in writer. It is the value of the [writer] kind key in
// tealog.toml.
type Kind string

const (
	// KindConsole selects the colored console writer.
	KindConsole Kind = "console"
	// KindCharm selects the charmbracelet/log writer.
	KindCharm Kind = "charm"
	// KindLogrus selects the logrus writer.
	KindLogrus Kind = "logrus"
)

// Kinds lists the built-in writer kinds.
func Kinds() []Kind {
	return []Kind{KindConsole, KindCharm, KindLogrus}
}
