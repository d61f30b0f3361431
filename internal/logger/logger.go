// Package logger implements tealog's named loggers, the writer registry
// they share, and the Pool that hands them out.
//
// A Logger owns a Level and four output methods, Log, Info, Warn and
// Error, one per severity. A method is active when the logger's level is at
// or below the method's severity; otherwise it is a no-op. Each change of
// level rebuilds the active set and then fires a "levelchange" event.
//
// Loggers are only created by a Pool, which guarantees one instance per
// name and restores persisted levels on first use:
//
//	pool := logger.New(logger.WithStore(store))
//	db, _ := pool.GetByName("db")
//	db.Info("connected") // dropped: the default level is Warn
//	_ = db.SetLevel(level.Debug)
//	db.Info("connected") // written, prefixed with "db:"
//
// Concurrency: the output methods may be called from any goroutine. Level
// changes, listener registration and writer swaps must happen on a single
// goroutine; a levelchange listener may itself change levels.
package logger

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/AbdelazizMoustafa10m/tealog/internal/level"
	"github.com/AbdelazizMoustafa10m/tealog/internal/writer"
)

// ErrInvalidArgument is returned when a logger is constructed with an
// empty name or an undefined level.
var ErrInvalidArgument = errors.New("invalid argument")

// Method identifies one of a logger's four output methods. Its value equals
// the severity of the level it writes at.
type Method int

const (
	// MethodLog writes at Debug severity.
	MethodLog Method = iota
	// MethodInfo writes at Info severity.
	MethodInfo
	// MethodWarn writes at Warn severity.
	MethodWarn
	// MethodError writes at Error severity.
	MethodError
)

const methodCount = 4

// Methods returns the four output methods in ascending severity.
func Methods() []Method {
	return []Method{MethodLog, MethodInfo, MethodWarn, MethodError}
}

// Level returns the severity m writes at.
func (m Method) Level() level.Level {
	return level.Level(m)
}

// String returns the method name.
func (m Method) String() string {
	switch m {
	case MethodLog:
		return "log"
	case MethodInfo:
		return "info"
	case MethodWarn:
		return "warn"
	case MethodError:
		return "error"
	}
	return fmt.Sprintf("method(%d)", int(m))
}

// slot is the installed implementation of one output method. A zero slot
// is dormant.
type slot struct {
	enabled bool
	emit    func(args ...any)
}

type slotTable [methodCount]slot

// Logger is a named logger with a mutable level.
type Logger struct {
	name    string
	level   level.Level
	writers *WriterRegistry

	// slots is replaced wholesale on every rebuild so output methods can
	// read it without locking.
	slots atomic.Pointer[slotTable]

	listeners []Listener
	rmQueue   []Listener
	fireDepth int
}

// newLogger validates its arguments and computes the initial method set.
// No event fires for the initial level.
func newLogger(name string, initial level.Level, writers *WriterRegistry) (*Logger, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if !initial.Valid() {
		return nil, fmt.Errorf("%w: level %d is not one of debug, info, warn, error or none",
			ErrInvalidArgument, uint8(initial))
	}
	if writers == nil {
		return nil, fmt.Errorf("%w: writer registry is nil", ErrInvalidArgument)
	}

	l := &Logger{
		name:    name,
		level:   initial,
		writers: writers,
	}
	l.slots.Store(&slotTable{})
	l.updateMethods(true)
	return l, nil
}

func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name must not be empty", ErrInvalidArgument)
	}
	return nil
}

// Name returns the logger's name.
func (l *Logger) Name() string {
	return l.name
}

// Level returns the current level.
func (l *Logger) Level() level.Level {
	return l.level
}

// SetLevel changes the logger's level. Setting the current level again does
// nothing. Otherwise the output methods are rebuilt and a levelchange event
// is delivered to every listener in registration order. The first listener
// error stops delivery and is returned; the new level stays in effect.
func (l *Logger) SetLevel(newLevel level.Level) error {
	if _, err := level.Of(newLevel); err != nil {
		return err
	}

	oldLevel := l.level
	if newLevel == oldLevel {
		return nil
	}

	l.level = newLevel
	l.updateMethods(false)
	return l.notifyLevelChange(newLevel, oldLevel)
}

// Enabled reports whether m is currently active.
func (l *Logger) Enabled(m Method) bool {
	if m < 0 || m >= methodCount {
		return false
	}
	return l.slots.Load()[m].enabled
}

// Log writes args at Debug severity.
func (l *Logger) Log(args ...any) { l.call(MethodLog, args) }

// Info writes args at Info severity.
func (l *Logger) Info(args ...any) { l.call(MethodInfo, args) }

// Warn writes args at Warn severity.
func (l *Logger) Warn(args ...any) { l.call(MethodWarn, args) }

// Error writes args at Error severity.
func (l *Logger) Error(args ...any) { l.call(MethodError, args) }

func (l *Logger) call(m Method, args []any) {
	if s := l.slots.Load()[m]; s.enabled {
		s.emit(args...)
	}
}

// updateMethods recomputes the four slots against the current level. Only
// slots whose enabled state changed are rebuilt unless force is set, in
// which case enabled slots are rebound to the active writer as well.
func (l *Logger) updateMethods(force bool) {
	old := l.slots.Load()
	next := *old

	var (
		w      writer.Writer
		prefix []any
	)
	for _, m := range Methods() {
		enabled := l.level <= m.Level()
		if enabled == old[m].enabled && !(enabled && force) {
			continue
		}

		if !enabled {
			next[m] = slot{}
			continue
		}
		if w == nil {
			w = l.writers.Writer()
			prefix = w.ColoredArgsForName(l.name)
		}
		next[m] = slot{enabled: true, emit: bind(w, m, prefix)}
	}

	l.slots.Store(&next)
}

// bind returns a function that calls w's output function for m with prefix
// ahead of the caller's arguments.
func bind(w writer.Writer, m Method, prefix []any) func(args ...any) {
	var out func(args ...any)
	switch m {
	case MethodLog:
		out = w.Log
	case MethodInfo:
		out = w.Info
	case MethodWarn:
		out = w.Warn
	default:
		out = w.Error
	}

	prefix = append([]any(nil), prefix...)
	return func(args ...any) {
		all := make([]any, 0, len(prefix)+len(args))
		all = append(all, prefix...)
		all = append(all, args...)
		out(all...)
	}
}
