package logger

import (
	"errors"
	"fmt"
	"reflect"
	"slices"

	"github.com/AbdelazizMoustafa10m/tealog/internal/level"
)

// EventLevelChange is the only event a Logger emits. Registration calls
// naming any other event are ignored.
const EventLevelChange = "levelchange"

// ErrInvalidListener is returned when a listener is nil or cannot be
// compared for identity.
var ErrInvalidListener = errors.New("invalid listener")

// LevelChangeEvent describes one level transition.
type LevelChangeEvent struct {
	Logger   *Logger
	NewLevel level.Level
	OldLevel level.Level
}

// Listener receives levelchange events. Listeners are identified by ==, so
// implementations must be comparable; wrap plain functions with NewListener.
type Listener interface {
	OnLevelChange(e LevelChangeEvent) error
}

// ListenerFunc adapts a function to Listener. Use it through NewListener:
// function values are not comparable and cannot be registered directly.
type ListenerFunc func(e LevelChangeEvent) error

// OnLevelChange calls f(e).
func (f ListenerFunc) OnLevelChange(e LevelChangeEvent) error {
	return f(e)
}

type funcListener struct {
	fn ListenerFunc
}

func (l *funcListener) OnLevelChange(e LevelChangeEvent) error {
	return l.fn(e)
}

// NewListener wraps fn in a listener with pointer identity. Keep the
// returned value to remove the listener later.
func NewListener(fn func(e LevelChangeEvent) error) Listener {
	return &funcListener{fn: fn}
}

func validateListener(l Listener) error {
	if l == nil {
		return fmt.Errorf("%w: nil", ErrInvalidListener)
	}
	v := reflect.ValueOf(l)
	if v.Kind() == reflect.Pointer && v.IsNil() {
		return fmt.Errorf("%w: nil %T", ErrInvalidListener, l)
	}
	if !v.Comparable() {
		return fmt.Errorf("%w: %T is not comparable, wrap it with NewListener", ErrInvalidListener, l)
	}
	return nil
}

// AddEventListener registers l for event. A listener that is already
// registered is not added twice. Listeners added while an event is being
// delivered first see the next event.
func (l *Logger) AddEventListener(event string, listener Listener) error {
	if event != EventLevelChange {
		return nil
	}
	if err := validateListener(listener); err != nil {
		return err
	}
	if slices.Contains(l.listeners, listener) {
		return nil
	}
	l.listeners = append(l.listeners, listener)
	return nil
}

// RemoveEventListener unregisters listener. During delivery the removal is
// queued and applied once the outermost delivery returns, so the current
// event still reaches every listener that was registered when it started.
func (l *Logger) RemoveEventListener(event string, listener Listener) error {
	if event != EventLevelChange {
		return nil
	}
	if err := validateListener(listener); err != nil {
		return err
	}
	if l.fireDepth > 0 {
		l.rmQueue = append(l.rmQueue, listener)
		return nil
	}
	l.removeListener(listener)
	return nil
}

func (l *Logger) removeListener(listener Listener) {
	if i := slices.Index(l.listeners, listener); i >= 0 {
		l.listeners = slices.Delete(l.listeners, i, i+1)
	}
}

// notifyLevelChange delivers one event to a snapshot of the listeners.
func (l *Logger) notifyLevelChange(newLevel, oldLevel level.Level) error {
	l.fireDepth++
	defer func() {
		l.fireDepth--
		if l.fireDepth == 0 {
			l.flushRemovals()
		}
	}()

	e := LevelChangeEvent{Logger: l, NewLevel: newLevel, OldLevel: oldLevel}
	for _, listener := range slices.Clone(l.listeners) {
		if err := listener.OnLevelChange(e); err != nil {
			return fmt.Errorf("logger %q: levelchange listener: %w", l.name, err)
		}
	}
	return nil
}

func (l *Logger) flushRemovals() {
	queue := l.rmQueue
	l.rmQueue = nil
	for _, listener := range queue {
		l.removeListener(listener)
	}
}

// ListenerCount returns the number of registered listeners, including any
// whose removal is still queued.
func (l *Logger) ListenerCount() int {
	return len(l.listeners)
}
