// Package level defines the five ordered severity levels that gate a
// logger's output methods.
//
// A Level is a small integer. The five named constants are the only valid
// values, so comparing two levels with == is an identity check and ordering
// operators compare ordinals:
//
//	level.Debug < level.Info < level.Warn < level.Error < level.None
//
// Levels render as their lowercase name, which is also the representation
// used for persisted entries.
package level

import (
	"errors"
	"fmt"
)

// ErrInvalidLevel is returned when a raw value does not match any of the
// five recognized levels.
var ErrInvalidLevel = errors.New("invalid level")

// Level is a logging severity threshold.
type Level uint8

const (
	// Debug enables every output method.
	Debug Level = iota
	// Info enables Info, Warn and Error.
	Info
	// Warn enables Warn and Error. It is the default level of a new logger.
	Warn
	// Error enables only Error.
	Error
	// None silences the logger.
	None
)

// Default is the level a logger starts with when nothing was persisted.
const Default = Warn

var names = [...]string{"debug", "info", "warn", "error", "none"}

// All returns the five levels in ascending order.
func All() []Level {
	return []Level{Debug, Info, Warn, Error, None}
}

// Valid reports whether l is one of the five defined levels.
func (l Level) Valid() bool {
	return l <= None
}

// Ordinal returns the numeric value of l (0 for Debug through 4 for None).
func (l Level) Ordinal() int {
	return int(l)
}

// String returns the lowercase name of l.
func (l Level) String() string {
	if l.Valid() {
		return names[l]
	}
	return fmt.Sprintf("level(%d)", uint8(l))
}

// MarshalText implements encoding.TextMarshaler.
func (l Level) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLevel, uint8(l))
	}
	return []byte(names[l]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. It accepts the same
// lowercase names as Parse.
func (l *Level) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// Parse returns the level named s. Only the exact lowercase names are
// recognized.
func Parse(s string) (Level, error) {
	switch s {
	case "debug":
		return Debug, nil
	case "info":
		return Info, nil
	case "warn":
		return Warn, nil
	case "error":
		return Error, nil
	case "none":
		return None, nil
	}
	return Default, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
}

// Of converts a raw value into a Level. It accepts a Level, any integer in
// the range 0..4, or one of the lowercase level names. Anything else yields
// ErrInvalidLevel.
func Of(raw any) (Level, error) {
	var n int64
	switch v := raw.(type) {
	case Level:
		if v.Valid() {
			return v, nil
		}
		return Default, fmt.Errorf("%w: %d", ErrInvalidLevel, uint8(v))
	case string:
		return Parse(v)
	case int:
		n = int64(v)
	case int8:
		n = int64(v)
	case int16:
		n = int64(v)
	case int32:
		n = int64(v)
	case int64:
		n = v
	case uint:
		n = int64(v)
	case uint8:
		n = int64(v)
	case uint16:
		n = int64(v)
	case uint32:
		n = int64(v)
	case uint64:
		if v > uint64(None) {
			return Default, fmt.Errorf("%w: %d", ErrInvalidLevel, v)
		}
		n = int64(v)
	default:
		return Default, fmt.Errorf("%w: %v (%T)", ErrInvalidLevel, raw, raw)
	}

	if n < 0 || n > int64(None) {
		return Default, fmt.Errorf("%w: %d", ErrInvalidLevel, n)
	}
	return Level(n), nil
}

// IsLevel reports whether x is a Level holding one of the five defined
// values. Raw integers and strings are not levels.
func IsLevel(x any) bool {
	l, ok := x.(Level)
	return ok && l.Valid()
}
