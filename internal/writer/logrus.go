package writer

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Logrus routes logger output to a logrus logger.
type Logrus struct {
	l *logrus.Logger
}

// NewLogrus returns a Logrus writer on w (os.Stderr when nil) with full
// timestamps.
func NewLogrus(w io.Writer) *Logrus {
	if w == nil {
		w = os.Stderr
	}
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(logrus.DebugLevel)
	l.Formatter = &logrus.TextFormatter{
		FullTimestamp: true,
	}
	return &Logrus{l: l}
}

var _ Writer = (*Logrus)(nil)

// Log implements Writer.
func (w *Logrus) Log(args ...any) { w.l.Debugln(args...) }

// Info implements Writer.
func (w *Logrus) Info(args ...any) { w.l.Infoln(args...) }

// Warn implements Writer.
func (w *Logrus) Warn(args ...any) { w.l.Warnln(args...) }

// Error implements Writer.
func (w *Logrus) Error(args ...any) { w.l.Errorln(args...) }

// ColoredArgsForName returns "name:".
func (w *Logrus) ColoredArgsForName(name string) []any {
	return []any{name + ":"}
}
