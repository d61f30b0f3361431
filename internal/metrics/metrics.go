// Package metrics counts logger activity with Prometheus collectors.
//
// A Collector is wired into a Pool through its hooks: Track as the Pool's
// OnCreate callback, which also attaches Listener to every new logger, and
// Writer around the Pool's writer to count output per level.
package metrics

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/AbdelazizMoustafa10m/tealog/internal/logger"
	"github.com/AbdelazizMoustafa10m/tealog/internal/writer"
)

// Namespace prefixes every metric name.
const Namespace = "tealog"

// Collector holds the tealog metrics.
type Collector struct {
	LevelChanges *prometheus.CounterVec
	Writes       *prometheus.CounterVec
	Loggers      prometheus.Gauge

	listener logger.Listener
}

// NewCollector creates the metrics and registers them with reg. A nil reg
// leaves them unregistered.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		LevelChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "level_changes_total",
			Help:      "Level changes by logger and new level.",
		}, []string{"logger", "level"}),
		Writes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "writes_total",
			Help:      "Lines handed to the writer, by level.",
		}, []string{"level"}),
		Loggers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "loggers",
			Help:      "Loggers created in the pool.",
		}),
	}
	c.listener = logger.NewListener(c.onLevelChange)

	if reg != nil {
		for _, col := range c.Collectors() {
			if err := reg.Register(col); err != nil {
				return nil, fmt.Errorf("registering metrics: %w", err)
			}
		}
	}
	return c, nil
}

// Collectors returns the underlying Prometheus collectors.
func (c *Collector) Collectors() []prometheus.Collector {
	return []prometheus.Collector{c.LevelChanges, c.Writes, c.Loggers}
}

// Listener returns the levelchange listener that feeds LevelChanges. The
// same value is returned on every call, so it can also be removed again.
func (c *Collector) Listener() logger.Listener {
	return c.listener
}

func (c *Collector) onLevelChange(e logger.LevelChangeEvent) error {
	c.LevelChanges.WithLabelValues(e.Logger.Name(), e.NewLevel.String()).Inc()
	return nil
}

// Track counts l and attaches the levelchange listener. Pass it to
// logger.WithOnCreate.
func (c *Collector) Track(l *logger.Logger) {
	c.Loggers.Inc()
	// The listener is comparable, so this cannot fail.
	_ = l.AddEventListener(logger.EventLevelChange, c.listener)
}

// Writer wraps w so that every line is counted under its level.
func (c *Collector) Writer(w writer.Writer) writer.Writer {
	return &countingWriter{next: w, writes: c.Writes}
}

type countingWriter struct {
	next   writer.Writer
	writes *prometheus.CounterVec
}

func (w *countingWriter) Log(args ...any) {
	w.writes.WithLabelValues("debug").Inc()
	w.next.Log(args...)
}

func (w *countingWriter) Info(args ...any) {
	w.writes.WithLabelValues("info").Inc()
	w.next.Info(args...)
}

func (w *countingWriter) Warn(args ...any) {
	w.writes.WithLabelValues("warn").Inc()
	w.next.Warn(args...)
}

func (w *countingWriter) Error(args ...any) {
	w.writes.WithLabelValues("error").Inc()
	w.next.Error(args...)
}

func (w *countingWriter) ColoredArgsForName(name string) []any {
	return w.next.ColoredArgsForName(name)
}

// Validate delegates to the wrapped writer.
func (w *countingWriter) Validate() error {
	return writer.Validate(w.next)
}

// WriteText gathers g and writes it in the Prometheus text exposition
// format.
func WriteText(out io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}

	enc := expfmt.NewEncoder(out, expfmt.FmtText)
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("encoding %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
