package logger

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/go-multierror"

	"github.com/AbdelazizMoustafa10m/tealog/internal/level"
	"github.com/AbdelazizMoustafa10m/tealog/internal/logging"
	"github.com/AbdelazizMoustafa10m/tealog/internal/storage"
	"github.com/AbdelazizMoustafa10m/tealog/internal/writer"
)

// KeyPrefix namespaces persisted levels inside a store.
const KeyPrefix = "tea-logger-level:"

// Key returns the store key holding the persisted level of the named logger.
func Key(name string) string {
	return KeyPrefix + name
}

// Option configures a Pool.
type Option func(*Pool)

// WithStore persists level changes to s and restores them on first use of
// a name. Without a store levels live only in memory.
func WithStore(s storage.Store) Option {
	return func(p *Pool) {
		p.store = s
	}
}

// WithWriterRegistry shares r with the Pool instead of creating a fresh one.
func WithWriterRegistry(r *WriterRegistry) Option {
	return func(p *Pool) {
		if r != nil {
			p.writers = r
		}
	}
}

// WithWriter starts the Pool with w as its active writer.
func WithWriter(w writer.Writer) Option {
	return func(p *Pool) {
		p.writers = NewWriterRegistry(w)
	}
}

// WithLogger sets the diagnostic logger used for persistence failures.
func WithLogger(l *log.Logger) Option {
	return func(p *Pool) {
		if l != nil {
			p.diag = l
		}
	}
}

// WithOnCreate registers fn to run once for every logger the Pool creates,
// after its persisted level has been restored.
func WithOnCreate(fn func(*Logger)) Option {
	return func(p *Pool) {
		if fn != nil {
			p.onCreate = append(p.onCreate, fn)
		}
	}
}

// Pool hands out one Logger per name. Entries are never evicted. Like the
// loggers it owns, a Pool is mutated from a single goroutine.
type Pool struct {
	loggers map[string]*Logger
	order   []string

	store     storage.Store
	writers   *WriterRegistry
	diag      *log.Logger
	onCreate  []func(*Logger)
	persister Listener
}

// New creates an empty Pool.
func New(opts ...Option) *Pool {
	p := &Pool{
		loggers: make(map[string]*Logger),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.writers == nil {
		p.writers = NewWriterRegistry(nil)
	}
	if p.diag == nil {
		p.diag = logging.New("pool")
	}
	p.persister = NewListener(p.persist)
	return p
}

// GetByName returns the logger called name, creating it on first use. A
// new logger starts at its persisted level, or at level.Default when
// nothing usable is stored.
func (p *Pool) GetByName(name string) (*Logger, error) {
	if l, ok := p.loggers[name]; ok {
		return l, nil
	}
	if err := validateName(name); err != nil {
		return nil, err
	}

	l, err := newLogger(name, p.restore(name), p.writers)
	if err != nil {
		return nil, err
	}
	if p.store != nil {
		if err := l.AddEventListener(EventLevelChange, p.persister); err != nil {
			return nil, err
		}
	}

	p.loggers[name] = l
	p.order = append(p.order, name)
	for _, fn := range p.onCreate {
		fn(l)
	}
	return l, nil
}

// MustGet is like GetByName but panics on an invalid name.
func (p *Pool) MustGet(name string) *Logger {
	l, err := p.GetByName(name)
	if err != nil {
		panic(fmt.Sprintf("logger: MustGet(%q): %v", name, err))
	}
	return l
}

// GetAll returns every logger in creation order.
func (p *Pool) GetAll() []*Logger {
	all := make([]*Logger, 0, len(p.order))
	for _, name := range p.order {
		all = append(all, p.loggers[name])
	}
	return all
}

// Len returns the number of loggers in the Pool.
func (p *Pool) Len() int {
	return len(p.order)
}

// Store returns the Pool's store, or nil.
func (p *Pool) Store() storage.Store {
	return p.store
}

// Writer returns the active writer.
func (p *Pool) Writer() writer.Writer {
	return p.writers.Writer()
}

// SetWriter replaces the active writer and rebinds every logger to it.
func (p *Pool) SetWriter(w writer.Writer) error {
	return p.writers.SetWriter(w, p.GetAll())
}

// ClearStorage deletes every persisted level from the store. Loggers keep
// their current levels. Failures are logged, not returned.
func (p *Pool) ClearStorage() {
	if p.store == nil {
		return
	}

	keys, err := p.store.Keys()
	if err != nil {
		p.diag.Warn("listing persisted levels failed", "err", err)
		return
	}

	var result *multierror.Error
	removed := 0
	for _, key := range keys {
		if !strings.HasPrefix(key, KeyPrefix) {
			continue
		}
		if err := p.store.Remove(key); err != nil {
			result = multierror.Append(result, fmt.Errorf("removing %s: %w", key, err))
			continue
		}
		removed++
	}

	if err := result.ErrorOrNil(); err != nil {
		p.diag.Warn("clearing persisted levels failed", "removed", removed, "err", err)
		return
	}
	p.diag.Debug("cleared persisted levels", "removed", removed)
}

// Persisted returns the sorted names of loggers with a level in the store,
// whether or not they exist in the Pool yet.
func (p *Pool) Persisted() []string {
	if p.store == nil {
		return nil
	}

	keys, err := p.store.Keys()
	if err != nil {
		p.diag.Warn("listing persisted levels failed", "err", err)
		return nil
	}

	var names []string
	for _, key := range keys {
		if name, ok := strings.CutPrefix(key, KeyPrefix); ok && name != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// restore reads the persisted level for name. Anything missing or
// undecodable yields level.Default.
func (p *Pool) restore(name string) level.Level {
	if p.store == nil {
		return level.Default
	}

	raw, ok, err := p.store.Get(Key(name))
	if err != nil {
		p.diag.Debug("reading persisted level failed", "logger", name, "err", err)
		return level.Default
	}
	if !ok {
		return level.Default
	}

	lvl, err := level.Parse(raw)
	if err != nil {
		p.diag.Debug("ignoring persisted level", "logger", name, "value", raw, "err", err)
		return level.Default
	}
	p.diag.Debug("restored level", "logger", name, "level", lvl)
	return lvl
}

// persist stores the logger's current level, removing the key at the
// default level.
func (p *Pool) persist(e LevelChangeEvent) error {
	l := e.Logger
	key := Key(l.Name())

	var err error
	if cur := l.Level(); cur == level.Default {
		err = p.store.Remove(key)
	} else {
		err = p.store.Set(key, cur.String())
	}
	if err != nil {
		p.diag.Warn("persisting level failed", "logger", l.Name(), "err", err)
	}
	return nil
}
