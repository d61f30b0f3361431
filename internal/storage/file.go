package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/spf13/afero"
)

var _ Store = (*File)(nil)

// OSFs returns the operating system filesystem.
func OSFs() afero.Fs {
	return afero.NewOsFs()
}

// File is a Store persisted as a single JSON object. The whole object is
// cached in memory and rewritten on every change through a temporary file
// and a rename.
type File struct {
	mtx    sync.Mutex
	fs     afero.Fs
	path   string
	values map[string]string
	closed bool
}

// OpenFile loads the JSON store at path on fs. A missing or empty file is
// an empty store; a file that is not a JSON object of strings yields
// ErrCorrupt.
func OpenFile(fs afero.Fs, path string) (*File, error) {
	f := &File{
		fs:     fs,
		path:   path,
		values: make(map[string]string),
	}

	data, err := afero.ReadFile(fs, path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return f, nil
	case err != nil:
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return f, nil
	}
	if err := json.Unmarshal(data, &f.values); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, path, err)
	}
	if f.values == nil {
		f.values = make(map[string]string)
	}
	return f, nil
}

// Path returns the location of the backing file.
func (f *File) Path() string {
	return f.path
}

// Get implements Store.
func (f *File) Get(key string) (string, bool, error) {
	f.mtx.Lock()
	defer f.mtx.Unlock()

	if f.closed {
		return "", false, ErrClosed
	}
	v, ok := f.values[key]
	return v, ok, nil
}

// Set implements Store.
func (f *File) Set(key, value string) error {
	f.mtx.Lock()
	defer f.mtx.Unlock()

	if f.closed {
		return ErrClosed
	}
	prev, had := f.values[key]
	if had && prev == value {
		return nil
	}
	f.values[key] = value
	if err := f.flush(); err != nil {
		if had {
			f.values[key] = prev
		} else {
			delete(f.values, key)
		}
		return err
	}
	return nil
}

// Remove implements Store.
func (f *File) Remove(key string) error {
	f.mtx.Lock()
	defer f.mtx.Unlock()

	if f.closed {
		return ErrClosed
	}
	prev, had := f.values[key]
	if !had {
		return nil
	}
	delete(f.values, key)
	if err := f.flush(); err != nil {
		f.values[key] = prev
		return err
	}
	return nil
}

// Keys implements Store.
func (f *File) Keys() ([]string, error) {
	f.mtx.Lock()
	defer f.mtx.Unlock()

	if f.closed {
		return nil, ErrClosed
	}
	keys := make([]string, 0, len(f.values))
	for k := range f.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// Close implements Store. Every change is already on disk, so Close only
// marks the store unusable.
func (f *File) Close() error {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	f.closed = true
	return nil
}

// flush writes the cached values to disk. Caller must hold f.mtx.
func (f *File) flush() error {
	if dir := filepath.Dir(f.path); dir != "." {
		if err := f.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}

	data, err := json.MarshalIndent(f.values, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", f.path, err)
	}
	data = append(data, '\n')

	tmp := f.path + ".tmp"
	if err := afero.WriteFile(f.fs, tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", tmp, err)
	}
	if err := f.fs.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replacing %s: %w", f.path, err)
	}
	return nil
}
