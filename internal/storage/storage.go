// Package storage provides the key/value backing stores that persist logger
// levels between sessions.
//
// A Store has the shape of a browser's localStorage: string keys, string
// values, and an enumerable key set. Three implementations are provided:
//
//   - Memory: process-local map, used by tests and as a scratch store.
//   - File: a JSON object on an afero filesystem.
//   - LevelDB: a goleveldb database, on disk or in memory.
//
// All stores are safe for concurrent use.
package storage

import (
	"errors"
	"fmt"
)

// ErrCorrupt is returned when persisted data cannot be decoded.
var ErrCorrupt = errors.New("storage corrupt")

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("storage closed")

// Store is a string key/value store.
type Store interface {
	// Get returns the value stored under key. The boolean is false when the
	// key is absent; that is not an error.
	Get(key string) (string, bool, error)
	// Set stores value under key, replacing any previous value.
	Set(key, value string) error
	// Remove deletes key. Removing an absent key is not an error.
	Remove(key string) error
	// Keys returns every stored key in ascending order.
	Keys() ([]string, error)
	// Close releases resources held by the store.
	Close() error
}

// Backend names a store implementation. It is the value of the [storage]
// backend key in tealog.toml.
type Backend string

const (
	// BackendNone disables persistence.
	BackendNone Backend = "none"
	// BackendMemory keeps levels for the life of the process only.
	BackendMemory Backend = "memory"
	// BackendFile keeps levels in a JSON file.
	BackendFile Backend = "file"
	// BackendLevelDB keeps levels in a LevelDB directory.
	BackendLevelDB Backend = "leveldb"
)

// Backends lists the recognized backends.
func Backends() []Backend {
	return []Backend{BackendNone, BackendMemory, BackendFile, BackendLevelDB}
}

// Open builds the store named by backend. BackendNone returns a nil Store
// and no error; callers treat a nil Store as "no persistence available".
// File and LevelDB stores require a path.
func Open(backend Backend, path string) (Store, error) {
	switch backend {
	case BackendNone, "":
		return nil, nil
	case BackendMemory:
		return NewMemory(), nil
	case BackendFile:
		if path == "" {
			return nil, fmt.Errorf("file storage: path must not be empty")
		}
		return OpenFile(OSFs(), path)
	case BackendLevelDB:
		if path == "" {
			return nil, fmt.Errorf("leveldb storage: path must not be empty")
		}
		return OpenLevelDB(path)
	}
	return nil, fmt.Errorf("unknown storage backend %q", backend)
}
