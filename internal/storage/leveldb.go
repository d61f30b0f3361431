package storage

import (
	"errors"
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"
	ldberr "github.com/syndtr/goleveldb/leveldb/errors"
	ldbs "github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/AbdelazizMoustafa10m/tealog/internal/logging"
)

var _ Store = (*LevelDB)(nil)

// LevelDB is a Store backed by a goleveldb database.
type LevelDB struct {
	db *leveldb.DB
}

// OpenLevelDBInMemory returns a LevelDB store on in-memory storage.
func OpenLevelDBInMemory() (*LevelDB, error) {
	db, err := leveldb.Open(ldbs.NewMemStorage(), nil)
	if err != nil {
		return nil, err
	}
	return &LevelDB{db: db}, nil
}

// OpenLevelDB opens or creates the database directory at path. A corrupted
// database is recovered once before giving up.
func OpenLevelDB(path string) (*LevelDB, error) {
	logger := logging.New("leveldb")

	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		if !ldberr.IsCorrupted(err) {
			return nil, fmt.Errorf("opening %s: %w", path, err)
		}

		logger.Warn("level store open failed, attempting recovery", "path", path, "err", err)
		db, err = leveldb.RecoverFile(path, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: recovering %s: %v", ErrCorrupt, path, err)
		}
		logger.Warn("level store recovered", "path", path)
	}

	return &LevelDB{db: db}, nil
}

// Get implements Store.
func (s *LevelDB) Get(key string) (string, bool, error) {
	data, err := s.db.Get([]byte(key), nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return "", false, nil
		}
		if errors.Is(err, leveldb.ErrClosed) {
			return "", false, ErrClosed
		}
		return "", false, err
	}
	return string(data), true, nil
}

// Set implements Store.
func (s *LevelDB) Set(key, value string) error {
	if err := s.db.Put([]byte(key), []byte(value), nil); err != nil {
		if errors.Is(err, leveldb.ErrClosed) {
			return ErrClosed
		}
		return err
	}
	return nil
}

// Remove implements Store.
func (s *LevelDB) Remove(key string) error {
	if err := s.db.Delete([]byte(key), nil); err != nil {
		if errors.Is(err, leveldb.ErrClosed) {
			return ErrClosed
		}
		return err
	}
	return nil
}

// Keys implements Store. LevelDB iterates in byte order, which is the
// ascending order Keys promises.
func (s *LevelDB) Keys() ([]string, error) {
	iter := s.db.NewIterator(nil, nil)
	defer iter.Release()

	var keys []string
	for iter.Next() {
		keys = append(keys, string(iter.Key()))
	}
	if err := iter.Error(); err != nil {
		if errors.Is(err, leveldb.ErrClosed) {
			return nil, ErrClosed
		}
		return nil, err
	}
	return keys, nil
}

// Close implements Store.
func (s *LevelDB) Close() error {
	return s.db.Close()
}
