// Package store provides the durable key-value layer for the kiosk: the
// medication ledger and the offline asset cache both live in one Badger
// database under the user's data directory.
package store

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	badger "github.com/dgraph-io/badger/v4"
)

// AppName is the application name used for data directories.
const AppName = "colette"

// ErrKeyNotFound is returned when a key is not present in the database.
var ErrKeyNotFound = errors.New("key not found")

// IsErrKeyNotFound reports whether err means the key was absent.
func IsErrKeyNotFound(err error) bool {
	return errors.Is(err, ErrKeyNotFound) || errors.Is(err, badger.ErrKeyNotFound)
}

// DB wraps a Badger database connection.
type DB struct {
	db *badger.DB
}

// Options configures the database connection.
type Options struct {
	// Path is the database directory. Empty string uses in-memory mode.
	Path string
	// InMemory forces in-memory mode regardless of Path.
	InMemory bool
}

// DefaultPath returns the default database path following the XDG spec.
func DefaultPath() string {
	return filepath.Join(xdg.DataHome, AppName, "db")
}

// Open opens or creates a database at the given path.
func Open(opts Options) (*DB, error) {
	var badgerOpts badger.Options

	if opts.InMemory || opts.Path == "" {
		badgerOpts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(opts.Path, 0755); err != nil {
			return nil, err
		}
		badgerOpts = badger.DefaultOptions(opts.Path)
	}

	// Reduce logging noise
	badgerOpts = badgerOpts.WithLoggingLevel(badger.ERROR)

	db, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, err
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// GetBytes retrieves raw bytes by key.
func (d *DB) GetBytes(key string) ([]byte, error) {
	var result []byte
	err := d.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrKeyNotFound
			}
			return err
		}

		return item.Value(func(val []byte) error {
			result = make([]byte, len(val))
			copy(result, val)
			return nil
		})
	})
	return result, err
}

// SetBytes stores raw bytes under the given key.
func (d *DB) SetBytes(key string, data []byte) error {
	return d.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

// Delete removes a key from the database.
func (d *DB) Delete(key string) error {
	return d.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
}

// ListByPrefix retrieves all keys with the given prefix.
func (d *DB) ListByPrefix(prefix string) ([]string, error) {
	var keys []string
	err := d.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefixBytes := []byte(prefix)
		for it.Seek(prefixBytes); it.ValidForPrefix(prefixBytes); it.Next() {
			item := it.Item()
			key := make([]byte, len(item.Key()))
			copy(key, item.Key())
			keys = append(keys, string(key))
		}
		return nil
	})
	return keys, err
}
