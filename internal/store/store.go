// Package store persists the command history in a bbolt database.
package store

import (
	"errors"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

// ErrNoMatchingCmd is returned when a command query has no result.
var ErrNoMatchingCmd = errors.New("store: no matching command")

const bucketCmd = "cmd"

// initDB holds the steps run on every open, keyed by description.
var initDB = map[string]func(tx *bolt.Tx) error{
	"initialize command history bucket": func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketCmd))
		return err
	},
}

// Cmd is an entry in the command history.
type Cmd struct {
	Text string
	Seq  int
}

// Store is the command history database.
type Store struct {
	db *bolt.DB
}

// Open opens or creates the database at path.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("store: opening %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for name, fn := range initDB {
			if err := fn(tx); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("store: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
