package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

var questionsBucket = []byte("questions")

// BoltStore keeps questions in a local bbolt file as JSON values. The file
// is opened for each operation, so the lock is held only while a read or
// write runs and separate processes can share one path.
type BoltStore struct {
	path    string
	timeout time.Duration
}

func NewBoltStore(dbPath string, timeout time.Duration) (*BoltStore, error) {
	if timeout <= 0 {
		timeout = 1 * time.Second
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	s := &BoltStore{path: dbPath, timeout: timeout}
	if err := s.Provision(context.Background()); err != nil {
		return nil, err
	}
	return s, nil
}

// withDB opens the database, runs fn and closes it again. Read-only opens
// take a shared lock.
func (s *BoltStore) withDB(readOnly bool, fn func(db *bolt.DB) error) error {
	db, err := bolt.Open(s.path, 0o600, &bolt.Options{Timeout: s.timeout, ReadOnly: readOnly})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	if err := fn(db); err != nil {
		db.Close()
		return err
	}
	return db.Close()
}

// Provision creates the questions bucket.
func (s *BoltStore) Provision(_ context.Context) error {
	return s.withDB(false, func(db *bolt.DB) error {
		err := db.Update(func(tx *bolt.Tx) error {
			_, err := tx.CreateBucketIfNotExists(questionsBucket)
			return err
		})
		if err != nil {
			return fmt.Errorf("creating buckets: %w", err)
		}
		return nil
	})
}

// Close is a no-op; no file handle outlives an operation.
func (s *BoltStore) Close() error {
	return nil
}

func (s *BoltStore) Put(_ context.Context, q *QuizQuestion) (string, error) {
	if err := prepare(q); err != nil {
		return "", err
	}

	data, err := json.Marshal(q)
	if err != nil {
		return "", fmt.Errorf("encoding question %s: %w", q.ID, err)
	}

	err = s.withDB(false, func(db *bolt.DB) error {
		return db.Update(func(tx *bolt.Tx) error {
			return tx.Bucket(questionsBucket).Put([]byte(q.ID), data)
		})
	})
	if err != nil {
		return "", fmt.Errorf("saving question %s: %w", q.ID, err)
	}
	return q.ID, nil
}

func (s *BoltStore) Get(_ context.Context, id string) (*QuizQuestion, bool, error) {
	var q *QuizQuestion
	err := s.withDB(true, func(db *bolt.DB) error {
		return db.View(func(tx *bolt.Tx) error {
			data := tx.Bucket(questionsBucket).Get([]byte(id))
			if data == nil {
				return nil
			}
			q = &QuizQuestion{}
			return json.Unmarshal(data, q)
		})
	})
	if err != nil {
		return nil, false, fmt.Errorf("loading question %s: %w", id, err)
	}
	return q, q != nil, nil
}

// Count returns the number of stored questions.
func (s *BoltStore) Count() (int, error) {
	var n int
	err := s.withDB(true, func(db *bolt.DB) error {
		return db.View(func(tx *bolt.Tx) error {
			n = tx.Bucket(questionsBucket).Stats().KeyN
			return nil
		})
	})
	return n, err
}
