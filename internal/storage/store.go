package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Store persists quiz questions keyed by id.
type Store interface {
	// Put writes q and returns its id, assigning one when q.ID is empty.
	Put(ctx context.Context, q *QuizQuestion) (string, error)

	// Get returns the question stored under id. A missing question is
	// reported as ok=false with a nil error.
	Get(ctx context.Context, id string) (q *QuizQuestion, ok bool, err error)

	Close() error
}

// Provisioner is implemented by backends that need one-time setup such as
// creating a table.
type Provisioner interface {
	Provision(ctx context.Context) error
}

var ErrNilQuestion = errors.New("storage: nil question")

// prepare validates q before a write and assigns an id when missing.
func prepare(q *QuizQuestion) error {
	if q == nil {
		return ErrNilQuestion
	}
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return nil
}
