package search

import "github.com/pders01/feedquiz/internal/storage"

// Result is one question matching a query.
type Result struct {
	ID           string
	QuestionText string
	ArticleURL   string
	Score        float64
}

// Index is a full text archive of generated questions.
type Index interface {
	Add(q *storage.QuizQuestion) error
	Search(query string, limit int) ([]Result, error)
	DocCount() (int, error)
	Close() error
}
