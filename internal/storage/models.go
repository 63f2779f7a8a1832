package storage

import (
	"time"

	"github.com/google/uuid"
)

// QuizQuestion is a generated question as persisted. It is written once and
// never updated. CorrectOptionIndex is 1-based, matching the button labels.
type QuizQuestion struct {
	ID                 string    `json:"question_id" dynamodbav:"question_id"`
	ArticleURL         string    `json:"article_url" dynamodbav:"article_url"`
	CreatedAt          time.Time `json:"created_at" dynamodbav:"created_at"`
	QuestionText       string    `json:"question_text" dynamodbav:"question_text"`
	Options            []string  `json:"options" dynamodbav:"options"`
	CorrectOptionIndex int       `json:"correct_option_index" dynamodbav:"correct_option_index"`
	ExplanationCorrect string    `json:"explanation_correct" dynamodbav:"explanation_correct"`
	ExplanationOthers  string    `json:"explanation_others" dynamodbav:"explanation_others"`
}

// NewQuizQuestion returns a question with a fresh random id and a UTC
// creation time. The caller fills in the question content.
func NewQuizQuestion(articleURL string, now time.Time) *QuizQuestion {
	return &QuizQuestion{
		ID:         uuid.NewString(),
		ArticleURL: articleURL,
		CreatedAt:  now.UTC(),
	}
}

// CorrectOption returns the text of the correct option, or "" when the
// index is out of range.
func (q *QuizQuestion) CorrectOption() string {
	if q.CorrectOptionIndex < 1 || q.CorrectOptionIndex > len(q.Options) {
		return ""
	}
	return q.Options[q.CorrectOptionIndex-1]
}
