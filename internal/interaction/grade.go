package interaction

import "github.com/pders01/feedquiz/internal/storage"

// Outcome is a graded answer.
type Outcome struct {
	Correct     bool
	Explanation string
}

// Grade compares a 1-based selection with the stored 1-based answer.
func Grade(q *storage.QuizQuestion, selected int) Outcome {
	if selected == q.CorrectOptionIndex {
		return Outcome{Correct: true, Explanation: q.ExplanationCorrect}
	}
	return Outcome{Correct: false, Explanation: q.ExplanationOthers}
}
