package search

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pders01/feedquiz/internal/storage"
)

func question(id, text, url string, options ...string) *storage.QuizQuestion {
	q := storage.NewQuizQuestion(url, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	q.ID = id
	q.QuestionText = text
	q.Options = options
	q.CorrectOptionIndex = 1
	q.ExplanationCorrect = "Because it fits."
	q.ExplanationOthers = "The others do not."
	return q
}

func seededIndex(t *testing.T) *QuestionIndex {
	t.Helper()
	idx, err := NewMemIndex()
	require.NoError(t, err)
	t.Cleanup(func() { idx.Close() })

	require.NoError(t, idx.Add(question("q1",
		"Which service decouples producers from consumers with a managed queue?",
		"https://aws.amazon.com/blogs/aws/sqs-fair-queues/",
		"Amazon SQS", "Amazon EBS", "AWS KMS", "Amazon ECR")))
	require.NoError(t, idx.Add(question("q2",
		"Which storage class minimizes cost for archives retrieved once a year?",
		"https://aws.amazon.com/blogs/aws/glacier-deep-archive/",
		"S3 Standard", "S3 Glacier Deep Archive", "EFS Standard", "EBS gp3")))
	return idx
}

func TestQuestionIndex_Search(t *testing.T) {
	idx := seededIndex(t)

	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"question text", "managed queue", "q1"},
		{"option text", "glacier", "q2"},
		{"prefix", "archiv", "q2"},
		{"url", "sqs-fair-queues", "q1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := idx.Search(tt.query, 5)
			require.NoError(t, err)
			require.NotEmpty(t, res)
			assert.Equal(t, tt.want, res[0].ID)
		})
	}
}

func TestQuestionIndex_ResultFields(t *testing.T) {
	idx := seededIndex(t)

	res, err := idx.Search("queue", 0)
	require.NoError(t, err)
	require.NotEmpty(t, res)
	assert.Equal(t, "q1", res[0].ID)
	assert.Contains(t, res[0].QuestionText, "managed queue")
	assert.Equal(t, "https://aws.amazon.com/blogs/aws/sqs-fair-queues/", res[0].ArticleURL)
	assert.Greater(t, res[0].Score, 0.0)
}

func TestQuestionIndex_ShortQuery(t *testing.T) {
	idx := seededIndex(t)

	for _, q := range []string{"", " ", "a"} {
		res, err := idx.Search(q, 10)
		require.NoError(t, err)
		assert.Empty(t, res)
	}
}

func TestQuestionIndex_AddNil(t *testing.T) {
	idx := seededIndex(t)
	assert.ErrorIs(t, idx.Add(nil), storage.ErrNilQuestion)
}

func TestOpenIndex_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "questions.bleve")

	idx, err := OpenIndex(path)
	require.NoError(t, err)
	require.NoError(t, idx.Add(question("q1", "Which database is serverless and key-value?",
		"https://aws.amazon.com/blogs/database/dynamodb/", "DynamoDB", "RDS", "Redshift", "Neptune")))
	require.NoError(t, idx.Close())

	fi, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, fi.IsDir())

	idx, err = OpenIndex(path)
	require.NoError(t, err)
	defer idx.Close()

	n, err := idx.DocCount()
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	res, err := idx.Search("dynamodb", 10)
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "q1", res[0].ID)
}
