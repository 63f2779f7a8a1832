package quiz

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pders01/feedquiz/internal/llm"
)

func TestSummarizer_Summarize(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: "  A short summary.\n"})

	summary, err := NewSummarizer(mock).Summarize(context.Background(), "full article")
	require.NoError(t, err)
	assert.Equal(t, "A short summary.", summary)

	req := mock.Calls[0]
	assert.Equal(t, 500, req.MaxTokens)
	require.Len(t, req.Messages, 2)
	assert.Equal(t, llm.RoleAssistant, req.Messages[0].Role)
	assert.Equal(t, llm.RoleUser, req.Messages[1].Role)
	assert.Contains(t, req.Messages[1].Content, "300 characters")
	assert.Contains(t, req.Messages[1].Content, "full article")
}

func TestSummarizer_Error(t *testing.T) {
	boom := errors.New("access denied")
	mock := llm.NewMockProvider(llm.MockResponse{Err: boom})

	_, err := NewSummarizer(mock).Summarize(context.Background(), "full article")
	assert.ErrorIs(t, err, boom)
}
