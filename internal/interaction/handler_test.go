package interaction

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/url"
	"testing"

	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pders01/feedquiz/internal/notify"
	"github.com/pders01/feedquiz/internal/storage"
)

const testResponseURL = "https://hooks.slack.com/actions/T000/1/abc"

type memStore struct {
	questions map[string]*storage.QuizQuestion
	getErr    error
	panicOn   string
}

func (m *memStore) Put(_ context.Context, q *storage.QuizQuestion) (string, error) {
	m.questions[q.ID] = q
	return q.ID, nil
}

func (m *memStore) Get(_ context.Context, id string) (*storage.QuizQuestion, bool, error) {
	if id == m.panicOn {
		panic("store exploded")
	}
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	q, ok := m.questions[id]
	return q, ok, nil
}

func (m *memStore) Close() error { return nil }

type reply struct {
	url    string
	text   string
	blocks []slack.Block
}

type recordingResponder struct {
	replies []reply
	err     error
}

func (r *recordingResponder) Respond(_ context.Context, responseURL, text string, blocks []slack.Block) error {
	r.replies = append(r.replies, reply{url: responseURL, text: text, blocks: blocks})
	return r.err
}

func newTestHandler(t *testing.T) (*Handler, *memStore, *recordingResponder) {
	t.Helper()
	store := &memStore{questions: map[string]*storage.QuizQuestion{
		"q-1": {
			ID:                 "q-1",
			QuestionText:       "Which service queues messages?",
			Options:            []string{"EBS", "KMS", "SQS", "ECR"},
			CorrectOptionIndex: 3,
			ExplanationCorrect: "SQS is the queue.",
			ExplanationOthers:  "The others are not queues.",
		},
	}}
	responder := &recordingResponder{}
	formatter, err := notify.NewFormatter("")
	require.NoError(t, err)
	return NewHandler(store, responder, formatter), store, responder
}

func blockActionBody(t *testing.T, value string) string {
	t.Helper()
	payload := map[string]any{
		"type":         "block_actions",
		"user":         map[string]any{"id": "U123"},
		"response_url": testResponseURL,
		"actions": []map[string]any{
			{
				"type":      "button",
				"action_id": "quiz_answer_1",
				"block_id":  "quiz_answers:q-1",
				"value":     value,
			},
		},
	}
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	return url.Values{"payload": {string(data)}}.Encode()
}

func sectionText(t *testing.T, blocks []slack.Block) string {
	t.Helper()
	require.NotEmpty(t, blocks)
	return blocks[0].(*slack.SectionBlock).Text.Text
}

func TestHandle_Grading(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		wantText string
		wantBody string
	}{
		{name: "correct", value: "q-1:3", wantText: "Correct!", wantBody: "✅ *Correct!*\n\nSQS is the queue."},
		{name: "incorrect", value: "q-1:2", wantText: "Incorrect", wantBody: "❌ *Incorrect...*\n\nThe others are not queues."},
		{name: "zero based answer is incorrect", value: "q-1:0", wantText: "Incorrect", wantBody: "❌ *Incorrect...*\n\nThe others are not queues."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _, responder := newTestHandler(t)

			a := h.Handle(context.Background(), Envelope{Body: blockActionBody(t, tt.value)})

			assert.Equal(t, Ack{StatusCode: 200}, a)
			require.Len(t, responder.replies, 1)
			assert.Equal(t, testResponseURL, responder.replies[0].url)
			assert.Equal(t, tt.wantText, responder.replies[0].text)
			assert.Equal(t, tt.wantBody, sectionText(t, responder.replies[0].blocks))
		})
	}
}

func TestHandle_Base64Body(t *testing.T) {
	h, _, responder := newTestHandler(t)
	body := base64.StdEncoding.EncodeToString([]byte(blockActionBody(t, "q-1:3")))

	a := h.Handle(context.Background(), Envelope{Body: body, IsBase64Encoded: true})

	assert.Equal(t, 200, a.StatusCode)
	require.Len(t, responder.replies, 1)
	assert.Equal(t, "Correct!", responder.replies[0].text)
}

func TestHandle_AlwaysAcknowledges(t *testing.T) {
	tests := []struct {
		name        string
		env         Envelope
		setup       func(*memStore, *recordingResponder)
		wantReplies int
		wantText    string
	}{
		{name: "empty body", env: Envelope{}},
		{name: "missing payload", env: Envelope{Body: "token=abc"}},
		{name: "invalid base64", env: Envelope{Body: "%%%", IsBase64Encoded: true}},
		{name: "payload not json", env: Envelope{Body: url.Values{"payload": {"{nope"}}.Encode()}},
		{
			name: "other interaction type",
			env:  Envelope{Body: url.Values{"payload": {`{"type":"view_submission"}`}}.Encode()},
		},
		{
			name:        "value without colon",
			env:         Envelope{Body: blockActionBody(t, "q-1")},
			wantReplies: 1,
			wantText:    msgMalformed,
		},
		{
			name:        "non numeric index",
			env:         Envelope{Body: blockActionBody(t, "q-1:two")},
			wantReplies: 1,
			wantText:    msgMalformed,
		},
		{
			name:        "unknown question",
			env:         Envelope{Body: blockActionBody(t, "missing:1")},
			wantReplies: 1,
			wantText:    msgNotFound,
		},
		{
			name:        "store error",
			env:         Envelope{Body: blockActionBody(t, "q-1:1")},
			setup:       func(s *memStore, _ *recordingResponder) { s.getErr = errors.New("dynamodb throttled") },
			wantReplies: 1,
			wantText:    msgError,
		},
		{
			name:        "callback failure",
			env:         Envelope{Body: blockActionBody(t, "q-1:1")},
			setup:       func(_ *memStore, r *recordingResponder) { r.err = errors.New("expired_url") },
			wantReplies: 1,
			wantText:    "Incorrect",
		},
		{
			name:        "panic mid processing",
			env:         Envelope{Body: blockActionBody(t, "boom:1")},
			setup:       func(s *memStore, _ *recordingResponder) { s.panicOn = "boom" },
			wantReplies: 1,
			wantText:    msgError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, store, responder := newTestHandler(t)
			if tt.setup != nil {
				tt.setup(store, responder)
			}

			var a Ack
			require.NotPanics(t, func() { a = h.Handle(context.Background(), tt.env) })

			assert.Equal(t, Ack{StatusCode: 200, Body: ""}, a)
			require.Len(t, responder.replies, tt.wantReplies)
			if tt.wantReplies > 0 {
				assert.Equal(t, tt.wantText, responder.replies[0].text)
			}
		})
	}
}

func TestHandle_StoreErrorRepliesToCallback(t *testing.T) {
	h, store, responder := newTestHandler(t)
	store.getErr = errors.New("dynamodb throttled")

	a := h.Handle(context.Background(), Envelope{Body: blockActionBody(t, "q-1:3")})

	assert.Equal(t, Ack{StatusCode: 200}, a)
	require.Len(t, responder.replies, 1)
	assert.Equal(t, testResponseURL, responder.replies[0].url)
	assert.Equal(t, msgError, sectionText(t, responder.replies[0].blocks))
}

func TestHandle_AttachmentActionFallback(t *testing.T) {
	h, _, responder := newTestHandler(t)
	payload := `{"type":"block_actions","response_url":"` + testResponseURL + `","actions":[{"name":"answer","value":"q-1:3"}]}`

	h.Handle(context.Background(), Envelope{Body: url.Values{"payload": {payload}}.Encode()})

	require.Len(t, responder.replies, 1)
	assert.Equal(t, "Correct!", responder.replies[0].text)
}

func TestDecodeValue(t *testing.T) {
	tests := []struct {
		value   string
		id      string
		n       int
		wantErr bool
	}{
		{value: "abc:1", id: "abc", n: 1},
		{value: "6f1c2d3e-aaaa-4bbb-8ccc-123456789abc:4", id: "6f1c2d3e-aaaa-4bbb-8ccc-123456789abc", n: 4},
		{value: "abc", wantErr: true},
		{value: "abc:1:2", wantErr: true},
		{value: ":1", wantErr: true},
		{value: "abc:", wantErr: true},
		{value: "abc:x", wantErr: true},
		{value: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			id, n, err := DecodeValue(tt.value)
			if tt.wantErr {
				assert.ErrorIs(t, err, errMalformedValue)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.id, id)
			assert.Equal(t, tt.n, n)
		})
	}
}
