package llm

import (
	"context"
	"errors"
	"sync"
)

// MockResponse is a canned response for the MockProvider.
type MockResponse struct {
	Text  string
	Usage Usage
	Err   error
}

// MockProvider is a deterministic Provider for tests and dry runs.
// It returns canned responses in FIFO order and records all requests.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	Calls     []Request
}

// ErrMockExhausted is returned once every canned response was consumed.
var ErrMockExhausted = errors.New("llm: mock provider has no responses queued")

func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	if len(m.responses) == 0 {
		return nil, ErrMockExhausted
	}

	resp := m.responses[0]
	m.responses = m.responses[1:]

	if resp.Err != nil {
		return nil, resp.Err
	}
	if resp.Text == "" {
		return nil, ErrEmptyResponse
	}

	return &Response{
		Text:  resp.Text,
		Usage: resp.Usage,
		Model: "mock",
	}, nil
}

func (m *MockProvider) ModelID() string {
	return "mock"
}

// CallCount returns the number of Generate calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// dryRunReplies answer each pipeline purpose with a fixed, well-formed reply.
var dryRunReplies = map[string]string{
	"summarize": "Dry run summary: this article was not sent to a model.",
	"classify":  "YES",
	"generate": `{"question_text":"Which service provides a fully managed message queue?",` +
		`"options":["Amazon SQS","Amazon EBS","AWS KMS","Amazon Route 53"],"correct_option_index":1,` +
		`"explanation_correct":"Amazon SQS is a managed message queue.",` +
		`"explanation_others":"EBS is block storage, KMS manages keys and Route 53 is DNS."}`,
}

// DryRunProvider answers without calling a model, choosing the reply by the
// purpose label on the context. It backs the "mock" provider setting so a
// whole run can be exercised against real Slack and storage.
type DryRunProvider struct{}

func NewDryRunProvider() *DryRunProvider {
	return &DryRunProvider{}
}

func (DryRunProvider) Generate(ctx context.Context, _ Request) (*Response, error) {
	text, ok := dryRunReplies[PurposeFrom(ctx)]
	if !ok {
		text = "dry run"
	}
	return &Response{Text: text, Model: "dry-run"}, nil
}

func (DryRunProvider) ModelID() string {
	return "dry-run"
}
