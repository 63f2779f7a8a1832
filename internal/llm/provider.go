// Package llm is the single request/response contract to the inference
// service used for summaries, relevance checks and quiz generation.
package llm

import "context"

// Provider sends role-tagged messages to a model and returns generated text.
// Transport and service errors are returned as the SDK reported them; no
// provider retries.
type Provider interface {
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the model.
type Request struct {
	// Messages is the ordered conversation. A leading assistant message
	// primes the model's voice.
	Messages []Message

	// MaxTokens caps the length of the generated text.
	MaxTokens int
}

type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Response holds the model output.
type Response struct {
	Text  string
	Usage Usage
	Model string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// UserPrompt is a single-message request.
func UserPrompt(prompt string, maxTokens int) Request {
	return Request{
		Messages:  []Message{{Role: RoleUser, Content: prompt}},
		MaxTokens: maxTokens,
	}
}
