package notify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/slack-go/slack"
)

var errNoResponseURL = errors.New("no response_url in interaction")

// Responder answers interactions through their one-shot callback URL.
type Responder struct {
	client *http.Client
}

func NewResponder(timeout time.Duration) *Responder {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Responder{client: &http.Client{Timeout: timeout}}
}

// Respond posts an ephemeral reply, shown only to the clicking user, that
// leaves the original message in place. text is the notification fallback.
func (r *Responder) Respond(ctx context.Context, responseURL, text string, blocks []slack.Block) error {
	if responseURL == "" {
		return errNoResponseURL
	}
	msg := &slack.WebhookMessage{
		ResponseType:    slack.ResponseTypeEphemeral,
		ReplaceOriginal: false,
		Text:            text,
		Blocks:          &slack.Blocks{BlockSet: blocks},
	}
	if err := slack.PostWebhookCustomHTTPContext(ctx, responseURL, r.client, msg); err != nil {
		return fmt.Errorf("posting interaction reply: %w", err)
	}
	return nil
}
