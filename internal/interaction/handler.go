// Package interaction grades quiz answers delivered by Slack button clicks.
package interaction

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/slack-go/slack"

	"github.com/pders01/feedquiz/internal/debuglog"
	"github.com/pders01/feedquiz/internal/metrics"
	"github.com/pders01/feedquiz/internal/notify"
	"github.com/pders01/feedquiz/internal/storage"
)

const (
	msgMalformed = "Sorry, that answer could not be read. Please try another question."
	msgNotFound  = "This question is no longer available."
	msgError     = "Sorry, your answer could not be checked right now. Please try again later."
)

// Envelope is the raw inbound request body as delivered by the transport.
type Envelope struct {
	Body            string
	IsBase64Encoded bool
}

// Ack is the synchronous reply. It is always a 200 with an empty body; the
// user-visible result goes through the callback URL.
type Ack struct {
	StatusCode int
	Body       string
}

func ack() Ack {
	return Ack{StatusCode: http.StatusOK}
}

type Responder interface {
	Respond(ctx context.Context, responseURL, text string, blocks []slack.Block) error
}

type Handler struct {
	store     storage.Store
	responder Responder
	formatter *notify.Formatter
}

func NewHandler(store storage.Store, responder Responder, formatter *notify.Formatter) *Handler {
	return &Handler{store: store, responder: responder, formatter: formatter}
}

var (
	errMissingPayload = errors.New("missing payload")
	errMalformedValue = errors.New("malformed action value")
)

// Handle processes one interaction. Every path, including a panic, ends in
// the same acknowledgement. Failures after the payload is decoded are also
// reported to the user through the callback URL.
func (h *Handler) Handle(ctx context.Context, env Envelope) (result Ack) {
	var cb *slack.InteractionCallback
	defer func() {
		if r := recover(); r != nil {
			debuglog.Errorf("interaction handler panic: %v", r)
			metrics.RecordInteraction("error")
			if cb != nil {
				h.reply(ctx, cb.ResponseURL, msgError, h.formatter.Notice(msgError))
			}
			result = ack()
		}
	}()

	cb, err := decodeEnvelope(env)
	if err != nil {
		debuglog.Warnf("interaction not decoded: %v", err)
		metrics.RecordInteraction("error")
		return ack()
	}

	outcome, err := h.handle(ctx, cb)
	if err != nil {
		debuglog.Warnf("interaction not graded: %v", err)
	}
	metrics.RecordInteraction(outcome)
	return ack()
}

func (h *Handler) handle(ctx context.Context, cb *slack.InteractionCallback) (string, error) {
	if cb.Type != slack.InteractionTypeBlockActions {
		debuglog.Debugf("ignoring interaction of type %q", cb.Type)
		return "ignored", nil
	}

	value, ok := firstActionValue(cb)
	if !ok {
		h.reply(ctx, cb.ResponseURL, msgMalformed, h.formatter.Notice(msgMalformed))
		return "malformed", errMalformedValue
	}

	id, selected, err := DecodeValue(value)
	if err != nil {
		h.reply(ctx, cb.ResponseURL, msgMalformed, h.formatter.Notice(msgMalformed))
		return "malformed", err
	}

	log := debuglog.WithFields(map[string]interface{}{
		"question_id": id,
		"selected":    selected,
		"user":        cb.User.ID,
	})

	q, found, err := h.store.Get(ctx, id)
	if err != nil {
		h.reply(ctx, cb.ResponseURL, msgError, h.formatter.Notice(msgError))
		return "error", fmt.Errorf("looking up question %s: %w", id, err)
	}
	if !found {
		log.Infof("question not found")
		h.reply(ctx, cb.ResponseURL, msgNotFound, h.formatter.Notice(msgNotFound))
		return "not_found", nil
	}

	graded := Grade(q, selected)
	text := "Incorrect"
	label := "incorrect"
	if graded.Correct {
		text = "Correct!"
		label = "correct"
	}
	log.Infof("answer graded %s", label)
	h.reply(ctx, cb.ResponseURL, text, h.formatter.Result(graded.Correct, graded.Explanation))
	return label, nil
}

// reply logs callback failures; they never change the acknowledgement.
func (h *Handler) reply(ctx context.Context, responseURL, text string, blocks []slack.Block) {
	if err := h.responder.Respond(ctx, responseURL, text, blocks); err != nil {
		debuglog.Warnf("interaction reply failed: %v", err)
	}
}

func decodeEnvelope(env Envelope) (*slack.InteractionCallback, error) {
	body := env.Body
	if env.IsBase64Encoded {
		raw, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return nil, fmt.Errorf("decoding base64 body: %w", err)
		}
		body = string(raw)
	}

	form, err := url.ParseQuery(body)
	if err != nil {
		return nil, fmt.Errorf("parsing form body: %w", err)
	}
	payload := form.Get("payload")
	if payload == "" {
		return nil, errMissingPayload
	}

	var cb slack.InteractionCallback
	if err := json.Unmarshal([]byte(payload), &cb); err != nil {
		return nil, fmt.Errorf("decoding payload: %w", err)
	}
	return &cb, nil
}

func firstActionValue(cb *slack.InteractionCallback) (string, bool) {
	if len(cb.ActionCallback.BlockActions) > 0 {
		return cb.ActionCallback.BlockActions[0].Value, true
	}
	if len(cb.ActionCallback.AttachmentActions) > 0 {
		return cb.ActionCallback.AttachmentActions[0].Value, true
	}
	return "", false
}

// DecodeValue splits a button value "{id}:{n}". It requires exactly one
// colon, a non-empty id and an integer n.
func DecodeValue(value string) (string, int, error) {
	parts := strings.Split(value, ":")
	if len(parts) != 2 || parts[0] == "" {
		return "", 0, fmt.Errorf("%w: %q", errMalformedValue, value)
	}
	n, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", 0, fmt.Errorf("%w: %q", errMalformedValue, value)
	}
	return parts[0], n, nil
}
