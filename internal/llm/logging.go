package llm

import (
	"context"
	"time"

	"github.com/pders01/feedquiz/internal/debuglog"
	"github.com/pders01/feedquiz/internal/metrics"
)

// LoggingProvider is a decorator that logs every request and records its
// latency and token usage. Errors pass through untouched.
type LoggingProvider struct {
	inner Provider
}

func WithLogging(p Provider) Provider {
	return &LoggingProvider{inner: p}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	purpose := PurposeFrom(ctx)

	resp, err := l.inner.Generate(ctx, req)
	elapsed := time.Since(start)

	log := debuglog.WithFields(map[string]interface{}{
		"purpose":    purpose,
		"model":      l.inner.ModelID(),
		"max_tokens": req.MaxTokens,
		"latency_ms": elapsed.Milliseconds(),
	})

	var in, out int
	if resp != nil {
		in, out = resp.Usage.InputTokens, resp.Usage.OutputTokens
	}
	metrics.RecordLLM(purpose, elapsed, in, out, err == nil)

	if err != nil {
		log.Errorf("llm request failed: %v", err)
		return resp, err
	}
	log.With("input_tokens", in).With("output_tokens", out).Debugf("llm request completed")
	return resp, nil
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
