package pipeline

import (
	"context"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"
)

// LambdaResponse mirrors the shape the scheduled function has always
// returned.
type LambdaResponse struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

// LambdaHandler adapts Run to a scheduled EventBridge invocation. The
// status is always 200; failures are described in the body.
func LambdaHandler(p *Pipeline, loc *time.Location) func(context.Context, events.CloudWatchEvent) (LambdaResponse, error) {
	return func(ctx context.Context, _ events.CloudWatchEvent) (LambdaResponse, error) {
		res := p.Run(ctx)
		return LambdaResponse{
			StatusCode: http.StatusOK,
			Body:       res.Summary(loc),
		}, nil
	}
}
