package interaction

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
)

// LambdaHandler adapts Handle to an API Gateway proxy integration. The
// reply is sent before returning, since a Lambda may be frozen after it
// responds.
func LambdaHandler(h *Handler) func(context.Context, events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		a := h.Handle(ctx, Envelope{
			Body:            req.Body,
			IsBase64Encoded: req.IsBase64Encoded,
		})
		return events.APIGatewayProxyResponse{
			StatusCode: a.StatusCode,
			Body:       a.Body,
		}, nil
	}
}
