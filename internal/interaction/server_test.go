package interaction

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServer_AcknowledgesAndGradesInBackground(t *testing.T) {
	h, _, responder := newTestHandler(t)
	srv := NewServer(":0", h)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/slack/interactions", "application/x-www-form-urlencoded",
		strings.NewReader(blockActionBody(t, "q-1:3")))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, body)

	srv.Wait()
	require.Len(t, responder.replies, 1)
	assert.Equal(t, "Correct!", responder.replies[0].text)
}

func TestServer_GarbageStillAcknowledged(t *testing.T) {
	h, _, responder := newTestHandler(t)
	srv := NewServer(":0", h)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/slack/interactions", "text/plain", strings.NewReader("not a form"))
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	srv.Wait()
	assert.Empty(t, responder.replies)
}

func TestServer_HealthAndMetrics(t *testing.T) {
	h, _, _ := newTestHandler(t)
	ts := httptest.NewServer(NewServer(":0", h).Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	data, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(data), "go_goroutines")

	resp, err = http.Get(ts.URL + "/slack/interactions")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestServer_Shutdown(t *testing.T) {
	h, _, _ := newTestHandler(t)
	srv := NewServer("127.0.0.1:0", h)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	time.Sleep(50 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))
	assert.NoError(t, <-errCh)
}

func TestLambdaHandler(t *testing.T) {
	h, _, responder := newTestHandler(t)

	resp, err := LambdaHandler(h)(context.Background(), events.APIGatewayProxyRequest{
		Body: blockActionBody(t, "q-1:1"),
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, resp.Body)
	require.Len(t, responder.replies, 1)
	assert.Equal(t, "Incorrect", responder.replies[0].text)
}
