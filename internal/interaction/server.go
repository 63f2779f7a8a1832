package interaction

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pders01/feedquiz/internal/debuglog"
)

const maxBodyBytes = 1 << 20

// Server accepts Slack interaction callbacks over HTTP. Each request is
// acknowledged at once and graded on its own goroutine.
type Server struct {
	handler *Handler
	srv     *http.Server
	wg      sync.WaitGroup
}

func NewServer(addr string, handler *Handler) *Server {
	s := &Server{handler: handler}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /slack/interactions", s.handleInteraction)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, "ok")
	})
	mux.Handle("GET /metrics", promhttp.Handler())

	s.srv = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler exposes the routes for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

func (s *Server) handleInteraction(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		debuglog.Warnf("reading interaction body: %v", err)
	}
	env := Envelope{Body: string(body)}
	ctx := context.WithoutCancel(r.Context())

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.handler.Handle(ctx, env)
	}()

	w.WriteHeader(http.StatusOK)
}

// ListenAndServe blocks until the server stops. It returns nil after a
// clean Shutdown.
func (s *Server) ListenAndServe() error {
	debuglog.Infof("interaction server listening on %s", s.srv.Addr)
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight grading.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.srv.Shutdown(ctx)

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		if err == nil {
			err = ctx.Err()
		}
	}
	return err
}

// Wait blocks until every background handler has finished.
func (s *Server) Wait() {
	s.wg.Wait()
}
