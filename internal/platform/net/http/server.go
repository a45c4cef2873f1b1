package http

import (
	"context"
	"errors"
	"net"
	stdhttp "net/http"
	"sync"
	"time"

	"workshopdex/internal/platform/config"
	perr "workshopdex/internal/platform/errors"
	"workshopdex/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

// Server is a thin wrapper over chi + stdlib http.Server
type Server struct {
	addr string
	mux  *chi.Mux
	srv  *stdhttp.Server

	mu    sync.Mutex
	bound string
}

// NewServer creates an http server listening on API_PORT (default :4000) under cfg's prefix.
// opts receive the *chi.Mux so callers can mount routes/mw
func NewServer(cfg config.Conf, opts ...func(*chi.Mux)) *Server {
	addr := cfg.MayAddr("API_PORT", ":4000")
	m := chi.NewRouter()
	m.NotFound(routeNotFound)
	for _, o := range opts {
		o(m)
	}
	return &Server{
		addr: addr,
		mux:  m,
		srv: &stdhttp.Server{
			Addr:              addr,
			Handler:           m,
			ReadHeaderTimeout: cfg.MayDuration("READ_HEADER_TIMEOUT", 10*time.Second),
			IdleTimeout:       cfg.MayDuration("IDLE_TIMEOUT", 60*time.Second),
		},
	}
}

// routeNotFound answers unknown paths with the JSON envelope instead of chi's text body
func routeNotFound(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	RespondError(w, r, perr.NotFoundf("no route for %s", r.URL.Path))
}

// Router returns a Router facade over the internal chi mux
func (s *Server) Router() Router {
	return AdaptChi(s.mux)
}

// Addr returns the configured address until Run binds, then the bound address
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.bound != "" {
		return s.bound
	}
	return s.addr
}

// Run listens and serves until ctx is cancelled or Shutdown is called.
// A clean shutdown returns nil
func (s *Server) Run(ctx context.Context) error {
	log := logger.Named("http")

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.bound = ln.Addr().String()
	s.mu.Unlock()
	log.Info().Str("addr", s.bound).Msg("http listening")

	drained := make(chan struct{})
	stop := context.AfterFunc(ctx, func() {
		defer close(drained)
		sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.srv.Shutdown(sctx); err != nil {
			log.Error().Err(err).Msg("http shutdown")
		}
	})

	err = s.srv.Serve(ln)
	if !stop() {
		// shutdown was triggered by ctx, let in-flight requests finish
		<-drained
	}
	if errors.Is(err, stdhttp.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown stops the server gracefully
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
