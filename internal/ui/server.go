// Package ui serves the Snowpark explorer dashboard.
package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"golang.org/x/sync/errgroup"

	explorerFeature "github.com/leapstack-labs/snowpark-explorer/internal/ui/features/explorer"
	"github.com/leapstack-labs/snowpark-explorer/internal/ui/notifier"
	"github.com/leapstack-labs/snowpark-explorer/internal/ui/router"
)

// Server is the dashboard HTTP server.
type Server struct {
	loader       explorerFeature.Loader
	meta         explorerFeature.Meta
	sessionStore *sessions.CookieStore
	host         string
	port         int
	logger       *slog.Logger
	notifier     *notifier.Notifier
}

// Config holds configuration for the UI server.
type Config struct {
	Explorer      explorerFeature.Loader
	Database      string
	Schema        string
	Host          string
	Port          int
	SessionSecret string
	Logger        *slog.Logger
}

// NewServer creates a new UI server instance. An empty session secret is
// replaced by a random one, so tab state does not survive restarts.
func NewServer(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	secret := cfg.SessionSecret
	if secret == "" {
		secret = uuid.NewString() + uuid.NewString()
		logger.Debug("no session secret configured, using a random one")
	}

	sessionStore := sessions.NewCookieStore([]byte(secret))
	sessionStore.MaxAge(86400 * 30) // 30 days
	sessionStore.Options.Path = "/"
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.SameSite = http.SameSiteLaxMode

	return &Server{
		loader:       cfg.Explorer,
		meta:         explorerFeature.Meta{Database: cfg.Database, Schema: cfg.Schema},
		sessionStore: sessionStore,
		host:         cfg.Host,
		port:         cfg.Port,
		logger:       logger,
		notifier:     notifier.New(),
	}
}

// Addr is the listen address.
func (s *Server) Addr() string {
	return net.JoinHostPort(s.host, strconv.Itoa(s.port))
}

// URL is the dashboard address shown to the user.
func (s *Server) URL() string {
	host := s.host
	if host == "" || host == "0.0.0.0" {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, strconv.Itoa(s.port))
}

// Handler builds the HTTP handler with middleware and routes.
func (s *Server) Handler() (http.Handler, error) {
	r := chi.NewMux()
	r.Use(
		middleware.Logger,
		middleware.Recoverer,
		middleware.Compress(5),
	)

	if err := router.SetupRoutes(r, s.loader, s.meta, s.sessionStore, s.notifier, s.logger); err != nil {
		return nil, fmt.Errorf("failed to setup routes: %w", err)
	}
	return r, nil
}

// Serve starts the UI server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.Addr())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.Addr(), err)
	}
	return s.ServeListener(ctx, ln)
}

// ServeListener serves on an existing listener until the context is cancelled.
func (s *Server) ServeListener(ctx context.Context, ln net.Listener) error {
	handler, err := s.Handler()
	if err != nil {
		_ = ln.Close()
		return err
	}

	s.logger.Info("starting UI server", "addr", s.URL())

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Handler: handler,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start HTTP server
	eg.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down UI server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}
