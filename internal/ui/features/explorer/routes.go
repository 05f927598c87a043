package explorer

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"github.com/leapstack-labs/snowpark-explorer/internal/ui/notifier"
)

// SetupRoutes registers explorer routes on the router.
func SetupRoutes(
	router chi.Router,
	loader Loader,
	meta Meta,
	sessionStore sessions.Store,
	notify *notifier.Notifier,
	logger *slog.Logger,
) error {
	handlers := NewHandlers(loader, meta, sessionStore, notify).WithLogger(logger)

	router.Get("/", handlers.Page)
	router.Get("/updates", handlers.Updates)

	router.Route("/api/explorer", func(r chi.Router) {
		r.Get("/content", handlers.ContentSSE) // Reload both groups
		r.Post("/refresh", handlers.Refresh)   // Reload for every open page
		r.Post("/tab/{tab}", handlers.SelectTab)
	})

	return nil
}
