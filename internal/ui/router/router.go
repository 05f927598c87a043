// Package router sets up HTTP routes for the UI server.
package router

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	explorerFeature "github.com/leapstack-labs/snowpark-explorer/internal/ui/features/explorer"
	"github.com/leapstack-labs/snowpark-explorer/internal/ui/notifier"
	"github.com/leapstack-labs/snowpark-explorer/internal/ui/resources"
)

// SetupRoutes configures all routes for the UI server.
func SetupRoutes(
	router chi.Router,
	loader explorerFeature.Loader,
	meta explorerFeature.Meta,
	sessionStore sessions.Store,
	notify *notifier.Notifier,
	logger *slog.Logger,
) error {
	// Static assets
	router.Handle("/static/*", resources.Handler())

	return explorerFeature.SetupRoutes(router, loader, meta, sessionStore, notify, logger)
}
