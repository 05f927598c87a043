package explorer

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/leapstack-labs/snowpark-explorer/internal/present"
	"github.com/leapstack-labs/snowpark-explorer/internal/ui/notifier"
)

// SessionName is the cookie session holding per-browser UI state.
const SessionName = "snowpark-explorer"

const tabKey = "tab"

// Handlers provides HTTP handlers for the explorer feature.
type Handlers struct {
	loader       Loader
	meta         Meta
	sessionStore sessions.Store
	notifier     *notifier.Notifier
	logger       *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(loader Loader, meta Meta, sessionStore sessions.Store, notify *notifier.Notifier) *Handlers {
	return &Handlers{
		loader:       loader,
		meta:         meta,
		sessionStore: sessionStore,
		notifier:     notify,
		logger:       slog.Default(),
	}
}

// WithLogger sets the logger used for load failures.
func (h *Handlers) WithLogger(logger *slog.Logger) *Handlers {
	if logger != nil {
		h.logger = logger
	}
	return h
}

// Page renders the full dashboard. Every render reloads the catalog.
// A ?tab= query selects and remembers the active tab.
func (h *Handlers) Page(w http.ResponseWriter, r *http.Request) {
	active := h.activeTab(r)
	if q := r.URL.Query().Get(tabKey); q != "" {
		active = ParseTab(q)
		h.saveTab(w, r, active)
	}

	data := PageData{
		Title:   PageTitle,
		Active:  active,
		Content: h.load(r, Sort{}),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := Page(data).Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// ContentSSE reloads the catalog and patches the content area, ordered by
// the sort and desc signals.
func (h *Handlers) ContentSSE(w http.ResponseWriter, r *http.Request) {
	// Read signals BEFORE creating SSE (SSE consumes the request body)
	var sort Sort
	if err := datastar.ReadSignals(r, &sort); err != nil {
		h.logger.Warn("ignoring unreadable signals", slog.String("error", err.Error()))
		sort = Sort{}
	}

	sse := datastar.NewSSE(w, r)
	if err := sse.PatchElementTempl(Content(h.load(r, sort))); err != nil {
		_ = sse.ConsoleError(err)
	}
}

// Updates is the long-lived SSE endpoint of the dashboard page.
// It does not send initial state; that is rendered by Page.
func (h *Handlers) Updates(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	// Subscribe to updates
	updates := h.notifier.Subscribe()
	defer h.notifier.Unsubscribe(updates)

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-updates:
			if err := sse.PatchElementTempl(Content(h.load(r, Sort{}))); err != nil {
				_ = sse.ConsoleError(err)
				// Don't return - keep trying on next update
				continue
			}
			// The repaint is in listing order; clear the page's sort signals to match.
			_ = sse.MarshalAndPatchSignals(Sort{})
		}
	}
}

// Refresh asks every connected page to reload.
func (h *Handlers) Refresh(w http.ResponseWriter, _ *http.Request) {
	h.notifier.Broadcast()
	w.WriteHeader(http.StatusNoContent)
}

// SelectTab remembers the active tab for this browser.
func (h *Handlers) SelectTab(w http.ResponseWriter, r *http.Request) {
	h.saveTab(w, r, ParseTab(chi.URLParam(r, tabKey)))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) load(r *http.Request, sort Sort) ContentData {
	data := ContentData{Meta: h.meta, Sort: sort}
	results, err := h.loader.LoadAll(r.Context())
	if err != nil {
		h.logger.Error("failed to load callables", slog.String("error", err.Error()))
		data.Err = err
		return data
	}
	data.Groups = present.Groups(results)
	if sort.Column != "" {
		for i, g := range data.Groups {
			data.Groups[i] = g.SortBy(sort.Column, sort.Desc)
		}
	}
	return data
}

func (h *Handlers) activeTab(r *http.Request) Tab {
	sess, err := h.sessionStore.Get(r, SessionName)
	if err != nil {
		return TabFunctions
	}
	if s, ok := sess.Values[tabKey].(string); ok {
		return ParseTab(s)
	}
	return TabFunctions
}

func (h *Handlers) saveTab(w http.ResponseWriter, r *http.Request, tab Tab) {
	sess, err := h.sessionStore.Get(r, SessionName)
	if err != nil && sess == nil {
		return
	}
	sess.Values[tabKey] = string(tab)
	if err := sess.Save(r, w); err != nil {
		h.logger.Warn("failed to save session", slog.String("error", err.Error()))
	}
}
