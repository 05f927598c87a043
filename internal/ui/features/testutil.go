// Package features provides shared test utilities for UI feature tests.
package features

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"github.com/leapstack-labs/snowpark-explorer/internal/catalog"
	"github.com/leapstack-labs/snowpark-explorer/internal/session"
	"github.com/leapstack-labs/snowpark-explorer/internal/testutil"
	"github.com/leapstack-labs/snowpark-explorer/internal/testutil/fakewarehouse"
	"github.com/leapstack-labs/snowpark-explorer/internal/ui/notifier"
	"github.com/leapstack-labs/snowpark-explorer/pkg/core"
)

// TestFixture holds all dependencies needed for UI handler tests.
type TestFixture struct {
	Warehouse    *fakewarehouse.Warehouse
	Session      *session.Provider
	Explorer     *catalog.Explorer
	Notifier     *notifier.Notifier
	SessionStore *sessions.CookieStore
}

var fixtureSeq atomic.Int64

// SetupTestFixture creates a fake warehouse serving callables and an
// explorer connected to it.
func SetupTestFixture(t *testing.T, callables ...fakewarehouse.Callable) *TestFixture {
	t.Helper()
	return SetupTestFixtureWithPolicy(t, catalog.FailFast, callables...)
}

// SetupTestFixtureWithPolicy is SetupTestFixture with an explicit failure policy.
func SetupTestFixtureWithPolicy(t *testing.T, policy catalog.Policy, callables ...fakewarehouse.Callable) *TestFixture {
	t.Helper()

	logger := testutil.NewTestLogger(t)

	wh := fakewarehouse.NewWarehouse()
	for _, c := range callables {
		wh.Add(c)
	}
	adapterType := "ui-fixture-" + strings.ReplaceAll(t.Name(), "/", "-") + "-" + strconv.FormatInt(fixtureSeq.Add(1), 10)
	wh.Register(adapterType)

	provider := session.New(core.AdapterConfig{
		Type:      adapterType,
		Account:   "xy12345",
		Username:  "analyst",
		Password:  "secret",
		Role:      "SYSADMIN",
		Database:  fakewarehouse.Database,
		Warehouse: "COMPUTE_WH",
		Schema:    fakewarehouse.Schema,
	}, logger)
	t.Cleanup(func() {
		_ = provider.Close()
	})

	return &TestFixture{
		Warehouse:    wh,
		Session:      provider,
		Explorer:     catalog.NewExplorer(provider, fakewarehouse.Database, fakewarehouse.Schema, policy, logger),
		Notifier:     notifier.New(),
		SessionStore: NewTestSessionStore(),
	}
}

// RequestWithPathParam wraps a request with chi URL params.
func RequestWithPathParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// RequestWithTimeout wraps a request with a context timeout.
func RequestWithTimeout(t *testing.T, r *http.Request, timeout time.Duration) *http.Request {
	t.Helper()
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	t.Cleanup(cancel)
	return r.WithContext(ctx)
}

// NewTestSessionStore creates a session store for testing.
func NewTestSessionStore() *sessions.CookieStore {
	return sessions.NewCookieStore([]byte("test-secret-key-32-bytes-long!!"))
}

// Ptr returns a pointer to s.
func Ptr(s string) *string { return &s }
