package adapter

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/leapstack-labs/snowpark-explorer/pkg/core"
)

// Factory builds an unconnected adapter. A nil logger means discard.
type Factory func(*slog.Logger) Adapter

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Factory)
)

// normalize is the registry key for a target type: trimmed and lower-cased,
// so "Snowflake" from a config file finds the "snowflake" adapter.
func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Register makes a warehouse adapter available as target type name.
// The snowflake package registers itself from init; tests register fake
// warehouses under unique names. Registering a name again replaces the
// factory. Register panics on an empty name or a nil factory.
func Register(name string, factory Factory) {
	key := normalize(name)
	if key == "" {
		panic("adapter: Register called with an empty name")
	}
	if factory == nil {
		panic("adapter: Register called with a nil factory for " + key)
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[key] = factory
}

// Get retrieves the factory registered for a target type.
func Get(name string) (Factory, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := registry[normalize(name)]
	return f, ok
}

// NewAdapter builds the adapter for cfg.Type without connecting it. The
// session provider calls Connect with the same config afterwards.
func NewAdapter(cfg core.AdapterConfig, logger *slog.Logger) (Adapter, error) {
	if normalize(cfg.Type) == "" {
		return nil, fmt.Errorf("adapter type not specified")
	}

	factory, ok := Get(cfg.Type)
	if !ok {
		return nil, &UnknownAdapterError{
			Type:      cfg.Type,
			Available: ListAdapters(),
		}
	}
	return factory(logger), nil
}

// ListAdapters returns the registered target types, sorted.
func ListAdapters() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// IsRegistered reports whether a target type has an adapter.
func IsRegistered(name string) bool {
	_, ok := Get(name)
	return ok
}

// UnknownAdapterError is returned when target.type names no registered adapter.
type UnknownAdapterError struct {
	Type      string
	Available []string
}

func (e *UnknownAdapterError) Error() string {
	return fmt.Sprintf("unknown adapter type %q\nAvailable adapters: %s\nHint: Check your target.type in snowpark-explorer.yaml",
		e.Type, strings.Join(e.Available, ", "))
}
