package resilience

import (
	"sort"
	"sync"

	coreport "github.com/payflow-labs/payflow/internal/domain/port/core"
)

// Registry hands out one shared breaker per external service name. All
// callers targeting the same service within a process share breaker state.
type Registry struct {
	clock     coreport.TimeProvider
	defaults  Settings
	overrides map[string]Settings
	observers []Observer

	mu       sync.Mutex
	breakers map[string]*Breaker
}

// NewRegistry creates a registry. Per-service settings in overrides take
// precedence over the defaults.
func NewRegistry(clock coreport.TimeProvider, defaults Settings, overrides map[string]Settings, observers ...Observer) *Registry {
	return &Registry{
		clock:     clock,
		defaults:  defaults,
		overrides: overrides,
		observers: observers,
		breakers:  make(map[string]*Breaker),
	}
}

// Get returns the breaker for a service, creating it on first use
func (r *Registry) Get(service string) *Breaker {
	r.mu.Lock()
	defer r.mu.Unlock()

	if b, ok := r.breakers[service]; ok {
		return b
	}

	settings := r.defaults
	if s, ok := r.overrides[service]; ok {
		settings = s
	}

	b := NewBreaker(service, settings, r.clock, r.observers...)
	r.breakers[service] = b
	return b
}

// Snapshots returns a stable-ordered view of all known breakers
func (r *Registry) Snapshots() []Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	snapshots := make([]Snapshot, 0, len(r.breakers))
	for _, b := range r.breakers {
		snapshots = append(snapshots, b.Snapshot())
	}
	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].Service < snapshots[j].Service
	})
	return snapshots
}
