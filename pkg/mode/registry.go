package mode

import (
	"sort"
	"sync"

	"github.com/orangejack9christian/madness-engine/internal/enginerrors"
)

// Factory constructs a fresh Mode instance. Registry hands out a new
// instance per lookup rather than sharing one across simulation runs,
// so a mode with per-run state (InitializeSimState) never leaks state
// between concurrent Monte Carlo runs.
type Factory func() Mode

// Registry is a process-wide catalog of mode factories. The zero value
// is not usable; construct with NewRegistry.
type Registry struct {
	mu       sync.RWMutex
	frozen   bool
	factories map[string]Factory
}

// NewRegistry returns an empty, unfrozen registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory under id. Registering a duplicate id, or
// registering after Freeze, is an error — modes are meant to be
// declared once at process startup, never reshuffled mid-run.
func (r *Registry) Register(id string, factory Factory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.frozen {
		return enginerrors.RegistryFrozen(id)
	}
	if _, exists := r.factories[id]; exists {
		return enginerrors.DuplicateModeRegistration(id)
	}
	r.factories[id] = factory
	return nil
}

// Freeze permanently forbids further registration. Idempotent.
func (r *Registry) Freeze() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frozen = true
}

// Get returns a fresh Mode instance for id. The error message lists
// every currently registered id, since a lookup miss is almost always
// a typo the caller wants to see the alternatives for.
func (r *Registry) Get(id string) (Mode, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	factory, ok := r.factories[id]
	if !ok {
		return nil, enginerrors.UnknownMode(id, r.idsLocked())
	}
	return factory(), nil
}

// IDs returns every registered mode id in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.idsLocked()
}

func (r *Registry) idsLocked() []string {
	ids := make([]string, 0, len(r.factories))
	for id := range r.factories {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the process-wide registry, lazily built and frozen
// on first access with every builtin mode registered. Callers that
// need a custom or test-only registry should use NewRegistry directly
// instead.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry()
		if err := RegisterBuiltins(defaultRegistry); err != nil {
			// Builtin registration failing indicates a programming
			// error (duplicate builtin id), not a runtime condition
			// callers can recover from.
			panic(err)
		}
		if err := RegisterPresets(defaultRegistry); err != nil {
			// Same reasoning as above: a malformed bundled YAML
			// document is a build-time defect, not something a
			// caller of Default() can do anything about.
			panic(err)
		}
		defaultRegistry.Freeze()
	})
	return defaultRegistry
}
