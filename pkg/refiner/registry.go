package refiner

import (
	"context"
	"sync"
)

// Entry is one registered refiner.
type Entry struct {
	Refiner     Introspector
	RefinerType string
	Resource    string
}

func (e Entry) matches(refinerType, resource string) bool {
	return (refinerType == "" || e.RefinerType == refinerType) &&
		(resource == "" || e.Resource == resource)
}

// Registry keeps the refiners created implicitly during one request so the
// caller can read their resolved state afterwards. It has no expiry: create
// one per request (see WithRegistry) or Reset it between work units.
type Registry struct {
	mu      sync.Mutex
	entries []Entry
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Push appends ref under its own type and the optional resource name.
func (r *Registry) Push(ref Introspector, resource string) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, Entry{
		Refiner:     ref,
		RefinerType: ref.Type(),
		Resource:    resource,
	})
	return r
}

// Shift removes and returns the first refiner matching both filters.
// An empty filter matches anything.
func (r *Registry) Shift(refinerType, resource string) (Introspector, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, e := range r.entries {
		if e.matches(refinerType, resource) {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return e.Refiner, true
		}
	}
	return nil, false
}

// Pop removes and returns the last refiner matching both filters.
func (r *Registry) Pop(refinerType, resource string) (Introspector, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := len(r.entries) - 1; i >= 0; i-- {
		if e := r.entries[i]; e.matches(refinerType, resource) {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return e.Refiner, true
		}
	}
	return nil, false
}

// All returns a copy of the entries in push order.
func (r *Registry) All() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = nil
}

type registryKey struct{}

// WithRegistry attaches r to ctx.
func WithRegistry(ctx context.Context, r *Registry) context.Context {
	return context.WithValue(ctx, registryKey{}, r)
}

// RegistryFromContext returns the registry attached to ctx, or nil.
func RegistryFromContext(ctx context.Context) *Registry {
	r, _ := ctx.Value(registryKey{}).(*Registry)
	return r
}
