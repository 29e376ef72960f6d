package refiner

import (
	"context"
	"strings"
	"sync"
)

// DefaultNamespace prefixes default refiner names.
const DefaultNamespace = `\App\Refiners`

// DefaultRefinerName returns the conventional refiner name for a resource:
// the namespace terminated by a backslash, the last segment of resource and
// the "Refiner" suffix. `\App\Models\Product` yields `\App\Refiners\ProductRefiner`.
func DefaultRefinerName(namespace, resource string) string {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	if !strings.HasSuffix(namespace, `\`) {
		namespace += `\`
	}

	base := resource
	if i := strings.LastIndexAny(base, `\/.`); i >= 0 {
		base = base[i+1:]
	}
	return namespace + base + "Refiner"
}

// Factory builds the default refiner of each resource from constructors
// registered at startup.
type Factory[Q any] struct {
	builder   Builder[Q]
	namespace string
	opts      []Option

	mu           sync.RWMutex
	constructors map[string]func() Definer[Q]
}

// NewFactory creates a factory whose refiners issue operations through b.
func NewFactory[Q any](b Builder[Q], namespace string, opts ...Option) *Factory[Q] {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &Factory[Q]{
		builder:      b,
		namespace:    namespace,
		opts:         opts,
		constructors: make(map[string]func() Definer[Q]),
	}
}

// Register sets the constructor of the default refiner of resource.
func (f *Factory[Q]) Register(resource string, constructor func() Definer[Q]) error {
	if resource == "" || constructor == nil {
		return invalidConfiguration("a default refiner needs a resource name and a constructor")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.constructors[resource] = constructor
	return nil
}

// Name returns the default refiner name of resource.
func (f *Factory[Q]) Name(resource string) string {
	return DefaultRefinerName(f.namespace, resource)
}

// For creates a new default refiner for resource.
func (f *Factory[Q]) For(resource string) (*Refiner[Q], error) {
	f.mu.RLock()
	constructor, ok := f.constructors[resource]
	f.mu.RUnlock()
	if !ok {
		return nil, notConfigured("no default refiner registered").
			WithDetail("resource", resource).
			WithDetail("refiner", f.Name(resource))
	}
	return New(f.builder, constructor(), f.opts...), nil
}

// Refine applies ref to q. When ref is nil the default refiner of resource
// is created and pushed to the registry found in ctx, so that the caller can
// retrieve it later. An explicit refiner is never registered.
func (f *Factory[Q]) Refine(ctx context.Context, q Q, resource string, ref *Refiner[Q], in Input) (Q, *Refiner[Q], error) {
	if ref == nil {
		var err error
		if ref, err = f.For(resource); err != nil {
			return q, nil, err
		}
		if reg := RegistryFromContext(ctx); reg != nil {
			reg.Push(ref, resource)
		}
	}

	q, err := ref.Apply(ctx, q, in)
	return q, ref, err
}
