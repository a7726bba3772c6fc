package strategy

import (
	"strconv"
	"strings"
	"sync"

	"cosmossdk.io/errors"

	"github.com/openamm/poolgov/internal/types"
)

// Factory builds a strategy instance from the argument portion of a
// reference string ("fixed:500" -> kind "fixed", arg "500").
type Factory func(arg string) (FeeStrategy, error)

// Registry resolves opaque strategy reference strings into strategy
// instances. References play the role the source system gave to contract
// addresses: an admin names a strategy, the engine looks it up.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry returns a registry with the built-in strategy kinds installed.
func NewRegistry() *Registry {
	r := &Registry{factories: make(map[string]Factory)}
	r.MustInstall("fixed", func(arg string) (FeeStrategy, error) {
		fee, err := strconv.ParseUint(arg, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(types.ErrUnknownStrategy, "fixed strategy needs a numeric fee, got %q", arg)
		}
		return NewFixedFee(fee), nil
	})
	return r
}

// MustInstall registers a strategy kind. It panics on a duplicate kind,
// which is a programming error at wiring time.
func (r *Registry) MustInstall(kind string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[kind]; exists {
		panic("strategy kind already installed: " + kind)
	}
	r.factories[kind] = f
}

// Resolve parses a reference of the form "kind" or "kind:arg" and builds the
// strategy it names.
func (r *Registry) Resolve(ref string) (FeeStrategy, error) {
	kind, arg := ref, ""
	if idx := strings.IndexByte(ref, ':'); idx >= 0 {
		kind, arg = ref[:idx], ref[idx+1:]
	}

	r.mu.RLock()
	factory, exists := r.factories[kind]
	r.mu.RUnlock()
	if !exists {
		return nil, errors.Wrapf(types.ErrUnknownStrategy, "no strategy kind %q", kind)
	}
	return factory(arg)
}
