// Package functions holds the closed set of reduction kinds the rolling and
// summarize engines can apply to a window of values. Function names resolve
// against a registry; an unknown name is a specification error at plan time,
// never a silent passthrough.
package functions

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrSpec marks an invalid specification: unknown function names, bad
// parameters, malformed window specs. Raised before any computation starts.
var ErrSpec = errors.New("invalid specification")

// Kind identifies a registered reduction.
type Kind string

const (
	Mean     Kind = "mean"
	Sum      Kind = "sum"
	Count    Kind = "count"
	Min      Kind = "min"
	Max      Kind = "max"
	Median   Kind = "median"
	Std      Kind = "std"
	Var      Kind = "var"
	Quantile Kind = "quantile"
	Skew     Kind = "skew"
	Kurt     Kind = "kurt"
	First    Kind = "first"
	Last     Kind = "last"
	Range    Kind = "range"
	Corr     Kind = "corr"
	Cov      Kind = "cov"
)

// Reducer reduces one window of values to a single number. NaN cells in the
// window are skipped; a window with no usable values reduces to NaN.
// Implementations must be safe for concurrent use, groups run in parallel.
type Reducer interface {
	Name() string
	Kind() Kind
	Reduce(values []float64) (float64, error)
}

// PairReducer consumes two aligned series, such as a rolling correlation
// between the unit's column and a second column.
type PairReducer interface {
	Reducer
	// Other returns the name of the second column.
	Other() string
	ReducePair(a, b []float64) (float64, error)
}

type entry struct {
	defaults Params
	build    func(Params) (Reducer, error)
}

// Registry maps kinds to reducer factories and their default parameters.
type Registry struct {
	mu      sync.RWMutex
	entries map[Kind]*entry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[Kind]*entry)}
}

// Register adds a reduction kind. Registering an existing kind is an error.
func (r *Registry) Register(kind Kind, defaults Params, build func(Params) (Reducer, error)) error {
	if kind == "" {
		return fmt.Errorf("%w: empty function kind", ErrSpec)
	}
	if build == nil {
		return fmt.Errorf("%w: kind %q has no factory", ErrSpec, kind)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[kind]; exists {
		return fmt.Errorf("%w: kind %q already registered", ErrSpec, kind)
	}
	r.entries[kind] = &entry{defaults: defaults, build: build}
	return nil
}

// Unregister removes a kind. Unknown kinds are ignored.
func (r *Registry) Unregister(kind Kind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, kind)
}

// KindOf resolves a function name against the registry.
func (r *Registry) KindOf(name string) (Kind, error) {
	r.mu.RLock()
	_, ok := r.entries[Kind(name)]
	r.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("%w: unknown rolling function %q (available: %v)", ErrSpec, name, r.Kinds())
	}
	return Kind(name), nil
}

// New builds a reducer with its default parameters.
func (r *Registry) New(kind Kind) (Reducer, error) {
	return r.NewWithParams(kind, nil)
}

// NewWithParams builds a reducer with overrides layered over the kind's
// defaults. The merge is closed: a key outside the defaults is an error and
// never introduces a new parameter.
func (r *Registry) NewWithParams(kind Kind, overrides Params) (Reducer, error) {
	r.mu.RLock()
	e, ok := r.entries[kind]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: unknown rolling function %q (available: %v)", ErrSpec, kind, r.Kinds())
	}
	merged, err := mergeParams(kind, e.defaults, overrides)
	if err != nil {
		return nil, err
	}
	return e.build(merged)
}

// Kinds returns the registered kinds in sorted order.
func (r *Registry) Kinds() []Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Kind, 0, len(r.entries))
	for k := range r.entries {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry the package-level helpers use.
func Default() *Registry {
	return defaultRegistry
}

// Register adds a kind to the default registry.
func Register(kind Kind, defaults Params, build func(Params) (Reducer, error)) error {
	return defaultRegistry.Register(kind, defaults, build)
}

// KindOf resolves a name against the default registry.
func KindOf(name string) (Kind, error) {
	return defaultRegistry.KindOf(name)
}

// New builds a reducer from the default registry with default parameters.
func New(kind Kind) (Reducer, error) {
	return defaultRegistry.New(kind)
}

// NewWithParams builds a reducer from the default registry with overrides.
func NewWithParams(kind Kind, overrides Params) (Reducer, error) {
	return defaultRegistry.NewWithParams(kind, overrides)
}

// Kinds lists the default registry's kinds in sorted order.
func Kinds() []Kind {
	return defaultRegistry.Kinds()
}
