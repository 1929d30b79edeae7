// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package port

import (
	"fmt"
	"sort"
)

// Registry maps (kind, operation) to a [Handler].
//
// Registration happens once at startup on a single goroutine. [NewRuntime]
// seals the registry; afterwards it is read-only and safe to share.
type Registry struct {
	kinds  map[string]map[string]Handler
	sealed bool
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{kinds: make(map[string]map[string]Handler)}
}

// Register merges handlers into the kind family.
//
// Registering an operation that already exists returns a [*ConflictError];
// in that case nothing from this call is registered.
func (r *Registry) Register(kind string, handlers map[string]Handler) error {
	if r.sealed {
		return ErrRegistrySealed
	}
	if kind == "" {
		return fmt.Errorf("%w: empty kind", ErrInvalidHandler)
	}
	existing := r.kinds[kind]
	for op, h := range handlers {
		if op == "" {
			return fmt.Errorf("%w: empty operation in %s", ErrInvalidHandler, kind)
		}
		if h == nil {
			return fmt.Errorf("%w: nil handler for %s/%s", ErrInvalidHandler, kind, op)
		}
		if _, taken := existing[op]; taken {
			return &ConflictError{Kind: kind, Operation: op}
		}
	}
	if existing == nil {
		existing = make(map[string]Handler, len(handlers))
		r.kinds[kind] = existing
	}
	for op, h := range handlers {
		existing[op] = h
	}
	return nil
}

// MustRegister is like Register but panics on error.
// It returns r so that families can be chained at startup.
func (r *Registry) MustRegister(kind string, handlers map[string]Handler) *Registry {
	if err := r.Register(kind, handlers); err != nil {
		panic(err)
	}
	return r
}

// Resolve returns the handler for (kind, operation).
func (r *Registry) Resolve(kind, operation string) (Handler, bool) {
	h, ok := r.kinds[kind][operation]
	return h, ok
}

// Kinds returns the registered kind names in sorted order.
func (r *Registry) Kinds() []string {
	names := make([]string, 0, len(r.kinds))
	for k := range r.kinds {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Operations returns the operation names of kind in sorted order.
func (r *Registry) Operations(kind string) []string {
	ops := r.kinds[kind]
	names := make([]string, 0, len(ops))
	for op := range ops {
		names = append(names, op)
	}
	sort.Strings(names)
	return names
}

// Sealed reports whether a Runtime has taken ownership of r.
func (r *Registry) Sealed() bool { return r.sealed }

func (r *Registry) seal() { r.sealed = true }
