// internal/validation/registry.go
//
// Validator registry.
//
// Context
// -------
// A Registry maps FieldKey to an ordered chain of ValidatorFunc.  It is
// built once during startup through Register / WithValidators and then
// handed to Middleware, which takes a private snapshot.  From that point
// the snapshot is read-only shared state, so request goroutines read it
// without locking.
//
// Ordering
// --------
//   • Within a chain, validators run in registration order.
//   • Across keys, the dispatcher walks keys in the order each key was
//     first registered.  WithValidators registers map entries in sorted
//     (source, name) order so its result does not depend on map iteration.
//
// Notes
// -----
// • A Registry is not safe for concurrent Register calls.  Populate it from
//   one goroutine before serving traffic.
// • Oxford commas, two spaces after periods.

package validation

import (
	"sort"
)

// Registry owns the validator chains.  The zero value is not usable;
// construct with NewRegistry.
type Registry struct {
	order  []FieldKey
	chains map[FieldKey][]ValidatorFunc
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{chains: make(map[FieldKey][]ValidatorFunc)}
}

// Register appends fn to the chain for key, creating the chain on first use.
// Registering the same key again adds to the chain and never replaces it.
// A nil fn is a programming error and panics.
func (r *Registry) Register(key FieldKey, fn ValidatorFunc) {
	if fn == nil {
		panic("validation.Register: nil validator for " + key.String())
	}
	chain, ok := r.chains[key]
	if !ok {
		r.order = append(r.order, key)
	}
	r.chains[key] = append(chain, fn)
}

// WithValidators registers one validator per key and returns r for
// builder-style setup.  Entries compose with earlier registrations on the
// same key.
func (r *Registry) WithValidators(m map[FieldKey]ValidatorFunc) *Registry {
	keys := make([]FieldKey, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Source != keys[j].Source {
			return keys[i].Source < keys[j].Source
		}
		return keys[i].Name < keys[j].Name
	})
	for _, k := range keys {
		r.Register(k, m[k])
	}
	return r
}

// Lookup returns the chain for key, or nil when nothing is registered.  The
// returned slice must not be modified.
func (r *Registry) Lookup(key FieldKey) []ValidatorFunc {
	return r.chains[key]
}

// Keys returns every registered key in first-registration order.
func (r *Registry) Keys() []FieldKey {
	out := make([]FieldKey, len(r.order))
	copy(out, r.order)
	return out
}

// Len reports the number of distinct keys.
func (r *Registry) Len() int { return len(r.order) }

// snapshot copies keys and chains so the installed middleware is insulated
// from later Register calls on r.
func (r *Registry) snapshot() *Registry {
	s := &Registry{
		order:  r.Keys(),
		chains: make(map[FieldKey][]ValidatorFunc, len(r.chains)),
	}
	for k, chain := range r.chains {
		c := make([]ValidatorFunc, len(chain))
		copy(c, chain)
		s.chains[k] = c
	}
	return s
}
