// internal/validation/rules/catalog.go
//
// Named rule catalog.
//
// Config files refer to validators by name ("number", "min_length", ...).
// Factories are registered here, usually from init(), and Apply turns a
// list of configured rules into Registry entries in file order.
//
// Built-ins
// ---------
//   number        IsNumber
//   bool          IsBool
//   min_length    MinLength(arg)
//   max_length    MaxLength(arg)
//   tag           Tag(arg), any go-playground/validator tag

package rules

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/yanizio/paramguard/internal/config"
	"github.com/yanizio/paramguard/internal/validation"
)

var (
	ErrUnknownRule = errors.New("rules: unknown rule")
	ErrBadArgument = errors.New("rules: bad argument")
)

// Factory builds a validator from the rule's argument string.
type Factory func(arg string) (validation.ValidatorFunc, error)

var (
	mu       sync.RWMutex
	registry = map[string]Factory{}
)

// Register adds or replaces the factory for name.
func Register(name string, f Factory) {
	mu.Lock()
	registry[name] = f
	mu.Unlock()
}

// Lookup returns the factory for name or nil.
func Lookup(name string) Factory {
	mu.RLock()
	defer mu.RUnlock()
	return registry[name]
}

// Names lists registered rule names, sorted.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(registry))
	for n := range registry {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Apply builds each configured rule and registers it on reg, in order.  It
// stops at the first rule that cannot be built; reg may then hold the
// rules that preceded it.
func Apply(reg *validation.Registry, list []config.Rule) error {
	for i, r := range list {
		src, err := validation.ParseSource(r.Source)
		if err != nil {
			return fmt.Errorf("rule %d: %w", i, err)
		}
		f := Lookup(r.Rule)
		if f == nil {
			return fmt.Errorf("rule %d: %w %q", i, ErrUnknownRule, r.Rule)
		}
		fn, err := f(r.Arg)
		if err != nil {
			return fmt.Errorf("rule %d (%s): %w", i, r.Rule, err)
		}
		reg.Register(validation.FieldKey{Source: src, Name: r.Name}, fn)
	}
	return nil
}

func init() {
	Register("number", func(string) (validation.ValidatorFunc, error) { return IsNumber, nil })
	Register("bool", func(string) (validation.ValidatorFunc, error) { return IsBool, nil })
	Register("min_length", lengthFactory(MinLength))
	Register("max_length", lengthFactory(MaxLength))
	Register("tag", Tag)
}

func lengthFactory(build func(int) validation.ValidatorFunc) Factory {
	return func(arg string) (validation.ValidatorFunc, error) {
		n, err := strconv.Atoi(arg)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: length %q", ErrBadArgument, arg)
		}
		return build(n), nil
	}
}
