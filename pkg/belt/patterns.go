package belt

import (
	"fmt"
	"maps"
	"regexp"
	"slices"

	"utilitybelt/internal/logging"
)

// PatternEmail is the registry name of the e-mail address pattern.
const PatternEmail = "email"

var builtinPatterns = map[string]string{
	PatternEmail: `^(([^<>()\[\]\\.,;:\s@"]+(\.[^<>()\[\]\\.,;:\s@"]+)*)|(".+"))@((\[[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\])|(([a-zA-Z\-0-9]+\.)+[a-zA-Z]{2,}))$`,
}

// Registry maps pattern names to compiled regular expressions. It is never
// mutated after construction, so lookups need no locking.
type Registry struct {
	patterns map[string]*regexp.Regexp
}

var defaultRegistry = mustRegistry()

func mustRegistry() *Registry {
	r, err := NewRegistry(nil)
	if err != nil {
		panic(err)
	}
	return r
}

// DefaultRegistry returns the registry holding the built-in patterns.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// NewRegistry returns a registry with the built-in patterns plus extra
// (name -> expression). An extra entry may replace a built-in one.
func NewRegistry(extra map[string]string) (*Registry, error) {
	r := &Registry{patterns: make(map[string]*regexp.Regexp, len(builtinPatterns)+len(extra))}
	for _, src := range []map[string]string{builtinPatterns, extra} {
		for _, name := range slices.Sorted(maps.Keys(src)) {
			re, err := regexp.Compile(src[name])
			if err != nil {
				return nil, fmt.Errorf("compile pattern %q: %w", name, err)
			}
			r.patterns[name] = re
		}
	}
	return r, nil
}

// Lookup returns the named pattern or an error wrapping ErrNotFound.
func (r *Registry) Lookup(name string) (*regexp.Regexp, error) {
	if r != nil {
		if re, ok := r.patterns[name]; ok {
			return re, nil
		}
	}
	return nil, fmt.Errorf("pattern %q: %w", name, ErrNotFound)
}

// Get returns the named pattern, or nil after logging a diagnostic when it
// is not registered. Callers must nil-check.
func (r *Registry) Get(name string) *regexp.Regexp {
	re, err := r.Lookup(name)
	if err != nil {
		logging.PatternWarn("The regular expression %s was not found", name)
		return nil
	}
	return re
}

// Test reports whether value matches the named pattern. A missing pattern
// fails closed.
func (r *Registry) Test(name, value string) bool {
	re := r.Get(name)
	if re == nil {
		return false
	}
	return re.MatchString(value)
}

// IsEmail reports whether value is an e-mail address.
func (r *Registry) IsEmail(value string) bool {
	return r.Test(PatternEmail, value)
}

// Names returns the registered pattern names in sorted order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(r.patterns))
}

// GetPattern looks name up in the default registry. See Registry.Get.
func GetPattern(name string) *regexp.Regexp {
	return defaultRegistry.Get(name)
}

// LookupPattern looks name up in the default registry. See Registry.Lookup.
func LookupPattern(name string) (*regexp.Regexp, error) {
	return defaultRegistry.Lookup(name)
}

// IsEmail reports whether value is an e-mail address.
func IsEmail(value string) bool {
	return defaultRegistry.IsEmail(value)
}
