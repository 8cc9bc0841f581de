package uspec

import (
	"sort"
	"sync"

	"github.com/samber/lo"
	"github.com/samber/mo"
)

// The registry is the one process-wide, append-only index of named string
// constraints. Nothing registers itself implicitly; callers (typically a
// program's main) register the constraints they want discoverable by name,
// e.g. for CLI lookup or request-field validation.
var (
	regMu sync.RWMutex
	named = map[string]Constraint[string]{}
)

// Register adds a named constraint to the process-wide registry. Registering
// the same name twice is a programming error and panics.
func Register(name string, c Constraint[string]) {
	regMu.Lock()
	defer regMu.Unlock()
	_, dup := named[name]
	lo.Assertf(!dup, "uspec: constraint %q already registered", name)
	named[name] = c
}

// Lookup returns the constraint registered under name, if any.
func Lookup(name string) mo.Option[Constraint[string]] {
	regMu.RLock()
	defer regMu.RUnlock()
	c, ok := named[name]
	return lo.Ternary(ok, mo.Some(c), mo.None[Constraint[string]]())
}

// Names returns the sorted names of all registered constraints.
func Names() []string {
	regMu.RLock()
	defer regMu.RUnlock()
	names := lo.Keys(named)
	sort.Strings(names)
	return names
}
