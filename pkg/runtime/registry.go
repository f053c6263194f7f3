package runtime

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	traits "github.com/goliatone/go-traits"
)

// OperationRegistry stores a type's static operations keyed by name.
// Installing an existing name overwrites the prior binding, matching the
// engine's last-write-wins install contract.
type OperationRegistry struct {
	mu         sync.RWMutex
	operations map[string]traits.Operation
}

// NewOperationRegistry constructs an empty registry.
func NewOperationRegistry() *OperationRegistry {
	return &OperationRegistry{
		operations: make(map[string]traits.Operation),
	}
}

// Install binds op under name, replacing any previous binding.
func (r *OperationRegistry) Install(name string, op traits.Operation) {
	if op == nil || name == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.operations == nil {
		r.operations = make(map[string]traits.Operation)
	}
	r.operations[strings.ToLower(name)] = op
}

// Lookup returns the operation bound under name.
func (r *OperationRegistry) Lookup(name string) (traits.Operation, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	op, ok := r.operations[strings.ToLower(name)]
	return op, ok
}

// Call executes the operation bound under name.
func (r *OperationRegistry) Call(name string, args ...any) (any, error) {
	op, ok := r.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("runtime: operation %q not installed", name)
	}
	return op(args...)
}

// Clone returns a shallow copy of the registry.
func (r *OperationRegistry) Clone() *OperationRegistry {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	clone := &OperationRegistry{
		operations: make(map[string]traits.Operation, len(r.operations)),
	}
	for name, op := range r.operations {
		clone.operations[name] = op
	}
	return clone
}

// Names returns installed operation names sorted alphabetically.
func (r *OperationRegistry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.operations))
	for name := range r.operations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
