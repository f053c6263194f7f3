package traits

import (
	"sort"
	"strings"
)

// reservedPrefix marks the naming convention kept for engine internals. User
// definitions must not start with it, so future control operations can be
// added without colliding with authored code.
const reservedPrefix = "trait_"

var engineControlNames = []string{
	"adopt",
	"apply",
	"install_static_operation",
	"invoke",
	"record_definition",
	"record_invocation",
	"seal",
}

// nameGuard rejects static-operation definitions that would shadow the
// engine's control surface. Matching is case-insensitive.
type nameGuard struct {
	names map[string]struct{}
}

func newNameGuard(extra []string) *nameGuard {
	guard := &nameGuard{names: make(map[string]struct{}, len(engineControlNames)+len(extra))}
	for _, name := range engineControlNames {
		guard.names[name] = struct{}{}
	}
	for _, name := range extra {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}
		guard.names[key] = struct{}{}
	}
	return guard
}

func (g *nameGuard) check(trait, name string) error {
	key := strings.ToLower(name)
	if strings.HasPrefix(key, reservedPrefix) {
		return &ReservedNameError{Trait: trait, Name: name}
	}
	if _, reserved := g.names[key]; reserved {
		return &ReservedNameError{Trait: trait, Name: name}
	}
	return nil
}

func (g *nameGuard) reservedNames() []string {
	names := make([]string, 0, len(g.names))
	for name := range g.names {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
