package runtime

import (
	"fmt"
	"strings"
	"sync"

	traits "github.com/goliatone/go-traits"
	"github.com/goliatone/go-traits/pkg/rules"
)

// Handler executes one declarative operation dispatched against a type.
type Handler func(t *Type, args []any, kwargs map[string]any, block traits.Block) (any, error)

// TypeOption configures a Type on construction.
type TypeOption func(*Type)

// WithRuleEvaluator wires an expression evaluator used by expression-backed
// validation rules.
func WithRuleEvaluator(evaluator rules.Evaluator) TypeOption {
	return func(t *Type) {
		t.evaluator = evaluator
	}
}

// WithHandler binds a declarative handler at construction time.
func WithHandler(name string, handler Handler) TypeOption {
	return func(t *Type) {
		_ = t.Bind(name, handler)
	}
}

// Type is a named type-level surface that adopts traits: dispatched
// invocation records resolve through bound declarative handlers, and
// installed definition records become directly callable static operations.
type Type struct {
	mu        sync.RWMutex
	name      string
	handlers  map[string]Handler
	statics   *OperationRegistry
	rules     []Rule
	evaluator rules.Evaluator
}

// NewType constructs a type-level surface with the built-in "validates"
// declarative handler bound.
func NewType(name string, opts ...TypeOption) *Type {
	t := &Type{
		name:     name,
		handlers: make(map[string]Handler),
		statics:  NewOperationRegistry(),
	}
	t.handlers["validates"] = validatesHandler
	for _, opt := range opts {
		if opt != nil {
			opt(t)
		}
	}
	return t
}

// Name returns the type name.
func (t *Type) Name() string {
	return t.name
}

// Bind registers handler for a declarative operation, guarding against
// duplicates.
func (t *Type) Bind(name string, handler Handler) error {
	if handler == nil {
		return fmt.Errorf("runtime: handler %q is nil", name)
	}
	if name == "" {
		return fmt.Errorf("runtime: handler name must not be empty")
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	key := strings.ToLower(name)
	if _, exists := t.handlers[key]; exists {
		return fmt.Errorf("runtime: handler %q already bound", name)
	}
	t.handlers[key] = handler
	return nil
}

// Invoke resolves name against bound handlers first, then installed static
// operations. Unresolvable names fail with *traits.UnknownOperationError.
func (t *Type) Invoke(name string, args []any, kwargs map[string]any, block traits.Block) (any, error) {
	t.mu.RLock()
	handler := t.handlers[strings.ToLower(name)]
	t.mu.RUnlock()
	if handler != nil {
		return handler(t, args, kwargs, block)
	}
	if op, ok := t.statics.Lookup(name); ok {
		return op(args...)
	}
	return nil, &traits.UnknownOperationError{Target: t.name, Op: name}
}

// InstallStaticOperation binds body as a directly callable static operation,
// overwriting any prior binding of the same name.
func (t *Type) InstallStaticOperation(name string, body traits.Operation) {
	t.statics.Install(name, body)
}

// CallStatic dispatches an installed static operation by name.
func (t *Type) CallStatic(name string, args ...any) (any, error) {
	return t.statics.Call(name, args...)
}

// StaticOperations returns the installed static operation names sorted
// alphabetically.
func (t *Type) StaticOperations() []string {
	return t.statics.Names()
}

// Rules returns a copy of the accumulated validation rules.
func (t *Type) Rules() []Rule {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]Rule{}, t.rules...)
}

func (t *Type) appendRule(rule Rule) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rules = append(t.rules, rule)
}

// New constructs an instance of the type with its own attribute map.
func (t *Type) New(attrs map[string]any) *Instance {
	copied := make(map[string]any, len(attrs))
	for key, value := range attrs {
		copied[key] = value
	}
	return &Instance{typ: t, attrs: copied}
}
