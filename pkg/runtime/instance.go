package runtime

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-traits/pkg/rules"
)

// ErrNoRuleEvaluator signals an expression-backed rule on a type constructed
// without WithRuleEvaluator.
var ErrNoRuleEvaluator = errors.New("runtime: rule evaluator not configured")

// ValidationError reports one violated rule.
type ValidationError struct {
	Type      string
	Attribute string
	Reason    string
	Err       error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("runtime: %s.%s %s", e.Type, e.Attribute, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Instance is a value of a Type. Instances are deliberately not adoption
// targets.
type Instance struct {
	typ   *Type
	attrs map[string]any
}

// Type returns the instance's type.
func (i *Instance) Type() *Type {
	return i.typ
}

// Attr returns the named attribute.
func (i *Instance) Attr(name string) (any, bool) {
	value, ok := i.attrs[name]
	return value, ok
}

// Attrs returns a copy of the instance attributes.
func (i *Instance) Attrs() map[string]any {
	copied := make(map[string]any, len(i.attrs))
	for key, value := range i.attrs {
		copied[key] = value
	}
	return copied
}

// Set assigns the named attribute.
func (i *Instance) Set(name string, value any) {
	i.attrs[name] = value
}

// Validate runs every accumulated rule against the instance attributes,
// returning the joined violations.
func (i *Instance) Validate() error {
	var errs []error
	for _, rule := range i.typ.Rules() {
		if err := i.validateRule(rule); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}

func (i *Instance) validateRule(rule Rule) error {
	value, present := i.attrs[rule.Attribute]

	if rule.Presence {
		if !present || value == nil || value == "" {
			return &ValidationError{Type: i.typ.name, Attribute: rule.Attribute, Reason: "must be present"}
		}
	}
	if rule.Numericality {
		if !isNumeric(value) {
			return &ValidationError{Type: i.typ.name, Attribute: rule.Attribute, Reason: "must be numeric"}
		}
	}
	if rule.Expression != "" {
		if i.typ.evaluator == nil {
			return ErrNoRuleEvaluator
		}
		ctx := rules.Context{
			Attributes: i.Attrs(),
			Args:       map[string]any{"attribute": rule.Attribute, "value": value},
		}
		result, err := i.typ.evaluator.Evaluate(ctx, rule.Expression)
		if err != nil {
			return &ValidationError{Type: i.typ.name, Attribute: rule.Attribute, Reason: "rule evaluation failed", Err: err}
		}
		if ok, isBool := result.(bool); !isBool || !ok {
			return &ValidationError{Type: i.typ.name, Attribute: rule.Attribute, Reason: fmt.Sprintf("violates rule %q", rule.Expression)}
		}
	}
	if rule.Check != nil {
		result, err := rule.Check(value)
		if err != nil {
			return &ValidationError{Type: i.typ.name, Attribute: rule.Attribute, Reason: "check failed", Err: err}
		}
		if ok, isBool := result.(bool); isBool && !ok {
			return &ValidationError{Type: i.typ.name, Attribute: rule.Attribute, Reason: "rejected by check"}
		}
	}
	return nil
}

func isNumeric(value any) bool {
	switch value.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	default:
		return false
	}
}
