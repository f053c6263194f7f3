package runtime

import (
	"fmt"

	traits "github.com/goliatone/go-traits"
)

// Rule is one accumulated validation constraint for a single attribute.
type Rule struct {
	Attribute    string
	Presence     bool
	Numericality bool
	Expression   string
	Check        traits.Block
}

// validatesHandler backs the built-in "validates" declarative operation:
// args[0] names the attribute, kwargs select the constraints, and a trailing
// block becomes a custom check.
func validatesHandler(t *Type, args []any, kwargs map[string]any, block traits.Block) (any, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("runtime: validates requires an attribute name")
	}
	attribute, ok := args[0].(string)
	if !ok || attribute == "" {
		return nil, fmt.Errorf("runtime: validates attribute must be a non-empty string, got %T", args[0])
	}

	rule := Rule{Attribute: attribute, Check: block}
	if enabled, ok := kwargs["presence"].(bool); ok && enabled {
		rule.Presence = true
	}
	if enabled, ok := kwargs["numericality"].(bool); ok && enabled {
		rule.Numericality = true
	}
	if expression, ok := kwargs["rule"].(string); ok && expression != "" {
		rule.Expression = expression
	}
	if !rule.Presence && !rule.Numericality && rule.Expression == "" && rule.Check == nil {
		return nil, fmt.Errorf("runtime: validates %q selects no constraint", attribute)
	}

	t.appendRule(rule)
	return nil, nil
}
