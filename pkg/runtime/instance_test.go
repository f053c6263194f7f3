package runtime

import (
	"errors"
	"testing"

	traits "github.com/goliatone/go-traits"
	"github.com/goliatone/go-traits/pkg/rules"
)

func validates(t *testing.T, typ *Type, attribute string, kwargs map[string]any, block traits.Block) {
	t.Helper()
	if _, err := typ.Invoke("validates", []any{attribute}, kwargs, block); err != nil {
		t.Fatalf("validates %q returned error: %v", attribute, err)
	}
}

func TestValidatePresence(t *testing.T) {
	typ := NewType("Contact")
	validates(t, typ, "city", map[string]any{"presence": true}, nil)

	if err := typ.New(map[string]any{"city": "Lisbon"}).Validate(); err != nil {
		t.Errorf("Validate returned error for present attribute: %v", err)
	}

	err := typ.New(map[string]any{}).Validate()
	var violation *ValidationError
	if !errors.As(err, &violation) {
		t.Fatalf("Validate error = %v, want *ValidationError", err)
	}
	if violation.Attribute != "city" {
		t.Errorf("violation attribute = %q, want city", violation.Attribute)
	}
}

func TestValidateNumericality(t *testing.T) {
	typ := NewType("Contact")
	validates(t, typ, "x_coordinate", map[string]any{"numericality": true}, nil)

	cases := []struct {
		name  string
		value any
		valid bool
	}{
		{name: "int", value: 4, valid: true},
		{name: "float", value: 4.5, valid: true},
		{name: "string", value: "four", valid: false},
		{name: "nil", value: nil, valid: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := typ.New(map[string]any{"x_coordinate": tc.value}).Validate()
			if tc.valid && err != nil {
				t.Errorf("Validate(%v) returned error: %v", tc.value, err)
			}
			if !tc.valid && err == nil {
				t.Errorf("Validate(%v) returned nil, want violation", tc.value)
			}
		})
	}
}

func TestValidateExpressionRule(t *testing.T) {
	typ := NewType("Contact", WithRuleEvaluator(rules.NewExprEvaluator()))
	validates(t, typ, "x_coordinate", map[string]any{"rule": "x_coordinate >= 0"}, nil)

	if err := typ.New(map[string]any{"x_coordinate": 12}).Validate(); err != nil {
		t.Errorf("Validate returned error for satisfied rule: %v", err)
	}

	err := typ.New(map[string]any{"x_coordinate": -12}).Validate()
	var violation *ValidationError
	if !errors.As(err, &violation) {
		t.Fatalf("Validate error = %v, want *ValidationError", err)
	}
}

func TestValidateExpressionRuleWithoutEvaluator(t *testing.T) {
	typ := NewType("Contact")
	validates(t, typ, "x_coordinate", map[string]any{"rule": "x_coordinate >= 0"}, nil)

	if err := typ.New(map[string]any{"x_coordinate": 1}).Validate(); !errors.Is(err, ErrNoRuleEvaluator) {
		t.Errorf("Validate error = %v, want ErrNoRuleEvaluator", err)
	}
}

func TestValidateBlockCheck(t *testing.T) {
	typ := NewType("Contact")
	validates(t, typ, "state", nil, func(args ...any) (any, error) {
		state, _ := args[0].(string)
		return len(state) == 2, nil
	})

	if err := typ.New(map[string]any{"state": "NY"}).Validate(); err != nil {
		t.Errorf("Validate returned error for accepted value: %v", err)
	}
	if err := typ.New(map[string]any{"state": "New York"}).Validate(); err == nil {
		t.Error("Validate returned nil for rejected value")
	}
}

func TestValidateJoinsViolations(t *testing.T) {
	typ := NewType("Contact")
	validates(t, typ, "city", map[string]any{"presence": true}, nil)
	validates(t, typ, "x_coordinate", map[string]any{"numericality": true}, nil)

	err := typ.New(map[string]any{"x_coordinate": "not a number"}).Validate()
	if err == nil {
		t.Fatal("Validate returned nil, want joined violations")
	}
	var violation *ValidationError
	if !errors.As(err, &violation) {
		t.Fatalf("Validate error = %v, want *ValidationError inside join", err)
	}
}

func TestValidatesHandlerRejectsBadInput(t *testing.T) {
	typ := NewType("Contact")
	if _, err := typ.Invoke("validates", nil, nil, nil); err == nil {
		t.Error("expected error for missing attribute name")
	}
	if _, err := typ.Invoke("validates", []any{42}, map[string]any{"presence": true}, nil); err == nil {
		t.Error("expected error for non-string attribute")
	}
	if _, err := typ.Invoke("validates", []any{"city"}, nil, nil); err == nil {
		t.Error("expected error when no constraint is selected")
	}
}

func TestInstanceAttributes(t *testing.T) {
	typ := NewType("Contact")
	instance := typ.New(map[string]any{"city": "Lisbon"})

	if value, ok := instance.Attr("city"); !ok || value != "Lisbon" {
		t.Errorf("Attr = %v/%v, want Lisbon/true", value, ok)
	}
	instance.Set("state", "NY")
	if _, ok := instance.Attr("state"); !ok {
		t.Error("Set did not assign attribute")
	}

	attrs := instance.Attrs()
	attrs["city"] = "mutated"
	if value, _ := instance.Attr("city"); value != "Lisbon" {
		t.Errorf("Attrs leaked internal map: %v", value)
	}
}
