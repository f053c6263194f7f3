package runtime

import (
	"errors"
	"testing"

	traits "github.com/goliatone/go-traits"
)

// TestAdoptTraitsOntoType replays a two-level trait composition onto a
// concrete type: Locatable contributes coordinate validations, Addressable
// adopts Locatable, adds address validations, and defines merge_duplicates.
func TestAdoptTraitsOntoType(t *testing.T) {
	engine := traits.NewEngine()

	locatable, err := engine.NewTrait("Locatable")
	if err != nil {
		t.Fatalf("NewTrait returned error: %v", err)
	}
	if err := locatable.RecordInvocation("validates", []any{"x_coordinate"}, map[string]any{"numericality": true}, nil); err != nil {
		t.Fatalf("RecordInvocation returned error: %v", err)
	}
	if err := locatable.RecordInvocation("validates", []any{"y_coordinate"}, map[string]any{"numericality": true}, nil); err != nil {
		t.Fatalf("RecordInvocation returned error: %v", err)
	}
	locatable.Seal()

	addressable, err := engine.NewTrait("Addressable")
	if err != nil {
		t.Fatalf("NewTrait returned error: %v", err)
	}
	if err := addressable.Adopt(locatable); err != nil {
		t.Fatalf("Adopt returned error: %v", err)
	}
	if err := addressable.RecordInvocation("validates", []any{"city"}, map[string]any{"presence": true}, nil); err != nil {
		t.Fatalf("RecordInvocation returned error: %v", err)
	}
	if err := addressable.RecordInvocation("validates", []any{"state"}, map[string]any{"presence": true}, nil); err != nil {
		t.Fatalf("RecordInvocation returned error: %v", err)
	}
	if err := addressable.RecordDefinition("merge_duplicates", func(args ...any) (any, error) {
		return "deduplicated", nil
	}); err != nil {
		t.Fatalf("RecordDefinition returned error: %v", err)
	}
	addressable.Seal()

	contact := NewType("Contact")
	if err := engine.Apply(contact, addressable); err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}

	// All four validations arrived in closure order.
	rules := contact.Rules()
	wantOrder := []string{"x_coordinate", "y_coordinate", "city", "state"}
	if len(rules) != len(wantOrder) {
		t.Fatalf("expected %d rules, got %d", len(wantOrder), len(rules))
	}
	for i, attribute := range wantOrder {
		if rules[i].Attribute != attribute {
			t.Errorf("rule %d attribute = %q, want %q", i, rules[i].Attribute, attribute)
		}
	}

	// merge_duplicates is directly callable on the type.
	result, err := contact.CallStatic("merge_duplicates")
	if err != nil {
		t.Fatalf("CallStatic returned error: %v", err)
	}
	if result != "deduplicated" {
		t.Errorf("CallStatic = %v, want deduplicated", result)
	}

	// The composed type behaves as if the validations were declared natively.
	valid := contact.New(map[string]any{"x_coordinate": 1, "y_coordinate": 2, "city": "Lisbon", "state": "NY"})
	if err := valid.Validate(); err != nil {
		t.Errorf("Validate returned error for valid instance: %v", err)
	}
	invalid := contact.New(map[string]any{"x_coordinate": "one", "y_coordinate": 2, "city": "Lisbon", "state": "NY"})
	if err := invalid.Validate(); err == nil {
		t.Error("Validate returned nil for invalid instance")
	}
}

func TestAdoptOntoInstanceFails(t *testing.T) {
	engine := traits.NewEngine()
	trait, err := engine.NewTrait("Locatable")
	if err != nil {
		t.Fatalf("NewTrait returned error: %v", err)
	}
	trait.Seal()

	instance := NewType("Contact").New(nil)
	applyErr := engine.Apply(instance, trait)
	var unsupported *traits.UnsupportedAdoptionTargetError
	if !errors.As(applyErr, &unsupported) {
		t.Fatalf("Apply onto instance error = %v, want *traits.UnsupportedAdoptionTargetError", applyErr)
	}
}
