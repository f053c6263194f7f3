package traits

import "fmt"

// Trait is a reusable bundle of declarative invocations and static-operation
// definitions. A trait is authored once, sealed, and then replayed onto any
// number of adopting entities.
type Trait struct {
	id     string
	name   string
	ledger *Ledger
	engine *Engine
}

// ID returns the trait's unique identifier.
func (t *Trait) ID() string {
	return t.id
}

// Name returns the trait's human-readable name.
func (t *Trait) Name() string {
	return t.name
}

// Ledger exposes the trait's record sequence for inspection.
func (t *Trait) Ledger() *Ledger {
	return t.ledger
}

// RecordInvocation captures one declarative call in authoring order. The
// arguments are deep-cloned so later caller mutation cannot leak into the
// record.
func (t *Trait) RecordInvocation(op string, args []any, kwargs map[string]any, block Block) error {
	if err := validIdentifier(op); err != nil {
		return err
	}
	return t.ledger.recordInvocation(newInvocationRecord(op, args, kwargs, block, t.origin()))
}

// RecordDefinition captures one static-operation definition. A later
// definition of the same name within this trait supersedes the earlier one.
// Names on the engine's reserved surface are rejected with
// *ReservedNameError without affecting the rest of the ledger.
func (t *Trait) RecordDefinition(op string, body Operation) error {
	if err := validIdentifier(op); err != nil {
		return err
	}
	if err := t.engine.guard.check(t.name, op); err != nil {
		return err
	}
	if body == nil {
		return fmt.Errorf("traits: definition %q body is nil", op)
	}
	return t.ledger.recordDefinition(newDefinitionRecord(op, body, t.origin()))
}

// Adopt merges other's current records into this trait's ledger at the
// current authoring position. The composition graph is checked first, so a
// cycle rejects the adoption before either ledger changes.
func (t *Trait) Adopt(other *Trait) error {
	if t == nil || other == nil {
		return ErrNilTrait
	}
	if t.ledger.Sealed() {
		return ErrLedgerSealed
	}
	if err := t.engine.graph.AddEdge(t.id, other.id); err != nil {
		return err
	}
	return t.ledger.splice(other.ledger.snapshot())
}

// Seal completes authoring. A sealed trait is immutable and safe for
// concurrent adoption.
func (t *Trait) Seal() {
	t.ledger.seal()
}

// Sealed reports whether authoring has completed.
func (t *Trait) Sealed() bool {
	return t.ledger.Sealed()
}

func (t *Trait) origin() Origin {
	return Origin{TraitID: t.id, TraitName: t.name}
}
