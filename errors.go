package traits

import (
	"errors"
	"fmt"
)

var (
	// ErrLedgerSealed signals a mutation attempted after a trait's ledger was
	// sealed.
	ErrLedgerSealed = errors.New("traits: ledger is sealed")

	// ErrTraitNotSealed signals an adoption of a trait whose authoring has not
	// completed.
	ErrTraitNotSealed = errors.New("traits: trait must be sealed before it can be applied")

	// ErrNilTrait signals a nil trait handed to the engine.
	ErrNilTrait = errors.New("traits: trait is nil")
)

// CycleError reports an adoption edge that would make the composition graph
// cyclic. The offending edge is rejected before any ledger mutation.
type CycleError struct {
	From string
	To   string
}

func (e *CycleError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("traits: %q cannot adopt %q: adoption cycle", e.From, e.To)
}

// ReservedNameError reports a static-operation definition that collides with
// the engine's own control surface. The single definition is rejected; the
// rest of the trait body is unaffected.
type ReservedNameError struct {
	Trait string
	Name  string
}

func (e *ReservedNameError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("traits: trait %q cannot define %q: name is reserved for engine internals", e.Trait, e.Name)
}

// InvalidIdentifierError reports a malformed operation or trait name.
type InvalidIdentifierError struct {
	Name string
}

func (e *InvalidIdentifierError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("traits: %q is not a valid identifier", e.Name)
}

// UnknownOperationError reports an invocation record naming an operation the
// adopting entity could not resolve at replay time.
type UnknownOperationError struct {
	Target string
	Op     string
	Err    error
}

func (e *UnknownOperationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("traits: target %q cannot resolve operation %q: %v", e.Target, e.Op, e.Err)
	}
	return fmt.Sprintf("traits: target %q cannot resolve operation %q", e.Target, e.Op)
}

func (e *UnknownOperationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// UnsupportedAdoptionTargetError reports an adoption attempted on something
// that is not a type-shaped surface, e.g. an already-instantiated value.
type UnsupportedAdoptionTargetError struct {
	Target any
}

func (e *UnsupportedAdoptionTargetError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("traits: %T is not an adoptable type-level surface", e.Target)
}
