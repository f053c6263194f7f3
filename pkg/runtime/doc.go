// Package runtime provides a reference adopting entity for the traits engine.
//
// Responsibilities:
//   - Type is a named type-level surface satisfying traits.Entity: it resolves
//     dispatched invocation records through bound declarative handlers and
//     exposes installed definition records as directly callable static
//     operations.
//   - Instance is a value of a Type. Instances are deliberately not adoption
//     targets; adopting onto one fails with
//     traits.UnsupportedAdoptionTargetError.
//   - The built-in "validates" handler accumulates attribute rules (presence,
//     numericality, expression-backed via a rules.Evaluator, or a captured
//     block) that Instance.Validate runs.
//
// Data flow:
//
//	traits.Engine.Apply -> Type.Invoke / Type.InstallStaticOperation
//	Type.New -> Instance -> Instance.Validate -> rules.Evaluator
//
// The core traits package stays runtime-agnostic; any entity implementing the
// two-capability boundary can replace this package.
package runtime
