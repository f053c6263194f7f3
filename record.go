package traits

// Block is an optional trailing callback captured alongside a declarative
// invocation and handed back to the adopting entity at replay time.
type Block func(args ...any) (any, error)

// Operation is a callable installed as a static operation on an adopting
// entity.
type Operation func(args ...any) (any, error)

// Origin identifies the trait that authored a record. Provenance survives
// splicing so closure consumers can tell which trait contributed each record.
type Origin struct {
	TraitID   string
	TraitName string
}

// InvocationRecord captures one declarative call made inside a trait body:
// operation name, positional arguments, keyword arguments, and an optional
// trailing block. Arguments are deep-cloned on capture and on read so the
// record stays immutable for its whole lifetime.
type InvocationRecord struct {
	op     string
	args   []any
	kwargs map[string]any
	block  Block
	origin Origin
}

func newInvocationRecord(op string, args []any, kwargs map[string]any, block Block, origin Origin) InvocationRecord {
	return InvocationRecord{
		op:     op,
		args:   cloneArgs(args),
		kwargs: cloneKwargs(kwargs),
		block:  block,
		origin: origin,
	}
}

// Operation returns the captured operation name.
func (r InvocationRecord) Operation() string {
	return r.op
}

// Args returns a defensive copy of the captured positional arguments.
func (r InvocationRecord) Args() []any {
	return cloneArgs(r.args)
}

// Kwargs returns a defensive copy of the captured keyword arguments.
func (r InvocationRecord) Kwargs() map[string]any {
	return cloneKwargs(r.kwargs)
}

// Block returns the captured trailing block, if any.
func (r InvocationRecord) Block() Block {
	return r.block
}

// Origin returns the trait that authored this record.
func (r InvocationRecord) Origin() Origin {
	return r.origin
}

// DefinitionRecord captures one static-operation definition made inside a
// trait body: operation name plus the callable body, stored as an opaque
// invokable unit.
type DefinitionRecord struct {
	op     string
	body   Operation
	origin Origin
}

func newDefinitionRecord(op string, body Operation, origin Origin) DefinitionRecord {
	return DefinitionRecord{op: op, body: body, origin: origin}
}

// Operation returns the defined operation name.
func (r DefinitionRecord) Operation() string {
	return r.op
}

// Body returns the callable body captured with the definition.
func (r DefinitionRecord) Body() Operation {
	return r.body
}

// Origin returns the trait that authored this record.
func (r DefinitionRecord) Origin() Origin {
	return r.origin
}
