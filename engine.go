package traits

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-traits/pkg/adoption"
)

// Option configures an Engine.
type Option func(*engineConfig)

type engineConfig struct {
	logger   ApplyLogger
	hooks    adoption.Hooks
	reserved []string
}

// WithAdoptionHooks attaches post-adoption observer hooks to the engine.
// Hooks are cloned and nil entries dropped to preserve immutability.
func WithAdoptionHooks(hooks adoption.Hooks) Option {
	normalized := make([]adoption.Hook, 0, len(hooks))
	for _, hook := range hooks {
		if hook == nil {
			continue
		}
		normalized = append(normalized, hook)
	}
	return func(cfg *engineConfig) {
		if len(normalized) == 0 {
			cfg.hooks = nil
			return
		}
		cfg.hooks = adoption.Hooks(normalized)
	}
}

// WithReservedNames extends the engine's reserved-name set with extra
// operation names that must never be defined by traits.
func WithReservedNames(names ...string) Option {
	return func(cfg *engineConfig) {
		cfg.reserved = append(cfg.reserved, names...)
	}
}

// Closure is the flattened, order-preserving view of a trait's ledger:
// every invocation record in replay order, and the definition records that
// survive the most-recently-encountered-wins policy.
type Closure struct {
	Invocations []InvocationRecord
	Definitions []DefinitionRecord
}

// Engine records trait ledgers and replays them onto adopting entities. An
// engine owns the composition graph shared by all traits it mints.
type Engine struct {
	mu      sync.RWMutex
	graph   *Graph
	traits  map[string]*Trait
	guard   *nameGuard
	logger  ApplyLogger
	emitter *adoption.Emitter
}

// NewEngine constructs an engine with the supplied configuration.
func NewEngine(opts ...Option) *Engine {
	cfg := engineConfig{logger: noopApplyLogger{}}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.logger == nil {
		cfg.logger = noopApplyLogger{}
	}
	return &Engine{
		graph:   NewGraph(),
		traits:  make(map[string]*Trait),
		guard:   newNameGuard(cfg.reserved),
		logger:  cfg.logger,
		emitter: adoption.NewEmitter(cfg.hooks, adoption.Config{Enabled: true}),
	}
}

// NewTrait mints an empty trait registered in the engine's composition graph.
func (e *Engine) NewTrait(name string) (*Trait, error) {
	if err := validIdentifier(name); err != nil {
		return nil, err
	}
	t := &Trait{
		id:     uuid.NewString(),
		name:   name,
		ledger: newLedger(),
		engine: e,
	}
	e.graph.addNode(t.id, t.name)
	e.mu.Lock()
	e.traits[t.id] = t
	e.mu.Unlock()
	return t, nil
}

// Trait resolves a previously minted trait by id.
func (e *Engine) Trait(id string) (*Trait, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	t, ok := e.traits[id]
	return t, ok
}

// Graph exposes the engine's composition graph.
func (e *Engine) Graph() *Graph {
	return e.graph
}

// ReservedNames returns the sorted operation names the engine refuses to let
// traits define.
func (e *Engine) ReservedNames() []string {
	return e.guard.reservedNames()
}

// Closure flattens t's ledger: invocations keep replay order and are never
// deduplicated; definitions are deduplicated by name, the most recently
// encountered occurrence winning and keeping its position.
func (e *Engine) Closure(t *Trait) (Closure, error) {
	if t == nil {
		return Closure{}, ErrNilTrait
	}
	entries := t.ledger.snapshot()

	closure := Closure{}
	last := make(map[string]int)
	for i, ent := range entries {
		if ent.def != nil {
			last[ent.def.op] = i
		}
	}
	for i, ent := range entries {
		switch {
		case ent.inv != nil:
			closure.Invocations = append(closure.Invocations, *ent.inv)
		case ent.def != nil:
			if last[ent.def.op] == i {
				closure.Definitions = append(closure.Definitions, *ent.def)
			}
		}
	}
	return closure, nil
}

// Apply replays t onto target: every invocation record is dispatched in
// closure order, then every surviving definition record is installed as a
// directly callable static operation. The closure is staged in full before
// the first side effect, so validation failures never leave target partially
// modified. Re-applying the same trait produces the same final state; the
// engine does not guard against double application.
func (e *Engine) Apply(target any, t *Trait) error {
	_, err := e.apply(target, t)
	return err
}

// ApplyWithTrace replays t onto target and returns the provenance of every
// replayed record.
func (e *Engine) ApplyWithTrace(target any, t *Trait) (Trace, error) {
	return e.apply(target, t)
}

func (e *Engine) apply(target any, t *Trait) (Trace, error) {
	if t == nil {
		return Trace{}, ErrNilTrait
	}

	// Trait-on-trait adoption defers replay: records are merged into the
	// adopting trait's own ledger instead. A typed-nil trait pointer is not
	// an adoptable surface.
	if adopter, ok := target.(*Trait); ok {
		if adopter == nil {
			return Trace{}, &UnsupportedAdoptionTargetError{Target: target}
		}
		return Trace{}, adopter.Adopt(t)
	}

	entity, ok := target.(Entity)
	if !ok {
		return Trace{}, &UnsupportedAdoptionTargetError{Target: target}
	}
	if !t.Sealed() {
		return Trace{}, ErrTraitNotSealed
	}

	closure, err := e.Closure(t)
	if err != nil {
		return Trace{}, err
	}

	name := entityName(target)
	start := time.Now()
	trace := Trace{Trait: t.name, Target: name}

	for _, inv := range closure.Invocations {
		if _, err := entity.Invoke(inv.op, inv.Args(), inv.Kwargs(), inv.block); err != nil {
			err = fmt.Errorf("traits: dispatch %q onto %q: %w", inv.op, name, err)
			e.logApply(t, name, closure, start, err)
			return Trace{}, err
		}
		trace.Steps = append(trace.Steps, Provenance{
			Kind:      ProvenanceInvocation,
			Operation: inv.op,
			Trait:     inv.origin.TraitName,
			TraitID:   inv.origin.TraitID,
			Position:  len(trace.Steps),
		})
	}
	for _, def := range closure.Definitions {
		entity.InstallStaticOperation(def.op, def.body)
		trace.Steps = append(trace.Steps, Provenance{
			Kind:      ProvenanceDefinition,
			Operation: def.op,
			Trait:     def.origin.TraitName,
			TraitID:   def.origin.TraitID,
			Position:  len(trace.Steps),
		})
	}

	e.logApply(t, name, closure, start, nil)

	if e.emitter.Enabled() {
		event := adoption.Event{
			TraitID:     t.id,
			Trait:       t.name,
			Target:      name,
			Invocations: len(closure.Invocations),
			Definitions: len(closure.Definitions),
		}
		if err := e.emitter.Emit(context.Background(), event); err != nil {
			return trace, fmt.Errorf("traits: adoption hooks: %w", err)
		}
	}
	return trace, nil
}

func (e *Engine) logApply(t *Trait, target string, closure Closure, start time.Time, err error) {
	e.logger.LogApply(ApplyLogEvent{
		Trait:       t.name,
		Target:      target,
		Invocations: len(closure.Invocations),
		Definitions: len(closure.Definitions),
		Duration:    time.Since(start),
		Err:         err,
	})
}
