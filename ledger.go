package traits

import "sync"

// entry is one position in a ledger: exactly one of inv or def is set.
type entry struct {
	inv *InvocationRecord
	def *DefinitionRecord
}

// Ledger is the ordered record sequence owned by a single trait. Entries from
// adopted traits are spliced in at the adoption point, so a fully authored
// ledger already reflects closure order. Authoring is guarded by a mutex;
// once sealed the ledger is immutable and safe for unlimited concurrent
// readers.
type Ledger struct {
	mu      sync.RWMutex
	entries []entry
	sealed  bool
}

func newLedger() *Ledger {
	return &Ledger{}
}

func (l *Ledger) recordInvocation(rec InvocationRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.sealed {
		return ErrLedgerSealed
	}
	l.entries = append(l.entries, entry{inv: &rec})
	return nil
}

// recordDefinition appends rec, superseding any earlier definition of the
// same operation authored by the same trait. Definitions spliced in from
// adopted traits are left in place; cross-trait collisions are resolved by
// closure order.
func (l *Ledger) recordDefinition(rec DefinitionRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.sealed {
		return ErrLedgerSealed
	}
	kept := l.entries[:0]
	for _, e := range l.entries {
		if e.def != nil && e.def.op == rec.op && e.def.origin == rec.origin {
			continue
		}
		kept = append(kept, e)
	}
	l.entries = append(kept, entry{def: &rec})
	return nil
}

// splice appends a snapshot of another trait's entries at the current
// authoring position. Records are immutable, so sharing them across ledgers
// is safe.
func (l *Ledger) splice(entries []entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.sealed {
		return ErrLedgerSealed
	}
	l.entries = append(l.entries, entries...)
	return nil
}

func (l *Ledger) seal() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sealed = true
}

// Sealed reports whether authoring has completed.
func (l *Ledger) Sealed() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.sealed
}

// Len returns the number of recorded entries, spliced content included.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Invocations returns the ordered invocation records, spliced content
// included.
func (l *Ledger) Invocations() []InvocationRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()
	records := make([]InvocationRecord, 0, len(l.entries))
	for _, e := range l.entries {
		if e.inv != nil {
			records = append(records, *e.inv)
		}
	}
	return records
}

// Definitions returns the ordered definition records, spliced content
// included and name collisions unresolved. Closure computation applies the
// most-recently-encountered-wins policy.
func (l *Ledger) Definitions() []DefinitionRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()
	records := make([]DefinitionRecord, 0, len(l.entries))
	for _, e := range l.entries {
		if e.def != nil {
			records = append(records, *e.def)
		}
	}
	return records
}

func (l *Ledger) snapshot() []entry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	snap := make([]entry, len(l.entries))
	copy(snap, l.entries)
	return snap
}
