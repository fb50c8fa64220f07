// Package equiv stores algebraic equivalences between gates: an
// indexed, queryable table of rewrite rules keyed by (name, arity),
// consumed by the basis translation passes.
package equiv

import (
	"fmt"
	"sort"

	"github.com/kegliz/qtranslate/qc/circuit"
	"github.com/kegliz/qtranslate/qc/gate"
	"github.com/kegliz/qtranslate/qc/param"
)

// Public error helpers so callers can assert specific failures.
var (
	ErrArityMismatch      = fmt.Errorf("equiv: template arity disagrees with gate arity")
	ErrFreeParameter      = fmt.Errorf("equiv: template references symbols not drawn from the gate parameters")
	ErrAlreadyInitialized = fmt.Errorf("equiv: session library already initialized")
)

// Key identifies an entry. Arity is part of the key on purpose: the
// same name can exist at several arities.
type Key struct {
	Name  string
	Arity int
}

// Equivalence is one rewrite rule: a template circuit standing in for
// a gate, with the formal parameters its expressions range over.
type Equivalence struct {
	Params   []param.Symbol
	Template *circuit.Circuit
}

// Entry is the record stored under a key. SearchBase controls whether
// the entry participates in planner edge-expansion; entries with the
// flag cleared are consulted only for direct rewrites.
type Entry struct {
	SearchBase   bool
	Equivalences []Equivalence
}

// Library maps (name, arity) to rewrite rules: Add appends to an
// entry, SetEntry replaces one wholesale. It is not safe for concurrent mutation; share read-only snapshots
// across goroutines instead (see session.go).
type Library struct {
	entries map[Key]*Entry
}

// NewLibrary creates an empty library.
func NewLibrary() *Library {
	return &Library{entries: make(map[Key]*Entry)}
}

// Add appends a new equivalence for g's (name, arity) key. The gate's
// parameters must be plain formal symbols; the template must span the
// gate's arity and may only reference those symbols.
func (l *Library) Add(g gate.Gate, template *circuit.Circuit) error {
	if template.Qubits() != g.Arity() {
		return fmt.Errorf("%w: gate %s/%d, template %d qubits",
			ErrArityMismatch, g.Name(), g.Arity(), template.Qubits())
	}
	formals, err := formalParams(g)
	if err != nil {
		return err
	}
	allowed := make(map[param.Symbol]bool, len(formals))
	for _, s := range formals {
		allowed[s] = true
	}
	for _, s := range template.Symbols() {
		if !allowed[s] {
			return fmt.Errorf("%w: %s in template for %s", ErrFreeParameter, s, g.Name())
		}
	}

	key := Key{Name: g.Name(), Arity: g.Arity()}
	entry, ok := l.entries[key]
	if !ok {
		entry = &Entry{SearchBase: true}
		l.entries[key] = entry
	}
	entry.Equivalences = append(entry.Equivalences, Equivalence{
		Params:   formals,
		Template: template.Copy(),
	})
	return nil
}

// SetEntry replaces the entry for a key wholesale.
func (l *Library) SetEntry(name string, arity int, eqs []Equivalence, searchBase bool) {
	l.entries[Key{Name: name, Arity: arity}] = &Entry{
		SearchBase:   searchBase,
		Equivalences: append([]Equivalence(nil), eqs...),
	}
}

// Equivalences returns the rules stored for (name, arity). The result
// may be empty; the lookup itself never fails.
func (l *Library) Equivalences(name string, arity int) []Equivalence {
	entry, ok := l.entries[Key{Name: name, Arity: arity}]
	if !ok {
		return nil
	}
	return entry.Equivalences
}

// SearchEquivalences returns, across every arity held for name, the
// rules whose entries participate in plan search.
func (l *Library) SearchEquivalences(name string) []Equivalence {
	var out []Equivalence
	for _, key := range l.sortedKeys() {
		if key.Name != name {
			continue
		}
		entry := l.entries[key]
		if entry.SearchBase {
			out = append(out, entry.Equivalences...)
		}
	}
	return out
}

// HasEntry reports whether any equivalence exists for the gate's
// (name, arity).
func (l *Library) HasEntry(g gate.Gate) bool {
	entry, ok := l.entries[Key{Name: g.Name(), Arity: g.Arity()}]
	return ok && len(entry.Equivalences) > 0
}

// Keys returns the held keys, sorted by name then arity.
func (l *Library) Keys() []Key {
	return l.sortedKeys()
}

// Copy returns an independent library with deep-copied templates.
func (l *Library) Copy() *Library {
	out := NewLibrary()
	for key, entry := range l.entries {
		eqs := make([]Equivalence, len(entry.Equivalences))
		for i, eq := range entry.Equivalences {
			eqs[i] = Equivalence{
				Params:   append([]param.Symbol(nil), eq.Params...),
				Template: eq.Template.Copy(),
			}
		}
		out.entries[key] = &Entry{SearchBase: entry.SearchBase, Equivalences: eqs}
	}
	return out
}

func (l *Library) sortedKeys() []Key {
	keys := make([]Key, 0, len(l.entries))
	for key := range l.entries {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Name != keys[j].Name {
			return keys[i].Name < keys[j].Name
		}
		return keys[i].Arity < keys[j].Arity
	})
	return keys
}

// formalParams extracts the gate's parameters as plain symbols.
func formalParams(g gate.Gate) ([]param.Symbol, error) {
	params := g.Params()
	formals := make([]param.Symbol, len(params))
	for i, v := range params {
		syms := v.Symbols()
		if len(syms) != 1 {
			return nil, fmt.Errorf("%w: parameter %d of %s is not a formal symbol",
				ErrFreeParameter, i, g.Name())
		}
		if !param.Equal(v, symValue(syms[0])) {
			return nil, fmt.Errorf("%w: parameter %d of %s is not a plain formal symbol",
				ErrFreeParameter, i, g.Name())
		}
		formals[i] = syms[0]
	}
	return formals, nil
}

func symValue(s param.Symbol) param.Value { return param.Sym(s) }
