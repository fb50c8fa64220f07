package translate

import (
	"github.com/kegliz/qtranslate/qc/circuit"
	"github.com/kegliz/qtranslate/qc/dag"
)

type (
	// Unroller expands gates into their intrinsic definitions,
	// recursively, until every op is drawn from its basis. Gates with
	// no definition pass through unless Strict is set.
	Unroller struct {
		basis  map[string]bool
		strict bool
	}

	// UnrollerOption customises an Unroller.
	UnrollerOption func(*Unroller)
)

// Strict makes the unroller fail on basis-foreign gates that carry no
// definition instead of passing them through.
func Strict() UnrollerOption {
	return func(u *Unroller) { u.strict = true }
}

// NewUnroller creates an unroller targeting basis (plus the
// irreducible instruction names).
func NewUnroller(basis []string, opts ...UnrollerOption) *Unroller {
	u := &Unroller{basis: make(map[string]bool, len(basis)+len(basicInstrs))}
	for _, name := range basis {
		u.basis[name] = true
	}
	for _, name := range basicInstrs {
		u.basis[name] = true
	}
	for _, o := range opts {
		o(u)
	}
	return u
}

// Run returns a copy of d with every definable basis-foreign gate
// expanded. The input DAG is never mutated.
func (u *Unroller) Run(d *dag.DAG) (*dag.DAG, error) {
	out := d.Copy()
	for {
		expanded := false
		for _, node := range out.OpNodes() {
			name := node.G.Name()
			if u.basis[name] {
				continue
			}
			defn := node.G.Definition()
			if defn == nil {
				if u.strict {
					return nil, &DefinitionMissingError{Name: name}
				}
				continue
			}
			repl, err := circuit.FromInstructions(len(node.Qubits), 0, defn).ToDAG()
			if err != nil {
				return nil, err
			}
			if err := out.SubstituteNodeWithDAG(node, repl); err != nil {
				return nil, err
			}
			expanded = true
		}
		if !expanded {
			return out, nil
		}
	}
}
