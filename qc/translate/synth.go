package translate

import (
	"github.com/kegliz/qtranslate/qc/circuit"
	"github.com/kegliz/qtranslate/qc/dag"
	"github.com/kegliz/qtranslate/qc/equiv"
)

// synthBasis is the minimal basis definition fallbacks unroll to.
var synthBasis = []string{"u3", "cx"}

// SynthesizeUnitaries resolves ops that have no equivalence-library
// entry by falling back to their intrinsic definitions, unrolled to a
// minimal basis. Ops the library knows are left alone — the basis
// translator will handle them; ops with neither entry nor definition
// pass through unchanged.
type SynthesizeUnitaries struct {
	lib *equiv.Library
}

// NewSynthesizeUnitaries creates the fallback pass over a library
// snapshot.
func NewSynthesizeUnitaries(lib *equiv.Library) *SynthesizeUnitaries {
	return &SynthesizeUnitaries{lib: lib}
}

// Run returns a copy of d with every library-foreign definable op
// replaced by its unrolled definition. The input DAG is never mutated.
func (p *SynthesizeUnitaries) Run(d *dag.DAG) (*dag.DAG, error) {
	out := d.Copy()
	unroller := NewUnroller(synthBasis)
	for _, node := range out.OpNodes() {
		if p.lib.HasEntry(node.G) {
			continue
		}
		defn := node.G.Definition()
		if defn == nil {
			continue
		}
		local, err := circuit.FromInstructions(len(node.Qubits), 0, defn).ToDAG()
		if err != nil {
			return nil, err
		}
		unrolled, err := unroller.Run(local)
		if err != nil {
			return nil, err
		}
		if err := out.SubstituteNodeWithDAG(node, unrolled); err != nil {
			return nil, err
		}
	}
	return out, nil
}
