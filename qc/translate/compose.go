package translate

import (
	"fmt"

	"github.com/kegliz/qtranslate/qc/circuit"
	"github.com/kegliz/qtranslate/qc/dag"
	"github.com/kegliz/qtranslate/qc/gate"
	"github.com/kegliz/qtranslate/qc/param"
)

// mappedOp is one composed replacement: a DAG over the final basis
// whose parameter expressions range over Params.
type mappedOp struct {
	Params []param.Symbol
	DAG    *dag.DAG
}

// composeTransforms folds the planned rewrites into one replacement
// DAG per source gate name. Each source gate starts as a single
// placeholder op over a fresh formal vector; plan steps are applied in
// order, substituting every doomed node by its bound template.
func composeTransforms(plan []transform, sourceBasis map[string]bool, source *dag.DAG) (map[string]mappedOp, error) {
	// Grab a gate instance per name to learn arity and param counts.
	exampleGates := make(map[string]gate.Gate)
	for _, n := range source.OpNodes() {
		exampleGates[n.G.Name()] = n.G
	}

	mappedOps := make(map[string]mappedOp, len(sourceBasis))
	for _, name := range sortedNames(sourceBasis) {
		example, ok := exampleGates[name]
		if !ok {
			return nil, fmt.Errorf("translate: source basis name %s absent from dag", name)
		}
		formals := param.Vector(name, len(example.Params()))
		values := make([]param.Value, len(formals))
		for i, s := range formals {
			values[i] = param.Sym(s)
		}
		placeholder, err := example.WithParams(values)
		if err != nil {
			return nil, err
		}

		d := dag.New(example.Arity(), 0)
		qargs := make([]int, example.Arity())
		for i := range qargs {
			qargs[i] = i
		}
		if _, err := d.Apply(placeholder, qargs, nil); err != nil {
			return nil, err
		}
		mappedOps[name] = mappedOp{Params: formals, DAG: d}
	}

	for _, tr := range plan {
		for _, name := range sortedNames(sourceBasis) {
			m := mappedOps[name]
			for _, doomed := range m.DAG.NamedNodes(tr.Name) {
				bound, err := bindTemplate(tr.Params, tr.Template, doomed.G.Params())
				if err != nil {
					return nil, err
				}
				replacement, err := bound.ToDAG()
				if err != nil {
					return nil, err
				}
				if err := m.DAG.SubstituteNodeWithDAG(doomed, replacement); err != nil {
					return nil, err
				}
			}
		}
	}
	return mappedOps, nil
}

// bindTemplate copies tmpl and replaces each formal by the positionally
// matching actual: symbolic substitution when the actual is itself an
// expression, value binding otherwise.
func bindTemplate(formals []param.Symbol, tmpl *circuit.Circuit, actuals []param.Value) (*circuit.Circuit, error) {
	if len(formals) != len(actuals) {
		return nil, fmt.Errorf("%w: template takes %d, op carries %d",
			ErrParamCountMismatch, len(formals), len(actuals))
	}
	out := tmpl.Copy()
	err := out.MapGates(func(g gate.Gate) (gate.Gate, error) {
		ps := g.Params()
		if len(ps) == 0 {
			return g, nil
		}
		bound := make([]param.Value, len(ps))
		for i, v := range ps {
			for j, formal := range formals {
				v = param.Apply(v, formal, actuals[j])
			}
			bound[i] = v
		}
		return g.WithParams(bound)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
