package equiv

import (
	"github.com/kegliz/qtranslate/qc/circuit"
	"github.com/kegliz/qtranslate/qc/gate"
	"github.com/kegliz/qtranslate/qc/param"
)

// StandardRules returns the static table of standard-gate
// equivalences, one rule per catalog gate that carries an intrinsic
// decomposition. Parameterized gates are instantiated over a fresh
// formal vector named after the gate, so their templates stay fully
// symbolic until binding time.
func StandardRules() []Rule {
	sym1 := func(name string) param.Value {
		return param.Sym(param.Vector(name, 1)[0])
	}

	gates := []gate.Gate{
		gate.I(),
		gate.H(),
		gate.X(),
		gate.Y(),
		gate.Z(),
		gate.S(),
		gate.Sdg(),
		gate.T(),
		gate.Tdg(),
		gate.CY(),
		gate.CZ(),
		gate.CH(),
		gate.Swap(),
		gate.CCX(),
		gate.CSwap(),
		gate.U1(sym1("u1")),
		func() gate.Gate {
			v := param.Vector("u2", 2)
			return gate.U2(param.Sym(v[0]), param.Sym(v[1]))
		}(),
		gate.RX(sym1("rx")),
		gate.RY(sym1("ry")),
		gate.RZ(sym1("rz")),
		gate.CRZ(sym1("crz")),
		gate.CU1(sym1("cu1")),
	}

	rules := make([]Rule, 0, len(gates))
	for _, g := range gates {
		defn := g.Definition()
		if defn == nil {
			continue
		}
		rules = append(rules, Rule{
			Gate:     g,
			Template: circuit.FromInstructions(g.Arity(), 0, defn),
		})
	}
	return rules
}
