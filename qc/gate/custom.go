package gate

import "github.com/kegliz/qtranslate/qc/param"

// NewGate creates a caller-defined opaque gate. Passes can rewrite it
// only through equivalence-library rules.
func NewGate(name string, arity int, params ...param.Value) Gate {
	return &parametric{
		name:   name,
		arity:  arity,
		params: append([]param.Value(nil), params...),
	}
}

// NewGateWithDefinition creates a caller-defined gate carrying an
// intrinsic decomposition, available to the definition-fallback
// passes. defn receives the gate's current parameters.
func NewGateWithDefinition(name string, arity int, params []param.Value, defn func(ps []param.Value) []Instruction) Gate {
	return &parametric{
		name:   name,
		arity:  arity,
		params: append([]param.Value(nil), params...),
		defn:   defn,
	}
}
