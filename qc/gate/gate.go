// Package gate defines the operation identity the rest of the toolkit
// builds on: a name, an arity, an ordered parameter list and an
// optional intrinsic decomposition.
package gate

import (
	"strings"

	"github.com/kegliz/qtranslate/qc/param"
)

// Gate is the *minimal* contract each quantum operation must fulfil.
// The interface is tiny on purpose so passes and simulators can depend
// on it without pulling in rendering or transport APIs.
type Gate interface {
	Name() string          // canonical lowercase name e.g. "h", "cx"
	Arity() int            // how many qubits it acts on
	Params() []param.Value // ordered parameters, possibly symbolic
	// Definition returns the gate's intrinsic decomposition over
	// Arity() relative qubit indices, or nil for opaque gates.
	Definition() []Instruction
	// WithParams returns an independent instance carrying ps in place
	// of the current parameters. Length must match Params().
	WithParams(ps []param.Value) (Gate, error)
	Copy() Gate // independent instance sharing no mutable state
}

// Instruction is one step of a gate definition: a gate applied to
// relative qubit indices within the defining register. Cbit is -1
// except for measurement.
type Instruction struct {
	G      Gate
	Qubits []int
	Cbit   int
}

// Controllable is implemented by gates that know their singly-
// controlled variant.
type Controllable interface {
	Control() Gate
}

// Invertible is implemented by gates with an algebraically trivial
// inverse (parameter negation or a dagger partner).
type Invertible interface {
	Inverse() Gate
}

// ErrUnknownGate is returned by Factory when the label isn't recognised.
type ErrUnknownGate struct{ Name string }

func (e ErrUnknownGate) Error() string { return "gate: unknown gate " + e.Name }

// ErrParamArity is returned when a gate is given the wrong number of
// parameters.
type ErrParamArity struct {
	Name string
	Want int
	Got  int
}

func (e ErrParamArity) Error() string {
	return "gate: " + e.Name + " parameter count mismatch"
}

// Factory returns a gate by any of its common aliases, applying the
// given parameters where the gate takes some.
//
//	g, _ := gate.Factory("cnot")           // -> same instance as CX()
//	g, _ := gate.Factory("rz", param.Const(0.5))
func Factory(name string, params ...param.Value) (Gate, error) {
	fixedGate := func(g Gate) (Gate, error) {
		if len(params) != 0 {
			return nil, ErrParamArity{Name: g.Name(), Want: 0, Got: len(params)}
		}
		return g, nil
	}
	oneParam := func(mk func(param.Value) Gate, nm string) (Gate, error) {
		if len(params) != 1 {
			return nil, ErrParamArity{Name: nm, Want: 1, Got: len(params)}
		}
		return mk(params[0]), nil
	}

	switch norm(name) {
	case "i", "id", "iden":
		return fixedGate(I())
	case "h":
		return fixedGate(H())
	case "x":
		return fixedGate(X())
	case "y":
		return fixedGate(Y())
	case "z":
		return fixedGate(Z())
	case "s":
		return fixedGate(S())
	case "sdg":
		return fixedGate(Sdg())
	case "t":
		return fixedGate(T())
	case "tdg":
		return fixedGate(Tdg())
	case "cx", "cnot":
		return fixedGate(CX())
	case "cy":
		return fixedGate(CY())
	case "cz":
		return fixedGate(CZ())
	case "ch":
		return fixedGate(CH())
	case "swap":
		return fixedGate(Swap())
	case "ccx", "toffoli":
		return fixedGate(CCX())
	case "cswap", "fredkin":
		return fixedGate(CSwap())
	case "u1":
		return oneParam(U1, "u1")
	case "u2":
		if len(params) != 2 {
			return nil, ErrParamArity{Name: "u2", Want: 2, Got: len(params)}
		}
		return U2(params[0], params[1]), nil
	case "u3":
		if len(params) != 3 {
			return nil, ErrParamArity{Name: "u3", Want: 3, Got: len(params)}
		}
		return U3(params[0], params[1], params[2]), nil
	case "rx":
		return oneParam(RX, "rx")
	case "ry":
		return oneParam(RY, "ry")
	case "rz":
		return oneParam(RZ, "rz")
	case "crz":
		return oneParam(CRZ, "crz")
	case "cu1":
		return oneParam(CU1, "cu1")
	case "m", "meas", "measure":
		return fixedGate(Measure())
	case "reset":
		return fixedGate(Reset())
	case "barrier":
		return fixedGate(Barrier())
	case "snapshot":
		return fixedGate(Snapshot())
	}
	return nil, ErrUnknownGate{name}
}

func norm(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
