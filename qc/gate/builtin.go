package gate

import (
	"math"

	"github.com/kegliz/qtranslate/qc/param"
)

// ---------- immutable value objects ----------------------------------

// fixed is a parameterless gate. Instances are shared singletons;
// Copy returns the receiver. (Reduces allocations and supports pointer
// equality tricks in passes.)
type fixed struct {
	name  string
	arity int
	defn  func() []Instruction // nil for opaque gates
	ctl   func() Gate          // nil when no controlled form is known
	inv   func() Gate          // nil when not trivially invertible
}

func (g *fixed) Name() string          { return g.name }
func (g *fixed) Arity() int            { return g.arity }
func (g *fixed) Params() []param.Value { return nil }
func (g *fixed) Copy() Gate            { return g }

func (g *fixed) Definition() []Instruction {
	if g.defn == nil {
		return nil
	}
	return g.defn()
}

func (g *fixed) WithParams(ps []param.Value) (Gate, error) {
	if len(ps) != 0 {
		return nil, ErrParamArity{Name: g.name, Want: 0, Got: len(ps)}
	}
	return g, nil
}

func (g *fixed) Control() Gate {
	if g.ctl == nil {
		return nil
	}
	return g.ctl()
}

func (g *fixed) Inverse() Gate {
	if g.inv == nil {
		return g // self-inverse by default for the fixed catalog
	}
	return g.inv()
}

// parametric is a gate carrying an ordered parameter list, each entry a
// scalar or a symbolic expression.
type parametric struct {
	name   string
	arity  int
	params []param.Value
	defn   func(ps []param.Value) []Instruction
	ctl    func(ps []param.Value) Gate
	inv    func(ps []param.Value) Gate
}

func (g *parametric) Name() string          { return g.name }
func (g *parametric) Arity() int            { return g.arity }
func (g *parametric) Params() []param.Value { return g.params }

func (g *parametric) Definition() []Instruction {
	if g.defn == nil {
		return nil
	}
	return g.defn(g.params)
}

func (g *parametric) WithParams(ps []param.Value) (Gate, error) {
	if len(ps) != len(g.params) {
		return nil, ErrParamArity{Name: g.name, Want: len(g.params), Got: len(ps)}
	}
	c := *g
	c.params = append([]param.Value(nil), ps...)
	return &c, nil
}

func (g *parametric) Copy() Gate {
	c := *g
	c.params = append([]param.Value(nil), g.params...)
	return &c
}

func (g *parametric) Control() Gate {
	if g.ctl == nil {
		return nil
	}
	return g.ctl(g.params)
}

func (g *parametric) Inverse() Gate {
	if g.inv == nil {
		return nil
	}
	return g.inv(g.params)
}

// irreducible ops (measurement, reset, barrier, snapshot) are never
// rewritten by any pass. They carry no definition.
type irreducible struct {
	name  string
	arity int
}

func (g *irreducible) Name() string              { return g.name }
func (g *irreducible) Arity() int                { return g.arity }
func (g *irreducible) Params() []param.Value     { return nil }
func (g *irreducible) Definition() []Instruction { return nil }
func (g *irreducible) Copy() Gate                { return g }

func (g *irreducible) WithParams(ps []param.Value) (Gate, error) {
	if len(ps) != 0 {
		return nil, ErrParamArity{Name: g.name, Want: 0, Got: len(ps)}
	}
	return g, nil
}

// ---------- definition helpers ---------------------------------------

func ins(g Gate, qs ...int) Instruction {
	return Instruction{G: g, Qubits: qs, Cbit: -1}
}

func c(v float64) param.Value { return param.Const(v) }

// ---------- constructors (singletons for the fixed catalog) ----------

var (
	iGate        *fixed
	hGate        *fixed
	xGate        *fixed
	yGate        *fixed
	zGate        *fixed
	sGate        *fixed
	sdgGate      *fixed
	tGate        *fixed
	tdgGate      *fixed
	cxGate       *fixed
	cyGate       *fixed
	czGate       *fixed
	chGate       *fixed
	swapGate     *fixed
	ccxGate      *fixed
	cswapGate    *fixed
	measureGate  *irreducible
	resetGate    *irreducible
	barrierGate  *irreducible
	snapshotGate *irreducible
)

func init() {
	iGate = &fixed{name: "i", arity: 1, defn: func() []Instruction {
		return []Instruction{ins(U3(c(0), c(0), c(0)), 0)}
	}}
	hGate = &fixed{name: "h", arity: 1,
		defn: func() []Instruction {
			return []Instruction{ins(U2(c(0), c(math.Pi)), 0)}
		},
		ctl: func() Gate { return CH() },
	}
	xGate = &fixed{name: "x", arity: 1,
		defn: func() []Instruction {
			return []Instruction{ins(U3(c(math.Pi), c(0), c(math.Pi)), 0)}
		},
		ctl: func() Gate { return CX() },
	}
	yGate = &fixed{name: "y", arity: 1,
		defn: func() []Instruction {
			return []Instruction{ins(U3(c(math.Pi), c(math.Pi/2), c(math.Pi/2)), 0)}
		},
		ctl: func() Gate { return CY() },
	}
	zGate = &fixed{name: "z", arity: 1,
		defn: func() []Instruction {
			return []Instruction{ins(U1(c(math.Pi)), 0)}
		},
		ctl: func() Gate { return CZ() },
	}
	sGate = &fixed{name: "s", arity: 1,
		defn: func() []Instruction {
			return []Instruction{ins(U1(c(math.Pi/2)), 0)}
		},
		inv: func() Gate { return Sdg() },
	}
	sdgGate = &fixed{name: "sdg", arity: 1,
		defn: func() []Instruction {
			return []Instruction{ins(U1(c(-math.Pi/2)), 0)}
		},
		inv: func() Gate { return S() },
	}
	tGate = &fixed{name: "t", arity: 1,
		defn: func() []Instruction {
			return []Instruction{ins(U1(c(math.Pi/4)), 0)}
		},
		inv: func() Gate { return Tdg() },
	}
	tdgGate = &fixed{name: "tdg", arity: 1,
		defn: func() []Instruction {
			return []Instruction{ins(U1(c(-math.Pi/4)), 0)}
		},
		inv: func() Gate { return T() },
	}

	cxGate = &fixed{name: "cx", arity: 2,
		ctl: func() Gate { return CCX() },
	}
	cyGate = &fixed{name: "cy", arity: 2, defn: func() []Instruction {
		return []Instruction{
			ins(Sdg(), 1),
			ins(CX(), 0, 1),
			ins(S(), 1),
		}
	}}
	czGate = &fixed{name: "cz", arity: 2, defn: func() []Instruction {
		return []Instruction{
			ins(H(), 1),
			ins(CX(), 0, 1),
			ins(H(), 1),
		}
	}}
	chGate = &fixed{name: "ch", arity: 2, defn: func() []Instruction {
		return []Instruction{
			ins(H(), 1),
			ins(Sdg(), 1),
			ins(CX(), 0, 1),
			ins(H(), 1),
			ins(T(), 1),
			ins(CX(), 0, 1),
			ins(T(), 1),
			ins(H(), 1),
			ins(S(), 1),
			ins(X(), 1),
			ins(S(), 0),
		}
	}}
	swapGate = &fixed{name: "swap", arity: 2,
		defn: func() []Instruction {
			return []Instruction{
				ins(CX(), 0, 1),
				ins(CX(), 1, 0),
				ins(CX(), 0, 1),
			}
		},
		ctl: func() Gate { return CSwap() },
	}

	ccxGate = &fixed{name: "ccx", arity: 3, defn: func() []Instruction {
		return []Instruction{
			ins(H(), 2),
			ins(CX(), 1, 2),
			ins(Tdg(), 2),
			ins(CX(), 0, 2),
			ins(T(), 2),
			ins(CX(), 1, 2),
			ins(Tdg(), 2),
			ins(CX(), 0, 2),
			ins(T(), 1),
			ins(T(), 2),
			ins(H(), 2),
			ins(CX(), 0, 1),
			ins(T(), 0),
			ins(Tdg(), 1),
			ins(CX(), 0, 1),
		}
	}}
	cswapGate = &fixed{name: "cswap", arity: 3, defn: func() []Instruction {
		return []Instruction{
			ins(CX(), 2, 1),
			ins(CCX(), 0, 1, 2),
			ins(CX(), 2, 1),
		}
	}}

	measureGate = &irreducible{name: "measure", arity: 1}
	resetGate = &irreducible{name: "reset", arity: 1}
	barrierGate = &irreducible{name: "barrier", arity: 1}
	snapshotGate = &irreducible{name: "snapshot", arity: 1}
}

// Public accessors return the shared immutable value.
func I() Gate        { return iGate }
func H() Gate        { return hGate }
func X() Gate        { return xGate }
func Y() Gate        { return yGate }
func Z() Gate        { return zGate }
func S() Gate        { return sGate }
func Sdg() Gate      { return sdgGate }
func T() Gate        { return tGate }
func Tdg() Gate      { return tdgGate }
func CX() Gate       { return cxGate }
func CY() Gate       { return cyGate }
func CZ() Gate       { return czGate }
func CH() Gate       { return chGate }
func Swap() Gate     { return swapGate }
func CCX() Gate      { return ccxGate }
func CSwap() Gate    { return cswapGate }
func Measure() Gate  { return measureGate }
func Reset() Gate    { return resetGate }
func Barrier() Gate  { return barrierGate }
func Snapshot() Gate { return snapshotGate }

// ---------- parameterized constructors --------------------------------

// U1 is a phase rotation about Z by lambda.
func U1(lambda param.Value) Gate {
	return &parametric{
		name: "u1", arity: 1, params: []param.Value{lambda},
		defn: func(ps []param.Value) []Instruction {
			return []Instruction{ins(U3(c(0), c(0), ps[0]), 0)}
		},
		ctl: func(ps []param.Value) Gate { return CU1(ps[0]) },
		inv: func(ps []param.Value) Gate { return U1(param.Neg(ps[0])) },
	}
}

// U2 is a single-qubit rotation about the X+Z axis.
func U2(phi, lambda param.Value) Gate {
	return &parametric{
		name: "u2", arity: 1, params: []param.Value{phi, lambda},
		defn: func(ps []param.Value) []Instruction {
			return []Instruction{ins(U3(c(math.Pi/2), ps[0], ps[1]), 0)}
		},
		inv: func(ps []param.Value) Gate {
			return U2(param.Shift(param.Neg(ps[1]), -math.Pi),
				param.Shift(param.Neg(ps[0]), math.Pi))
		},
	}
}

// U3 is the generic single-qubit rotation. It is opaque: every other
// single-qubit gate ultimately defines itself in terms of u3.
func U3(theta, phi, lambda param.Value) Gate {
	return &parametric{
		name: "u3", arity: 1, params: []param.Value{theta, phi, lambda},
		inv: func(ps []param.Value) Gate {
			return U3(param.Neg(ps[0]), param.Neg(ps[2]), param.Neg(ps[1]))
		},
	}
}

// RX rotates about the x-axis by theta.
func RX(theta param.Value) Gate {
	return &parametric{
		name: "rx", arity: 1, params: []param.Value{theta},
		defn: func(ps []param.Value) []Instruction {
			return []Instruction{ins(U3(ps[0], c(-math.Pi/2), c(math.Pi/2)), 0)}
		},
		inv: func(ps []param.Value) Gate { return RX(param.Neg(ps[0])) },
	}
}

// RY rotates about the y-axis by theta.
func RY(theta param.Value) Gate {
	return &parametric{
		name: "ry", arity: 1, params: []param.Value{theta},
		defn: func(ps []param.Value) []Instruction {
			return []Instruction{ins(U3(ps[0], c(0), c(0)), 0)}
		},
		inv: func(ps []param.Value) Gate { return RY(param.Neg(ps[0])) },
	}
}

// RZ rotates about the z-axis by phi.
//
//	gate rz(phi) a { u1(phi) a; }
func RZ(phi param.Value) Gate {
	return &parametric{
		name: "rz", arity: 1, params: []param.Value{phi},
		defn: func(ps []param.Value) []Instruction {
			return []Instruction{ins(U1(ps[0]), 0)}
		},
		ctl: func(ps []param.Value) Gate { return CRZ(ps[0]) },
		inv: func(ps []param.Value) Gate { return RZ(param.Neg(ps[0])) },
	}
}

// CRZ is a controlled z-rotation.
//
//	gate crz(lambda) a,b { u1(lambda/2) b; cx a,b; u1(-lambda/2) b; cx a,b; }
func CRZ(theta param.Value) Gate {
	return &parametric{
		name: "crz", arity: 2, params: []param.Value{theta},
		defn: func(ps []param.Value) []Instruction {
			half := param.Scale(ps[0], 0.5)
			return []Instruction{
				ins(U1(half), 1),
				ins(CX(), 0, 1),
				ins(U1(param.Neg(half)), 1),
				ins(CX(), 0, 1),
			}
		},
		inv: func(ps []param.Value) Gate { return CRZ(param.Neg(ps[0])) },
	}
}

// CU1 is a controlled phase rotation.
func CU1(theta param.Value) Gate {
	return &parametric{
		name: "cu1", arity: 2, params: []param.Value{theta},
		defn: func(ps []param.Value) []Instruction {
			half := param.Scale(ps[0], 0.5)
			return []Instruction{
				ins(U1(half), 0),
				ins(CX(), 0, 1),
				ins(U1(param.Neg(half)), 1),
				ins(CX(), 0, 1),
				ins(U1(half), 1),
			}
		},
		inv: func(ps []param.Value) Gate { return CU1(param.Neg(ps[0])) },
	}
}
