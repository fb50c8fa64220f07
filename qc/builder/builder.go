// Package builder implements a *fluent* declarative DSL for building
// quantum circuits.
package builder

import (
	"fmt"

	"github.com/kegliz/qtranslate/qc/circuit"
	"github.com/kegliz/qtranslate/qc/dag"
	"github.com/kegliz/qtranslate/qc/gate"
	"github.com/kegliz/qtranslate/qc/param"
)

// Builder accumulates gate applications and finalises them into a
// sequential circuit or a DAG.
type Builder interface {
	// Single-qubit gates
	H(q int) Builder
	X(q int) Builder
	Y(q int) Builder
	Z(q int) Builder
	S(q int) Builder
	T(q int) Builder
	Tdg(q int) Builder
	U1(lambda param.Value, q int) Builder
	U2(phi, lambda param.Value, q int) Builder
	U3(theta, phi, lambda param.Value, q int) Builder
	RX(theta param.Value, q int) Builder
	RY(theta param.Value, q int) Builder
	RZ(phi param.Value, q int) Builder

	// Multi-qubit gates
	CX(ctrl, tgt int) Builder
	CZ(ctrl, tgt int) Builder
	CRZ(theta param.Value, ctrl, tgt int) Builder
	SWAP(q1, q2 int) Builder
	Toffoli(c1, c2, tgt int) Builder
	Fredkin(ctrl, t1, t2 int) Builder

	// Any catalog or custom gate
	Append(g gate.Gate, qs ...int) Builder

	// Measurement
	Measure(q, cbit int) Builder

	// Finalise. The builder becomes invalid after either call.
	BuildCircuit() (*circuit.Circuit, error)
	BuildDAG() (*dag.DAG, error)
}

// New returns a fresh Builder with the requested qubits/classical bits.
func New(opts ...Option) Builder { return newBuilder(opts...) }

// ---------------------------- implementation -------------------------

type b struct {
	c     *circuit.Circuit
	err   error
	built bool
}

func newBuilder(opts ...Option) *b {
	cfg := config{qubits: 1}
	for _, o := range opts {
		o(&cfg)
	}
	return &b{c: circuit.New(cfg.qubits, cfg.clbits)}
}

// helper: bail-out pattern
func (b *b) bail(err error) Builder {
	if b.err == nil {
		b.err = err
	}
	return b
}

func (b *b) add(g gate.Gate, qs ...int) Builder {
	if b.built || b.err != nil {
		return b
	}
	for _, q := range qs {
		if q < 0 || q >= b.c.Qubits() {
			return b.bail(dag.ErrBadQubit)
		}
	}
	if len(qs) != g.Arity() {
		return b.bail(dag.ErrSpan)
	}
	b.c.Append(g, qs...)
	return b
}

func (b *b) H(q int) Builder   { return b.add(gate.H(), q) }
func (b *b) X(q int) Builder   { return b.add(gate.X(), q) }
func (b *b) Y(q int) Builder   { return b.add(gate.Y(), q) }
func (b *b) Z(q int) Builder   { return b.add(gate.Z(), q) }
func (b *b) S(q int) Builder   { return b.add(gate.S(), q) }
func (b *b) T(q int) Builder   { return b.add(gate.T(), q) }
func (b *b) Tdg(q int) Builder { return b.add(gate.Tdg(), q) }

func (b *b) U1(lambda param.Value, q int) Builder { return b.add(gate.U1(lambda), q) }
func (b *b) U2(phi, lambda param.Value, q int) Builder {
	return b.add(gate.U2(phi, lambda), q)
}
func (b *b) U3(theta, phi, lambda param.Value, q int) Builder {
	return b.add(gate.U3(theta, phi, lambda), q)
}
func (b *b) RX(theta param.Value, q int) Builder { return b.add(gate.RX(theta), q) }
func (b *b) RY(theta param.Value, q int) Builder { return b.add(gate.RY(theta), q) }
func (b *b) RZ(phi param.Value, q int) Builder   { return b.add(gate.RZ(phi), q) }

func (b *b) CX(c, t int) Builder { return b.add(gate.CX(), c, t) }
func (b *b) CZ(c, t int) Builder { return b.add(gate.CZ(), c, t) }
func (b *b) CRZ(theta param.Value, c, t int) Builder {
	return b.add(gate.CRZ(theta), c, t)
}
func (b *b) SWAP(q1, q2 int) Builder       { return b.add(gate.Swap(), q1, q2) }
func (b *b) Toffoli(c1, c2, t int) Builder { return b.add(gate.CCX(), c1, c2, t) }
func (b *b) Fredkin(c, t1, t2 int) Builder { return b.add(gate.CSwap(), c, t1, t2) }

func (b *b) Append(g gate.Gate, qs ...int) Builder { return b.add(g, qs...) }

func (b *b) Measure(q, cbit int) Builder {
	if b.built || b.err != nil {
		return b
	}
	if q < 0 || q >= b.c.Qubits() {
		return b.bail(dag.ErrBadQubit)
	}
	if cbit < 0 || cbit >= b.c.Clbits() {
		return b.bail(dag.ErrBadClbit)
	}
	b.c.AppendMeasure(q, cbit)
	return b
}

// BuildCircuit returns the accumulated sequential circuit.
func (b *b) BuildCircuit() (*circuit.Circuit, error) {
	if b.built {
		return nil, fmt.Errorf("builder: BuildCircuit or BuildDAG already called")
	}
	if b.err != nil {
		return nil, b.err
	}
	b.built = true
	return b.c, nil
}

// BuildDAG is syntactic sugar for callers that go straight to the
// graph form.
func (b *b) BuildDAG() (*dag.DAG, error) {
	c, err := b.BuildCircuit()
	if err != nil {
		return nil, err
	}
	return c.ToDAG()
}

// ------------------------- options -----------------------------------

type config struct {
	qubits int
	clbits int
}
type Option func(*config)

func Q(n int) Option { return func(c *config) { c.qubits = n } }
func C(n int) Option { return func(c *config) { c.clbits = n } }
