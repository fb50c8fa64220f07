// Package circuit holds the sequential form of a circuit: an ordered
// instruction list over register-indexed wires. It round-trips
// losslessly with the graph form in qc/dag.
package circuit

import (
	"github.com/kegliz/qtranslate/qc/dag"
	"github.com/kegliz/qtranslate/qc/gate"
	"github.com/kegliz/qtranslate/qc/param"
)

// Operation is one gate instance: a gate plus the absolute wires it
// touches. Cbit is -1 except for measurement.
type Operation struct {
	G      gate.Gate
	Qubits []int
	Cbit   int
}

// Circuit is a mutable sequential circuit.
type Circuit struct {
	qubits int
	clbits int
	ops    []Operation
}

// New creates an empty circuit with the given wire counts.
func New(qb, cb int) *Circuit {
	return &Circuit{qubits: qb, clbits: cb}
}

// Qubits returns the number of qubit wires.
func (c *Circuit) Qubits() int { return c.qubits }

// Clbits returns the number of classical wires.
func (c *Circuit) Clbits() int { return c.clbits }

// Operations returns the instruction list in program order.
func (c *Circuit) Operations() []Operation { return c.ops }

// Append adds a gate application at the end of the program.
func (c *Circuit) Append(g gate.Gate, qubits ...int) *Circuit {
	c.ops = append(c.ops, Operation{G: g, Qubits: qubits, Cbit: -1})
	return c
}

// AppendMeasure adds a measurement of qubit q into classical bit cb.
func (c *Circuit) AppendMeasure(q, cb int) *Circuit {
	c.ops = append(c.ops, Operation{G: gate.Measure(), Qubits: []int{q}, Cbit: cb})
	return c
}

// Names returns the op counts keyed by gate name.
func (c *Circuit) Names() map[string]int {
	counts := make(map[string]int)
	for _, op := range c.ops {
		counts[op.G.Name()]++
	}
	return counts
}

// Symbols returns the free symbols appearing in any op parameter.
func (c *Circuit) Symbols() []param.Symbol {
	seen := make(map[param.Symbol]bool)
	var out []param.Symbol
	for _, op := range c.ops {
		for _, v := range op.G.Params() {
			for _, s := range v.Symbols() {
				if !seen[s] {
					seen[s] = true
					out = append(out, s)
				}
			}
		}
	}
	return out
}

// MapGates replaces each op's gate by fn's result, in place.
func (c *Circuit) MapGates(fn func(g gate.Gate) (gate.Gate, error)) error {
	for i := range c.ops {
		g, err := fn(c.ops[i].G)
		if err != nil {
			return err
		}
		c.ops[i].G = g
	}
	return nil
}

// Copy returns an independent circuit; gates are copied too.
func (c *Circuit) Copy() *Circuit {
	out := New(c.qubits, c.clbits)
	out.ops = make([]Operation, len(c.ops))
	for i, op := range c.ops {
		out.ops[i] = Operation{
			G:      op.G.Copy(),
			Qubits: append([]int(nil), op.Qubits...),
			Cbit:   op.Cbit,
		}
	}
	return out
}

// ToDAG converts the sequential program into graph form.
func (c *Circuit) ToDAG() (*dag.DAG, error) {
	d := dag.New(c.qubits, c.clbits)
	for _, op := range c.ops {
		var cargs []int
		if op.Cbit >= 0 {
			cargs = []int{op.Cbit}
		}
		if _, err := d.Apply(op.G, op.Qubits, cargs); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// FromDAG converts graph form back into a sequential program, in the
// DAG's topological order.
func FromDAG(d *dag.DAG) *Circuit {
	c := New(d.Qubits(), d.Clbits())
	for _, n := range d.OpNodes() {
		cbit := -1
		if len(n.Clbits) > 0 {
			cbit = n.Clbits[0]
		}
		c.ops = append(c.ops, Operation{
			G:      n.G.Copy(),
			Qubits: append([]int(nil), n.Qubits...),
			Cbit:   cbit,
		})
	}
	return c
}

// FromInstructions builds a circuit over qb qubits from a gate
// definition's relative-indexed instruction list.
func FromInstructions(qb, cb int, instrs []gate.Instruction) *Circuit {
	c := New(qb, cb)
	for _, in := range instrs {
		c.ops = append(c.ops, Operation{
			G:      in.G,
			Qubits: append([]int(nil), in.Qubits...),
			Cbit:   in.Cbit,
		})
	}
	return c
}
