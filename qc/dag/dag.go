// Package dag holds the graph form of a circuit: op nodes threaded on
// per-wire chains. Each wire (qubit or classical bit) carries a total
// order of the nodes touching it; graph edges and topological order
// derive from those chains, which keeps node substitution a matter of
// list surgery instead of edge rewiring.
package dag

import (
	"sync/atomic"

	"github.com/kegliz/qtranslate/qc/gate"
)

// NodeID is stable across passes within a DAG.
type NodeID uint64

var idCtr uint64 // atomic counter for NodeIDs

func nextID() NodeID { return NodeID(atomic.AddUint64(&idCtr, 1)) }

// Node holds one DAG vertex: a gate instance with the absolute qubit
// and classical wires it touches.
type Node struct {
	ID     NodeID
	G      gate.Gate
	Qubits []int
	Clbits []int
}

// DAG is a mutable circuit graph.
type DAG struct {
	qubits int
	clbits int

	nodes map[NodeID]*Node
	byQ   [][]NodeID // per-qubit chronological chain
	byC   [][]NodeID // per-clbit chronological chain
}

// New creates an empty DAG with the given wire counts.
func New(qb, cb int) *DAG {
	return &DAG{
		qubits: qb,
		clbits: cb,
		nodes:  make(map[NodeID]*Node),
		byQ:    make([][]NodeID, qb),
		byC:    make([][]NodeID, cb),
	}
}

// Qubits returns the number of qubit wires.
func (d *DAG) Qubits() int { return d.qubits }

// Clbits returns the number of classical wires.
func (d *DAG) Clbits() int { return d.clbits }

// Size returns the number of op nodes.
func (d *DAG) Size() int { return len(d.nodes) }

// Apply appends an operation at the back of the DAG, after the last op
// on each of its wires.
func (d *DAG) Apply(g gate.Gate, qargs []int, cargs []int) (*Node, error) {
	if err := d.checkWires(g, qargs, cargs); err != nil {
		return nil, err
	}
	n := &Node{
		ID:     nextID(),
		G:      g,
		Qubits: append([]int(nil), qargs...),
		Clbits: append([]int(nil), cargs...),
	}
	d.nodes[n.ID] = n
	for _, q := range qargs {
		d.byQ[q] = append(d.byQ[q], n.ID)
	}
	for _, cb := range cargs {
		d.byC[cb] = append(d.byC[cb], n.ID)
	}
	return n, nil
}

// AddGate appends a pure gate operation (no classical wires).
func (d *DAG) AddGate(g gate.Gate, qs []int) error {
	_, err := d.Apply(g, qs, nil)
	return err
}

// AddMeasure appends a measurement of qubit q into classical bit c.
func (d *DAG) AddMeasure(q, cb int) error {
	_, err := d.Apply(gate.Measure(), []int{q}, []int{cb})
	return err
}

// Names returns the op-node counts keyed by gate name.
func (d *DAG) Names() map[string]int {
	counts := make(map[string]int)
	for _, n := range d.nodes {
		counts[n.G.Name()]++
	}
	return counts
}

// NamedNodes returns the op nodes named name, in topological order.
func (d *DAG) NamedNodes(name string) []*Node {
	var out []*Node
	for _, n := range d.OpNodes() {
		if n.G.Name() == name {
			out = append(out, n)
		}
	}
	return out
}

// SubstituteNode replaces the operation of node n with g in place.
// The new gate must span the same wires.
func (d *DAG) SubstituteNode(n *Node, g gate.Gate) error {
	cur, ok := d.nodes[n.ID]
	if !ok || cur != n {
		return ErrNodeNotFound
	}
	if g.Arity() != len(n.Qubits) {
		return ErrSpan
	}
	n.G = g.Copy()
	return nil
}

// SubstituteNodeWithDAG splices the ops of repl into the place of node
// n, wiring positionally: repl's qubit i joins n.Qubits[i], repl's
// clbit j joins n.Clbits[j]. repl is not modified.
func (d *DAG) SubstituteNodeWithDAG(n *Node, repl *DAG) error {
	cur, ok := d.nodes[n.ID]
	if !ok || cur != n {
		return ErrNodeNotFound
	}
	if repl.qubits != len(n.Qubits) || repl.clbits > len(n.Clbits) {
		return ErrWireMismatch
	}

	// Fresh copies of the replacement ops on the host's wires.
	idMap := make(map[NodeID]NodeID, len(repl.nodes))
	for _, rn := range repl.OpNodes() {
		nn := &Node{
			ID:     nextID(),
			G:      rn.G.Copy(),
			Qubits: make([]int, len(rn.Qubits)),
			Clbits: make([]int, len(rn.Clbits)),
		}
		for i, q := range rn.Qubits {
			nn.Qubits[i] = n.Qubits[q]
		}
		for i, cb := range rn.Clbits {
			nn.Clbits[i] = n.Clbits[cb]
		}
		idMap[rn.ID] = nn.ID
		d.nodes[nn.ID] = nn
	}

	// Splice each wire chain: n's slot becomes repl's chain for the
	// positionally matching wire.
	for i, q := range n.Qubits {
		d.byQ[q] = spliceChain(d.byQ[q], n.ID, mapChain(repl.byQ[i], idMap))
	}
	for i := range n.Clbits {
		var mapped []NodeID
		if i < repl.clbits {
			mapped = mapChain(repl.byC[i], idMap)
		}
		d.byC[n.Clbits[i]] = spliceChain(d.byC[n.Clbits[i]], n.ID, mapped)
	}

	delete(d.nodes, n.ID)
	return nil
}

// Copy returns a deep copy. Node IDs are retained, so positions found
// on the original do not transfer to the copy's *Node pointers.
func (d *DAG) Copy() *DAG {
	c := New(d.qubits, d.clbits)
	for id, n := range d.nodes {
		c.nodes[id] = &Node{
			ID:     n.ID,
			G:      n.G.Copy(),
			Qubits: append([]int(nil), n.Qubits...),
			Clbits: append([]int(nil), n.Clbits...),
		}
	}
	for q := range d.byQ {
		c.byQ[q] = append([]NodeID(nil), d.byQ[q]...)
	}
	for cb := range d.byC {
		c.byC[cb] = append([]NodeID(nil), d.byC[cb]...)
	}
	return c
}

// checkWires validates gate span and wire indices.
func (d *DAG) checkWires(g gate.Gate, qs []int, cs []int) error {
	if len(qs) != g.Arity() {
		return ErrSpan
	}
	seen := make(map[int]bool, len(qs))
	for _, q := range qs {
		if q < 0 || q >= d.qubits {
			return ErrBadQubit
		}
		if seen[q] {
			return ErrDuplicateQubit
		}
		seen[q] = true
	}
	for _, cb := range cs {
		if cb < 0 || cb >= d.clbits {
			return ErrBadClbit
		}
	}
	return nil
}

func mapChain(chain []NodeID, idMap map[NodeID]NodeID) []NodeID {
	out := make([]NodeID, len(chain))
	for i, id := range chain {
		out[i] = idMap[id]
	}
	return out
}

func spliceChain(chain []NodeID, victim NodeID, repl []NodeID) []NodeID {
	for i, id := range chain {
		if id == victim {
			out := make([]NodeID, 0, len(chain)-1+len(repl))
			out = append(out, chain[:i]...)
			out = append(out, repl...)
			out = append(out, chain[i+1:]...)
			return out
		}
	}
	return chain
}
