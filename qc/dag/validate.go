package dag

import "fmt"

// Validate checks structural invariants: every node sits on each of
// its wires exactly once, every chain entry resolves to a live node,
// and the derived graph is acyclic.
func (d *DAG) Validate() error {
	pos := make(map[NodeID]int, len(d.nodes))
	for q, chain := range d.byQ {
		for _, id := range chain {
			n, ok := d.nodes[id]
			if !ok {
				return fmt.Errorf("dag: qubit %d chain references dead node %d", q, id)
			}
			if !contains(n.Qubits, q) {
				return fmt.Errorf("dag: node %d on qubit %d chain but not wired to it", id, q)
			}
			pos[id]++
		}
	}
	for cb, chain := range d.byC {
		for _, id := range chain {
			n, ok := d.nodes[id]
			if !ok {
				return fmt.Errorf("dag: clbit %d chain references dead node %d", cb, id)
			}
			if !contains(n.Clbits, cb) {
				return fmt.Errorf("dag: node %d on clbit %d chain but not wired to it", id, cb)
			}
			pos[id]++
		}
	}
	for id, n := range d.nodes {
		if pos[id] != len(n.Qubits)+len(n.Clbits) {
			return fmt.Errorf("dag: node %d (%s) wire occupancy mismatch", id, n.G.Name())
		}
	}
	return d.acyclic()
}

// acyclic performs a DFS cycle-check over the derived adjacency.
func (d *DAG) acyclic() error {
	_, children := d.adjacency()
	state := make(map[NodeID]int) // 0 unvisited, 1 visiting, 2 done
	var dfs func(NodeID) error
	dfs = func(v NodeID) error {
		switch state[v] {
		case 1:
			return fmt.Errorf("dag: cycle detected involving node %d (%s)", v, d.nodes[v].G.Name())
		case 2:
			return nil
		}
		state[v] = 1
		for _, ch := range children[v] {
			if err := dfs(ch); err != nil {
				return err
			}
		}
		state[v] = 2
		return nil
	}
	for id := range d.nodes {
		if state[id] == 0 {
			if err := dfs(id); err != nil {
				return err
			}
		}
	}
	return nil
}

func contains(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
