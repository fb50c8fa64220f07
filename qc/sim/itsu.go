package sim

import (
	"fmt"

	"github.com/itsubaki/q"
	"github.com/kegliz/qtranslate/qc/circuit"
)

// ItsuRunner plays circuits on the github.com/itsubaki/q statevector
// simulator. Only the gate names the backend exposes are supported;
// richer circuits must be translated down first.
type ItsuRunner struct{}

// Gates the Itsu backend accepts.
var itsuSupported = []string{
	"h", "x", "y", "z", "s", "cx", "cz", "swap", "ccx", "cswap", "measure",
}

func NewItsuRunner() *ItsuRunner { return &ItsuRunner{} }

func init() {
	MustRegisterRunner("itsu", func() OneShotRunner { return NewItsuRunner() })
}

// Supports reports whether every op of c is playable on this backend.
func (r *ItsuRunner) Supports(c *circuit.Circuit) error {
	supported := make(map[string]bool, len(itsuSupported))
	for _, name := range itsuSupported {
		supported[name] = true
	}
	for i, op := range c.Operations() {
		if !supported[op.G.Name()] {
			return fmt.Errorf("sim: unsupported gate %s at operation %d", op.G.Name(), i)
		}
	}
	return nil
}

// RunOnce plays the circuit exactly one time, returning the measured
// classical bit-string (little-endian).
func (r *ItsuRunner) RunOnce(c *circuit.Circuit) (string, error) {
	sim := q.New()
	qs := sim.ZeroWith(c.Qubits())
	cbits := make([]byte, c.Clbits())
	for i := range cbits {
		cbits[i] = '0'
	}

	for i, op := range c.Operations() {
		for _, qIndex := range op.Qubits {
			if qIndex < 0 || qIndex >= len(qs) {
				return "", fmt.Errorf("sim: invalid qubit index %d for gate %s (op %d)",
					qIndex, op.G.Name(), i)
			}
		}
		switch op.G.Name() {
		case "h":
			sim.H(qs[op.Qubits[0]])
		case "x":
			sim.X(qs[op.Qubits[0]])
		case "y":
			sim.Y(qs[op.Qubits[0]])
		case "z":
			sim.Z(qs[op.Qubits[0]])
		case "s":
			sim.S(qs[op.Qubits[0]])
		case "cx":
			sim.CNOT(qs[op.Qubits[0]], qs[op.Qubits[1]])
		case "cz":
			sim.CZ(qs[op.Qubits[0]], qs[op.Qubits[1]])
		case "swap":
			sim.Swap(qs[op.Qubits[0]], qs[op.Qubits[1]])
		case "ccx":
			sim.Toffoli(qs[op.Qubits[0]], qs[op.Qubits[1]], qs[op.Qubits[2]])
		case "cswap":
			ctrl, a, b := qs[op.Qubits[0]], qs[op.Qubits[1]], qs[op.Qubits[2]]
			// cswap = cx(b,a) ccx(ctrl,a,b) cx(b,a)
			sim.CNOT(b, a)
			sim.Toffoli(ctrl, a, b)
			sim.CNOT(b, a)
		case "measure":
			if op.Cbit < 0 || op.Cbit >= len(cbits) {
				return "", fmt.Errorf("sim: invalid classical bit index %d for measure (op %d)",
					op.Cbit, i)
			}
			m := sim.Measure(qs[op.Qubits[0]]) // collapses state
			if m.IsOne() {
				cbits[op.Cbit] = '1'
			} else {
				cbits[op.Cbit] = '0'
			}
		default:
			return "", fmt.Errorf("sim: unsupported gate %s (op %d)", op.G.Name(), i)
		}
	}
	return string(cbits), nil
}
