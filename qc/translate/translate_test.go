package translate

import (
	"io"
	"testing"

	"github.com/kegliz/qtranslate/internal/logger"
	"github.com/kegliz/qtranslate/qc/builder"
	"github.com/kegliz/qtranslate/qc/circuit"
	"github.com/kegliz/qtranslate/qc/dag"
	"github.com/kegliz/qtranslate/qc/equiv"
	"github.com/kegliz/qtranslate/qc/gate"
	"github.com/kegliz/qtranslate/qc/param"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quiet() Option {
	return WithLogger(logger.NewLogger(logger.LoggerOptions{Out: io.Discard}))
}

// newTestGateLib returns a library holding one rule for the 2-qubit
// "testgate": the given template.
func newTestGateLib(t *testing.T, tmpl *circuit.Circuit) *equiv.Library {
	t.Helper()
	lib := equiv.NewLibrary()
	require.NoError(t, lib.Add(gate.NewGate("testgate", 2), tmpl))
	return lib
}

func testGateDAG(t *testing.T) *dag.DAG {
	t.Helper()
	d := dag.New(2, 0)
	require.NoError(t, d.AddGate(gate.NewGate("testgate", 2), []int{0, 1}))
	return d
}

func TestRun_CustomGate_CxZCx(t *testing.T) {
	tmpl := circuit.New(2, 0)
	tmpl.Append(gate.CX(), 0, 1)
	tmpl.Append(gate.Z(), 0)
	tmpl.Append(gate.CX(), 0, 1)

	pass := NewBasisTranslator(newTestGateLib(t, tmpl), []string{"cx", "z"}, quiet())
	out, err := pass.Run(testGateDAG(t))
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"cx": 2, "z": 1}, out.Names())
	assert.NoError(t, out.Validate())
}

func TestRun_CustomGate_CzYCz(t *testing.T) {
	tmpl := circuit.New(2, 0)
	tmpl.Append(gate.CZ(), 0, 1)
	tmpl.Append(gate.Y(), 0)
	tmpl.Append(gate.CZ(), 0, 1)

	pass := NewBasisTranslator(newTestGateLib(t, tmpl), []string{"cz", "y"}, quiet())
	out, err := pass.Run(testGateDAG(t))
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"cz": 2, "y": 1}, out.Names())
}

func TestRun_ParameterizedGate_BindsTheta(t *testing.T) {
	require := require.New(t)

	th := param.Vector("th", 1)
	cxy := gate.NewGate("cxy", 2, param.Sym(th[0]))

	tmpl := circuit.New(2, 0)
	tmpl.Append(gate.CX(), 0, 1)
	tmpl.Append(gate.U1(param.Sym(th[0])), 0)
	tmpl.Append(gate.CX(), 0, 1)

	lib := equiv.NewLibrary()
	require.NoError(lib.Add(cxy, tmpl))

	bound, err := cxy.WithParams([]param.Value{param.Const(0.5)})
	require.NoError(err)
	d := dag.New(2, 0)
	require.NoError(d.AddGate(bound, []int{0, 1}))

	pass := NewBasisTranslator(lib, []string{"cx", "u1"}, quiet())
	out, err := pass.Run(d)
	require.NoError(err)
	assert.Equal(t, map[string]int{"cx": 2, "u1": 1}, out.Names())

	u1Nodes := out.NamedNodes("u1")
	require.Len(u1Nodes, 1)
	f, ok := u1Nodes[0].G.Params()[0].Float()
	require.True(ok)
	assert.Equal(t, 0.5, f)
}

func TestRun_HadamardToU2(t *testing.T) {
	require := require.New(t)

	d := dag.New(1, 0)
	require.NoError(d.AddGate(gate.H(), []int{0}))

	pass := NewBasisTranslator(equiv.Session(), []string{"u2"}, quiet())
	out, err := pass.Run(d)
	require.NoError(err)

	ops := out.OpNodes()
	require.Len(ops, 1)
	assert.Equal(t, "u2", ops[0].G.Name())

	phi, ok := ops[0].G.Params()[0].Float()
	require.True(ok)
	lambda, ok := ops[0].G.Params()[1].Float()
	require.True(ok)
	assert.Equal(t, 0.0, phi)
	assert.InDelta(t, 3.14159265358979, lambda, 1e-9)
}

func TestRun_ToffoliToCliffordT(t *testing.T) {
	require := require.New(t)

	d := dag.New(3, 0)
	require.NoError(d.AddGate(gate.CCX(), []int{0, 1, 2}))

	target := []string{"h", "cx", "t", "tdg"}
	pass := NewBasisTranslator(equiv.Session(), target, quiet())
	out, err := pass.Run(d)
	require.NoError(err)

	counts := out.Names()
	assert.Equal(t, 6, counts["cx"])
	allowed := map[string]bool{"h": true, "cx": true, "t": true, "tdg": true}
	for name := range counts {
		assert.True(t, allowed[name], "unexpected gate %s in output", name)
	}
	assert.NoError(t, out.Validate())
}

func TestRun_IrreducibleOnly_Unchanged(t *testing.T) {
	require := require.New(t)

	d := dag.New(1, 1)
	require.NoError(d.AddMeasure(0, 0))

	// Empty target basis: only the irreducibles remain acceptable.
	pass := NewBasisTranslator(equiv.Session(), nil, quiet())
	out, err := pass.Run(d)
	require.NoError(err)
	assert.Equal(t, map[string]int{"measure": 1}, out.Names())
	assert.Equal(t, 1, out.Size())
}

func TestRun_MultiHopComposition(t *testing.T) {
	require := require.New(t)

	// h reaches u3 only through u2: the composer must fold both plan
	// steps into one replacement.
	d := dag.New(1, 0)
	require.NoError(d.AddGate(gate.H(), []int{0}))

	pass := NewBasisTranslator(equiv.Session(), []string{"u3"}, quiet())
	out, err := pass.Run(d)
	require.NoError(err)

	ops := out.OpNodes()
	require.Len(ops, 1)
	require.Equal("u3", ops[0].G.Name())

	theta, _ := ops[0].G.Params()[0].Float()
	phi, _ := ops[0].G.Params()[1].Float()
	lambda, _ := ops[0].G.Params()[2].Float()
	assert.InDelta(t, 1.5707963267948966, theta, 1e-9)
	assert.Equal(t, 0.0, phi)
	assert.InDelta(t, 3.141592653589793, lambda, 1e-9)
}

func TestRun_MixedCircuit_SubsetOfTarget(t *testing.T) {
	require := require.New(t)

	b := builder.New(builder.Q(2), builder.C(2))
	b.H(0).CZ(0, 1).Measure(0, 0).Measure(1, 1)
	d, err := b.BuildDAG()
	require.NoError(err)

	pass := NewBasisTranslator(equiv.Session(), []string{"h", "x", "cx"}, quiet())
	out, err := pass.Run(d)
	require.NoError(err)

	allowed := map[string]bool{"h": true, "x": true, "cx": true, "measure": true}
	for name := range out.Names() {
		assert.True(t, allowed[name], "unexpected gate %s in output", name)
	}
	// cz -> h cx h, plus the untouched ops.
	assert.Equal(t, 1, out.Names()["cx"])
	assert.Equal(t, 3, out.Names()["h"])
	assert.Equal(t, 2, out.Names()["measure"])
}

func TestRun_InputNeverMutated(t *testing.T) {
	require := require.New(t)

	d := dag.New(1, 0)
	require.NoError(d.AddGate(gate.H(), []int{0}))

	pass := NewBasisTranslator(equiv.Session(), []string{"u2"}, quiet())
	_, err := pass.Run(d)
	require.NoError(err)
	assert.Equal(t, map[string]int{"h": 1}, d.Names(), "input dag must stay intact")
}

func TestRun_Unreachable(t *testing.T) {
	require := require.New(t)

	d := dag.New(1, 0)
	require.NoError(d.AddGate(gate.NewGate("mystery", 1), []int{0}))

	pass := NewBasisTranslator(equiv.NewLibrary(), []string{"cx"}, quiet())
	_, err := pass.Run(d)

	var unreachable *BasisUnreachableError
	require.ErrorAs(err, &unreachable)
	assert.Contains(t, unreachable.Source, "mystery")
	assert.Contains(t, unreachable.Target, "cx")
	// Failed runs leave the input untouched.
	assert.Equal(t, map[string]int{"mystery": 1}, d.Names())
}

func TestRun_BudgetExceeded(t *testing.T) {
	require := require.New(t)

	d := dag.New(1, 0)
	require.NoError(d.AddGate(gate.H(), []int{0}))

	pass := NewBasisTranslator(equiv.Session(), []string{"u3"}, quiet(), WithMaxIterations(1))
	_, err := pass.Run(d)
	assert.ErrorIs(t, err, ErrBudgetExceeded)
}

func TestRun_Deterministic(t *testing.T) {
	require := require.New(t)

	build := func() *dag.DAG {
		b := builder.New(builder.Q(3), builder.C(0))
		b.H(0).Toffoli(0, 1, 2).CZ(0, 1).H(2)
		d, err := b.BuildDAG()
		require.NoError(err)
		return d
	}

	pass := NewBasisTranslator(equiv.Session(), []string{"u3", "cx"}, quiet())
	first, err := pass.Run(build())
	require.NoError(err)
	firstOps := circuit.FromDAG(first).Operations()

	for i := 0; i < 3; i++ {
		again, err := pass.Run(build())
		require.NoError(err)
		ops := circuit.FromDAG(again).Operations()
		require.Len(ops, len(firstOps))
		for j := range ops {
			assert.Equal(t, firstOps[j].G.Name(), ops[j].G.Name(), "op %d name", j)
			assert.Equal(t, firstOps[j].Qubits, ops[j].Qubits, "op %d qubits", j)
			for k, p := range ops[j].G.Params() {
				assert.True(t, param.Equal(firstOps[j].G.Params()[k], p),
					"op %d param %d", j, k)
			}
		}
	}
}
