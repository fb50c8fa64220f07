package circuit

import (
	"testing"

	"github.com/kegliz/qtranslate/qc/gate"
	"github.com/kegliz/qtranslate/qc/param"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCircuit_Append(t *testing.T) {
	assert := assert.New(t)
	c := New(2, 1)
	c.Append(gate.H(), 0).Append(gate.CX(), 0, 1).AppendMeasure(1, 0)

	assert.Equal(2, c.Qubits())
	assert.Equal(1, c.Clbits())
	require.Len(t, c.Operations(), 3)
	assert.Equal(map[string]int{"h": 1, "cx": 1, "measure": 1}, c.Names())
	assert.Equal(0, c.Operations()[2].Cbit)
	assert.Equal(-1, c.Operations()[0].Cbit)
}

func TestCircuit_RoundTrip(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	c := New(3, 2)
	c.Append(gate.H(), 0)
	c.Append(gate.CX(), 0, 1)
	c.Append(gate.CCX(), 0, 1, 2)
	c.AppendMeasure(2, 0)
	c.AppendMeasure(0, 1)

	d, err := c.ToDAG()
	require.NoError(err)
	assert.Equal(5, d.Size())

	back := FromDAG(d)
	require.Len(back.Operations(), 5)
	assert.Equal(c.Qubits(), back.Qubits())
	assert.Equal(c.Clbits(), back.Clbits())
	assert.Equal(c.Names(), back.Names())
	for i, op := range back.Operations() {
		assert.Equal(c.Operations()[i].G.Name(), op.G.Name(), "op %d", i)
		assert.Equal(c.Operations()[i].Qubits, op.Qubits, "op %d", i)
		assert.Equal(c.Operations()[i].Cbit, op.Cbit, "op %d", i)
	}
}

func TestCircuit_Symbols(t *testing.T) {
	th := param.Vector("th", 2)
	c := New(1, 0)
	c.Append(gate.U1(param.Sym(th[0])), 0)
	c.Append(gate.RZ(param.Sym(th[1])), 0)
	c.Append(gate.RZ(param.Sym(th[1])), 0) // duplicate symbol counted once

	assert.ElementsMatch(t, th, c.Symbols())
	assert.Empty(t, New(1, 0).Append(gate.H(), 0).Symbols())
}

func TestCircuit_MapGates(t *testing.T) {
	require := require.New(t)
	c := New(1, 0)
	c.Append(gate.RZ(param.Const(0.5)), 0)

	err := c.MapGates(func(g gate.Gate) (gate.Gate, error) {
		if len(g.Params()) == 0 {
			return g, nil
		}
		return g.WithParams([]param.Value{param.Const(1.5)})
	})
	require.NoError(err)
	f, _ := c.Operations()[0].G.Params()[0].Float()
	assert.Equal(t, 1.5, f)
}

func TestCircuit_Copy_Independent(t *testing.T) {
	c := New(1, 0)
	c.Append(gate.RZ(param.Const(0.5)), 0)

	cp := c.Copy()
	require.NoError(t, cp.MapGates(func(g gate.Gate) (gate.Gate, error) {
		return g.WithParams([]param.Value{param.Const(9)})
	}))

	f, _ := c.Operations()[0].G.Params()[0].Float()
	assert.Equal(t, 0.5, f, "copy mutation must not leak back")
}

func TestFromInstructions(t *testing.T) {
	c := FromInstructions(2, 0, gate.CZ().Definition())
	assert.Equal(t, map[string]int{"h": 2, "cx": 1}, c.Names())
	assert.Equal(t, 2, c.Qubits())
}
