package builder

import (
	"testing"

	"github.com/kegliz/qtranslate/qc/dag"
	"github.com/kegliz/qtranslate/qc/param"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_BuildCircuit(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	b := New(Q(2), C(2))
	b.H(0).CX(0, 1).Measure(0, 0).Measure(1, 1)

	c, err := b.BuildCircuit()
	require.NoError(err)
	assert.Equal(2, c.Qubits())
	assert.Equal(2, c.Clbits())
	assert.Equal(map[string]int{"h": 1, "cx": 1, "measure": 2}, c.Names())
}

func TestBuilder_Parameterized(t *testing.T) {
	require := require.New(t)

	b := New(Q(1))
	b.RZ(param.Const(0.5), 0).U1(param.Const(0.25), 0)

	c, err := b.BuildCircuit()
	require.NoError(err)
	require.Len(c.Operations(), 2)
	f, _ := c.Operations()[0].G.Params()[0].Float()
	assert.Equal(t, 0.5, f)
}

func TestBuilder_BailOut(t *testing.T) {
	assert := assert.New(t)

	b := New(Q(1))
	b.H(5).X(0) // first call fails; chain keeps going but stays failed

	_, err := b.BuildCircuit()
	assert.ErrorIs(err, dag.ErrBadQubit)

	b = New(Q(2))
	b.CX(0, 0) // wrong use caught at build level via dag conversion
	d, err := b.BuildDAG()
	assert.Nil(d)
	assert.Error(err)
}

func TestBuilder_DoubleBuild(t *testing.T) {
	b := New(Q(1))
	b.H(0)
	_, err := b.BuildCircuit()
	require.NoError(t, err)
	_, err = b.BuildCircuit()
	assert.Error(t, err)
}

func TestBuilder_BuildDAG(t *testing.T) {
	require := require.New(t)

	b := New(Q(3))
	b.Toffoli(0, 1, 2)
	d, err := b.BuildDAG()
	require.NoError(err)
	require.Equal(1, d.Size())
	assert.Equal(t, map[string]int{"ccx": 1}, d.Names())
}
