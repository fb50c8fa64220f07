package translate

import (
	"math"
	"testing"

	"github.com/kegliz/qtranslate/qc/dag"
	"github.com/kegliz/qtranslate/qc/equiv"
	"github.com/kegliz/qtranslate/qc/gate"
	"github.com/kegliz/qtranslate/qc/param"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnroller_ExpandsToBasis(t *testing.T) {
	require := require.New(t)

	d := dag.New(2, 0)
	require.NoError(d.AddGate(gate.CZ(), []int{0, 1}))

	out, err := NewUnroller([]string{"u3", "cx"}).Run(d)
	require.NoError(err)

	allowed := map[string]bool{"u3": true, "cx": true}
	for name := range out.Names() {
		assert.True(t, allowed[name], "unexpected gate %s", name)
	}
	// cz -> h cx h -> u2 cx u2 -> u3 cx u3
	assert.Equal(t, 1, out.Names()["cx"])
	assert.Equal(t, 2, out.Names()["u3"])
	// Input untouched.
	assert.Equal(t, map[string]int{"cz": 1}, d.Names())
}

func TestUnroller_LeavesBasisAndIrreducibles(t *testing.T) {
	require := require.New(t)

	d := dag.New(1, 1)
	require.NoError(d.AddGate(gate.H(), []int{0}))
	require.NoError(d.AddMeasure(0, 0))

	out, err := NewUnroller([]string{"h"}).Run(d)
	require.NoError(err)
	assert.Equal(t, map[string]int{"h": 1, "measure": 1}, out.Names())
}

func TestUnroller_OpaquePassThrough(t *testing.T) {
	require := require.New(t)

	d := dag.New(1, 0)
	require.NoError(d.AddGate(gate.NewGate("mystery", 1), []int{0}))

	out, err := NewUnroller([]string{"u3", "cx"}).Run(d)
	require.NoError(err)
	assert.Equal(t, map[string]int{"mystery": 1}, out.Names())

	_, err = NewUnroller([]string{"u3", "cx"}, Strict()).Run(d)
	var missing *DefinitionMissingError
	require.ErrorAs(err, &missing)
	assert.Equal(t, "mystery", missing.Name)
}

func TestSynthesizeUnitaries_UsesDefinitionFallback(t *testing.T) {
	require := require.New(t)

	// A caller-defined gate with a definition but no library entry.
	myGate := gate.NewGateWithDefinition("mygate", 1, nil,
		func(ps []param.Value) []gate.Instruction {
			return []gate.Instruction{
				{G: gate.H(), Qubits: []int{0}, Cbit: -1},
				{G: gate.RZ(param.Const(math.Pi / 4)), Qubits: []int{0}, Cbit: -1},
			}
		})

	d := dag.New(1, 0)
	require.NoError(d.AddGate(myGate, []int{0}))

	pass := NewSynthesizeUnitaries(equiv.Session())
	out, err := pass.Run(d)
	require.NoError(err)

	allowed := map[string]bool{"u3": true, "cx": true}
	for name := range out.Names() {
		assert.True(t, allowed[name], "unexpected gate %s", name)
	}
	assert.Equal(t, 2, out.Names()["u3"])
}

func TestSynthesizeUnitaries_SkipsLibraryEntries(t *testing.T) {
	require := require.New(t)

	// h has a session-library entry, so the fallback must leave it to
	// the basis translator even though it also has a definition.
	d := dag.New(1, 0)
	require.NoError(d.AddGate(gate.H(), []int{0}))

	out, err := NewSynthesizeUnitaries(equiv.Session()).Run(d)
	require.NoError(err)
	assert.Equal(t, map[string]int{"h": 1}, out.Names())
}

func TestSynthesizeUnitaries_OpaquePassThrough(t *testing.T) {
	require := require.New(t)

	d := dag.New(1, 0)
	require.NoError(d.AddGate(gate.NewGate("mystery", 1), []int{0}))

	out, err := NewSynthesizeUnitaries(equiv.Session()).Run(d)
	require.NoError(err)
	assert.Equal(t, map[string]int{"mystery": 1}, out.Names())
}
