package translate

import (
	"testing"
	"time"

	"github.com/kegliz/qtranslate/qc/circuit"
	"github.com/kegliz/qtranslate/qc/equiv"
	"github.com/kegliz/qtranslate/qc/gate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func standardLib(t *testing.T) *equiv.Library {
	t.Helper()
	lib := equiv.NewLibrary()
	for _, r := range equiv.StandardRules() {
		require.NoError(t, lib.Add(r.Gate, r.Template))
	}
	return lib
}

func basisSet(names ...string) map[string]bool {
	out := make(map[string]bool, len(names))
	for _, n := range names {
		out[n] = true
	}
	return out
}

func TestBasisSearch_OneHop(t *testing.T) {
	lib := standardLib(t)
	plan, err := basisSearch(lib, basisSet("h"), basisSet("u2"), basisHeuristic, budget{})
	require.NoError(t, err)
	require.Len(t, plan, 1)
	assert.Equal(t, "h", plan[0].Name)
	assert.Equal(t, map[string]int{"u2": 1}, plan[0].Template.Names())
}

func TestBasisSearch_MultiHop(t *testing.T) {
	lib := standardLib(t)
	plan, err := basisSearch(lib, basisSet("h"), basisSet("u3"), basisHeuristic, budget{})
	require.NoError(t, err)
	require.Len(t, plan, 2)
	assert.Equal(t, "h", plan[0].Name)
	assert.Equal(t, "u2", plan[1].Name)
}

func TestBasisSearch_GoalAlreadyReached(t *testing.T) {
	lib := standardLib(t)
	plan, err := basisSearch(lib, basisSet("cx"), basisSet("cx", "u3"), basisHeuristic, budget{})
	require.NoError(t, err)
	require.NotNil(t, plan)
	assert.Empty(t, plan)
}

func TestBasisSearch_Unreachable(t *testing.T) {
	lib := standardLib(t)
	plan, err := basisSearch(lib, basisSet("mystery"), basisSet("cx"), basisHeuristic, budget{})
	require.NoError(t, err)
	assert.Nil(t, plan)
}

func TestBasisSearch_BudgetExceeded(t *testing.T) {
	lib := standardLib(t)
	_, err := basisSearch(lib, basisSet("h"), basisSet("u3"), basisHeuristic,
		budget{maxIterations: 1})
	assert.ErrorIs(t, err, ErrBudgetExceeded)

	_, err = basisSearch(lib, basisSet("h"), basisSet("u3"), basisHeuristic,
		budget{deadline: time.Now().Add(-time.Second)})
	assert.ErrorIs(t, err, ErrBudgetExceeded)
}

func TestBasisSearch_Deterministic(t *testing.T) {
	// Two competing one-hop rules for the same gate; ties must resolve
	// by insertion order, run after run.
	mkLib := func() *equiv.Library {
		lib := equiv.NewLibrary()
		tg := gate.NewGate("testgate", 2)

		first := circuit.New(2, 0)
		first.Append(gate.CX(), 0, 1)
		first.Append(gate.Z(), 0)
		first.Append(gate.CX(), 0, 1)
		require.NoError(t, lib.Add(tg, first))

		second := circuit.New(2, 0)
		second.Append(gate.CZ(), 0, 1)
		second.Append(gate.Y(), 0)
		second.Append(gate.CZ(), 0, 1)
		require.NoError(t, lib.Add(tg, second))
		return lib
	}

	target := basisSet("cx", "z", "cz", "y")
	var prev []transform
	for i := 0; i < 5; i++ {
		plan, err := basisSearch(mkLib(), basisSet("testgate"), target, basisHeuristic, budget{})
		require.NoError(t, err)
		require.Len(t, plan, 1)
		assert.Equal(t, map[string]int{"cx": 2, "z": 1}, plan[0].Template.Names(),
			"FIFO tie-break must pick the first-inserted rule")
		if prev != nil {
			assert.Equal(t, prev[0].Name, plan[0].Name)
			assert.Equal(t, prev[0].Template.Names(), plan[0].Template.Names())
		}
		prev = plan
	}
}

func TestBasisSearch_SkipsNonSearchBase(t *testing.T) {
	lib := equiv.NewLibrary()
	tg := gate.NewGate("testgate", 2)
	tmpl := circuit.New(2, 0)
	tmpl.Append(gate.CX(), 0, 1)
	require.NoError(t, lib.Add(tg, tmpl))
	lib.SetEntry("testgate", 2, lib.Equivalences("testgate", 2), false)

	plan, err := basisSearch(lib, basisSet("testgate"), basisSet("cx"), basisHeuristic, budget{})
	require.NoError(t, err)
	assert.Nil(t, plan, "non-search-base entries must not act as hops")
}

func TestBasisHeuristic(t *testing.T) {
	assert.Equal(t, 0.0, basisHeuristic(basisSet("a"), basisSet("a")))
	assert.Equal(t, 2.0, basisHeuristic(basisSet("a"), basisSet("b")))
	assert.Equal(t, 1.0, basisHeuristic(basisSet("a", "b"), basisSet("a")))
}
