package translate

import (
	"testing"

	"github.com/kegliz/qtranslate/qc/circuit"
	"github.com/kegliz/qtranslate/qc/dag"
	"github.com/kegliz/qtranslate/qc/equiv"
	"github.com/kegliz/qtranslate/qc/gate"
	"github.com/kegliz/qtranslate/qc/param"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBindTemplate(t *testing.T) {
	th := param.Vector("th", 1)
	tmpl := circuit.New(1, 0)
	tmpl.Append(gate.U1(param.Sym(th[0])), 0)

	tests := []struct {
		name    string
		formals []param.Symbol
		actuals []param.Value
		wantErr bool
	}{
		{name: "matching lengths", formals: th, actuals: []param.Value{param.Const(0.5)}},
		{name: "no params at all", formals: nil, actuals: nil},
		{name: "too few actuals", formals: th, actuals: nil, wantErr: true},
		{name: "too many actuals", formals: th,
			actuals: []param.Value{param.Const(0.5), param.Const(1.5)}, wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			bound, err := bindTemplate(tc.formals, tmpl, tc.actuals)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrParamCountMismatch)
				assert.Nil(t, bound)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, bound)
		})
	}
}

func TestRun_ParamCountMismatch(t *testing.T) {
	require := require.New(t)

	// The library rule declares one formal parameter, but the circuit
	// carries a parameterless instance of the same (name, arity).
	th := param.Vector("th", 1)
	tmpl := circuit.New(1, 0)
	tmpl.Append(gate.U1(param.Sym(th[0])), 0)

	lib := equiv.NewLibrary()
	require.NoError(lib.Add(gate.NewGate("pg", 1, param.Sym(th[0])), tmpl))

	d := dag.New(1, 0)
	require.NoError(d.AddGate(gate.NewGate("pg", 1), []int{0}))

	pass := NewBasisTranslator(lib, []string{"u1"}, quiet())
	_, err := pass.Run(d)
	assert.ErrorIs(t, err, ErrParamCountMismatch)
	// Failed runs leave the input untouched.
	assert.Equal(t, map[string]int{"pg": 1}, d.Names())
}
