package main

import (
	"fmt"
	"sort"

	"github.com/kegliz/qtranslate/qc/builder"
	"github.com/kegliz/qtranslate/qc/circuit"
	"github.com/kegliz/qtranslate/qc/equiv"
	"github.com/kegliz/qtranslate/qc/gate"
	"github.com/kegliz/qtranslate/qc/param"
	"github.com/kegliz/qtranslate/qc/sim"
	"github.com/kegliz/qtranslate/qc/translate"
)

func main() {
	shots := 1024

	fmt.Println("--- Grover translated to {h, x, cx} ---")
	translateGrover(shots)
	fmt.Println("\n--- Toffoli translated to {h, cx, t, tdg} ---")
	translateToffoli()
	fmt.Println("\n--- Custom cxy(θ) translated to {cx, u1} ---")
	translateCustom()
}

// translateGrover rewrites a 2-qubit Grover circuit onto a cz-free
// basis and prints the measurement histograms of the original and the
// translated circuit side by side.
func translateGrover(shots int) {
	b := builder.New(builder.Q(2), builder.C(2))
	b.H(0).H(1)
	b.CZ(0, 1)
	b.H(0).H(1)
	b.X(0).X(1)
	b.CZ(0, 1)
	b.X(0).X(1)
	b.H(0).H(1)
	b.Measure(0, 0).Measure(1, 1)

	d, err := b.BuildDAG()
	if err != nil {
		fmt.Printf("Error building Grover circuit: %v\n", err)
		return
	}

	pass := translate.NewBasisTranslator(equiv.Session(), []string{"h", "x", "cx"})
	out, err := pass.Run(d)
	if err != nil {
		fmt.Printf("Error translating Grover circuit: %v\n", err)
		return
	}
	fmt.Printf("op counts before: %v\n", counts(d.Names()))
	fmt.Printf("op counts after:  %v\n", counts(out.Names()))

	s := &sim.Simulator{Shots: shots, Runner: sim.NewItsuRunner()}
	for _, run := range []struct {
		label string
		c     *circuit.Circuit
	}{
		{"original", circuit.FromDAG(d)},
		{"translated", circuit.FromDAG(out)},
	} {
		hist, err := s.Run(run.c)
		if err != nil {
			fmt.Printf("Error simulating %s circuit: %v\n", run.label, err)
			return
		}
		fmt.Printf("%s:\n", run.label)
		pretty(hist, shots)
	}
}

// translateToffoli decomposes a Toffoli onto the Clifford+T basis.
func translateToffoli() {
	b := builder.New(builder.Q(3))
	b.Toffoli(0, 1, 2)

	d, err := b.BuildDAG()
	if err != nil {
		fmt.Printf("Error building Toffoli circuit: %v\n", err)
		return
	}

	pass := translate.NewBasisTranslator(equiv.Session(), []string{"h", "cx", "t", "tdg"})
	out, err := pass.Run(d)
	if err != nil {
		fmt.Printf("Error translating Toffoli circuit: %v\n", err)
		return
	}
	fmt.Printf("op counts after: %v\n", counts(out.Names()))
}

// translateCustom registers an equivalence for a caller-defined
// parameterized gate and translates an instance of it.
func translateCustom() {
	th := param.Vector("th", 1)
	cxy := gate.NewGate("cxy", 2, param.Sym(th[0]))

	tmpl := circuit.New(2, 0)
	tmpl.Append(gate.CX(), 0, 1)
	tmpl.Append(gate.U1(param.Sym(th[0])), 0)
	tmpl.Append(gate.CX(), 0, 1)

	lib := equiv.Session().Copy()
	if err := lib.Add(cxy, tmpl); err != nil {
		fmt.Printf("Error adding equivalence: %v\n", err)
		return
	}

	c := circuit.New(2, 0)
	bound, err := cxy.WithParams([]param.Value{param.Const(0.5)})
	if err != nil {
		fmt.Printf("Error binding cxy: %v\n", err)
		return
	}
	c.Append(bound, 0, 1)

	d, err := c.ToDAG()
	if err != nil {
		fmt.Printf("Error building circuit: %v\n", err)
		return
	}

	pass := translate.NewBasisTranslator(lib, []string{"cx", "u1"})
	out, err := pass.Run(d)
	if err != nil {
		fmt.Printf("Error translating circuit: %v\n", err)
		return
	}
	fmt.Printf("op counts after: %v\n", counts(out.Names()))
	for _, op := range circuit.FromDAG(out).Operations() {
		if op.G.Name() == "u1" {
			fmt.Printf("u1 parameter: %s\n", op.G.Params()[0])
		}
	}
}

// counts renders an op-count map with stable key order.
func counts(m map[string]int) string {
	names := make([]string, 0, len(m))
	for n := range m {
		names = append(names, n)
	}
	sort.Strings(names)
	s := "{"
	for i, n := range names {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%s: %d", n, m[n])
	}
	return s + "}"
}

// pretty prints a histogram sorted by bit-string.
func pretty(hist map[string]int, shots int) {
	keys := make([]string, 0, len(hist))
	for k := range hist {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("  %s: %5d (%.3f)\n", k, hist[k], float64(hist[k])/float64(shots))
	}
}
