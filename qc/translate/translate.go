// Package translate rewrites circuit DAGs so every gate is drawn from
// a caller-specified target basis, using an equivalence library as the
// rule source. The plan is found by an A* search over sets of gate
// names; planned rules are composed into per-gate replacement DAGs and
// applied node by node.
package translate

import (
	"time"

	"github.com/kegliz/qtranslate/internal/logger"
	"github.com/kegliz/qtranslate/qc/circuit"
	"github.com/kegliz/qtranslate/qc/dag"
	"github.com/kegliz/qtranslate/qc/equiv"
)

type (
	// BasisTranslator is the end-to-end rewrite pass. It holds a read
	// reference to one library snapshot for its whole life and never
	// mutates it.
	BasisTranslator struct {
		lib     *equiv.Library
		target  map[string]bool
		budget  budget
		timeout time.Duration
		log     *logger.Logger
	}

	// Option customises a translator.
	Option func(*BasisTranslator)
)

// WithMaxIterations bounds the number of planner expansions.
func WithMaxIterations(n int) Option {
	return func(t *BasisTranslator) { t.budget.maxIterations = n }
}

// WithTimeout bounds the planner wall clock per Run.
func WithTimeout(d time.Duration) Option {
	return func(t *BasisTranslator) { t.timeout = d }
}

// WithLogger routes pass logging to l.
func WithLogger(l *logger.Logger) Option {
	return func(t *BasisTranslator) { t.log = l }
}

// NewBasisTranslator creates a translator targeting targetBasis over
// the given library snapshot. The irreducible instruction names are
// always part of the effective target.
func NewBasisTranslator(lib *equiv.Library, targetBasis []string, opts ...Option) *BasisTranslator {
	t := &BasisTranslator{
		lib:    lib,
		target: make(map[string]bool, len(targetBasis)+len(basicInstrs)),
		log:    logger.NewLogger(logger.LoggerOptions{}),
	}
	for _, name := range targetBasis {
		t.target[name] = true
	}
	for _, name := range basicInstrs {
		t.target[name] = true
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

// Run translates d to the target basis. The input DAG is never
// mutated: the rewritten copy is returned on success, and on any error
// the caller keeps the original untouched.
func (t *BasisTranslator) Run(d *dag.DAG) (*dag.DAG, error) {
	sourceBasis := make(map[string]bool)
	for name := range d.Names() {
		sourceBasis[name] = true
	}

	t.log.Info().
		Strs("source", sortedNames(sourceBasis)).
		Strs("target", sortedNames(t.target)).
		Msg("begin basis translation")

	b := t.budget
	if t.timeout > 0 {
		b.deadline = time.Now().Add(t.timeout)
	}

	searchStart := time.Now()
	plan, err := basisSearch(t.lib, sourceBasis, t.target, basisHeuristic, b)
	if err != nil {
		return nil, err
	}
	t.log.Debug().
		Dur("elapsed", time.Since(searchStart)).
		Msg("basis translation path search completed")

	if plan == nil {
		return nil, &BasisUnreachableError{
			Source: sortedNames(sourceBasis),
			Target: sortedNames(t.target),
		}
	}

	composeStart := time.Now()
	instrMap, err := composeTransforms(plan, sourceBasis, d)
	if err != nil {
		return nil, err
	}
	t.log.Debug().
		Dur("elapsed", time.Since(composeStart)).
		Int("rules", len(plan)).
		Msg("basis translation paths composed")

	out := d.Copy()
	for _, node := range out.OpNodes() {
		name := node.G.Name()
		if t.target[name] {
			continue
		}
		m, ok := instrMap[name]
		if !ok {
			return nil, &UnmappedGateError{Name: name}
		}

		bound, err := bindTemplate(m.Params, circuit.FromDAG(m.DAG), node.G.Params())
		if err != nil {
			return nil, err
		}
		boundDag, err := bound.ToDAG()
		if err != nil {
			return nil, err
		}

		replNodes := boundDag.OpNodes()
		if len(replNodes) == 1 && identityWiring(replNodes[0].Qubits, len(node.Qubits)) {
			if err := out.SubstituteNode(node, replNodes[0].G); err != nil {
				return nil, err
			}
		} else if err := out.SubstituteNodeWithDAG(node, boundDag); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// identityWiring reports whether qs is exactly 0..n-1 in order, the
// only case where a single replacement op can be swapped in without
// rewiring.
func identityWiring(qs []int, n int) bool {
	if len(qs) != n {
		return false
	}
	for i, q := range qs {
		if q != i {
			return false
		}
	}
	return true
}
