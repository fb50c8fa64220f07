// Package testutil provides testing utilities and constants shared by
// the qc package tests.
package testutil

import (
	"testing"

	"github.com/kegliz/qtranslate/qc/builder"
	"github.com/kegliz/qtranslate/qc/circuit"
	"github.com/stretchr/testify/require"
)

// Test constants for consistent configuration across tests.
const (
	DefaultShots = 1024
	SmallShots   = 100

	// Statistical tolerances
	DefaultTolerance = 0.1  // 10% tolerance for statistical tests
	StrictTolerance  = 0.05 // 5% tolerance for precise tests
)

// NewBellStateCircuit creates a standard Bell state circuit.
func NewBellStateCircuit(t *testing.T) *circuit.Circuit {
	t.Helper()

	b := builder.New(builder.Q(2), builder.C(2))
	b.H(0).CX(0, 1).Measure(0, 0).Measure(1, 1)

	c, err := b.BuildCircuit()
	require.NoError(t, err, "failed to build Bell state circuit")
	return c
}

// NewGroverCircuit creates a standard 2-qubit Grover circuit marking
// the |11> state.
func NewGroverCircuit(t *testing.T) *circuit.Circuit {
	t.Helper()

	b := builder.New(builder.Q(2), builder.C(2))

	// Initial superposition
	b.H(0).H(1)

	// Oracle marks |11> by phase flip
	b.CZ(0, 1)

	// Diffusion operator
	b.H(0).H(1)
	b.X(0).X(1)
	b.CZ(0, 1)
	b.X(0).X(1)
	b.H(0).H(1)

	// Measurement
	b.Measure(0, 0).Measure(1, 1)

	c, err := b.BuildCircuit()
	require.NoError(t, err, "failed to build Grover circuit")
	return c
}

// AssertHistogramDistribution validates histogram results within
// tolerance.
func AssertHistogramDistribution(t *testing.T, hist map[string]int, expected map[string]float64, totalShots int, tolerance float64) {
	t.Helper()

	for state, expectedProb := range expected {
		actualCount := hist[state]
		actualProb := float64(actualCount) / float64(totalShots)

		if expectedProb == 0 {
			require.Equal(t, 0, actualCount, "state %s should have 0 count", state)
		} else {
			require.InDelta(t, expectedProb, actualProb, tolerance,
				"state %s probability mismatch: expected %.3f, got %.3f",
				state, expectedProb, actualProb)
		}
	}
}

// SkipIfShort skips the test if running with -short flag.
func SkipIfShort(t *testing.T, reason string) {
	t.Helper()
	if testing.Short() {
		t.Skipf("skipping test in short mode: %s", reason)
	}
}
