// Package sim runs circuits on pluggable one-shot backends. It exists
// so rewrites can be checked behaviourally: a circuit and its
// translated form must produce the same measurement statistics.
package sim

import (
	"fmt"
	"sync"

	"github.com/kegliz/qtranslate/qc/circuit"
)

// OneShotRunner plays a circuit exactly once and returns the measured
// classical bit-string.
type OneShotRunner interface {
	RunOnce(c *circuit.Circuit) (string, error)
}

// RunnerFactory creates a new OneShotRunner instance.
type RunnerFactory func() OneShotRunner

type registry struct {
	mu        sync.RWMutex
	factories map[string]RunnerFactory
}

var defaultRegistry = &registry{factories: make(map[string]RunnerFactory)}

// RegisterRunner registers a runner factory under name. Thread-safe;
// callable from init() functions.
func RegisterRunner(name string, factory RunnerFactory) error {
	if name == "" {
		return fmt.Errorf("sim: runner name cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("sim: runner factory cannot be nil")
	}
	defaultRegistry.mu.Lock()
	defer defaultRegistry.mu.Unlock()
	if _, exists := defaultRegistry.factories[name]; exists {
		return fmt.Errorf("sim: runner %q is already registered", name)
	}
	defaultRegistry.factories[name] = factory
	return nil
}

// MustRegisterRunner is like RegisterRunner but panics on failure.
func MustRegisterRunner(name string, factory RunnerFactory) {
	if err := RegisterRunner(name, factory); err != nil {
		panic(fmt.Sprintf("sim: failed to register runner %q: %v", name, err))
	}
}

// CreateRunner creates a runner registered under name.
func CreateRunner(name string) (OneShotRunner, error) {
	defaultRegistry.mu.RLock()
	factory, exists := defaultRegistry.factories[name]
	defaultRegistry.mu.RUnlock()
	if !exists {
		return nil, fmt.Errorf("sim: unknown runner: %q", name)
	}
	return factory(), nil
}

// ListRunners returns the registered runner names.
func ListRunners() []string {
	defaultRegistry.mu.RLock()
	defer defaultRegistry.mu.RUnlock()
	names := make([]string, 0, len(defaultRegistry.factories))
	for name := range defaultRegistry.factories {
		names = append(names, name)
	}
	return names
}

// Simulator repeats one-shot runs and histograms the outcomes.
type Simulator struct {
	Shots  int
	Runner OneShotRunner
}

// Run plays c Shots times and returns the bit-string histogram.
func (s *Simulator) Run(c *circuit.Circuit) (map[string]int, error) {
	if s.Runner == nil {
		return nil, fmt.Errorf("sim: no runner configured")
	}
	hist := make(map[string]int)
	for i := 0; i < s.Shots; i++ {
		bits, err := s.Runner.RunOnce(c)
		if err != nil {
			return nil, fmt.Errorf("sim: shot %d: %w", i, err)
		}
		hist[bits]++
	}
	return hist, nil
}
