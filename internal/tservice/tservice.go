// Package tservice exposes the basis translator as an application
// service: JSON circuits in, translated JSON circuits out.
package tservice

import (
	"fmt"
	"time"

	"github.com/kegliz/qtranslate/internal/logger"
	"github.com/kegliz/qtranslate/qc/circuit"
	"github.com/kegliz/qtranslate/qc/equiv"
	"github.com/kegliz/qtranslate/qc/gate"
	"github.com/kegliz/qtranslate/qc/param"
	"github.com/kegliz/qtranslate/qc/translate"
)

type (
	// GateSpec is the wire form of one gate application.
	GateSpec struct {
		Name   string    `json:"name"`
		Qubits []int     `json:"qubits"`
		Params []float64 `json:"params,omitempty"`
		Cbit   int       `json:"cbit,omitempty"` // measurement target; -1 otherwise
	}

	// CircuitSpec is the wire form of a circuit.
	CircuitSpec struct {
		Qubits int        `json:"qubits"`
		Clbits int        `json:"clbits"`
		Gates  []GateSpec `json:"gates"`
	}

	// TranslateRequest asks for a circuit over a target basis.
	TranslateRequest struct {
		Circuit     CircuitSpec `json:"circuit"`
		TargetBasis []string    `json:"target_basis"`
	}

	// TranslateResult carries the rewritten circuit and its op counts.
	TranslateResult struct {
		Circuit CircuitSpec    `json:"circuit"`
		Counts  map[string]int `json:"counts"`
		Depth   int            `json:"depth"`
	}

	// ServiceOptions are options for constructing a service.
	ServiceOptions struct {
		Logger        *logger.Logger
		Library       *equiv.Library
		MaxIterations int
		Timeout       time.Duration
	}

	Service interface {
		Translate(log *logger.Logger, req *TranslateRequest) (*TranslateResult, error)
		LibraryKeys() []equiv.Key
		Decode(spec CircuitSpec) (*circuit.Circuit, error)
	}

	service struct {
		logger        *logger.Logger
		lib           *equiv.Library
		maxIterations int
		timeout       time.Duration
	}
)

// NewService creates a new service over a library snapshot.
func NewService(opts ServiceOptions) Service {
	if opts.Logger == nil {
		opts.Logger = logger.NewLogger(logger.LoggerOptions{})
	}
	if opts.Library == nil {
		opts.Library = equiv.Session()
	}
	return &service{
		logger:        opts.Logger,
		lib:           opts.Library,
		maxIterations: opts.MaxIterations,
		timeout:       opts.Timeout,
	}
}

// Translate implements Service.
func (s *service) Translate(l *logger.Logger, req *TranslateRequest) (*TranslateResult, error) {
	c, err := s.Decode(req.Circuit)
	if err != nil {
		return nil, err
	}
	d, err := c.ToDAG()
	if err != nil {
		return nil, err
	}

	pass := translate.NewBasisTranslator(s.lib, req.TargetBasis,
		translate.WithMaxIterations(s.maxIterations),
		translate.WithTimeout(s.timeout),
		translate.WithLogger(l.SpawnForPass("basis-translator")),
	)
	out, err := pass.Run(d)
	if err != nil {
		return nil, err
	}

	return &TranslateResult{
		Circuit: Encode(circuit.FromDAG(out)),
		Counts:  out.Names(),
		Depth:   out.Depth(),
	}, nil
}

// LibraryKeys implements Service.
func (s *service) LibraryKeys() []equiv.Key { return s.lib.Keys() }

// Decode builds a circuit from its wire form.
func (s *service) Decode(spec CircuitSpec) (*circuit.Circuit, error) {
	c := circuit.New(spec.Qubits, spec.Clbits)
	for i, gs := range spec.Gates {
		if gs.Name == "measure" {
			if len(gs.Qubits) != 1 {
				return nil, fmt.Errorf("tservice: gate %d: measure takes one qubit", i)
			}
			c.AppendMeasure(gs.Qubits[0], gs.Cbit)
			continue
		}
		params := make([]param.Value, len(gs.Params))
		for j, p := range gs.Params {
			params[j] = param.Const(p)
		}
		g, err := gate.Factory(gs.Name, params...)
		if err != nil {
			return nil, fmt.Errorf("tservice: gate %d: %w", i, err)
		}
		c.Append(g, gs.Qubits...)
	}
	return c, nil
}

// Encode renders a circuit into its wire form. Symbolic parameters do
// not survive encoding; services only deal in bound circuits.
func Encode(c *circuit.Circuit) CircuitSpec {
	spec := CircuitSpec{
		Qubits: c.Qubits(),
		Clbits: c.Clbits(),
		Gates:  make([]GateSpec, 0, len(c.Operations())),
	}
	for _, op := range c.Operations() {
		gs := GateSpec{
			Name:   op.G.Name(),
			Qubits: append([]int(nil), op.Qubits...),
			Cbit:   op.Cbit,
		}
		for _, v := range op.G.Params() {
			if f, ok := v.Float(); ok {
				gs.Params = append(gs.Params, f)
			}
		}
		spec.Gates = append(spec.Gates, gs)
	}
	return spec
}
