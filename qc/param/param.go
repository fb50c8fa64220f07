// Package param provides the parameter algebra used by gate templates:
// named formal parameters, concrete scalars and linear symbolic
// expressions, plus the single bind-or-substitute operation rewrite
// passes rely on.
package param

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Symbol is a named formal parameter slot inside a template.
type Symbol struct {
	Name  string
	Index int
}

func (s Symbol) String() string { return fmt.Sprintf("%s[%d]", s.Name, s.Index) }

// Vector returns n uniquely-named formal parameters sharing a base name.
func Vector(name string, n int) []Symbol {
	v := make([]Symbol, n)
	for i := range v {
		v[i] = Symbol{Name: name, Index: i}
	}
	return v
}

// Value is either a concrete scalar (Const) or a symbolic expression
// (*Expr). Gate parameter lists hold Values.
type Value interface {
	// Float returns the concrete scalar and true, or 0 and false when
	// the value still contains free symbols.
	Float() (float64, bool)
	// Symbols returns the free symbols of the value, sorted.
	Symbols() []Symbol
	String() string
}

// Const is a fully bound parameter value.
type Const float64

func (c Const) Float() (float64, bool) { return float64(c), true }
func (c Const) Symbols() []Symbol      { return nil }
func (c Const) String() string         { return fmt.Sprintf("%g", float64(c)) }

// Expr is a linear combination of symbols plus a constant offset.
// This covers every form the standard equivalences need (θ, -θ, θ/2,
// θ+π, ...) while keeping substitution closed under the representation.
type Expr struct {
	terms  map[Symbol]float64
	offset float64
}

// Sym lifts a formal parameter into an expression.
func Sym(s Symbol) *Expr {
	return &Expr{terms: map[Symbol]float64{s: 1}}
}

// Lit lifts a scalar into an expression.
func Lit(v float64) *Expr {
	return &Expr{terms: map[Symbol]float64{}, offset: v}
}

func (e *Expr) clone() *Expr {
	t := make(map[Symbol]float64, len(e.terms))
	for s, c := range e.terms {
		t[s] = c
	}
	return &Expr{terms: t, offset: e.offset}
}

// Add returns e + o.
func (e *Expr) Add(o *Expr) *Expr {
	r := e.clone()
	for s, c := range o.terms {
		r.terms[s] += c
		if r.terms[s] == 0 {
			delete(r.terms, s)
		}
	}
	r.offset += o.offset
	return r
}

// AddConst returns e + v.
func (e *Expr) AddConst(v float64) *Expr {
	r := e.clone()
	r.offset += v
	return r
}

// Mul returns e scaled by k.
func (e *Expr) Mul(k float64) *Expr {
	r := &Expr{terms: make(map[Symbol]float64, len(e.terms))}
	if k != 0 {
		for s, c := range e.terms {
			r.terms[s] = c * k
		}
	}
	r.offset = e.offset * k
	return r
}

// Neg returns -e.
func (e *Expr) Neg() *Expr { return e.Mul(-1) }

// Div returns e / k.
func (e *Expr) Div(k float64) *Expr { return e.Mul(1 / k) }

func (e *Expr) Float() (float64, bool) {
	if len(e.terms) != 0 {
		return 0, false
	}
	return e.offset, true
}

func (e *Expr) Symbols() []Symbol {
	out := make([]Symbol, 0, len(e.terms))
	for s := range e.terms {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Index < out[j].Index
	})
	return out
}

func (e *Expr) String() string {
	if v, ok := e.Float(); ok {
		return fmt.Sprintf("%g", v)
	}
	var b strings.Builder
	for i, s := range e.Symbols() {
		c := e.terms[s]
		if i > 0 && c >= 0 {
			b.WriteByte('+')
		}
		switch c {
		case 1:
			b.WriteString(s.String())
		case -1:
			b.WriteByte('-')
			b.WriteString(s.String())
		default:
			fmt.Fprintf(&b, "%g*%s", c, s)
		}
	}
	if e.offset != 0 {
		fmt.Fprintf(&b, "%+g", e.offset)
	}
	return b.String()
}

// Bind replaces formal with the scalar v. The result collapses to a
// Const once no free symbols remain.
func (e *Expr) Bind(formal Symbol, v float64) Value {
	r := e.clone()
	if c, ok := r.terms[formal]; ok {
		delete(r.terms, formal)
		r.offset += c * v
	}
	return r.simplify()
}

// Subst replaces formal with the expression repl, preserving algebraic
// identity: each occurrence coeff*formal becomes coeff*repl.
func (e *Expr) Subst(formal Symbol, repl *Expr) Value {
	r := e.clone()
	c, ok := r.terms[formal]
	if !ok {
		return r.simplify()
	}
	delete(r.terms, formal)
	return r.Add(repl.Mul(c)).simplify()
}

func (e *Expr) simplify() Value {
	if v, ok := e.Float(); ok {
		return Const(v)
	}
	return e
}

// Apply performs the unified bind-or-substitute step: it replaces
// formal inside v by actual, dispatching on whether actual is a scalar
// or an expression. Concrete values pass through untouched.
func Apply(v Value, formal Symbol, actual Value) Value {
	e, ok := v.(*Expr)
	if !ok {
		return v
	}
	if f, concrete := actual.Float(); concrete {
		return e.Bind(formal, f)
	}
	return e.Subst(formal, actual.(*Expr))
}

// Scale returns v*k, staying in the cheapest representation.
func Scale(v Value, k float64) Value {
	if f, ok := v.Float(); ok {
		return Const(f * k)
	}
	return v.(*Expr).Mul(k).simplify()
}

// Neg returns -v.
func Neg(v Value) Value { return Scale(v, -1) }

// Shift returns v+c.
func Shift(v Value, c float64) Value {
	if f, ok := v.Float(); ok {
		return Const(f + c)
	}
	return v.(*Expr).AddConst(c).simplify()
}

// Equal reports structural equality of two values under a small
// floating tolerance.
func Equal(a, b Value) bool {
	fa, oka := a.Float()
	fb, okb := b.Float()
	if oka != okb {
		return false
	}
	if oka {
		return math.Abs(fa-fb) < 1e-12
	}
	ea, eb := a.(*Expr), b.(*Expr)
	if math.Abs(ea.offset-eb.offset) >= 1e-12 || len(ea.terms) != len(eb.terms) {
		return false
	}
	for s, c := range ea.terms {
		if math.Abs(eb.terms[s]-c) >= 1e-12 {
			return false
		}
	}
	return true
}
