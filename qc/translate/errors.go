package translate

import (
	"fmt"
	"strings"
)

// Public error helpers so callers can assert specific failures.
var (
	ErrBudgetExceeded     = fmt.Errorf("translate: planner budget exceeded")
	ErrParamCountMismatch = fmt.Errorf("translate: translation parameter count differs from op")
)

// BasisUnreachableError reports that the planner exhausted its search
// without reaching the target basis. It carries both basis sets to aid
// diagnosis.
type BasisUnreachableError struct {
	Source []string
	Target []string
}

func (e *BasisUnreachableError) Error() string {
	return fmt.Sprintf("translate: unable to map source basis {%s} to target basis {%s}",
		strings.Join(e.Source, ", "), strings.Join(e.Target, ", "))
}

// UnmappedGateError reports a non-target gate the applier had no
// replacement for. Seeing one means a planner invariant was violated.
type UnmappedGateError struct {
	Name string
}

func (e *UnmappedGateError) Error() string {
	return "translate: no replacement mapped for gate " + e.Name
}

// DefinitionMissingError reports a basis-foreign gate with no intrinsic
// definition, surfaced only by strict unrolling.
type DefinitionMissingError struct {
	Name string
}

func (e *DefinitionMissingError) Error() string {
	return "translate: gate " + e.Name + " has no definition"
}
