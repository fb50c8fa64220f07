package dag

import "fmt"

// Public error helpers so callers can assert specific failures.
var (
	ErrBadQubit       = fmt.Errorf("dag: qubit index out of range")
	ErrBadClbit       = fmt.Errorf("dag: classical bit index out of range")
	ErrSpan           = fmt.Errorf("dag: gate spans invalid qubit range")
	ErrDuplicateQubit = fmt.Errorf("dag: duplicate qubit in gate application")
	ErrNodeNotFound   = fmt.Errorf("dag: node is not part of this dag")
	ErrWireMismatch   = fmt.Errorf("dag: replacement wire count mismatch")
)
