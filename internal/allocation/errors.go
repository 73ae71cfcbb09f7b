package allocation

import "errors"

// Validation failures surfaced to the form layer. All of them are non-fatal:
// the caller aggregates every applicable error into one report.
var (
	ErrDuplicateDdn       = errors.New("duplicate DDN article id")
	ErrUnknownDdn         = errors.New("DDN article id not in available pool")
	ErrOverAllocated      = errors.New("requested allocation exceeds available articles")
	ErrUnrecognizedMethod = errors.New("unrecognized allocation method")
)
