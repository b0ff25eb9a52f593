package executor

import (
	"errors"
)

// The file has a single data region, owned by the first table created.
// Rows of any other table fail with ErrNoDataRegion.
var (
	ErrTableFull    = errors.New("executor: table full")
	ErrNoDataRegion = errors.New("executor: table has no data region")
	ErrRowTooLarge  = errors.New("executor: row does not fit in a page")
)

// ExecuteResult classifies the outcome of executing a plan.
type ExecuteResult int

const (
	ExecuteSuccess ExecuteResult = iota
	ExecuteTableFull
	ExecuteDuplicateKey // no unique keys yet
	ExecuteInvalidInput // no input validation at execution yet
	ExecuteFailure
)

func (r ExecuteResult) String() string {
	switch r {
	case ExecuteSuccess:
		return "Success"
	case ExecuteTableFull:
		return "TableFull"
	case ExecuteDuplicateKey:
		return "DuplicateKey"
	case ExecuteInvalidInput:
		return "InvalidInput"
	case ExecuteFailure:
		return "Failure"
	default:
		return "Unknown"
	}
}

// StatusOf maps an error returned by Execute to its result code.
func StatusOf(err error) ExecuteResult {
	switch {
	case err == nil:
		return ExecuteSuccess
	case errors.Is(err, ErrTableFull):
		return ExecuteTableFull
	default:
		return ExecuteFailure
	}
}
