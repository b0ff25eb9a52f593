package planner

import (
	"errors"

	"github.com/tuannm99/pagesql/internal/catalog"
	"github.com/tuannm99/pagesql/internal/record"
	"github.com/tuannm99/pagesql/internal/sql/parser"
)

// PrepareResult classifies the outcome of Prepare.
type PrepareResult int

const (
	PrepareSuccess PrepareResult = iota
	PrepareSyntaxError
	PrepareUnrecognizedStatement
	PrepareStringTooLong
	PrepareNegativeID // reserved for a key column; nothing produces it yet
	PrepareDuplicateTable
	PrepareTableNotFound
	PrepareTypeMismatch
)

func (r PrepareResult) String() string {
	switch r {
	case PrepareSuccess:
		return "Success"
	case PrepareSyntaxError:
		return "SyntaxError"
	case PrepareUnrecognizedStatement:
		return "UnrecognizedStatement"
	case PrepareStringTooLong:
		return "StringTooLong"
	case PrepareNegativeID:
		return "NegativeID"
	case PrepareDuplicateTable:
		return "DuplicateTable"
	case PrepareTableNotFound:
		return "TableNotFound"
	case PrepareTypeMismatch:
		return "TypeMismatch"
	default:
		return "Unknown"
	}
}

// ResultOf maps an error returned by Prepare to its result code.
// Unknown errors are reported as syntax errors.
func ResultOf(err error) PrepareResult {
	switch {
	case err == nil:
		return PrepareSuccess
	case errors.Is(err, parser.ErrUnrecognizedStatement):
		return PrepareUnrecognizedStatement
	case errors.Is(err, record.ErrStringTooLong):
		return PrepareStringTooLong
	case errors.Is(err, catalog.ErrDuplicateTable):
		return PrepareDuplicateTable
	case errors.Is(err, ErrTableNotFound):
		return PrepareTableNotFound
	case errors.Is(err, record.ErrTypeMismatch):
		return PrepareTypeMismatch
	default:
		return PrepareSyntaxError
	}
}
