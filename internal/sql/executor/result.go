package executor

import (
	"fmt"
	"io"
	"strings"
)

// Result is the generic query result returned to the caller.
type Result struct {
	Columns []string
	Rows    [][]string

	// For DML:
	AffectedRows int64

	// Message is a one-line note for statements that return no rows.
	Message string
}

// Print renders the result the way the shell shows it. Row sets get a header,
// a separator as wide as each column name, the rows and a row count.
func (r *Result) Print(w io.Writer) error {
	var b strings.Builder

	if r.Columns != nil {
		b.WriteString(strings.Join(r.Columns, " | "))
		b.WriteByte('\n')

		for i, c := range r.Columns {
			if i > 0 {
				b.WriteString("-+-")
			}
			b.WriteString(strings.Repeat("-", len(c)))
		}
		b.WriteByte('\n')

		for _, row := range r.Rows {
			b.WriteString(strings.Join(row, " | "))
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "\n(%d rows)\n", len(r.Rows))
	}

	if r.Message != "" {
		b.WriteString(r.Message)
		b.WriteByte('\n')
	}

	_, err := io.WriteString(w, b.String())
	return err
}
