package record

import (
	"errors"
	"fmt"
)

var (
	ErrSchemaMismatch = errors.New("record: schema/values mismatch")
	ErrBadBuffer      = errors.New("record: slot buffer too small")
)

// Row is an ordered list of values matching a TableSchema column for column.
type Row struct {
	Values []Value
}

// Strings renders every value of the row in column order.
func (r Row) Strings() []string {
	out := make([]string, len(r.Values))
	for i, v := range r.Values {
		out[i] = v.String()
	}
	return out
}

// SerializeRow copies every value of row into dst at its cumulative column offset.
//
// Layout of a slot (no header, no null map):
//
//	[col0: size0 bytes][col1: size1 bytes]...   total = schema.RowSize
func SerializeRow(row Row, s *TableSchema, dst []byte) error {
	if len(row.Values) != len(s.Columns) {
		return fmt.Errorf("%w: %d values for %d columns", ErrSchemaMismatch, len(row.Values), len(s.Columns))
	}
	if uint32(len(dst)) < s.RowSize {
		return ErrBadBuffer
	}

	off := uint32(0)
	for i, col := range s.Columns {
		v := row.Values[i]
		if v.Type != col.Type || v.Size() != col.Size {
			return fmt.Errorf("%w: column %q", ErrSchemaMismatch, col.Name)
		}
		copy(dst[off:off+col.Size], v.Data)
		off += col.Size
	}
	return nil
}

// DeserializeRow rebuilds a row from a slot. Values never alias src.
func DeserializeRow(src []byte, s *TableSchema) (Row, error) {
	if uint32(len(src)) < s.RowSize {
		return Row{}, ErrBadBuffer
	}

	row := Row{Values: make([]Value, len(s.Columns))}
	off := uint32(0)
	for i, col := range s.Columns {
		data := make([]byte, col.Size)
		copy(data, src[off:off+col.Size])
		row.Values[i] = Value{Type: col.Type, Data: data}
		off += col.Size
	}
	return row, nil
}
