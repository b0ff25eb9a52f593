package record

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tuannm99/pagesql/internal/alias/bx"
)

// ColumnType is the on-disk type tag of a column. The numeric values are
// part of the file format.
type ColumnType uint32

const (
	ColInt ColumnType = iota
	ColString
	ColBool
	ColFloat
)

const (
	MaxTableName    = 32  // name field width, terminator included
	MaxColumnName   = 32  // name field width, terminator included
	MaxColumns      = 50  // column records per schema record
	MaxStringLength = 255 // fixed STRING slot, terminator included

	// ColumnRecordSize: name[32] | type u32 | size u32 | nullable u8 | 3 pad bytes.
	ColumnRecordSize = MaxColumnName + 4 + 4 + 1 + 3
	// SchemaRecordSize: name[32] | ncols u32 | columns[50] | row_size u32.
	SchemaRecordSize = MaxTableName + 4 + MaxColumns*ColumnRecordSize + 4
)

var (
	ErrNameTooLong    = errors.New("record: name too long")
	ErrTooManyColumns = errors.New("record: too many columns")
	ErrNoColumns      = errors.New("record: table has no columns")
	ErrUnknownType    = errors.New("record: unknown column type")
	ErrBadRecord      = errors.New("record: malformed schema record")
)

func (t ColumnType) String() string {
	switch t {
	case ColInt:
		return "INT"
	case ColString:
		return "STRING"
	case ColBool:
		return "BOOL"
	case ColFloat:
		return "FLOAT"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", uint32(t))
	}
}

// Size is the fixed slot width of a value of this type.
func (t ColumnType) Size() uint32 {
	switch t {
	case ColInt, ColFloat:
		return 4
	case ColBool:
		return 1
	case ColString:
		return MaxStringLength
	default:
		return 0
	}
}

// ParseColumnType maps a type keyword (case-insensitive) to its ColumnType.
func ParseColumnType(s string) (ColumnType, error) {
	switch strings.ToUpper(s) {
	case "INT":
		return ColInt, nil
	case "STRING":
		return ColString, nil
	case "BOOL":
		return ColBool, nil
	case "FLOAT":
		return ColFloat, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownType, s)
	}
}

type Column struct {
	Name     string
	Type     ColumnType
	Size     uint32
	Nullable bool
}

// NewColumn builds a column whose size is derived from its type.
func NewColumn(name string, typ ColumnType) (Column, error) {
	if len(name) >= MaxColumnName {
		return Column{}, fmt.Errorf("%w: column %q", ErrNameTooLong, name)
	}
	if typ.Size() == 0 {
		return Column{}, ErrUnknownType
	}
	return Column{Name: name, Type: typ, Size: typ.Size()}, nil
}

// TableSchema is immutable once created; RowSize is computed once.
type TableSchema struct {
	Name    string
	Columns []Column
	RowSize uint32
}

// NewTableSchema validates the limits of the on-disk record and computes the row size.
func NewTableSchema(name string, cols []Column) (*TableSchema, error) {
	if name == "" || len(name) >= MaxTableName {
		return nil, fmt.Errorf("%w: table %q", ErrNameTooLong, name)
	}
	if len(cols) == 0 {
		return nil, ErrNoColumns
	}
	if len(cols) > MaxColumns {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyColumns, len(cols), MaxColumns)
	}

	s := &TableSchema{Name: name, Columns: make([]Column, len(cols))}
	for i, c := range cols {
		if len(c.Name) >= MaxColumnName {
			return nil, fmt.Errorf("%w: column %q", ErrNameTooLong, c.Name)
		}
		if c.Size != c.Type.Size() {
			return nil, fmt.Errorf("%w: column %q", ErrUnknownType, c.Name)
		}
		s.Columns[i] = c
		s.RowSize += c.Size
	}
	return s, nil
}

func (s *TableSchema) NumCols() int { return len(s.Columns) }

// ColumnIndex returns the position of a column by name, or -1.
func (s *TableSchema) ColumnIndex(name string) int {
	for i, c := range s.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// MarshalRecord writes the fixed-size schema record into dst.
// dst must be at least SchemaRecordSize bytes.
func (s *TableSchema) MarshalRecord(dst []byte) error {
	if len(dst) < SchemaRecordSize {
		return ErrBadRecord
	}
	rec := dst[:SchemaRecordSize]
	clear(rec)

	bx.PutCString(rec[:MaxTableName], s.Name)
	bx.PutU32At(rec, MaxTableName, uint32(len(s.Columns)))

	off := MaxTableName + 4
	for _, c := range s.Columns {
		col := rec[off : off+ColumnRecordSize]
		bx.PutCString(col[:MaxColumnName], c.Name)
		bx.PutU32At(col, MaxColumnName, uint32(c.Type))
		bx.PutU32At(col, MaxColumnName+4, c.Size)
		if c.Nullable {
			col[MaxColumnName+8] = 1
		}
		off += ColumnRecordSize
	}

	bx.PutU32At(rec, SchemaRecordSize-4, s.RowSize)
	return nil
}

// UnmarshalRecord decodes one fixed-size schema record.
func UnmarshalRecord(src []byte) (*TableSchema, error) {
	if len(src) < SchemaRecordSize {
		return nil, ErrBadRecord
	}

	n := bx.U32At(src, MaxTableName)
	if n > MaxColumns {
		return nil, fmt.Errorf("%w: %d columns", ErrBadRecord, n)
	}

	s := &TableSchema{
		Name:    bx.CString(src[:MaxTableName]),
		Columns: make([]Column, n),
		RowSize: bx.U32At(src, SchemaRecordSize-4),
	}

	off := MaxTableName + 4
	for i := range s.Columns {
		col := src[off : off+ColumnRecordSize]
		s.Columns[i] = Column{
			Name:     bx.CString(col[:MaxColumnName]),
			Type:     ColumnType(bx.U32At(col, MaxColumnName)),
			Size:     bx.U32At(col, MaxColumnName+4),
			Nullable: col[MaxColumnName+8] != 0,
		}
		off += ColumnRecordSize
	}
	return s, nil
}
