package record

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuannm99/pagesql/internal/alias/bx"
)

func TestRecordSizes(t *testing.T) {
	// Must match the C struct layout of existing database files.
	assert.Equal(t, 44, ColumnRecordSize)
	assert.Equal(t, 2240, SchemaRecordSize)
}

func TestColumnTypeSizes(t *testing.T) {
	assert.Equal(t, uint32(4), ColInt.Size())
	assert.Equal(t, uint32(4), ColFloat.Size())
	assert.Equal(t, uint32(1), ColBool.Size())
	assert.Equal(t, uint32(255), ColString.Size())
	assert.Equal(t, uint32(0), ColumnType(9).Size())
}

func TestParseColumnType(t *testing.T) {
	for kw, want := range map[string]ColumnType{
		"INT": ColInt, "int": ColInt, "String": ColString, "bool": ColBool, "FLOAT": ColFloat,
	} {
		got, err := ParseColumnType(kw)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseColumnType("TEXT")
	require.ErrorIs(t, err, ErrUnknownType)
}

func TestNewTableSchema_Limits(t *testing.T) {
	id, err := NewColumn("id", ColInt)
	require.NoError(t, err)

	_, err = NewTableSchema(strings.Repeat("t", MaxTableName), []Column{id})
	require.ErrorIs(t, err, ErrNameTooLong)

	_, err = NewTableSchema("t", nil)
	require.ErrorIs(t, err, ErrNoColumns)

	many := make([]Column, MaxColumns+1)
	for i := range many {
		many[i] = id
	}
	_, err = NewTableSchema("t", many)
	require.ErrorIs(t, err, ErrTooManyColumns)

	_, err = NewColumn(strings.Repeat("c", MaxColumnName), ColInt)
	require.ErrorIs(t, err, ErrNameTooLong)

	s, err := NewTableSchema(strings.Repeat("t", MaxTableName-1), []Column{id})
	require.NoError(t, err)
	assert.Equal(t, uint32(4), s.RowSize)
}

func TestSchemaRecord_RoundTrip(t *testing.T) {
	s := makeTestSchema(t)
	s.Columns[1].Nullable = true

	buf := make([]byte, SchemaRecordSize)
	require.NoError(t, s.MarshalRecord(buf))

	// spot-check the fixed offsets
	assert.Equal(t, "people", bx.CString(buf[:32]))
	assert.Equal(t, uint32(4), bx.U32At(buf, 32))
	assert.Equal(t, "id", bx.CString(buf[36:68]))
	assert.Equal(t, uint32(ColInt), bx.U32At(buf, 68))
	assert.Equal(t, uint32(4), bx.U32At(buf, 72))
	assert.Equal(t, "name", bx.CString(buf[80:112]))
	assert.Equal(t, uint32(255), bx.U32At(buf, 116))
	assert.Equal(t, byte(1), buf[120])
	assert.Equal(t, s.RowSize, bx.U32At(buf, 2236))

	got, err := UnmarshalRecord(buf)
	require.NoError(t, err)
	assert.Equal(t, s, got)
	assert.Equal(t, 1, got.ColumnIndex("name"))
	assert.Equal(t, -1, got.ColumnIndex("missing"))
}

func TestUnmarshalRecord_Bad(t *testing.T) {
	_, err := UnmarshalRecord(make([]byte, 10))
	require.ErrorIs(t, err, ErrBadRecord)

	buf := make([]byte, SchemaRecordSize)
	bx.PutU32At(buf, MaxTableName, MaxColumns+1)
	_, err = UnmarshalRecord(buf)
	require.ErrorIs(t, err, ErrBadRecord)
}
