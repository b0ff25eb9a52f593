package planner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tuannm99/pagesql/internal/catalog"
	"github.com/tuannm99/pagesql/internal/record"
	"github.com/tuannm99/pagesql/internal/sql/parser"
)

func newUsersCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()

	cat := catalog.New(catalog.MaxTables)
	id, err := record.NewColumn("id", record.ColInt)
	require.NoError(t, err)
	name, err := record.NewColumn("name", record.ColString)
	require.NoError(t, err)
	_, err = cat.Create("users", []record.Column{id, name})
	require.NoError(t, err)
	return cat
}

func TestBuildPlan_CreateTable(t *testing.T) {
	cat := catalog.New(catalog.MaxTables)

	p, err := Prepare("CREATE TABLE t (id int, name STRING, ok BOOL, score float)", cat)
	require.NoError(t, err)

	plan, ok := p.(*CreateTablePlan)
	require.True(t, ok)
	require.Equal(t, "t", plan.TableName)
	require.Len(t, plan.Columns, 4)
	require.Equal(t, record.Column{Name: "id", Type: record.ColInt, Size: 4}, plan.Columns[0])
	require.Equal(t, record.ColString, plan.Columns[1].Type)
	require.Equal(t, uint32(255), plan.Columns[1].Size)
	require.Equal(t, record.ColBool, plan.Columns[2].Type)
	require.Equal(t, record.ColFloat, plan.Columns[3].Type)

	// planning never touches the catalog
	require.Equal(t, 0, cat.Len())
}

func TestBuildPlan_CreateTable_Errors(t *testing.T) {
	cat := newUsersCatalog(t)

	_, err := Prepare("CREATE TABLE users (id INT)", cat)
	require.ErrorIs(t, err, catalog.ErrDuplicateTable)
	require.Equal(t, PrepareDuplicateTable, ResultOf(err))

	_, err = Prepare("CREATE TABLE t (id TEXT)", cat)
	require.ErrorIs(t, err, parser.ErrSyntax)
	require.ErrorIs(t, err, record.ErrUnknownType)
	require.Equal(t, PrepareSyntaxError, ResultOf(err))
}

func TestBuildPlan_Insert(t *testing.T) {
	cat := newUsersCatalog(t)

	p, err := Prepare("INSERT INTO users VALUES (7, 'Smith, Jr.')", cat)
	require.NoError(t, err)

	plan, ok := p.(*InsertPlan)
	require.True(t, ok)
	require.Equal(t, "users", plan.Table.Name)
	require.Equal(t, []string{"7", "Smith, Jr."}, plan.Row.Strings())
}

func TestBuildPlan_Insert_Errors(t *testing.T) {
	cat := newUsersCatalog(t)

	cases := []struct {
		line string
		want PrepareResult
	}{
		{"INSERT INTO nope VALUES (1, 'a')", PrepareTableNotFound},
		{"INSERT INTO users VALUES (1)", PrepareSyntaxError},
		{"INSERT INTO users VALUES (1, 'a', 'b')", PrepareSyntaxError},
		{"INSERT INTO users VALUES (abc, 'a')", PrepareTypeMismatch},
		{"INSERT INTO users VALUES (99999999999, 'a')", PrepareTypeMismatch},
		{"INSERT INTO users VALUES (1, '" + strings.Repeat("x", 255) + "')", PrepareStringTooLong},
		{"INSERT INTO users VALUES (1, 'open", PrepareSyntaxError},
		{"DROP TABLE users", PrepareUnrecognizedStatement},
	}
	for _, tc := range cases {
		_, err := Prepare(tc.line, cat)
		require.Error(t, err, tc.line)
		require.Equal(t, tc.want, ResultOf(err), "%s: %v", tc.line, err)
	}
}

func TestBuildPlan_Select(t *testing.T) {
	cat := newUsersCatalog(t)

	p, err := Prepare("select * from users;", cat)
	require.NoError(t, err)
	plan, ok := p.(*SeqScanPlan)
	require.True(t, ok)
	require.Equal(t, "users", plan.Table.Name)

	_, err = Prepare("SELECT * FROM ghosts", cat)
	require.ErrorIs(t, err, ErrTableNotFound)
}

func TestBuildPlan_Unsupported(t *testing.T) {
	p, err := Prepare("DELETE FROM users", catalog.New(1))
	require.NoError(t, err)
	require.Equal(t, &NoopPlan{Keyword: "DELETE"}, p)
}

func TestPrepareResult_String(t *testing.T) {
	require.Equal(t, "Success", ResultOf(nil).String())
	require.Equal(t, "NegativeID", PrepareNegativeID.String())
	require.Equal(t, "Unknown", PrepareResult(42).String())
}
