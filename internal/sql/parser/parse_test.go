package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_CreateTable(t *testing.T) {
	stmt, err := Parse("create table users (id INT, name STRING, active bool, score FLOAT)")
	require.NoError(t, err)

	ct, ok := stmt.(*CreateTableStmt)
	require.True(t, ok)
	assert.Equal(t, "users", ct.TableName)
	require.Len(t, ct.Columns, 4)
	assert.Equal(t, "id", ct.Columns[0].Name)
	assert.Equal(t, "INT", ct.Columns[0].Type)
	assert.Equal(t, "bool", ct.Columns[2].Type)
	assert.Equal(t, Span{20, 26}, ct.Columns[0].Span)
}

func TestParse_CreateTable_Errors(t *testing.T) {
	for _, line := range []string{
		"CREATE TABLE",
		"CREATE TABLE t",
		"CREATE TABLE t ()",
		"CREATE TABLE t (id)",
		"CREATE TABLE t (id INT",
		"CREATE TABLE t (id INT name STRING)",
		"CREATE TABLE t (id INT) extra",
	} {
		_, err := Parse(line)
		assert.ErrorIs(t, err, ErrSyntax, line)
	}

	_, err := Parse("CREATE TABLE " + strings.Repeat("x", 40) + " (id INT)")
	require.ErrorIs(t, err, ErrStringTooLong)

	_, err = Parse("CREATE INDEX i ON t")
	require.ErrorIs(t, err, ErrUnrecognizedStatement)
}

func TestParse_Insert(t *testing.T) {
	line := "INSERT INTO users VALUES (1, 'Smith, Jr.', true, 2.5);"
	stmt, err := Parse(line)
	require.NoError(t, err)

	ins, ok := stmt.(*InsertStmt)
	require.True(t, ok)
	assert.Equal(t, "users", ins.TableName)
	require.Len(t, ins.Values, 4)

	assert.Equal(t, Literal{Text: "1", Span: Span{26, 27}}, ins.Values[0])
	assert.Equal(t, "Smith, Jr.", ins.Values[1].Text)
	assert.True(t, ins.Values[1].Quoted)
	assert.Equal(t, "'Smith, Jr.'", line[ins.Values[1].Span.Start:ins.Values[1].Span.End])
	assert.Equal(t, "true", ins.Values[2].Text)
	assert.False(t, ins.Values[2].Quoted)
}

func TestParse_Insert_Errors(t *testing.T) {
	for _, line := range []string{
		"INSERT INTO users",
		"INSERT INTO users (1)",
		"INSERT INTO users VALUES 1, 2",
		"INSERT INTO users VALUES ()",
		"INSERT INTO users VALUES (1,)",
		"INSERT INTO users VALUES (1 2)",
		"INSERT INTO users VALUES (1, 'Bob)",
	} {
		_, err := Parse(line)
		assert.ErrorIs(t, err, ErrSyntax, line)
	}

	_, err := Parse("INSERT users VALUES (1)")
	require.ErrorIs(t, err, ErrUnrecognizedStatement)
}

func TestParse_Select(t *testing.T) {
	for _, line := range []string{"SELECT * FROM users", "select * from users;", "  SeLeCt *   FROM users  "} {
		stmt, err := Parse(line)
		require.NoError(t, err, line)
		assert.Equal(t, &SelectStmt{TableName: "users"}, stmt)
	}

	for _, line := range []string{"SELECT id FROM users", "SELECT * users", "SELECT * FROM", "SELECT * FROM a b"} {
		_, err := Parse(line)
		assert.ErrorIs(t, err, ErrSyntax, line)
	}
}

func TestParse_Unsupported(t *testing.T) {
	stmt, err := Parse("update users set x = 1")
	require.NoError(t, err)
	assert.Equal(t, &UnsupportedStmt{Keyword: "UPDATE"}, stmt)

	stmt, err = Parse("DELETE FROM users")
	require.NoError(t, err)
	assert.Equal(t, &UnsupportedStmt{Keyword: "DELETE"}, stmt)
}

func TestParse_Unrecognized(t *testing.T) {
	for _, line := range []string{"", "   ", "DROP TABLE t", "42", "'x'"} {
		_, err := Parse(line)
		assert.ErrorIs(t, err, ErrUnrecognizedStatement, line)
	}
}
