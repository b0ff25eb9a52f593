package planner

import (
	"errors"
	"fmt"

	"github.com/tuannm99/pagesql/internal/catalog"
	"github.com/tuannm99/pagesql/internal/record"
	"github.com/tuannm99/pagesql/internal/sql/parser"
)

var ErrTableNotFound = errors.New("planner: table not found")

// BuildPlan binds an AST statement against the catalog.
func BuildPlan(stmt parser.Statement, cat *catalog.Catalog) (Plan, error) {
	switch s := stmt.(type) {
	case *parser.CreateTableStmt:
		return buildCreateTablePlan(s, cat)
	case *parser.InsertStmt:
		return buildInsertPlan(s, cat)
	case *parser.SelectStmt:
		return buildSelectPlan(s, cat)
	case *parser.UnsupportedStmt:
		return &NoopPlan{Keyword: s.Keyword}, nil
	default:
		return nil, fmt.Errorf("planner: unsupported statement type %T", stmt)
	}
}

// Prepare parses and binds one input line.
func Prepare(line string, cat *catalog.Catalog) (Plan, error) {
	stmt, err := parser.Parse(line)
	if err != nil {
		return nil, err
	}
	return BuildPlan(stmt, cat)
}

func buildCreateTablePlan(s *parser.CreateTableStmt, cat *catalog.Catalog) (Plan, error) {
	if _, ok := cat.Find(s.TableName); ok {
		return nil, fmt.Errorf("%w: %q", catalog.ErrDuplicateTable, s.TableName)
	}

	cols := make([]record.Column, 0, len(s.Columns))
	for _, c := range s.Columns {
		typ, err := record.ParseColumnType(c.Type)
		if err != nil {
			return nil, fmt.Errorf("%w: column %q: %w", parser.ErrSyntax, c.Name, err)
		}
		cols = append(cols, record.Column{Name: c.Name, Type: typ, Size: typ.Size()})
	}
	return &CreateTablePlan{TableName: s.TableName, Columns: cols}, nil
}

func buildInsertPlan(s *parser.InsertStmt, cat *catalog.Catalog) (Plan, error) {
	schema, ok := cat.Find(s.TableName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrTableNotFound, s.TableName)
	}
	if len(s.Values) != schema.NumCols() {
		return nil, fmt.Errorf("%w: %d values for %d columns", parser.ErrSyntax, len(s.Values), schema.NumCols())
	}

	row := record.Row{Values: make([]record.Value, len(s.Values))}
	for i, lit := range s.Values {
		v, err := record.EncodeLiteral(lit.Text, schema.Columns[i])
		if err != nil {
			return nil, fmt.Errorf("column %q at %d: %w", schema.Columns[i].Name, lit.Span.Start, err)
		}
		row.Values[i] = v
	}
	return &InsertPlan{Table: schema, Row: row}, nil
}

func buildSelectPlan(s *parser.SelectStmt, cat *catalog.Catalog) (Plan, error) {
	schema, ok := cat.Find(s.TableName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrTableNotFound, s.TableName)
	}
	return &SeqScanPlan{Table: schema}, nil
}
