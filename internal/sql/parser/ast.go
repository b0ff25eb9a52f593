package parser

// Statement is the root interface for all SQL statements.
type Statement interface {
	stmtNode()
}

// ----- CREATE TABLE -----
type ColumnDef struct {
	Name string
	Type string // type keyword as written; resolved when the table is created
	Span Span
}

type CreateTableStmt struct {
	TableName string
	Columns   []ColumnDef
}

func (*CreateTableStmt) stmtNode() {}

// ----- INSERT -----
type InsertStmt struct {
	TableName string
	Values    []Literal
}

func (*InsertStmt) stmtNode() {}

// ----- SELECT -----
type SelectStmt struct {
	TableName string
}

func (*SelectStmt) stmtNode() {}

// ----- UPDATE / DELETE -----

// UnsupportedStmt is a recognized statement kind without an implementation.
type UnsupportedStmt struct {
	Keyword string // "UPDATE" or "DELETE"
}

func (*UnsupportedStmt) stmtNode() {}

// ----- Literals -----

// Literal is the raw text of one VALUES item. Quoted literals keep any
// commas or parentheses they contain.
type Literal struct {
	Text   string
	Quoted bool
	Span   Span
}
