package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tuannm99/pagesql/internal/record"
)

var (
	ErrSyntax                = errors.New("parser: syntax error")
	ErrUnrecognizedStatement = errors.New("parser: unrecognized statement")
)

// ErrStringTooLong is shared with the value codec so one errors.Is covers both.
var ErrStringTooLong = record.ErrStringTooLong

// Parse parses one input line into a statement. A trailing ';' is optional.
//
//	CREATE TABLE <name> (<col> <TYPE>, ...)
//	INSERT INTO <name> VALUES (<v1>, <v2>, ...)
//	SELECT * FROM <name>
func Parse(line string) (Statement, error) {
	p := &parser{lx: NewLexer(line)}

	first := p.lx.Next()
	if first.Kind != Ident {
		return nil, fmt.Errorf("%w: %q", ErrUnrecognizedStatement, line)
	}

	switch strings.ToUpper(first.Text) {
	case "CREATE":
		if !p.acceptKeyword("TABLE") {
			return nil, fmt.Errorf("%w: %q", ErrUnrecognizedStatement, line)
		}
		return p.parseCreateTable()
	case "INSERT":
		if !p.acceptKeyword("INTO") {
			return nil, fmt.Errorf("%w: %q", ErrUnrecognizedStatement, line)
		}
		return p.parseInsert()
	case "SELECT":
		return p.parseSelect()
	case "UPDATE", "DELETE":
		return &UnsupportedStmt{Keyword: strings.ToUpper(first.Text)}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnrecognizedStatement, line)
	}
}

type parser struct {
	lx *Lexer
}

func syntaxErr(tok Token, want string) error {
	if tok.Kind == EOF {
		return fmt.Errorf("%w: expected %s at end of input", ErrSyntax, want)
	}
	return fmt.Errorf("%w: expected %s, got %v", ErrSyntax, want, tok)
}

// acceptKeyword consumes the next token if it is the given keyword (case-insensitive).
func (p *parser) acceptKeyword(kw string) bool {
	tok := p.lx.Peek()
	if tok.Kind == Ident && strings.EqualFold(tok.Text, kw) {
		p.lx.Next()
		return true
	}
	return false
}

func (p *parser) expect(kind TokenKind, want string) (Token, error) {
	tok := p.lx.Next()
	if tok.Kind != kind {
		return tok, syntaxErr(tok, want)
	}
	return tok, nil
}

// tableName reads an identifier that has to fit the fixed-width name field.
func (p *parser) tableName() (string, error) {
	tok, err := p.expect(Ident, "table name")
	if err != nil {
		return "", err
	}
	if len(tok.Text) >= record.MaxTableName {
		return "", fmt.Errorf("%w: table name %q", ErrStringTooLong, tok.Text)
	}
	return tok.Text, nil
}

// end accepts an optional ';' followed by the end of the line.
func (p *parser) end() error {
	tok := p.lx.Next()
	if tok.Kind == Semicolon {
		tok = p.lx.Next()
	}
	if tok.Kind != EOF {
		return syntaxErr(tok, "end of statement")
	}
	return nil
}

func (p *parser) parseCreateTable() (Statement, error) {
	name, err := p.tableName()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(LParen, "'('"); err != nil {
		return nil, err
	}

	stmt := &CreateTableStmt{TableName: name}
	for {
		colTok, err := p.expect(Ident, "column name")
		if err != nil {
			return nil, err
		}
		typTok, err := p.expect(Ident, "column type")
		if err != nil {
			return nil, err
		}
		stmt.Columns = append(stmt.Columns, ColumnDef{
			Name: colTok.Text,
			Type: typTok.Text,
			Span: Span{colTok.Span.Start, typTok.Span.End},
		})

		tok := p.lx.Next()
		if tok.Kind == RParen {
			break
		}
		if tok.Kind != Comma {
			return nil, syntaxErr(tok, "',' or ')'")
		}
	}

	if err := p.end(); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *parser) parseInsert() (Statement, error) {
	name, err := p.tableName()
	if err != nil {
		return nil, err
	}
	if !p.acceptKeyword("VALUES") {
		return nil, syntaxErr(p.lx.Peek(), "VALUES")
	}
	if _, err := p.expect(LParen, "'('"); err != nil {
		return nil, err
	}

	stmt := &InsertStmt{TableName: name}
	for {
		tok := p.lx.Next()
		switch tok.Kind {
		case String:
			if tok.Unterminated {
				return nil, fmt.Errorf("%w: unterminated string at %d", ErrSyntax, tok.Span.Start)
			}
			stmt.Values = append(stmt.Values, Literal{Text: tok.Text, Quoted: true, Span: tok.Span})
		case Number, Ident:
			stmt.Values = append(stmt.Values, Literal{Text: tok.Text, Span: tok.Span})
		default:
			return nil, syntaxErr(tok, "value")
		}

		tok = p.lx.Next()
		if tok.Kind == RParen {
			break
		}
		if tok.Kind != Comma {
			return nil, syntaxErr(tok, "',' or ')'")
		}
	}

	if err := p.end(); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *parser) parseSelect() (Statement, error) {
	if _, err := p.expect(Star, "'*'"); err != nil {
		return nil, err
	}
	if !p.acceptKeyword("FROM") {
		return nil, syntaxErr(p.lx.Peek(), "FROM")
	}
	name, err := p.tableName()
	if err != nil {
		return nil, err
	}
	if err := p.end(); err != nil {
		return nil, err
	}
	return &SelectStmt{TableName: name}, nil
}
