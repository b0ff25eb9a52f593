package parser

import "fmt"

type TokenKind int

const (
	EOF TokenKind = iota
	Ident
	Number
	String
	Star
	Comma
	LParen
	RParen
	Semicolon
	Illegal
)

func (k TokenKind) String() string {
	switch k {
	case EOF:
		return "EOF"
	case Ident:
		return "Ident"
	case Number:
		return "Number"
	case String:
		return "String"
	case Star:
		return "Star"
	case Comma:
		return "Comma"
	case LParen:
		return "LParen"
	case RParen:
		return "RParen"
	case Semicolon:
		return "Semicolon"
	case Illegal:
		return "Illegal"
	default:
		return fmt.Sprintf("TokenKind(%d)", int(k))
	}
}

// Span is a half-open byte range [Start, End) of the input line.
type Span struct {
	Start int
	End   int
}

type Token struct {
	Kind TokenKind
	// Text is the token as written; for String it excludes the quotes.
	Text string
	// Span covers the whole token, quotes included.
	Span Span
	// Unterminated marks a String token whose closing quote is missing.
	Unterminated bool
}

func (t Token) String() string {
	switch t.Kind {
	case Ident, Number, String, Illegal:
		return fmt.Sprintf("%v(%s)@%d", t.Kind, t.Text, t.Span.Start)
	default:
		return fmt.Sprintf("%v@%d", t.Kind, t.Span.Start)
	}
}

// Lexer yields the tokens of one input line on demand. It never mutates the
// input; Reset restarts the sequence from the beginning.
type Lexer struct {
	src string
	pos int
}

func NewLexer(src string) *Lexer {
	return &Lexer{src: src}
}

func (l *Lexer) Reset() { l.pos = 0 }

func (l *Lexer) Source() string { return l.src }

// Next returns the next token, or EOF forever once the input is consumed.
func (l *Lexer) Next() Token {
	l.skipWhitespace()

	start := l.pos
	if start >= len(l.src) {
		return Token{Kind: EOF, Span: Span{start, start}}
	}

	ch := l.src[start]
	single := func(k TokenKind) Token {
		l.pos++
		return Token{Kind: k, Text: l.src[start:l.pos], Span: Span{start, l.pos}}
	}

	switch {
	case ch == ',':
		return single(Comma)
	case ch == '(':
		return single(LParen)
	case ch == ')':
		return single(RParen)
	case ch == '*':
		return single(Star)
	case ch == ';':
		return single(Semicolon)
	case ch == '\'':
		return l.readString()
	case isIdentStart(ch):
		for l.pos < len(l.src) && isIdentPart(l.src[l.pos]) {
			l.pos++
		}
		return Token{Kind: Ident, Text: l.src[start:l.pos], Span: Span{start, l.pos}}
	case isNumberStart(ch):
		l.pos++
		for l.pos < len(l.src) && isNumberPart(l.src[l.pos]) {
			l.pos++
		}
		return Token{Kind: Number, Text: l.src[start:l.pos], Span: Span{start, l.pos}}
	default:
		return single(Illegal)
	}
}

// Peek returns the next token without consuming it.
func (l *Lexer) Peek() Token {
	saved := l.pos
	tok := l.Next()
	l.pos = saved
	return tok
}

// All drains the remaining tokens, EOF excluded.
func (l *Lexer) All() []Token {
	var out []Token
	for {
		tok := l.Next()
		if tok.Kind == EOF {
			return out
		}
		out = append(out, tok)
	}
}

// readString consumes a single-quoted literal. Everything up to the closing
// quote is literal text, commas and parentheses included.
func (l *Lexer) readString() Token {
	start := l.pos
	l.pos++ // opening quote
	for l.pos < len(l.src) && l.src[l.pos] != '\'' {
		l.pos++
	}

	tok := Token{Kind: String, Text: l.src[start+1 : l.pos]}
	if l.pos >= len(l.src) {
		tok.Unterminated = true
	} else {
		l.pos++ // closing quote
	}
	tok.Span = Span{start, l.pos}
	return tok
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.src) {
		switch l.src[l.pos] {
		case ' ', '\t', '\n', '\r':
			l.pos++
		default:
			return
		}
	}
}

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }

func isNumberStart(ch byte) bool {
	return isDigit(ch) || ch == '-' || ch == '+' || ch == '.'
}

// isNumberPart accepts letters so "1e5" and "12abc" stay one token;
// the value codec rejects what is not a number.
func isNumberPart(ch byte) bool {
	return isIdentPart(ch) || ch == '.' || ch == '-' || ch == '+'
}
