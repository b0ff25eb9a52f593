package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(toks []Token) []TokenKind {
	out := make([]TokenKind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestLexer_Basic(t *testing.T) {
	lx := NewLexer("INSERT INTO users VALUES (1, 'Alice', -2.5, true);")
	toks := lx.All()

	assert.Equal(t, []TokenKind{
		Ident, Ident, Ident, Ident, LParen,
		Number, Comma, String, Comma, Number, Comma, Ident,
		RParen, Semicolon,
	}, kinds(toks))
	assert.Equal(t, "Alice", toks[7].Text)
	assert.Equal(t, "-2.5", toks[9].Text)
	assert.Equal(t, EOF, lx.Next().Kind)
	assert.Equal(t, EOF, lx.Next().Kind)
}

func TestLexer_QuotedKeepsDelimiters(t *testing.T) {
	src := "('Smith, Jr.', 'a(b)c')"
	toks := NewLexer(src).All()
	require.Len(t, toks, 5)

	assert.Equal(t, "Smith, Jr.", toks[1].Text)
	assert.Equal(t, Span{1, 13}, toks[1].Span)
	assert.Equal(t, "'Smith, Jr.'", src[toks[1].Span.Start:toks[1].Span.End])
	assert.Equal(t, "a(b)c", toks[3].Text)
	assert.False(t, toks[3].Unterminated)
}

func TestLexer_Unterminated(t *testing.T) {
	toks := NewLexer("(1, 'oops").All()
	require.Len(t, toks, 4)

	last := toks[3]
	assert.Equal(t, String, last.Kind)
	assert.True(t, last.Unterminated)
	assert.Equal(t, "oops", last.Text)
	assert.Equal(t, Span{4, 9}, last.Span)
}

func TestLexer_PeekAndReset(t *testing.T) {
	lx := NewLexer("SELECT * FROM t")

	assert.Equal(t, "SELECT", lx.Peek().Text)
	assert.Equal(t, "SELECT", lx.Next().Text)
	assert.Equal(t, Star, lx.Peek().Kind)

	lx.Reset()
	assert.Equal(t, "SELECT", lx.Next().Text)
	assert.Equal(t, "SELECT * FROM t", lx.Source())
}

func TestLexer_NumberAndIllegal(t *testing.T) {
	toks := NewLexer("12abc 1e5 # .5").All()
	require.Len(t, toks, 4)

	assert.Equal(t, Token{Kind: Number, Text: "12abc", Span: Span{0, 5}}, toks[0])
	assert.Equal(t, "1e5", toks[1].Text)
	assert.Equal(t, Illegal, toks[2].Kind)
	assert.Equal(t, ".5", toks[3].Text)
	assert.Equal(t, "Illegal(#)@10", toks[2].String())
}
