package lexer

import (
	"testing"

	"github.com/funvibe/gwn/internal/token"
)

func TestNextToken(t *testing.T) {
	input := `fizzbuzz = {x | x % 15 == 0 ? "FizzBuzz", else ? x -> toString}
[1..15] -> (fizzbuzz -> map)
a <- not true and false
1 + 2.5 ++ "s" # trailing comment
`

	expected := []struct {
		tokType token.TokenType
		lexeme  string
	}{
		{token.IDENT, "fizzbuzz"},
		{token.ASSIGN, "="},
		{token.LBRACE, "{"},
		{token.IDENT, "x"},
		{token.PIPE, "|"},
		{token.IDENT, "x"},
		{token.PERCENT, "%"},
		{token.INT, "15"},
		{token.EQ, "=="},
		{token.INT, "0"},
		{token.QUESTION, "?"},
		{token.STRING, `"FizzBuzz"`},
		{token.COMMA, ","},
		{token.ELSE, "else"},
		{token.QUESTION, "?"},
		{token.IDENT, "x"},
		{token.ARROW, "->"},
		{token.IDENT, "toString"},
		{token.RBRACE, "}"},
		{token.NEWLINE, "\\n"},
		{token.LBRACKET, "["},
		{token.INT, "1"},
		{token.DOT_DOT, ".."},
		{token.INT, "15"},
		{token.RBRACKET, "]"},
		{token.ARROW, "->"},
		{token.LPAREN, "("},
		{token.IDENT, "fizzbuzz"},
		{token.ARROW, "->"},
		{token.IDENT, "map"},
		{token.RPAREN, ")"},
		{token.NEWLINE, "\\n"},
		{token.IDENT, "a"},
		{token.L_ARROW, "<-"},
		{token.NOT, "not"},
		{token.TRUE, "true"},
		{token.AND, "and"},
		{token.FALSE, "false"},
		{token.NEWLINE, "\\n"},
		{token.INT, "1"},
		{token.PLUS, "+"},
		{token.FLOAT, "2.5"},
		{token.CONCAT, "++"},
		{token.STRING, `"s"`},
		{token.NEWLINE, "\\n"},
		{token.EOF, ""},
	}

	l := New(input)
	for i, exp := range expected {
		tok := l.NextToken()
		if tok.Type != exp.tokType {
			t.Fatalf("token %d: type = %q, want %q (lexeme %q)", i, tok.Type, exp.tokType, tok.Lexeme)
		}
		if tok.Lexeme != exp.lexeme {
			t.Fatalf("token %d: lexeme = %q, want %q", i, tok.Lexeme, exp.lexeme)
		}
	}
}

func TestTokenLiterals(t *testing.T) {
	l := New(`42 3.25 "a\nb" name`)

	tok := l.NextToken()
	if got := tok.Literal.(int64); got != 42 {
		t.Errorf("int literal = %d, want 42", got)
	}
	tok = l.NextToken()
	if got := tok.Literal.(float64); got != 3.25 {
		t.Errorf("float literal = %g, want 3.25", got)
	}
	tok = l.NextToken()
	if got := tok.Literal.(string); got != "a\nb" {
		t.Errorf("string literal = %q, want %q", got, "a\nb")
	}
	tok = l.NextToken()
	if got := tok.Literal.(string); got != "name" {
		t.Errorf("ident literal = %q, want %q", got, "name")
	}
}

func TestTokenPositions(t *testing.T) {
	l := New("a\n  b")

	a := l.NextToken()
	if a.Line != 1 || a.Column != 1 {
		t.Errorf("a at %d:%d, want 1:1", a.Line, a.Column)
	}
	nl := l.NextToken()
	if nl.Type != token.NEWLINE {
		t.Fatalf("expected NEWLINE, got %q", nl.Type)
	}
	b := l.NextToken()
	if b.Line != 2 || b.Column != 3 {
		t.Errorf("b at %d:%d, want 2:3", b.Line, b.Column)
	}
}

func TestUnterminatedString(t *testing.T) {
	l := New(`"abc`)
	tok := l.NextToken()
	if tok.Type != token.ILLEGAL {
		t.Fatalf("expected ILLEGAL for unterminated string, got %q", tok.Type)
	}
}

func TestRangeDoesNotEatFloat(t *testing.T) {
	// [1..15] must lex as INT DOT_DOT INT, never as a malformed float.
	l := New("1..15")
	types := []token.TokenType{token.INT, token.DOT_DOT, token.INT, token.EOF}
	for i, want := range types {
		tok := l.NextToken()
		if tok.Type != want {
			t.Fatalf("token %d: type = %q, want %q", i, tok.Type, want)
		}
	}
}
