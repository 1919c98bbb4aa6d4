package lexer

import (
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/funvibe/gwn/internal/token"
)

type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           rune // current char under examination
	line         int  // current line number
	column       int  // current column number
}

func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}

	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		l.readPosition++
		l.column++
		return
	}

	r, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += w
	l.column++
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) NextToken() token.Token {
	var tok token.Token

	l.skipWhitespace()

	switch l.ch {
	case '\n':
		tok = l.newToken(token.NEWLINE, "\\n")
	case '=':
		if l.peekChar() == '=' {
			tok = l.newToken(token.EQ, "==")
			l.readChar()
		} else {
			tok = l.newToken(token.ASSIGN, "=")
		}
	case '+':
		if l.peekChar() == '+' {
			tok = l.newToken(token.CONCAT, "++")
			l.readChar()
		} else {
			tok = l.newToken(token.PLUS, "+")
		}
	case '-':
		if l.peekChar() == '>' {
			tok = l.newToken(token.ARROW, "->")
			l.readChar()
		} else {
			tok = l.newToken(token.MINUS, "-")
		}
	case '<':
		switch l.peekChar() {
		case '=':
			tok = l.newToken(token.LTE, "<=")
			l.readChar()
		case '-':
			tok = l.newToken(token.L_ARROW, "<-")
			l.readChar()
		default:
			tok = l.newToken(token.LT, "<")
		}
	case '>':
		if l.peekChar() == '=' {
			tok = l.newToken(token.GTE, ">=")
			l.readChar()
		} else {
			tok = l.newToken(token.GT, ">")
		}
	case '.':
		if l.peekChar() == '.' {
			tok = l.newToken(token.DOT_DOT, "..")
			l.readChar()
		} else {
			tok = l.newToken(token.ILLEGAL, string(l.ch))
		}
	case '*':
		tok = l.newToken(token.ASTERISK, "*")
	case '/':
		tok = l.newToken(token.SLASH, "/")
	case '%':
		tok = l.newToken(token.PERCENT, "%")
	case '^':
		tok = l.newToken(token.CARET, "^")
	case ',':
		tok = l.newToken(token.COMMA, ",")
	case ':':
		tok = l.newToken(token.COLON, ":")
	case '|':
		tok = l.newToken(token.PIPE, "|")
	case '?':
		tok = l.newToken(token.QUESTION, "?")
	case '(':
		tok = l.newToken(token.LPAREN, "(")
	case ')':
		tok = l.newToken(token.RPAREN, ")")
	case '{':
		tok = l.newToken(token.LBRACE, "{")
	case '}':
		tok = l.newToken(token.RBRACE, "}")
	case '[':
		tok = l.newToken(token.LBRACKET, "[")
	case ']':
		tok = l.newToken(token.RBRACKET, "]")
	case '"':
		return l.readString()
	case 0:
		tok = token.Token{Type: token.EOF, Lexeme: "", Line: l.line, Column: l.column}
	default:
		if isDigit(l.ch) {
			return l.readNumber()
		}
		if isIdentStart(l.ch) {
			return l.readIdentifier()
		}
		tok = l.newToken(token.ILLEGAL, string(l.ch))
	}

	l.readChar()
	return tok
}

func (l *Lexer) newToken(tokenType token.TokenType, lexeme string) token.Token {
	return token.Token{
		Type:   tokenType,
		Lexeme: lexeme,
		Line:   l.line,
		Column: l.column,
	}
}

func (l *Lexer) skipWhitespace() {
	for {
		switch l.ch {
		case ' ', '\t', '\r':
			l.readChar()
		case '#':
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
		default:
			return
		}
	}
}

func (l *Lexer) readNumber() token.Token {
	line, column := l.line, l.column
	start := l.position

	for isDigit(l.ch) {
		l.readChar()
	}

	isFloat := false
	if l.ch == '.' && isDigit(l.peekChar()) {
		isFloat = true
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	lexeme := l.input[start:l.position]
	if isFloat {
		value, _ := strconv.ParseFloat(lexeme, 64)
		return token.Token{Type: token.FLOAT, Lexeme: lexeme, Literal: value, Line: line, Column: column}
	}
	value, err := strconv.ParseInt(lexeme, 10, 64)
	if err != nil {
		return token.Token{Type: token.ILLEGAL, Lexeme: lexeme, Line: line, Column: column}
	}
	return token.Token{Type: token.INT, Lexeme: lexeme, Literal: value, Line: line, Column: column}
}

func (l *Lexer) readIdentifier() token.Token {
	line, column := l.line, l.column
	start := l.position

	for isIdentStart(l.ch) || isDigit(l.ch) {
		l.readChar()
	}

	lexeme := l.input[start:l.position]
	return token.Token{
		Type:    token.LookupIdent(lexeme),
		Lexeme:  lexeme,
		Literal: lexeme,
		Line:    line,
		Column:  column,
	}
}

func (l *Lexer) readString() token.Token {
	line, column := l.line, l.column
	start := l.position
	var out []rune

	l.readChar() // consume opening quote
	for l.ch != '"' {
		if l.ch == 0 || l.ch == '\n' {
			return token.Token{
				Type:   token.ILLEGAL,
				Lexeme: l.input[start:l.position],
				Line:   line,
				Column: column,
			}
		}
		if l.ch == '\\' {
			l.readChar()
			switch l.ch {
			case 'n':
				out = append(out, '\n')
			case 't':
				out = append(out, '\t')
			case '"':
				out = append(out, '"')
			case '\\':
				out = append(out, '\\')
			default:
				out = append(out, '\\', l.ch)
			}
		} else {
			out = append(out, l.ch)
		}
		l.readChar()
	}
	l.readChar() // consume closing quote

	return token.Token{
		Type:    token.STRING,
		Lexeme:  l.input[start:l.position],
		Literal: string(out),
		Line:    line,
		Column:  column,
	}
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}
