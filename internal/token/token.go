package token

// TokenType identifies the lexical class of a token.
type TokenType string

const (
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"
	NEWLINE TokenType = "NEWLINE"

	// Identifiers and literals
	IDENT  TokenType = "IDENT"
	INT    TokenType = "INT"
	FLOAT  TokenType = "FLOAT"
	STRING TokenType = "STRING"

	// Operators
	ASSIGN   TokenType = "="
	PLUS     TokenType = "+"
	CONCAT   TokenType = "++"
	MINUS    TokenType = "-"
	ASTERISK TokenType = "*"
	SLASH    TokenType = "/"
	PERCENT  TokenType = "%"
	CARET    TokenType = "^"

	EQ  TokenType = "=="
	LT  TokenType = "<"
	LTE TokenType = "<="
	GT  TokenType = ">"
	GTE TokenType = ">="

	ARROW   TokenType = "->" // value-then-function application
	L_ARROW TokenType = "<-" // function-then-value application

	// Delimiters
	COMMA    TokenType = ","
	COLON    TokenType = ":"
	PIPE     TokenType = "|"
	QUESTION TokenType = "?"
	DOT_DOT  TokenType = ".."

	LPAREN   TokenType = "("
	RPAREN   TokenType = ")"
	LBRACE   TokenType = "{"
	RBRACE   TokenType = "}"
	LBRACKET TokenType = "["
	RBRACKET TokenType = "]"

	// Keywords
	AND   TokenType = "AND"
	OR    TokenType = "OR"
	NOT   TokenType = "NOT"
	ELSE  TokenType = "ELSE"
	TRUE  TokenType = "TRUE"
	FALSE TokenType = "FALSE"
)

// Token is a single lexical token with its source position.
// Literal holds the decoded value for INT/FLOAT/STRING/IDENT tokens.
type Token struct {
	Type    TokenType
	Lexeme  string
	Literal interface{}
	Line    int
	Column  int
}

var keywords = map[string]TokenType{
	"and":   AND,
	"or":    OR,
	"not":   NOT,
	"else":  ELSE,
	"true":  TRUE,
	"false": FALSE,
}

// LookupIdent returns the keyword type for ident, or IDENT if it is not a keyword.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}
