package ast

import (
	"github.com/funvibe/gwn/internal/token"
)

// Identifier represents a reference to a constant or parameter.
type Identifier struct {
	Token token.Token
	Value string
}

func (i *Identifier) expressionNode()       {}
func (i *Identifier) TokenLiteral() string  { return i.Token.Lexeme }
func (i *Identifier) GetToken() token.Token { return i.Token }

// IntegerLiteral represents an integer literal, e.g. 42.
type IntegerLiteral struct {
	Token token.Token
	Value int64
}

func (il *IntegerLiteral) expressionNode()       {}
func (il *IntegerLiteral) TokenLiteral() string  { return il.Token.Lexeme }
func (il *IntegerLiteral) GetToken() token.Token { return il.Token }

// FloatLiteral represents a float literal, e.g. 42.42.
type FloatLiteral struct {
	Token token.Token
	Value float64
}

func (fl *FloatLiteral) expressionNode()       {}
func (fl *FloatLiteral) TokenLiteral() string  { return fl.Token.Lexeme }
func (fl *FloatLiteral) GetToken() token.Token { return fl.Token }

// StringLiteral represents a string literal, e.g. "goo".
type StringLiteral struct {
	Token token.Token
	Value string
}

func (sl *StringLiteral) expressionNode()       {}
func (sl *StringLiteral) TokenLiteral() string  { return sl.Token.Lexeme }
func (sl *StringLiteral) GetToken() token.Token { return sl.Token }

// BooleanLiteral represents true or false.
type BooleanLiteral struct {
	Token token.Token
	Value bool
}

func (bl *BooleanLiteral) expressionNode()       {}
func (bl *BooleanLiteral) TokenLiteral() string  { return bl.Token.Lexeme }
func (bl *BooleanLiteral) GetToken() token.Token { return bl.Token }

// ListLiteral represents a list literal, e.g. [1, 2, 3].
type ListLiteral struct {
	Token    token.Token // The '[' token
	Elements []Expression
}

func (ll *ListLiteral) expressionNode()       {}
func (ll *ListLiteral) TokenLiteral() string  { return ll.Token.Lexeme }
func (ll *ListLiteral) GetToken() token.Token { return ll.Token }

// RangeExpression represents an inclusive integer range, e.g. [1..15].
type RangeExpression struct {
	Token token.Token // The '[' token
	Start Expression
	End   Expression
}

func (re *RangeExpression) expressionNode()       {}
func (re *RangeExpression) TokenLiteral() string  { return re.Token.Lexeme }
func (re *RangeExpression) GetToken() token.Token { return re.Token }

// PrefixExpression represents a prefix operation, e.g. -5 or not true.
type PrefixExpression struct {
	Token    token.Token // The prefix token
	Operator string
	Right    Expression
}

func (pe *PrefixExpression) expressionNode()       {}
func (pe *PrefixExpression) TokenLiteral() string  { return pe.Token.Lexeme }
func (pe *PrefixExpression) GetToken() token.Token { return pe.Token }

// InfixExpression represents a binary operation, e.g. 2 + 2 or x and y.
type InfixExpression struct {
	Token    token.Token // The operator token
	Left     Expression
	Operator string
	Right    Expression
}

func (ie *InfixExpression) expressionNode()       {}
func (ie *InfixExpression) TokenLiteral() string  { return ie.Token.Lexeme }
func (ie *InfixExpression) GetToken() token.Token { return ie.Token }

// ApplyExpression represents applying an argument to a function. The parser
// builds it from both pipe operators: `21 -> fib` and `fib <- 21` produce the
// same node.
type ApplyExpression struct {
	Token    token.Token // The '->' or '<-' token
	Function Expression
	Argument Expression
}

func (ae *ApplyExpression) expressionNode()       {}
func (ae *ApplyExpression) TokenLiteral() string  { return ae.Token.Lexeme }
func (ae *ApplyExpression) GetToken() token.Token { return ae.Token }

// Pattern is the parameter position of a function case: either a plain
// binder or a literal to match against.
type Pattern interface {
	Node
	patternNode()
}

// IdentifierPattern binds the argument to a name, e.g. {x | ...}.
type IdentifierPattern struct {
	Token token.Token
	Name  *Identifier
}

func (ip *IdentifierPattern) patternNode()          {}
func (ip *IdentifierPattern) TokenLiteral() string  { return ip.Token.Lexeme }
func (ip *IdentifierPattern) GetToken() token.Token { return ip.Token }

// LiteralPattern matches the argument against a literal, e.g. {0 | "zero"}.
type LiteralPattern struct {
	Token token.Token
	Value Expression // IntegerLiteral, FloatLiteral, StringLiteral or BooleanLiteral
}

func (lp *LiteralPattern) patternNode()          {}
func (lp *LiteralPattern) TokenLiteral() string  { return lp.Token.Lexeme }
func (lp *LiteralPattern) GetToken() token.Token { return lp.Token }

// FunctionGuard is one `condition ? value` arm of a function case. An `else`
// guard has IsElse set and a nil Condition; it always matches.
type FunctionGuard struct {
	Token     token.Token // The '?' token
	Condition Expression  // nil when IsElse
	Value     Expression
	IsElse    bool
}

func (fg *FunctionGuard) GetToken() token.Token { return fg.Token }

// FunctionCase is one `{pattern | guards}` case of a function literal.
// `{x | body}` is sugar for a single guard with a true condition; the parser
// marks such guards as else guards so they always fire.
type FunctionCase struct {
	Token   token.Token // The '{' token
	Pattern Pattern
	Guards  []*FunctionGuard
}

func (fc *FunctionCase) GetToken() token.Token { return fc.Token }

// FunctionLiteral represents a guarded function, e.g.
// {x | x == 0 ? "zero", else ? "other"} or the multi-case form
// {0 | "zero"}, {x | "other"}.
type FunctionLiteral struct {
	Token token.Token // The first '{' token
	Cases []*FunctionCase
}

func (fl *FunctionLiteral) expressionNode()       {}
func (fl *FunctionLiteral) TokenLiteral() string  { return fl.Token.Lexeme }
func (fl *FunctionLiteral) GetToken() token.Token { return fl.Token }
