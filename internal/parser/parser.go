package parser

import (
	"github.com/funvibe/gwn/internal/ast"
	"github.com/funvibe/gwn/internal/diagnostics"
	"github.com/funvibe/gwn/internal/pipeline"
	"github.com/funvibe/gwn/internal/token"
)

// Operator precedence levels, lowest first.
const (
	_ int = iota
	LOWEST
	APPLY       // -> and <-
	LOGIC_OR    // or
	LOGIC_AND   // and
	EQUALS      // ==
	LESSGREATER // < <= > >=
	SUM         // + - ++
	PRODUCT     // * / %
	POWER       // ^
	PREFIX      // -x, not x
)

var precedences = map[token.TokenType]int{
	token.ARROW:    APPLY,
	token.L_ARROW:  APPLY,
	token.OR:       LOGIC_OR,
	token.AND:      LOGIC_AND,
	token.EQ:       EQUALS,
	token.LT:       LESSGREATER,
	token.LTE:      LESSGREATER,
	token.GT:       LESSGREATER,
	token.GTE:      LESSGREATER,
	token.PLUS:     SUM,
	token.MINUS:    SUM,
	token.CONCAT:   SUM,
	token.ASTERISK: PRODUCT,
	token.SLASH:    PRODUCT,
	token.PERCENT:  PRODUCT,
	token.CARET:    POWER,
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

type Parser struct {
	tokens   []token.Token
	position int

	curToken  token.Token
	peekToken token.Token

	ctx *pipeline.PipelineContext

	prefixParseFns map[token.TokenType]prefixParseFn
	infixParseFns  map[token.TokenType]infixParseFn
}

func New(tokens []token.Token, ctx *pipeline.PipelineContext) *Parser {
	p := &Parser{tokens: tokens, ctx: ctx}

	p.prefixParseFns = map[token.TokenType]prefixParseFn{
		token.IDENT:    p.parseIdentifier,
		token.INT:      p.parseIntegerLiteral,
		token.FLOAT:    p.parseFloatLiteral,
		token.STRING:   p.parseStringLiteral,
		token.TRUE:     p.parseBooleanLiteral,
		token.FALSE:    p.parseBooleanLiteral,
		token.MINUS:    p.parsePrefixExpression,
		token.NOT:      p.parsePrefixExpression,
		token.LPAREN:   p.parseGroupedExpression,
		token.LBRACKET: p.parseListOrRange,
		token.LBRACE:   p.parseFunctionLiteral,
	}

	p.infixParseFns = map[token.TokenType]infixParseFn{
		token.ARROW:    p.parseApplyRight,
		token.L_ARROW:  p.parseApplyLeft,
		token.OR:       p.parseInfixExpression,
		token.AND:      p.parseInfixExpression,
		token.EQ:       p.parseInfixExpression,
		token.LT:       p.parseInfixExpression,
		token.LTE:      p.parseInfixExpression,
		token.GT:       p.parseInfixExpression,
		token.GTE:      p.parseInfixExpression,
		token.PLUS:     p.parseInfixExpression,
		token.MINUS:    p.parseInfixExpression,
		token.CONCAT:   p.parseInfixExpression,
		token.ASTERISK: p.parseInfixExpression,
		token.SLASH:    p.parseInfixExpression,
		token.PERCENT:  p.parseInfixExpression,
		token.CARET:    p.parseInfixExpression,
	}

	// Prime curToken and peekToken.
	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	if p.position < len(p.tokens) {
		p.peekToken = p.tokens[p.position]
		p.position++
	} else {
		p.peekToken = token.Token{Type: token.EOF}
	}
}

func (p *Parser) curTokenIs(t token.TokenType) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t token.TokenType) bool { return p.peekToken.Type == t }

func (p *Parser) expectPeek(t token.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.addError(diagnostics.ErrP001, p.peekToken, "expected %q, got %q", string(t), p.peekToken.Lexeme)
	return false
}

func (p *Parser) addError(code string, tok token.Token, format string, args ...interface{}) {
	err := diagnostics.NewError(code, tok, format, args...)
	if p.ctx != nil {
		err.File = p.ctx.FilePath
		p.ctx.Errors = append(p.ctx.Errors, err)
	}
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if prec, ok := precedences[p.curToken.Type]; ok {
		return prec
	}
	return LOWEST
}

// skipNewlines consumes newline tokens between statements.
func (p *Parser) skipNewlines() {
	for p.curTokenIs(token.NEWLINE) {
		p.nextToken()
	}
}

// skipPeekNewlines consumes newlines after an opening delimiter or separator,
// so lists and multi-guard functions can span lines.
func (p *Parser) skipPeekNewlines() {
	for p.peekTokenIs(token.NEWLINE) {
		p.nextToken()
	}
}

func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{}

	p.skipNewlines()
	for !p.curTokenIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}

		// A statement ends at a newline or EOF. Anything else means the
		// expression parser stopped early; resynchronize at the next line.
		p.nextToken()
		if !p.curTokenIs(token.NEWLINE) && !p.curTokenIs(token.EOF) {
			p.addError(diagnostics.ErrP001, p.curToken, "unexpected token %q", p.curToken.Lexeme)
			for !p.curTokenIs(token.NEWLINE) && !p.curTokenIs(token.EOF) {
				p.nextToken()
			}
		}
		p.skipNewlines()
	}

	return program
}

func (p *Parser) parseStatement() ast.Statement {
	// `name = expr` is a constant declaration; anything else is an
	// evaluated expression.
	if p.curTokenIs(token.IDENT) && p.peekTokenIs(token.ASSIGN) {
		return p.parseConstantDeclaration()
	}
	return p.parseExpressionStatement()
}

func (p *Parser) parseConstantDeclaration() *ast.ConstantDeclaration {
	decl := &ast.ConstantDeclaration{
		Token: p.curToken,
		Name:  &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal.(string)},
	}

	p.nextToken() // the '=' token
	p.nextToken()

	decl.Value = p.parseExpression(LOWEST)
	if decl.Value == nil {
		return nil
	}
	return decl
}

func (p *Parser) parseExpressionStatement() *ast.ExpressionStatement {
	stmt := &ast.ExpressionStatement{Token: p.curToken}
	stmt.Expression = p.parseExpression(LOWEST)
	if stmt.Expression == nil {
		return nil
	}
	return stmt
}

func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.addError(diagnostics.ErrP003, p.curToken, "expected expression, got %q", p.curToken.Lexeme)
		return nil
	}
	left := prefix()

	for left != nil && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return left
		}
		p.nextToken()
		left = infix(left)
	}

	return left
}
