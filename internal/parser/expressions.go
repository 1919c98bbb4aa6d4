package parser

import (
	"github.com/funvibe/gwn/internal/ast"
	"github.com/funvibe/gwn/internal/diagnostics"
	"github.com/funvibe/gwn/internal/token"
)

func (p *Parser) parseIdentifier() ast.Expression {
	return &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal.(string)}
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	return &ast.IntegerLiteral{Token: p.curToken, Value: p.curToken.Literal.(int64)}
}

func (p *Parser) parseFloatLiteral() ast.Expression {
	return &ast.FloatLiteral{Token: p.curToken, Value: p.curToken.Literal.(float64)}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	return &ast.StringLiteral{Token: p.curToken, Value: p.curToken.Literal.(string)}
}

func (p *Parser) parseBooleanLiteral() ast.Expression {
	return &ast.BooleanLiteral{Token: p.curToken, Value: p.curTokenIs(token.TRUE)}
}

func (p *Parser) parsePrefixExpression() ast.Expression {
	expr := &ast.PrefixExpression{Token: p.curToken, Operator: p.curToken.Lexeme}
	p.nextToken()
	expr.Right = p.parseExpression(PREFIX)
	if expr.Right == nil {
		return nil
	}
	return expr
}

func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	expr := &ast.InfixExpression{
		Token:    p.curToken,
		Left:     left,
		Operator: p.curToken.Lexeme,
	}

	precedence := p.curPrecedence()
	if p.curTokenIs(token.CARET) {
		// Exponentiation groups to the right: 2 ^ 3 ^ 2 is 2 ^ (3 ^ 2).
		precedence--
	}
	p.nextToken()
	expr.Right = p.parseExpression(precedence)
	if expr.Right == nil {
		return nil
	}
	return expr
}

// parseApplyRight handles `value -> fn`. The pipe chains left to right, so
// `[1..15] -> fizzbuzz -> map` feeds the list into the mapped function.
func (p *Parser) parseApplyRight(left ast.Expression) ast.Expression {
	expr := &ast.ApplyExpression{Token: p.curToken, Argument: left}
	p.nextToken()
	expr.Function = p.parseExpression(APPLY)
	if expr.Function == nil {
		return nil
	}
	return expr
}

// parseApplyLeft handles `fn <- value`. It groups to the right, so
// `print <- toString <- 42` applies toString first.
func (p *Parser) parseApplyLeft(left ast.Expression) ast.Expression {
	expr := &ast.ApplyExpression{Token: p.curToken, Function: left}
	p.nextToken()
	expr.Argument = p.parseExpression(APPLY - 1)
	if expr.Argument == nil {
		return nil
	}
	return expr
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	p.nextToken()
	p.skipNewlines()

	expr := p.parseExpression(LOWEST)
	if expr == nil {
		return nil
	}

	p.skipPeekNewlines()
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return expr
}

// parseListOrRange parses both `[1, 2, 3]` and the inclusive range `[1..15]`.
// The forms share the opening bracket; the `..` after the first element picks
// the range.
func (p *Parser) parseListOrRange() ast.Expression {
	lbracket := p.curToken

	if p.peekTokenIs(token.RBRACKET) {
		p.nextToken()
		return &ast.ListLiteral{Token: lbracket}
	}

	p.skipPeekNewlines()
	p.nextToken()
	first := p.parseExpression(LOWEST)
	if first == nil {
		return nil
	}

	if p.peekTokenIs(token.DOT_DOT) {
		p.nextToken()
		p.nextToken()
		end := p.parseExpression(LOWEST)
		if end == nil {
			return nil
		}
		p.skipPeekNewlines()
		if !p.expectPeek(token.RBRACKET) {
			return nil
		}
		return &ast.RangeExpression{Token: lbracket, Start: first, End: end}
	}

	elements := []ast.Expression{first}
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.skipPeekNewlines()
		p.nextToken()
		el := p.parseExpression(LOWEST)
		if el == nil {
			return nil
		}
		elements = append(elements, el)
	}

	p.skipPeekNewlines()
	if !p.expectPeek(token.RBRACKET) {
		return nil
	}
	return &ast.ListLiteral{Token: lbracket, Elements: elements}
}

// parseFunctionLiteral parses one or more `{pattern | guards}` cases. Cases
// after the first are joined by a comma, e.g. `{0 | "zero"}, {x | "other"}`.
func (p *Parser) parseFunctionLiteral() ast.Expression {
	fn := &ast.FunctionLiteral{Token: p.curToken}

	for {
		c := p.parseFunctionCase()
		if c == nil {
			return nil
		}
		fn.Cases = append(fn.Cases, c)

		if !p.caseContinues() {
			break
		}
		p.nextToken() // the ',' token
		p.skipPeekNewlines()
		p.nextToken() // the '{' token
	}

	return fn
}

// caseContinues reports whether a comma after the closing brace introduces
// another case. A comma followed by anything but `{` belongs to an enclosing
// list or guard, so it stays unconsumed.
func (p *Parser) caseContinues() bool {
	if !p.peekTokenIs(token.COMMA) {
		return false
	}
	for i := p.position; i < len(p.tokens); i++ {
		if p.tokens[i].Type == token.NEWLINE {
			continue
		}
		return p.tokens[i].Type == token.LBRACE
	}
	return false
}

func (p *Parser) parseFunctionCase() *ast.FunctionCase {
	c := &ast.FunctionCase{Token: p.curToken}

	p.skipPeekNewlines()
	p.nextToken()
	c.Pattern = p.parsePattern()
	if c.Pattern == nil {
		return nil
	}

	if !p.expectPeek(token.PIPE) {
		return nil
	}
	p.skipPeekNewlines()
	p.nextToken()

	for {
		g := p.parseFunctionGuard()
		if g == nil {
			return nil
		}
		c.Guards = append(c.Guards, g)

		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
		p.skipPeekNewlines()
		p.nextToken()
	}

	p.skipPeekNewlines()
	if !p.expectPeek(token.RBRACE) {
		return nil
	}
	return c
}

func (p *Parser) parsePattern() ast.Pattern {
	switch p.curToken.Type {
	case token.IDENT:
		return &ast.IdentifierPattern{
			Token: p.curToken,
			Name:  &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal.(string)},
		}
	case token.INT, token.FLOAT, token.STRING, token.TRUE, token.FALSE:
		return &ast.LiteralPattern{Token: p.curToken, Value: p.parseLiteralValue()}
	case token.MINUS:
		tok := p.curToken
		if !p.peekTokenIs(token.INT) && !p.peekTokenIs(token.FLOAT) {
			p.addError(diagnostics.ErrP001, p.peekToken, "expected a number after %q in pattern", "-")
			return nil
		}
		p.nextToken()
		return &ast.LiteralPattern{
			Token: tok,
			Value: &ast.PrefixExpression{Token: tok, Operator: "-", Right: p.parseLiteralValue()},
		}
	default:
		p.addError(diagnostics.ErrP001, p.curToken, "expected a pattern, got %q", p.curToken.Lexeme)
		return nil
	}
}

func (p *Parser) parseLiteralValue() ast.Expression {
	switch p.curToken.Type {
	case token.INT:
		return p.parseIntegerLiteral()
	case token.FLOAT:
		return p.parseFloatLiteral()
	case token.STRING:
		return p.parseStringLiteral()
	default:
		return p.parseBooleanLiteral()
	}
}

// parseFunctionGuard parses a single `condition ? value` arm. A bare
// expression without `?` is the body shorthand `{x | body}` and becomes an
// unconditional arm, same as `else ? body`.
func (p *Parser) parseFunctionGuard() *ast.FunctionGuard {
	if p.curTokenIs(token.ELSE) {
		g := &ast.FunctionGuard{IsElse: true}
		if !p.expectPeek(token.QUESTION) {
			return nil
		}
		g.Token = p.curToken
		p.skipPeekNewlines()
		p.nextToken()
		g.Value = p.parseExpression(LOWEST)
		if g.Value == nil {
			return nil
		}
		return g
	}

	first := p.parseExpression(LOWEST)
	if first == nil {
		return nil
	}

	if !p.peekTokenIs(token.QUESTION) {
		return &ast.FunctionGuard{Token: p.curToken, Value: first, IsElse: true}
	}

	p.nextToken()
	g := &ast.FunctionGuard{Token: p.curToken, Condition: first}
	p.skipPeekNewlines()
	p.nextToken()
	g.Value = p.parseExpression(LOWEST)
	if g.Value == nil {
		return nil
	}
	return g
}
