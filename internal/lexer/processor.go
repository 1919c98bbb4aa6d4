package lexer

import (
	"github.com/funvibe/gwn/internal/diagnostics"
	"github.com/funvibe/gwn/internal/pipeline"
	"github.com/funvibe/gwn/internal/token"
)

type LexerProcessor struct{}

func (lp *LexerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	l := New(ctx.SourceCode)

	var tokens []token.Token
	for {
		tok := l.NextToken()
		if tok.Type == token.ILLEGAL {
			code := diagnostics.ErrP004
			msg := "illegal character %q"
			if len(tok.Lexeme) > 0 && tok.Lexeme[0] == '"' {
				code = diagnostics.ErrP002
				msg = "unterminated string literal %q"
			}
			err := diagnostics.NewError(code, tok, msg, tok.Lexeme)
			err.File = ctx.FilePath
			ctx.Errors = append(ctx.Errors, err)
		}
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			break
		}
	}

	ctx.TokenStream = tokens
	return ctx
}
