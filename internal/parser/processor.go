package parser

import (
	"github.com/funvibe/gwn/internal/pipeline"
)

type ParserProcessor struct{}

func (pp *ParserProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if len(ctx.TokenStream) == 0 {
		return ctx
	}

	p := New(ctx.TokenStream, ctx)
	program := p.ParseProgram()
	program.File = ctx.FilePath
	ctx.AstRoot = program
	return ctx
}
