package analyzer

import (
	"github.com/funvibe/gwn/internal/ast"
	"github.com/funvibe/gwn/internal/pipeline"
	"github.com/funvibe/gwn/internal/symbols"
)

type SemanticAnalyzerProcessor struct{}

func (sap *SemanticAnalyzerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	program, ok := ctx.AstRoot.(*ast.Program)
	if !ok || program == nil {
		return ctx
	}

	if ctx.SymbolTable == nil {
		ctx.SymbolTable = symbols.New()
		RegisterBuiltins(ctx.SymbolTable)
	}

	a := New()
	ctx.Scheme = a.Analyze(program, ctx.SymbolTable)
	ctx.TypeMap = a.TypeMap()
	ctx.Errors = append(ctx.Errors, a.Errors()...)
	return ctx
}
