package pipeline

import (
	"io"

	"github.com/funvibe/gwn/internal/ast"
	"github.com/funvibe/gwn/internal/diagnostics"
	"github.com/funvibe/gwn/internal/symbols"
	"github.com/funvibe/gwn/internal/token"
	"github.com/funvibe/gwn/internal/typesystem"
)

// Processor is a single pipeline stage.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// PipelineContext is the shared state threaded through the stages. Each stage
// reads what earlier stages produced and appends its diagnostics to Errors.
type PipelineContext struct {
	FilePath   string
	SourceCode string

	// Produced by the lexer stage.
	TokenStream []token.Token

	// Produced by the parser stage.
	AstRoot ast.Node

	// Shared with the analyzer stage. The driver seeds SymbolTable with the
	// builtin schemes; REPL sessions reuse one table across inputs.
	SymbolTable *symbols.SymbolTable
	TypeMap     map[ast.Node]typesystem.Type
	// Scheme is the principal type of the program's last statement.
	Scheme typesystem.Type

	// Shared with the evaluator stage. Env and Result are owned by the
	// evaluator package; they are untyped here to keep this package free of
	// an evaluator dependency (the evaluator imports pipeline).
	Env    interface{}
	Result interface{}
	Out    io.Writer

	Errors []*diagnostics.DiagnosticError
}

// HasErrors reports whether any stage has failed so far.
func (ctx *PipelineContext) HasErrors() bool {
	return len(ctx.Errors) > 0
}
