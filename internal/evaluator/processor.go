package evaluator

import (
	"github.com/funvibe/gwn/internal/ast"
	"github.com/funvibe/gwn/internal/diagnostics"
	"github.com/funvibe/gwn/internal/pipeline"
)

type EvaluatorProcessor struct{}

// Process runs the program unless an earlier stage reported errors. The
// environment persists in ctx.Env so a REPL keeps its definitions between
// inputs.
func (ep *EvaluatorProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.HasErrors() {
		return ctx
	}
	program, ok := ctx.AstRoot.(*ast.Program)
	if !ok || program == nil {
		return ctx
	}

	env, ok := ctx.Env.(*Environment)
	if !ok || env == nil {
		env = NewEnvironment()
		RegisterBuiltins(env)
		ctx.Env = env
	}

	result, diag := EvalProgram(program, env, New(ctx.Out))
	if diag != nil {
		diag.File = ctx.FilePath
		ctx.Errors = append(ctx.Errors, diag)
		return ctx
	}
	ctx.Result = result
	return ctx
}

// EvalProgram evaluates program in env and converts a runtime Error object
// into a diagnostic.
func EvalProgram(program *ast.Program, env *Environment, e *Evaluator) (Object, *diagnostics.DiagnosticError) {
	result := e.Eval(program, env)
	if err, ok := result.(*Error); ok {
		return nil, &diagnostics.DiagnosticError{
			Code:    err.Code,
			Message: err.Message,
			Line:    err.Line,
			Column:  err.Column,
			File:    program.File,
		}
	}
	return result, nil
}
