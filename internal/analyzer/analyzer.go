package analyzer

import (
	"fmt"

	"github.com/funvibe/gwn/internal/ast"
	"github.com/funvibe/gwn/internal/diagnostics"
	"github.com/funvibe/gwn/internal/symbols"
	"github.com/funvibe/gwn/internal/token"
	"github.com/funvibe/gwn/internal/typesystem"
)

// Analyzer runs Hindley-Milner type inference over a program. It accumulates
// one global substitution; every intermediate type is resolved against it
// before use, so unification always sees current knowledge.
type Analyzer struct {
	counter int
	subst   typesystem.Subst
	typeMap map[ast.Node]typesystem.Type
	errors  []*diagnostics.DiagnosticError
	file    string
}

func New() *Analyzer {
	return &Analyzer{
		subst:   typesystem.Subst{},
		typeMap: make(map[ast.Node]typesystem.Type),
	}
}

func (a *Analyzer) Errors() []*diagnostics.DiagnosticError { return a.errors }

// TypeMap returns the inferred type for every expression node, resolved
// against the final substitution.
func (a *Analyzer) TypeMap() map[ast.Node]typesystem.Type {
	resolved := make(map[ast.Node]typesystem.Type, len(a.typeMap))
	for node, t := range a.typeMap {
		resolved[node] = t.Apply(a.subst)
	}
	return resolved
}

// Analyze infers types for every top-level statement and returns the
// principal type of the last one. Inference failures inside a statement stop
// that statement only; later statements still get checked, so a file reports
// one diagnostic per broken declaration instead of a cascade.
func (a *Analyzer) Analyze(program *ast.Program, table *symbols.SymbolTable) typesystem.Type {
	a.file = program.File

	var last typesystem.Type = typesystem.Nil
	for _, stmt := range program.Statements {
		switch s := stmt.(type) {
		case *ast.ConstantDeclaration:
			scheme, err := a.inferDeclaration(s, table)
			if err != nil {
				a.record(err)
				// Bind the name anyway so later uses do not report a
				// second, misleading unbound-identifier error.
				table.Define(s.Name.Value, a.freshTVar())
				continue
			}
			table.Define(s.Name.Value, scheme)
			last = scheme

		case *ast.ExpressionStatement:
			t, err := a.infer(s.Expression, table)
			if err != nil {
				a.record(err)
				continue
			}
			last = t.Apply(a.subst)
		}
	}

	return last.Apply(a.subst)
}

// inferDeclaration types `name = expr` with let-polymorphism. The name is
// pre-bound to a fresh variable so recursive definitions see themselves
// monomorphically, then the result is generalized.
func (a *Analyzer) inferDeclaration(decl *ast.ConstantDeclaration, table *symbols.SymbolTable) (typesystem.Type, error) {
	self := a.freshTVar()
	inner := symbols.NewEnclosed(table)
	inner.Define(decl.Name.Value, self)

	t, err := a.infer(decl.Value, inner)
	if err != nil {
		return nil, err
	}
	if err := a.unify(self, t, decl.GetToken()); err != nil {
		return nil, err
	}

	return a.generalize(t.Apply(a.subst), table), nil
}

func (a *Analyzer) freshTVar() typesystem.TVar {
	a.counter++
	return typesystem.TVar{Name: fmt.Sprintf("t%d", a.counter)}
}

// unify resolves both sides against the global substitution, unifies them and
// folds the result back in.
func (a *Analyzer) unify(t1, t2 typesystem.Type, tok token.Token) error {
	s, err := typesystem.Unify(t1.Apply(a.subst), t2.Apply(a.subst))
	if err != nil {
		return a.typeError(err, tok)
	}
	a.subst = a.subst.Compose(s)
	return nil
}

// generalize quantifies over the type variables of t that are not free in the
// environment, producing a scheme for let-polymorphism.
func (a *Analyzer) generalize(t typesystem.Type, table *symbols.SymbolTable) typesystem.Type {
	envFree := map[string]bool{}
	for scope := table; scope != nil; scope = scope.Parent() {
		for _, sym := range scope.All() {
			for _, v := range sym.Type.Apply(a.subst).FreeTypeVariables() {
				envFree[v.Name] = true
			}
		}
	}

	var vars []typesystem.TVar
	for _, v := range t.FreeTypeVariables() {
		if !envFree[v.Name] {
			vars = append(vars, v)
		}
	}
	if len(vars) == 0 {
		return t
	}
	typesystem.SortTVars(vars)
	return typesystem.TForall{Vars: vars, Type: t}
}

// instantiate replaces the bound variables of a scheme with fresh ones. Every
// use site of a polymorphic constant gets its own copy.
func (a *Analyzer) instantiate(t typesystem.Type) typesystem.Type {
	forall, ok := t.(typesystem.TForall)
	if !ok {
		return t
	}
	s := typesystem.Subst{}
	for _, v := range forall.Vars {
		s[v.Name] = a.freshTVar()
	}
	return forall.Type.Apply(s)
}

func (a *Analyzer) typeError(err error, tok token.Token) *diagnostics.DiagnosticError {
	var diag *diagnostics.DiagnosticError
	switch e := err.(type) {
	case *typesystem.MismatchError:
		diag = diagnostics.NewError(diagnostics.ErrT001, tok,
			"type mismatch: expected %s, got %s", e.Left.Apply(a.subst), e.Right.Apply(a.subst))
	case *typesystem.OccursError:
		diag = diagnostics.NewError(diagnostics.ErrT002, tok,
			"infinite type: %s occurs in %s", e.Var, e.Type.Apply(a.subst))
	default:
		diag = diagnostics.NewError(diagnostics.ErrT001, tok, "%s", err)
	}
	diag.File = a.file
	return diag
}

func (a *Analyzer) record(err error) {
	if diag, ok := err.(*diagnostics.DiagnosticError); ok {
		a.errors = append(a.errors, diag)
		return
	}
	a.errors = append(a.errors, &diagnostics.DiagnosticError{
		Code:    diagnostics.ErrT001,
		Message: err.Error(),
		File:    a.file,
	})
}

// InferProgram is the package entry point: it seeds a symbol table with the
// builtins unless the caller provides one, and returns the program's
// principal type with any diagnostics.
func InferProgram(program *ast.Program, table *symbols.SymbolTable) (typesystem.Type, []*diagnostics.DiagnosticError) {
	if table == nil {
		table = symbols.New()
		RegisterBuiltins(table)
	}
	a := New()
	scheme := a.Analyze(program, table)
	return scheme, a.Errors()
}
