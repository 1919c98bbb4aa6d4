package analyzer

import (
	"github.com/funvibe/gwn/internal/ast"
	"github.com/funvibe/gwn/internal/diagnostics"
	"github.com/funvibe/gwn/internal/symbols"
	"github.com/funvibe/gwn/internal/token"
	"github.com/funvibe/gwn/internal/typesystem"
)

func (a *Analyzer) infer(node ast.Expression, table *symbols.SymbolTable) (typesystem.Type, error) {
	t, err := a.inferExpression(node, table)
	if err != nil {
		return nil, err
	}
	a.typeMap[node] = t
	return t, nil
}

func (a *Analyzer) inferExpression(node ast.Expression, table *symbols.SymbolTable) (typesystem.Type, error) {
	switch n := node.(type) {
	case *ast.IntegerLiteral:
		return typesystem.Int, nil
	case *ast.FloatLiteral:
		return typesystem.Float, nil
	case *ast.StringLiteral:
		return typesystem.String, nil
	case *ast.BooleanLiteral:
		return typesystem.Bool, nil

	case *ast.Identifier:
		sym, ok := table.Resolve(n.Value)
		if !ok {
			diag := diagnostics.NewError(diagnostics.ErrT003, n.Token, "unbound identifier %q", n.Value)
			diag.File = a.file
			return nil, diag
		}
		return a.instantiate(sym.Type), nil

	case *ast.PrefixExpression:
		return a.inferPrefix(n, table)

	case *ast.InfixExpression:
		return a.inferInfix(n, table)

	case *ast.ListLiteral:
		return a.inferList(n, table)

	case *ast.RangeExpression:
		return a.inferRange(n, table)

	case *ast.FunctionLiteral:
		return a.inferFunction(n, table)

	case *ast.ApplyExpression:
		return a.inferApply(n, table)
	}

	diag := diagnostics.NewError(diagnostics.ErrT001, node.GetToken(), "cannot infer a type for %T", node)
	diag.File = a.file
	return nil, diag
}

func (a *Analyzer) inferPrefix(n *ast.PrefixExpression, table *symbols.SymbolTable) (typesystem.Type, error) {
	rt, err := a.infer(n.Right, table)
	if err != nil {
		return nil, err
	}

	switch n.Operator {
	case "not":
		if err := a.unify(rt, typesystem.Bool, n.Token); err != nil {
			return nil, err
		}
		return typesystem.Bool, nil
	default: // "-"
		return a.requireNumeric(rt, n.Operator, n.Token)
	}
}

func (a *Analyzer) inferInfix(n *ast.InfixExpression, table *symbols.SymbolTable) (typesystem.Type, error) {
	lt, err := a.infer(n.Left, table)
	if err != nil {
		return nil, err
	}
	rt, err := a.infer(n.Right, table)
	if err != nil {
		return nil, err
	}

	switch n.Operator {
	case "+", "-", "*", "/", "^":
		if err := a.unify(lt, rt, n.Token); err != nil {
			return nil, err
		}
		return a.requireNumeric(lt, n.Operator, n.Token)

	case "%":
		// Modulo is integer only, which also lets guards like `x % 3 == 0`
		// pin an otherwise unconstrained parameter to Int.
		if err := a.unify(lt, typesystem.Int, n.Token); err != nil {
			return nil, err
		}
		if err := a.unify(rt, typesystem.Int, n.Token); err != nil {
			return nil, err
		}
		return typesystem.Int, nil

	case "++":
		if err := a.unify(lt, rt, n.Token); err != nil {
			return nil, err
		}
		return a.requireConcatenable(lt, n.Token)

	case "<", "<=", ">", ">=":
		if err := a.unify(lt, rt, n.Token); err != nil {
			return nil, err
		}
		if _, err := a.requireOrdered(lt, n.Operator, n.Token); err != nil {
			return nil, err
		}
		return typesystem.Bool, nil

	case "==":
		if err := a.unify(lt, rt, n.Token); err != nil {
			return nil, err
		}
		return typesystem.Bool, nil

	case "and", "or":
		if err := a.unify(lt, typesystem.Bool, n.Token); err != nil {
			return nil, err
		}
		if err := a.unify(rt, typesystem.Bool, n.Token); err != nil {
			return nil, err
		}
		return typesystem.Bool, nil
	}

	diag := diagnostics.NewError(diagnostics.ErrT001, n.Token, "unknown operator %q", n.Operator)
	diag.File = a.file
	return nil, diag
}

// requireNumeric resolves t and checks it is Int or Float. A type that is
// still a bare variable defaults to Int, so `{x | x + x}` infers Int -> Int
// instead of an unresolvable scheme.
func (a *Analyzer) requireNumeric(t typesystem.Type, op string, tok token.Token) (typesystem.Type, error) {
	resolved := t.Apply(a.subst)
	if _, ok := resolved.(typesystem.TVar); ok {
		if err := a.unify(resolved, typesystem.Int, tok); err != nil {
			return nil, err
		}
		return typesystem.Int, nil
	}
	if resolved == typesystem.Int || resolved == typesystem.Float {
		return resolved, nil
	}
	diag := diagnostics.NewError(diagnostics.ErrT001, tok, "operator %q is not defined for %s", op, resolved)
	diag.File = a.file
	return nil, diag
}

// requireOrdered admits the comparable base types. Bare variables default to
// Int, same as the arithmetic operators.
func (a *Analyzer) requireOrdered(t typesystem.Type, op string, tok token.Token) (typesystem.Type, error) {
	resolved := t.Apply(a.subst)
	if _, ok := resolved.(typesystem.TVar); ok {
		if err := a.unify(resolved, typesystem.Int, tok); err != nil {
			return nil, err
		}
		return typesystem.Int, nil
	}
	switch resolved {
	case typesystem.Int, typesystem.Float, typesystem.String:
		return resolved, nil
	}
	diag := diagnostics.NewError(diagnostics.ErrT001, tok, "operator %q is not defined for %s", op, resolved)
	diag.File = a.file
	return nil, diag
}

// requireConcatenable admits String and List for the ++ operator. Bare
// variables default to String.
func (a *Analyzer) requireConcatenable(t typesystem.Type, tok token.Token) (typesystem.Type, error) {
	resolved := t.Apply(a.subst)
	switch rt := resolved.(type) {
	case typesystem.TVar:
		if err := a.unify(resolved, typesystem.String, tok); err != nil {
			return nil, err
		}
		return typesystem.String, nil
	case typesystem.TCon:
		if rt == typesystem.String {
			return resolved, nil
		}
	case typesystem.TApp:
		return resolved, nil
	}
	diag := diagnostics.NewError(diagnostics.ErrT001, tok, "operator %q is not defined for %s", "++", resolved)
	diag.File = a.file
	return nil, diag
}

func (a *Analyzer) inferList(n *ast.ListLiteral, table *symbols.SymbolTable) (typesystem.Type, error) {
	elem := a.freshTVar()
	for _, el := range n.Elements {
		et, err := a.infer(el, table)
		if err != nil {
			return nil, err
		}
		if err := a.unify(elem, et, el.GetToken()); err != nil {
			return nil, err
		}
	}
	return typesystem.ListOf(elem), nil
}

func (a *Analyzer) inferRange(n *ast.RangeExpression, table *symbols.SymbolTable) (typesystem.Type, error) {
	for _, bound := range []ast.Expression{n.Start, n.End} {
		bt, err := a.infer(bound, table)
		if err != nil {
			return nil, err
		}
		if err := a.unify(bt, typesystem.Int, bound.GetToken()); err != nil {
			return nil, err
		}
	}
	return typesystem.ListOf(typesystem.Int), nil
}

// inferFunction types a guarded function. All cases share one parameter type
// and one result type: literal patterns and guard values from every case are
// unified into them, and guard conditions must be Bool.
func (a *Analyzer) inferFunction(n *ast.FunctionLiteral, table *symbols.SymbolTable) (typesystem.Type, error) {
	param := a.freshTVar()
	result := a.freshTVar()

	for _, c := range n.Cases {
		caseTable := symbols.NewEnclosed(table)

		switch pat := c.Pattern.(type) {
		case *ast.IdentifierPattern:
			// The binder is monomorphic inside its own body.
			caseTable.Define(pat.Name.Value, param)
		case *ast.LiteralPattern:
			lt, err := a.infer(pat.Value, caseTable)
			if err != nil {
				return nil, err
			}
			if err := a.unify(param, lt, pat.GetToken()); err != nil {
				return nil, err
			}
		}

		for _, g := range c.Guards {
			if g.Condition != nil {
				ct, err := a.infer(g.Condition, caseTable)
				if err != nil {
					return nil, err
				}
				if err := a.unify(ct, typesystem.Bool, g.Condition.GetToken()); err != nil {
					return nil, err
				}
			}
			vt, err := a.infer(g.Value, caseTable)
			if err != nil {
				return nil, err
			}
			if err := a.unify(result, vt, g.Value.GetToken()); err != nil {
				return nil, err
			}
		}
	}

	return typesystem.TFunc{Param: param, Return: result}, nil
}

func (a *Analyzer) inferApply(n *ast.ApplyExpression, table *symbols.SymbolTable) (typesystem.Type, error) {
	ft, err := a.infer(n.Function, table)
	if err != nil {
		return nil, err
	}
	at, err := a.infer(n.Argument, table)
	if err != nil {
		return nil, err
	}

	result := a.freshTVar()
	if err := a.unify(ft, typesystem.TFunc{Param: at, Return: result}, n.Token); err != nil {
		return nil, err
	}
	return result, nil
}
