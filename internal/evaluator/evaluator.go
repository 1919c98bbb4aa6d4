package evaluator

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/funvibe/gwn/internal/ast"
	"github.com/funvibe/gwn/internal/diagnostics"
	"github.com/funvibe/gwn/internal/token"
)

// Evaluator walks the AST and produces runtime values. Out receives the
// output of print.
type Evaluator struct {
	Out io.Writer
}

func New(out io.Writer) *Evaluator {
	if out == nil {
		out = os.Stdout
	}
	return &Evaluator{Out: out}
}

func (e *Evaluator) Eval(node ast.Node, env *Environment) Object {
	switch n := node.(type) {
	case *ast.Program:
		return e.evalProgram(n, env)

	case *ast.ConstantDeclaration:
		val := e.Eval(n.Value, env)
		if isError(val) {
			return val
		}
		env.Set(n.Name.Value, val)
		return val

	case *ast.ExpressionStatement:
		return e.Eval(n.Expression, env)

	case *ast.IntegerLiteral:
		return &Integer{Value: n.Value}
	case *ast.FloatLiteral:
		return &Float{Value: n.Value}
	case *ast.StringLiteral:
		return &String{Value: n.Value}
	case *ast.BooleanLiteral:
		return nativeBoolToBooleanObject(n.Value)

	case *ast.Identifier:
		return e.evalIdentifier(n, env)

	case *ast.PrefixExpression:
		return e.evalPrefixExpression(n, env)

	case *ast.InfixExpression:
		return e.evalInfixExpression(n, env)

	case *ast.ListLiteral:
		return e.evalListLiteral(n, env)

	case *ast.RangeExpression:
		return e.evalRangeExpression(n, env)

	case *ast.FunctionLiteral:
		return &Function{Cases: n.Cases, Env: env}

	case *ast.ApplyExpression:
		return e.evalApplyExpression(n, env)
	}

	return newErrorAt(node.GetToken(), "unknown node %T", node)
}

func (e *Evaluator) evalProgram(program *ast.Program, env *Environment) Object {
	var result Object = NIL
	for _, stmt := range program.Statements {
		result = e.Eval(stmt, env)
		if isError(result) {
			return result
		}
	}
	return result
}

func (e *Evaluator) evalIdentifier(n *ast.Identifier, env *Environment) Object {
	if val, ok := env.Get(n.Value); ok {
		return val
	}
	return newErrorAt(n.Token, "identifier not found: %s", n.Value)
}

func (e *Evaluator) evalPrefixExpression(n *ast.PrefixExpression, env *Environment) Object {
	right := e.Eval(n.Right, env)
	if isError(right) {
		return right
	}

	switch n.Operator {
	case "not":
		if b, ok := right.(*Boolean); ok {
			return nativeBoolToBooleanObject(!b.Value)
		}
	case "-":
		switch r := right.(type) {
		case *Integer:
			return &Integer{Value: -r.Value}
		case *Float:
			return &Float{Value: -r.Value}
		}
	}
	return newErrorAt(n.Token, "unknown operator: %s%s", n.Operator, right.Type())
}

func (e *Evaluator) evalInfixExpression(n *ast.InfixExpression, env *Environment) Object {
	left := e.Eval(n.Left, env)
	if isError(left) {
		return left
	}

	// and/or short-circuit: the right operand only runs when it can still
	// change the result.
	switch n.Operator {
	case "and":
		if b, ok := left.(*Boolean); ok && !b.Value {
			return FALSE
		}
	case "or":
		if b, ok := left.(*Boolean); ok && b.Value {
			return TRUE
		}
	}

	right := e.Eval(n.Right, env)
	if isError(right) {
		return right
	}

	switch {
	case n.Operator == "and" || n.Operator == "or":
		if b, ok := right.(*Boolean); ok {
			return nativeBoolToBooleanObject(b.Value)
		}
	case n.Operator == "==":
		return nativeBoolToBooleanObject(objectsEqual(left, right))
	case n.Operator == "++":
		return evalConcat(left, right, n.Token)
	case left.Type() == INTEGER_OBJ && right.Type() == INTEGER_OBJ:
		return evalIntegerInfix(n.Operator, left.(*Integer), right.(*Integer), n.Token)
	case left.Type() == FLOAT_OBJ && right.Type() == FLOAT_OBJ:
		return evalFloatInfix(n.Operator, left.(*Float), right.(*Float), n.Token)
	case left.Type() == STRING_OBJ && right.Type() == STRING_OBJ:
		return evalStringInfix(n.Operator, left.(*String), right.(*String), n.Token)
	}

	return newErrorAt(n.Token, "unknown operator: %s %s %s", left.Type(), n.Operator, right.Type())
}

func evalIntegerInfix(op string, left, right *Integer, tok token.Token) Object {
	switch op {
	case "+":
		return &Integer{Value: left.Value + right.Value}
	case "-":
		return &Integer{Value: left.Value - right.Value}
	case "*":
		return &Integer{Value: left.Value * right.Value}
	case "/":
		if right.Value == 0 {
			return newErrorAt(tok, "division by zero")
		}
		return &Integer{Value: left.Value / right.Value}
	case "%":
		if right.Value == 0 {
			return newErrorAt(tok, "division by zero")
		}
		return &Integer{Value: left.Value % right.Value}
	case "^":
		return evalIntegerPower(left.Value, right.Value, tok)
	case "<":
		return nativeBoolToBooleanObject(left.Value < right.Value)
	case "<=":
		return nativeBoolToBooleanObject(left.Value <= right.Value)
	case ">":
		return nativeBoolToBooleanObject(left.Value > right.Value)
	case ">=":
		return nativeBoolToBooleanObject(left.Value >= right.Value)
	}
	return newErrorAt(tok, "unknown operator: INTEGER %s INTEGER", op)
}

// evalIntegerPower keeps ^ closed over Int by iterating multiplication. A
// negative exponent would leave Int, so it is rejected.
func evalIntegerPower(base, exp int64, tok token.Token) Object {
	if exp < 0 {
		return newErrorAt(tok, "negative exponent %d for integer power", exp)
	}
	var result int64 = 1
	for i := int64(0); i < exp; i++ {
		result *= base
	}
	return &Integer{Value: result}
}

func evalFloatInfix(op string, left, right *Float, tok token.Token) Object {
	switch op {
	case "+":
		return &Float{Value: left.Value + right.Value}
	case "-":
		return &Float{Value: left.Value - right.Value}
	case "*":
		return &Float{Value: left.Value * right.Value}
	case "/":
		if right.Value == 0 {
			return newErrorAt(tok, "division by zero")
		}
		return &Float{Value: left.Value / right.Value}
	case "^":
		return &Float{Value: math.Pow(left.Value, right.Value)}
	case "<":
		return nativeBoolToBooleanObject(left.Value < right.Value)
	case "<=":
		return nativeBoolToBooleanObject(left.Value <= right.Value)
	case ">":
		return nativeBoolToBooleanObject(left.Value > right.Value)
	case ">=":
		return nativeBoolToBooleanObject(left.Value >= right.Value)
	}
	return newErrorAt(tok, "unknown operator: FLOAT %s FLOAT", op)
}

func evalStringInfix(op string, left, right *String, tok token.Token) Object {
	switch op {
	case "<":
		return nativeBoolToBooleanObject(left.Value < right.Value)
	case "<=":
		return nativeBoolToBooleanObject(left.Value <= right.Value)
	case ">":
		return nativeBoolToBooleanObject(left.Value > right.Value)
	case ">=":
		return nativeBoolToBooleanObject(left.Value >= right.Value)
	}
	return newErrorAt(tok, "unknown operator: STRING %s STRING", op)
}

func evalConcat(left, right Object, tok token.Token) Object {
	switch l := left.(type) {
	case *String:
		if r, ok := right.(*String); ok {
			return &String{Value: l.Value + r.Value}
		}
	case *List:
		if r, ok := right.(*List); ok {
			elements := make([]Object, 0, len(l.Elements)+len(r.Elements))
			elements = append(elements, l.Elements...)
			elements = append(elements, r.Elements...)
			return &List{Elements: elements}
		}
	}
	return newErrorAt(tok, "unknown operator: %s ++ %s", left.Type(), right.Type())
}

func objectsEqual(left, right Object) bool {
	switch l := left.(type) {
	case *Integer:
		r, ok := right.(*Integer)
		return ok && l.Value == r.Value
	case *Float:
		r, ok := right.(*Float)
		return ok && l.Value == r.Value
	case *Boolean:
		r, ok := right.(*Boolean)
		return ok && l.Value == r.Value
	case *String:
		r, ok := right.(*String)
		return ok && l.Value == r.Value
	case *Nil:
		_, ok := right.(*Nil)
		return ok
	case *List:
		r, ok := right.(*List)
		if !ok || len(l.Elements) != len(r.Elements) {
			return false
		}
		for i := range l.Elements {
			if !objectsEqual(l.Elements[i], r.Elements[i]) {
				return false
			}
		}
		return true
	}
	return false
}

func (e *Evaluator) evalListLiteral(n *ast.ListLiteral, env *Environment) Object {
	elements := make([]Object, 0, len(n.Elements))
	for _, el := range n.Elements {
		val := e.Eval(el, env)
		if isError(val) {
			return val
		}
		elements = append(elements, val)
	}
	return &List{Elements: elements}
}

// evalRangeExpression builds the inclusive list [start..end]. An empty range
// (start past end) yields an empty list.
func (e *Evaluator) evalRangeExpression(n *ast.RangeExpression, env *Environment) Object {
	start := e.Eval(n.Start, env)
	if isError(start) {
		return start
	}
	end := e.Eval(n.End, env)
	if isError(end) {
		return end
	}

	startInt, ok := start.(*Integer)
	if !ok {
		return newErrorAt(n.Token, "range bound is not an integer: %s", start.Type())
	}
	endInt, ok := end.(*Integer)
	if !ok {
		return newErrorAt(n.Token, "range bound is not an integer: %s", end.Type())
	}

	if startInt.Value > endInt.Value {
		return &List{}
	}
	elements := make([]Object, 0, endInt.Value-startInt.Value+1)
	for i := startInt.Value; i <= endInt.Value; i++ {
		elements = append(elements, &Integer{Value: i})
	}
	return &List{Elements: elements}
}

func (e *Evaluator) evalApplyExpression(n *ast.ApplyExpression, env *Environment) Object {
	fn := e.Eval(n.Function, env)
	if isError(fn) {
		return fn
	}
	arg := e.Eval(n.Argument, env)
	if isError(arg) {
		return arg
	}
	return e.applyFunction(fn, arg, n.Token)
}

// applyFunction applies one argument to a function value. For guarded
// functions the cases run in source order: a case whose pattern rejects the
// argument is skipped, a matching case runs its guards top to bottom and the
// first true guard wins. Falling off the end is a runtime error.
func (e *Evaluator) applyFunction(fn Object, arg Object, tok token.Token) Object {
	switch f := fn.(type) {
	case *Builtin:
		return f.Fn(e, arg)

	case *Function:
		for _, c := range f.Cases {
			caseEnv, matched := e.matchPattern(c.Pattern, arg, f.Env)
			if isError(matched) {
				return matched
			}
			if matched == FALSE {
				continue
			}

			for _, g := range c.Guards {
				if !g.IsElse {
					cond := e.Eval(g.Condition, caseEnv)
					if isError(cond) {
						return cond
					}
					if cond != TRUE {
						continue
					}
				}
				return e.Eval(g.Value, caseEnv)
			}
		}
		return &Error{
			Code:    diagnostics.ErrR001,
			Message: fmt.Sprintf("no guard matched argument %s", arg.Inspect()),
			Line:    tok.Line,
			Column:  tok.Column,
		}
	}

	return newErrorAt(tok, "not a function: %s", fn.Type())
}

// matchPattern checks the argument against a case pattern. It returns the
// environment for the case body and TRUE/FALSE for the match result.
func (e *Evaluator) matchPattern(pat ast.Pattern, arg Object, env *Environment) (*Environment, Object) {
	switch p := pat.(type) {
	case *ast.IdentifierPattern:
		caseEnv := NewEnclosedEnvironment(env)
		caseEnv.Set(p.Name.Value, arg)
		return caseEnv, TRUE

	case *ast.LiteralPattern:
		want := e.Eval(p.Value, env)
		if isError(want) {
			return nil, want
		}
		return env, nativeBoolToBooleanObject(objectsEqual(want, arg))
	}
	return nil, newErrorAt(pat.GetToken(), "unsupported pattern %T", pat)
}

// newErrorAt builds a primitive runtime error positioned at tok.
func newErrorAt(tok token.Token, format string, args ...interface{}) *Error {
	return &Error{
		Code:    diagnostics.ErrR002,
		Message: fmt.Sprintf(format, args...),
		Line:    tok.Line,
		Column:  tok.Column,
	}
}
