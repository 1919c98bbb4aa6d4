package evaluator

import (
	"fmt"

	"github.com/funvibe/gwn/internal/config"
	"github.com/funvibe/gwn/internal/token"
)

// RegisterBuiltins installs the builtin implementations in env. Their type
// schemes live in the analyzer; both registries use the same names from
// config.
func RegisterBuiltins(env *Environment) {
	env.Set(config.PrintFuncName, &Builtin{Name: config.PrintFuncName, Fn: builtinPrint})
	env.Set(config.ToStringFuncName, &Builtin{Name: config.ToStringFuncName, Fn: builtinToString})
	env.Set(config.MapFuncName, &Builtin{Name: config.MapFuncName, Fn: builtinMap})
}

func builtinPrint(e *Evaluator, arg Object) Object {
	fmt.Fprintln(e.Out, arg.Inspect())
	return NIL
}

func builtinToString(e *Evaluator, arg Object) Object {
	if s, ok := arg.(*String); ok {
		return s
	}
	return &String{Value: arg.Inspect()}
}

// builtinMap is curried: applying the function yields another builtin that
// waits for the list, so `double -> map` is a usable value on its own.
func builtinMap(e *Evaluator, fn Object) Object {
	switch fn.(type) {
	case *Function, *Builtin:
	default:
		return newErrorAt(token.Token{}, "argument to map is not a function: %s", fn.Type())
	}

	return &Builtin{
		Name: config.MapFuncName,
		Fn: func(e *Evaluator, arg Object) Object {
			list, ok := arg.(*List)
			if !ok {
				return newErrorAt(token.Token{}, "argument to map is not a list: %s", arg.Type())
			}
			elements := make([]Object, len(list.Elements))
			for i, el := range list.Elements {
				val := e.applyFunction(fn, el, token.Token{})
				if isError(val) {
					return val
				}
				elements[i] = val
			}
			return &List{Elements: elements}
		},
	}
}
