package analyzer

import (
	"github.com/funvibe/gwn/internal/config"
	"github.com/funvibe/gwn/internal/symbols"
	"github.com/funvibe/gwn/internal/typesystem"
)

// RegisterBuiltins defines the type schemes of the builtin functions in
// table. The evaluator registers the matching implementations.
func RegisterBuiltins(table *symbols.SymbolTable) {
	a := typesystem.TVar{Name: "a"}
	b := typesystem.TVar{Name: "b"}

	// map : forall a b. (a -> b) -> List<a> -> List<b>
	table.Define(config.MapFuncName, typesystem.TForall{
		Vars: []typesystem.TVar{a, b},
		Type: typesystem.TFunc{
			Param: typesystem.TFunc{Param: a, Return: b},
			Return: typesystem.TFunc{
				Param:  typesystem.ListOf(a),
				Return: typesystem.ListOf(b),
			},
		},
	})

	// toString : forall a. a -> String
	table.Define(config.ToStringFuncName, typesystem.TForall{
		Vars: []typesystem.TVar{a},
		Type: typesystem.TFunc{Param: a, Return: typesystem.String},
	})

	// print : forall a. a -> Nil
	table.Define(config.PrintFuncName, typesystem.TForall{
		Vars: []typesystem.TVar{a},
		Type: typesystem.TFunc{Param: a, Return: typesystem.Nil},
	})
}
