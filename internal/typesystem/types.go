package typesystem

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/funvibe/gwn/internal/config"
)

// Type is the interface for all types in our system.
type Type interface {
	String() string
	Apply(Subst) Type
	FreeTypeVariables() []TVar
}

// TVar represents a type variable (e.g. 't1', 't2').
type TVar struct {
	Name string
}

func (t TVar) String() string {
	// Normalize auto-generated type variables (t1, t2, t14, ...) to t?
	// so that test output does not depend on allocation order.
	if config.IsTestMode {
		if strings.HasPrefix(t.Name, "t") {
			if _, err := strconv.Atoi(t.Name[1:]); err == nil {
				return "t?"
			}
		}
	}
	return t.Name
}

func (t TVar) Apply(s Subst) Type {
	return applyWithCycleCheck(t, s, make(map[string]bool))
}

func (t TVar) FreeTypeVariables() []TVar {
	return []TVar{t}
}

// TCon represents a type constant (e.g. Int, Bool, String).
type TCon struct {
	Name string
}

func (t TCon) String() string { return t.Name }

func (t TCon) Apply(s Subst) Type { return t }

func (t TCon) FreeTypeVariables() []TVar { return nil }

// TApp represents a type application (e.g. List Int).
type TApp struct {
	Constructor Type
	Args        []Type
}

func (t TApp) String() string {
	args := make([]string, len(t.Args))
	for i, arg := range t.Args {
		args[i] = arg.String()
	}
	if len(args) == 0 {
		return t.Constructor.String()
	}
	return fmt.Sprintf("%s<%s>", t.Constructor.String(), strings.Join(args, ", "))
}

func (t TApp) Apply(s Subst) Type {
	return applyWithCycleCheck(t, s, make(map[string]bool))
}

func (t TApp) FreeTypeVariables() []TVar {
	vars := t.Constructor.FreeTypeVariables()
	for _, arg := range t.Args {
		vars = append(vars, arg.FreeTypeVariables()...)
	}
	return uniqueTVars(vars)
}

// TFunc represents a function type. Functions take exactly one parameter;
// multi-argument functions are curried.
type TFunc struct {
	Param  Type
	Return Type
}

func (t TFunc) String() string {
	param := t.Param.String()
	if _, ok := t.Param.(TFunc); ok {
		param = "(" + param + ")"
	}
	return fmt.Sprintf("%s -> %s", param, t.Return.String())
}

func (t TFunc) Apply(s Subst) Type {
	return applyWithCycleCheck(t, s, make(map[string]bool))
}

func (t TFunc) FreeTypeVariables() []TVar {
	vars := t.Param.FreeTypeVariables()
	vars = append(vars, t.Return.FreeTypeVariables()...)
	return uniqueTVars(vars)
}

// TForall represents a universally quantified type scheme.
// e.g. forall a. a -> a
type TForall struct {
	Vars []TVar
	Type Type
}

func (t TForall) String() string {
	vars := make([]string, len(t.Vars))
	for i, v := range t.Vars {
		vars[i] = v.String()
	}
	return fmt.Sprintf("forall %s. %s", strings.Join(vars, " "), t.Type.String())
}

func (t TForall) Apply(s Subst) Type {
	return applyWithCycleCheck(t, s, make(map[string]bool))
}

func (t TForall) FreeTypeVariables() []TVar {
	bound := make(map[string]bool, len(t.Vars))
	for _, v := range t.Vars {
		bound[v.Name] = true
	}

	var result []TVar
	for _, v := range t.Type.FreeTypeVariables() {
		if !bound[v.Name] {
			result = append(result, v)
		}
	}
	return uniqueTVars(result)
}

// Base types.
var (
	Int    = TCon{Name: config.IntTypeName}
	Float  = TCon{Name: config.FloatTypeName}
	Bool   = TCon{Name: config.BoolTypeName}
	String = TCon{Name: config.StringTypeName}
	Nil    = TCon{Name: config.NilTypeName}
)

// ListOf builds the type List<elem>.
func ListOf(elem Type) TApp {
	return TApp{Constructor: TCon{Name: config.ListTypeName}, Args: []Type{elem}}
}

// Subst is a mapping from type variable names to Types.
type Subst map[string]Type

// Compose combines two substitutions. The result applies s2 to the range of
// s1, so Compose(s2) refines s1's existing bindings (right-biased).
func (s1 Subst) Compose(s2 Subst) Subst {
	subst := Subst{}
	for k, v := range s2 {
		subst[k] = v
	}
	for k, v := range s1 {
		subst[k] = v.Apply(s2)
	}
	return subst
}

// applyWithCycleCheck applies substitution with cycle detection. A substitution
// produced by Unify never contains cycles, but hand-built ones in tests might.
func applyWithCycleCheck(t Type, s Subst, visited map[string]bool) Type {
	switch typ := t.(type) {
	case TVar:
		if visited[typ.Name] {
			return typ
		}
		if replacement, ok := s[typ.Name]; ok {
			if tv, ok := replacement.(TVar); ok && tv.Name == typ.Name {
				return typ
			}
			newVisited := copyVisited(visited)
			newVisited[typ.Name] = true
			return applyWithCycleCheck(replacement, s, newVisited)
		}
		return typ

	case TCon:
		return typ

	case TApp:
		newArgs := make([]Type, len(typ.Args))
		for i, arg := range typ.Args {
			newArgs[i] = applyWithCycleCheck(arg, s, visited)
		}
		return TApp{
			Constructor: applyWithCycleCheck(typ.Constructor, s, visited),
			Args:        newArgs,
		}

	case TFunc:
		return TFunc{
			Param:  applyWithCycleCheck(typ.Param, s, visited),
			Return: applyWithCycleCheck(typ.Return, s, visited),
		}

	case TForall:
		// Filter substitution to exclude quantified variables
		newSubst := make(Subst)
		bound := make(map[string]bool, len(typ.Vars))
		for _, v := range typ.Vars {
			bound[v.Name] = true
		}
		for k, v := range s {
			if !bound[k] {
				newSubst[k] = v
			}
		}
		return TForall{
			Vars: typ.Vars,
			Type: applyWithCycleCheck(typ.Type, newSubst, visited),
		}

	default:
		return t
	}
}

func copyVisited(m map[string]bool) map[string]bool {
	newMap := make(map[string]bool, len(m))
	for k, v := range m {
		newMap[k] = v
	}
	return newMap
}

func uniqueTVars(vars []TVar) []TVar {
	unique := make([]TVar, 0, len(vars))
	seen := map[string]bool{}
	for _, v := range vars {
		if !seen[v.Name] {
			seen[v.Name] = true
			unique = append(unique, v)
		}
	}
	return unique
}

// SortTVars orders type variables by name for deterministic output.
func SortTVars(vars []TVar) {
	sort.Slice(vars, func(i, j int) bool {
		return vars[i].Name < vars[j].Name
	})
}
