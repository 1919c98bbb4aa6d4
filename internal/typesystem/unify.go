package typesystem

import (
	"fmt"
	"reflect"
)

// MismatchError is returned when two types are structurally incompatible.
type MismatchError struct {
	Left  Type
	Right Type
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("type mismatch: %s vs %s", e.Left, e.Right)
}

// OccursError is returned when unification would produce an infinite type.
type OccursError struct {
	Var  TVar
	Type Type
}

func (e *OccursError) Error() string {
	return fmt.Sprintf("infinite type: %s occurs in %s", e.Var.Name, e.Type)
}

// Unify attempts to find the most general substitution that makes t1 and t2
// equal. It is the sole producer of substitutions in the system.
func Unify(t1, t2 Type) (Subst, error) {
	if reflect.DeepEqual(t1, t2) {
		return Subst{}, nil
	}

	switch a := t1.(type) {
	case TVar:
		return bindVar(a, t2)

	case TCon:
		if b, ok := t2.(TVar); ok {
			return bindVar(b, t1)
		}
		if b, ok := t2.(TCon); ok && a.Name == b.Name {
			return Subst{}, nil
		}
		return nil, &MismatchError{Left: t1, Right: t2}

	case TApp:
		switch b := t2.(type) {
		case TVar:
			return bindVar(b, t1)
		case TApp:
			if len(a.Args) != len(b.Args) {
				return nil, &MismatchError{Left: t1, Right: t2}
			}
			subst, err := Unify(a.Constructor, b.Constructor)
			if err != nil {
				return nil, &MismatchError{Left: t1, Right: t2}
			}
			for i := range a.Args {
				argSubst, err := Unify(a.Args[i].Apply(subst), b.Args[i].Apply(subst))
				if err != nil {
					return nil, err
				}
				subst = subst.Compose(argSubst)
			}
			return subst, nil
		}
		return nil, &MismatchError{Left: t1, Right: t2}

	case TFunc:
		switch b := t2.(type) {
		case TVar:
			return bindVar(b, t1)
		case TFunc:
			paramSubst, err := Unify(a.Param, b.Param)
			if err != nil {
				return nil, err
			}
			// Apply the parameter substitution to both return types before
			// unifying them; stale types here are the classic inference bug.
			retSubst, err := Unify(a.Return.Apply(paramSubst), b.Return.Apply(paramSubst))
			if err != nil {
				return nil, err
			}
			return paramSubst.Compose(retSubst), nil
		}
		return nil, &MismatchError{Left: t1, Right: t2}
	}

	return nil, &MismatchError{Left: t1, Right: t2}
}

// bindVar binds a type variable to a type, rejecting self-referential
// bindings via the occurs check.
func bindVar(v TVar, t Type) (Subst, error) {
	if tv, ok := t.(TVar); ok && tv.Name == v.Name {
		return Subst{}, nil
	}
	if OccursIn(v, t) {
		return nil, &OccursError{Var: v, Type: t}
	}
	return Subst{v.Name: t}, nil
}

// OccursIn reports whether v appears free in t.
func OccursIn(v TVar, t Type) bool {
	for _, free := range t.FreeTypeVariables() {
		if free.Name == v.Name {
			return true
		}
	}
	return false
}
