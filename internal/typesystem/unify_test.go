package typesystem

import (
	"errors"
	"testing"
)

func TestUnifyBasic(t *testing.T) {
	tests := []struct {
		name    string
		t1      Type
		t2      Type
		wantErr bool
	}{
		{"identical constants", Int, Int, false},
		{"different constants", Int, String, true},
		{"var against constant", TVar{Name: "t1"}, Int, false},
		{"constant against var", Bool, TVar{Name: "t1"}, false},
		{"var against var", TVar{Name: "t1"}, TVar{Name: "t2"}, false},
		{"same var both sides", TVar{Name: "t1"}, TVar{Name: "t1"}, false},
		{"list against list", ListOf(Int), ListOf(Int), false},
		{"list element mismatch", ListOf(Int), ListOf(String), true},
		{"list against constant", ListOf(Int), Int, true},
		{
			"function types",
			TFunc{Param: Int, Return: Bool},
			TFunc{Param: TVar{Name: "t1"}, Return: TVar{Name: "t2"}},
			false,
		},
		{
			"function param mismatch",
			TFunc{Param: Int, Return: Bool},
			TFunc{Param: String, Return: Bool},
			true,
		},
		{
			"function against constant",
			TFunc{Param: Int, Return: Bool},
			Int,
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subst, err := Unify(tt.t1, tt.t2)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Unify(%s, %s) error = %v, wantErr %v", tt.t1, tt.t2, err, tt.wantErr)
			}
			if err != nil {
				return
			}
			// The substitution must actually equalize both sides.
			got1 := tt.t1.Apply(subst).String()
			got2 := tt.t2.Apply(subst).String()
			if got1 != got2 {
				t.Errorf("substitution does not equalize: %s vs %s", got1, got2)
			}
		})
	}
}

func TestUnifyOccursCheck(t *testing.T) {
	v := TVar{Name: "t1"}

	_, err := Unify(v, TFunc{Param: v, Return: Int})
	var occursErr *OccursError
	if !errors.As(err, &occursErr) {
		t.Fatalf("expected OccursError, got %v", err)
	}

	_, err = Unify(v, ListOf(v))
	if !errors.As(err, &occursErr) {
		t.Fatalf("expected OccursError for list self-reference, got %v", err)
	}

	// A variable against itself is fine, not an infinite type.
	if _, err := Unify(v, v); err != nil {
		t.Fatalf("unifying a variable with itself: %v", err)
	}
}

func TestUnifyMismatchCarriesTypes(t *testing.T) {
	_, err := Unify(ListOf(Int), TFunc{Param: Int, Return: Int})
	var mismatch *MismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected MismatchError, got %v", err)
	}
	if mismatch.Left.String() != "List<Int>" {
		t.Errorf("mismatch.Left = %s, want List<Int>", mismatch.Left)
	}
	if _, ok := mismatch.Right.(TFunc); !ok {
		t.Errorf("mismatch.Right = %T, want TFunc", mismatch.Right)
	}
}

func TestUnifyPropagatesThroughFunctions(t *testing.T) {
	// (t1 -> t1) ~ (Int -> t2) must bind both t1 and t2 to Int.
	a := TVar{Name: "t1"}
	b := TVar{Name: "t2"}

	subst, err := Unify(TFunc{Param: a, Return: a}, TFunc{Param: Int, Return: b})
	if err != nil {
		t.Fatalf("Unify: %v", err)
	}
	if got := a.Apply(subst).String(); got != "Int" {
		t.Errorf("t1 = %s, want Int", got)
	}
	if got := b.Apply(subst).String(); got != "Int" {
		t.Errorf("t2 = %s, want Int", got)
	}
}

func TestSubstCompose(t *testing.T) {
	// s1 = {t1 -> t2}, s2 = {t2 -> Int}. Composing must push s2 into s1's range.
	s1 := Subst{"t1": TVar{Name: "t2"}}
	s2 := Subst{"t2": Int}

	composed := s1.Compose(s2)
	if got := (TVar{Name: "t1"}).Apply(composed).String(); got != "Int" {
		t.Errorf("t1 under composed subst = %s, want Int", got)
	}
	if got := (TVar{Name: "t2"}).Apply(composed).String(); got != "Int" {
		t.Errorf("t2 under composed subst = %s, want Int", got)
	}
}

func TestForallShieldsBoundVars(t *testing.T) {
	scheme := TForall{
		Vars: []TVar{{Name: "t1"}},
		Type: TFunc{Param: TVar{Name: "t1"}, Return: TVar{Name: "t2"}},
	}

	free := scheme.FreeTypeVariables()
	if len(free) != 1 || free[0].Name != "t2" {
		t.Fatalf("free vars = %v, want [t2]", free)
	}

	// Substituting the quantified variable must be a no-op inside the scheme.
	applied := scheme.Apply(Subst{"t1": Int, "t2": Bool}).(TForall)
	fn := applied.Type.(TFunc)
	if fn.Param.String() != "t1" {
		t.Errorf("quantified var was substituted: %s", fn.Param)
	}
	if fn.Return.String() != "Bool" {
		t.Errorf("free var not substituted: %s", fn.Return)
	}
}
