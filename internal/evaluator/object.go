package evaluator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/funvibe/gwn/internal/ast"
)

type ObjectType string

const (
	INTEGER_OBJ  ObjectType = "INTEGER"
	FLOAT_OBJ    ObjectType = "FLOAT"
	BOOLEAN_OBJ  ObjectType = "BOOLEAN"
	STRING_OBJ   ObjectType = "STRING"
	LIST_OBJ     ObjectType = "LIST"
	FUNCTION_OBJ ObjectType = "FUNCTION"
	BUILTIN_OBJ  ObjectType = "BUILTIN"
	NIL_OBJ      ObjectType = "NIL"
	ERROR_OBJ    ObjectType = "ERROR"
)

// Object is a runtime value.
type Object interface {
	Type() ObjectType
	Inspect() string
}

type Integer struct {
	Value int64
}

func (i *Integer) Type() ObjectType { return INTEGER_OBJ }
func (i *Integer) Inspect() string  { return strconv.FormatInt(i.Value, 10) }

type Float struct {
	Value float64
}

func (f *Float) Type() ObjectType { return FLOAT_OBJ }
func (f *Float) Inspect() string  { return strconv.FormatFloat(f.Value, 'g', -1, 64) }

type Boolean struct {
	Value bool
}

func (b *Boolean) Type() ObjectType { return BOOLEAN_OBJ }
func (b *Boolean) Inspect() string  { return strconv.FormatBool(b.Value) }

type String struct {
	Value string
}

func (s *String) Type() ObjectType { return STRING_OBJ }
func (s *String) Inspect() string  { return s.Value }

type List struct {
	Elements []Object
}

func (l *List) Type() ObjectType { return LIST_OBJ }
func (l *List) Inspect() string {
	parts := make([]string, len(l.Elements))
	for i, el := range l.Elements {
		if s, ok := el.(*String); ok {
			parts[i] = strconv.Quote(s.Value)
		} else {
			parts[i] = el.Inspect()
		}
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Function is a guarded function closing over its defining environment.
type Function struct {
	Cases []*ast.FunctionCase
	Env   *Environment
}

func (f *Function) Type() ObjectType { return FUNCTION_OBJ }
func (f *Function) Inspect() string {
	if len(f.Cases) == 1 {
		return "{...}"
	}
	return fmt.Sprintf("{...} (%d cases)", len(f.Cases))
}

// BuiltinFunction is the Go implementation behind a builtin. Partial
// application of a curried builtin returns another Builtin.
type BuiltinFunction func(e *Evaluator, arg Object) Object

type Builtin struct {
	Name string
	Fn   BuiltinFunction
}

func (b *Builtin) Type() ObjectType { return BUILTIN_OBJ }
func (b *Builtin) Inspect() string  { return "builtin: " + b.Name }

type Nil struct{}

func (n *Nil) Type() ObjectType { return NIL_OBJ }
func (n *Nil) Inspect() string  { return "nil" }

// Error is a runtime failure propagating up through evaluation. Code is one
// of the R diagnostics codes.
type Error struct {
	Code    string
	Message string
	Line    int
	Column  int
}

func (e *Error) Type() ObjectType { return ERROR_OBJ }
func (e *Error) Inspect() string  { return "runtime error: " + e.Message }

// Shared instances; booleans and nil carry no state, so every use references
// the same object.
var (
	NIL   = &Nil{}
	TRUE  = &Boolean{Value: true}
	FALSE = &Boolean{Value: false}
)

func nativeBoolToBooleanObject(value bool) *Boolean {
	if value {
		return TRUE
	}
	return FALSE
}

func isError(obj Object) bool {
	if obj != nil {
		return obj.Type() == ERROR_OBJ
	}
	return false
}
