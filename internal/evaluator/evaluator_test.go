package evaluator

import (
	"bytes"
	"testing"

	"github.com/funvibe/gwn/internal/analyzer"
	"github.com/funvibe/gwn/internal/ast"
	"github.com/funvibe/gwn/internal/lexer"
	"github.com/funvibe/gwn/internal/parser"
	"github.com/funvibe/gwn/internal/pipeline"
)

func evalSource(t *testing.T, input string) (Object, *bytes.Buffer, *pipeline.PipelineContext) {
	t.Helper()

	out := &bytes.Buffer{}
	ctx := &pipeline.PipelineContext{SourceCode: input, Out: out}
	pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		&analyzer.SemanticAnalyzerProcessor{},
		&EvaluatorProcessor{},
	).Run(ctx)
	result, _ := ctx.Result.(Object)
	return result, out, ctx
}

func mustEval(t *testing.T, input string) Object {
	t.Helper()
	result, _, ctx := evalSource(t, input)
	if ctx.HasErrors() {
		t.Fatalf("errors: %v", ctx.Errors)
	}
	if result == nil {
		t.Fatal("no result")
	}
	return result
}

func requireInteger(t *testing.T, obj Object, want int64) {
	t.Helper()
	i, ok := obj.(*Integer)
	if !ok {
		t.Fatalf("expected Integer, got %T (%v)", obj, obj)
	}
	if i.Value != want {
		t.Fatalf("expected %d, got %d", want, i.Value)
	}
}

func requireString(t *testing.T, obj Object, want string) {
	t.Helper()
	s, ok := obj.(*String)
	if !ok {
		t.Fatalf("expected String, got %T (%v)", obj, obj)
	}
	if s.Value != want {
		t.Fatalf("expected %q, got %q", want, s.Value)
	}
}

func TestArithmetic(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"1 + 2 * 3", 7},
		{"(1 + 2) * 3", 9},
		{"10 - 4 - 3", 3},
		{"7 / 2", 3},
		{"10 % 3", 1},
		{"2 ^ 10", 1024},
		{"2 ^ 3 ^ 2", 512},
		{"-5 + 10", 5},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			requireInteger(t, mustEval(t, tt.input), tt.want)
		})
	}
}

func TestFloatArithmetic(t *testing.T) {
	result := mustEval(t, "1.5 + 2.25")
	f, ok := result.(*Float)
	if !ok {
		t.Fatalf("expected Float, got %T", result)
	}
	if f.Value != 3.75 {
		t.Fatalf("expected 3.75, got %g", f.Value)
	}
}

func TestBooleansAndComparison(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"1 < 2", true},
		{"2 <= 2", true},
		{"3 > 4", false},
		{"1 == 1", true},
		{`"a" < "b"`, true},
		{"true and false", false},
		{"true or false", true},
		{"not false", true},
		{"[1, 2] == [1, 2]", true},
		{"[1, 2] == [1, 3]", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			b, ok := mustEval(t, tt.input).(*Boolean)
			if !ok {
				t.Fatal("expected Boolean")
			}
			if b.Value != tt.want {
				t.Errorf("expected %v, got %v", tt.want, b.Value)
			}
		})
	}
}

func TestStringAndListConcat(t *testing.T) {
	requireString(t, mustEval(t, `"Fizz" ++ "Buzz"`), "FizzBuzz")

	result := mustEval(t, "[1, 2] ++ [3]")
	list, ok := result.(*List)
	if !ok {
		t.Fatalf("expected List, got %T", result)
	}
	if got := list.Inspect(); got != "[1, 2, 3]" {
		t.Errorf("expected [1, 2, 3], got %s", got)
	}
}

func TestRanges(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"[1..5]", "[1, 2, 3, 4, 5]"},
		{"[3..3]", "[3]"},
		{"[5..1]", "[]"},
		{"[1 + 1 .. 2 * 2]", "[2, 3, 4]"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := mustEval(t, tt.input).Inspect(); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestGuardedFunction(t *testing.T) {
	program := `
sign = {x | x > 0 ? 1, x < 0 ? -1, else ? 0}
`
	tests := []struct {
		arg  string
		want int64
	}{
		{"5", 1},
		{"-5", -1},
		{"0", 0},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			requireInteger(t, mustEval(t, program+tt.arg+" -> sign\n"), tt.want)
		})
	}
}

func TestGuardOrderFirstMatchWins(t *testing.T) {
	// 15 satisfies every condition; the first guard must win.
	program := `
classify = {x | x % 15 == 0 ? "FizzBuzz", x % 3 == 0 ? "Fizz", x % 5 == 0 ? "Buzz", else ? x -> toString}
15 -> classify
`
	requireString(t, mustEval(t, program), "FizzBuzz")
}

func TestMultiCaseLiteralPatterns(t *testing.T) {
	program := `
describe = {0 | "zero"}, {1 | "one"}, {x | x -> toString}
`
	tests := []struct {
		arg  string
		want string
	}{
		{"0", "zero"},
		{"1", "one"},
		{"7", "7"},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			requireString(t, mustEval(t, program+tt.arg+" -> describe\n"), tt.want)
		})
	}
}

func TestCaseFallthrough(t *testing.T) {
	// The first case matches any argument but only guards positives; other
	// arguments fall through to the next case.
	program := `
f = {x | x > 0 ? "positive"}, {x | "rest"}
`
	requireString(t, mustEval(t, program+"3 -> f\n"), "positive")
	requireString(t, mustEval(t, program+"-3 -> f\n"), "rest")
}

func TestUnmatchedGuard(t *testing.T) {
	program := "f = {x | x > 0 ? 1}\n-1 -> f\n"
	_, _, ctx := evalSource(t, program)
	if !ctx.HasErrors() {
		t.Fatal("expected an unmatched guard error")
	}
	if ctx.Errors[0].Code != "R001" {
		t.Errorf("expected R001, got %s", ctx.Errors[0].Code)
	}
}

func TestClosures(t *testing.T) {
	program := `
makeAdder = {x | {y | x + y}}
addFive = makeAdder <- 5
addFive <- 37
`
	requireInteger(t, mustEval(t, program), 42)
}

func TestRecursion(t *testing.T) {
	program := `
fact = {n | n == 0 ? 1, else ? n * (fact <- (n - 1))}
fact <- 10
`
	requireInteger(t, mustEval(t, program), 3628800)
}

func TestPipeDirections(t *testing.T) {
	program := `
double = {x | x * 2}
`
	requireInteger(t, mustEval(t, program+"21 -> double\n"), 42)
	requireInteger(t, mustEval(t, program+"double <- 21\n"), 42)
	requireInteger(t, mustEval(t, program+"10 -> double -> double\n"), 40)
}

func TestMapBuiltin(t *testing.T) {
	program := `
double = {x | x * 2}
[1..4] -> (double -> map)
`
	if got := mustEval(t, program).Inspect(); got != "[2, 4, 6, 8]" {
		t.Errorf("expected [2, 4, 6, 8], got %s", got)
	}
}

func TestMapPartialApplication(t *testing.T) {
	program := `
doubleAll = {x | x * 2} -> map
[1, 2, 3] -> doubleAll
[10, 20] -> doubleAll
`
	if got := mustEval(t, program).Inspect(); got != "[20, 40]" {
		t.Errorf("expected [20, 40], got %s", got)
	}
}

func TestPrintWritesToOut(t *testing.T) {
	_, out, ctx := evalSource(t, "\"hello\" -> print\n42 -> print\n")
	if ctx.HasErrors() {
		t.Fatalf("errors: %v", ctx.Errors)
	}
	want := "hello\n42\n"
	if out.String() != want {
		t.Errorf("expected %q, got %q", want, out.String())
	}
}

func TestFizzBuzz(t *testing.T) {
	program := `
fizzbuzz = {x | x % 15 == 0 ? "FizzBuzz", x % 3 == 0 ? "Fizz", x % 5 == 0 ? "Buzz", else ? x -> toString}
[1..15] -> (fizzbuzz -> map)
`
	want := []string{
		"1", "2", "Fizz", "4", "Buzz", "Fizz", "7", "8", "Fizz", "Buzz",
		"11", "Fizz", "13", "14", "FizzBuzz",
	}

	result := mustEval(t, program)
	list, ok := result.(*List)
	if !ok {
		t.Fatalf("expected List, got %T", result)
	}
	if len(list.Elements) != len(want) {
		t.Fatalf("expected %d elements, got %d", len(want), len(list.Elements))
	}
	for i, w := range want {
		requireString(t, list.Elements[i], w)
	}
}

func TestEvaluationIsDeterministic(t *testing.T) {
	program := `
fizzbuzz = {x | x % 15 == 0 ? "FizzBuzz", x % 3 == 0 ? "Fizz", x % 5 == 0 ? "Buzz", else ? x -> toString}
[1..100] -> (fizzbuzz -> map)
`
	first := mustEval(t, program).Inspect()
	second := mustEval(t, program).Inspect()
	if first != second {
		t.Error("same program produced different results")
	}
}

func TestRuntimeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  string
	}{
		{"division by zero", "1 / 0", "R002"},
		{"modulo by zero", "1 % 0", "R002"},
		{"unmatched guard", "f = {0 | 1}\n2 -> f\n", "R001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, ctx := evalSource(t, tt.input)
			if !ctx.HasErrors() {
				t.Fatal("expected a runtime error")
			}
			found := false
			for _, err := range ctx.Errors {
				if err.Code == tt.code {
					found = true
				}
			}
			if !found {
				t.Errorf("expected code %s in %v", tt.code, ctx.Errors)
			}
		})
	}
}

func TestTypeErrorPreventsEvaluation(t *testing.T) {
	// The evaluator must not run a program the analyzer rejected.
	_, out, ctx := evalSource(t, "1 + \"one\" -> print\n")
	if !ctx.HasErrors() {
		t.Fatal("expected a type error")
	}
	if out.Len() != 0 {
		t.Errorf("expected no output, got %q", out.String())
	}
	if ctx.Result != nil {
		t.Errorf("expected no result, got %v", ctx.Result)
	}
}

func TestEnvironmentPersistsAcrossRuns(t *testing.T) {
	env := NewEnvironment()
	RegisterBuiltins(env)
	e := New(&bytes.Buffer{})

	first := parseForTest(t, "double = {x | x * 2}\n")
	if _, diag := EvalProgram(first, env, e); diag != nil {
		t.Fatalf("unexpected error: %v", diag)
	}

	second := parseForTest(t, "21 -> double\n")
	result, diag := EvalProgram(second, env, e)
	if diag != nil {
		t.Fatalf("unexpected error: %v", diag)
	}
	requireInteger(t, result, 42)
}

func TestInspectFormats(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"42", "42"},
		{"4.5", "4.5"},
		{"true", "true"},
		{`"goo"`, "goo"},
		{`["a", "b"]`, `["a", "b"]`},
		{"[1..3]", "[1, 2, 3]"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := mustEval(t, tt.input).Inspect(); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestShortCircuit(t *testing.T) {
	// The right operand of `and` must not run when the left is false; the
	// guard below would divide by zero otherwise.
	program := "safe = {x | x > 0 and 10 % x == 0 ? \"divides\", else ? \"no\"}\n0 -> safe\n"
	requireString(t, mustEval(t, program), "no")
}

func parseForTest(t *testing.T, input string) *ast.Program {
	t.Helper()
	ctx := &pipeline.PipelineContext{SourceCode: input}
	pipeline.New(&lexer.LexerProcessor{}, &parser.ParserProcessor{}).Run(ctx)
	if ctx.HasErrors() {
		t.Fatalf("parse errors: %v", ctx.Errors)
	}
	return ctx.AstRoot.(*ast.Program)
}
