package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/funvibe/gwn/internal/analyzer"
	"github.com/funvibe/gwn/internal/config"
	"github.com/funvibe/gwn/internal/diagnostics"
	"github.com/funvibe/gwn/internal/evaluator"
	"github.com/funvibe/gwn/internal/lexer"
	"github.com/funvibe/gwn/internal/parser"
	"github.com/funvibe/gwn/internal/pipeline"
	"github.com/funvibe/gwn/internal/symbols"
)

// Run is the CLI entry point. Dispatch:
//
//	gwn <file>     run a script
//	gwn -e 'expr'  evaluate an expression and print the result
//	gwn            REPL on a terminal, otherwise read the script from stdin
func Run() {
	defer func() {
		if r := recover(); r != nil {
			if os.Getenv("DEBUG") == "1" {
				panic(r)
			}
			fmt.Fprintf(os.Stderr, "Internal error: %v\n", r)
			fmt.Fprintln(os.Stderr, "This is a bug. Please report it.")
			os.Exit(1)
		}
	}()

	if os.Getenv("GWN_TEST_MODE") == "1" {
		config.IsTestMode = true
	}

	if handleHelp() {
		return
	}
	if handleEval() {
		return
	}

	if len(os.Args) >= 2 {
		runFile(os.Args[1])
		return
	}

	if isTerminal(os.Stdin) {
		cfg := loadConfigOrDefault("")
		RunREPL(os.Stdin, os.Stdout, cfg)
		return
	}

	source, err := io.ReadAll(os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading stdin: %s\n", err)
		os.Exit(1)
	}
	cfg := loadConfigOrDefault("")
	if !runSource(string(source), "", cfg) {
		os.Exit(1)
	}
}

func handleHelp() bool {
	if len(os.Args) < 2 {
		return false
	}
	arg := os.Args[1]
	if arg != "-help" && arg != "--help" && arg != "help" {
		return false
	}

	fmt.Printf(`Usage: %s [file%s]

  %s program%s     run a program
  %s -e 'expr'        evaluate an expression
  %s                  start the REPL (or read a program from stdin)

REPL commands:
  :type <expr>   show the inferred type of an expression
  :history       show recent inputs
  :quit          leave the REPL
`, os.Args[0], config.SourceFileExt, os.Args[0], config.SourceFileExt, os.Args[0], os.Args[0])
	return true
}

func handleEval() bool {
	if len(os.Args) < 3 {
		return false
	}
	if os.Args[1] != "-e" && os.Args[1] != "--eval" {
		return false
	}

	cfg := loadConfigOrDefault("")
	ctx := runPipeline(os.Args[2], "", nil, nil, os.Stdout)
	if ctx.HasErrors() {
		printDiagnostics(ctx.Errors, cfg)
		os.Exit(1)
	}
	if result, ok := ctx.Result.(evaluator.Object); ok && result.Type() != evaluator.NIL_OBJ {
		fmt.Println(result.Inspect())
	}
	return true
}

func runFile(path string) {
	if !strings.HasSuffix(path, config.SourceFileExt) {
		fmt.Fprintf(os.Stderr, "Warning: %q does not have the %s extension\n", path, config.SourceFileExt)
	}

	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %s\n", err)
		os.Exit(1)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	cfg := loadConfigOrDefault(filepath.Dir(absPath))
	if !runSource(string(source), absPath, cfg) {
		os.Exit(1)
	}
}

// runSource executes one program through the full pipeline and reports
// diagnostics. It returns false when the program failed.
func runSource(source, filePath string, cfg *Config) bool {
	ctx := runPipeline(source, filePath, nil, nil, os.Stdout)
	if ctx.HasErrors() {
		printDiagnostics(ctx.Errors, cfg)
		return false
	}
	return true
}

// runPipeline runs lex, parse, analyze, evaluate over source. table and env
// may carry REPL state between inputs; nil means a fresh run.
func runPipeline(source, filePath string, table *symbols.SymbolTable, env *evaluator.Environment, out io.Writer) *pipeline.PipelineContext {
	ctx := &pipeline.PipelineContext{
		FilePath:   filePath,
		SourceCode: source,
		Out:        out,
	}
	if table != nil {
		ctx.SymbolTable = table
	}
	if env != nil {
		ctx.Env = env
	}

	return pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		&analyzer.SemanticAnalyzerProcessor{},
		&evaluator.EvaluatorProcessor{},
	).Run(ctx)
}

func loadConfigOrDefault(dir string) *Config {
	if dir == "" {
		if cwd, err := os.Getwd(); err == nil {
			dir = cwd
		}
	}
	cfg, err := LoadConfig(FindConfig(dir))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: ignoring broken config: %s\n", err)
		return DefaultConfig()
	}
	return cfg
}

const (
	ansiRed   = "\x1b[31m"
	ansiBold  = "\x1b[1m"
	ansiReset = "\x1b[0m"
)

func printDiagnostics(errs []*diagnostics.DiagnosticError, cfg *Config) {
	color := useColor(cfg)
	fmt.Fprintln(os.Stderr, "Processing failed with errors:")
	for _, err := range errs {
		if color {
			fmt.Fprintf(os.Stderr, "- %s%serror%s %s\n", ansiBold, ansiRed, ansiReset, err.Error())
		} else {
			fmt.Fprintf(os.Stderr, "- %s\n", err.Error())
		}
	}
}

func useColor(cfg *Config) bool {
	if cfg == nil {
		return false
	}
	switch cfg.Colors {
	case "always":
		return true
	case "never":
		return false
	}
	return isTerminal(os.Stderr)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
