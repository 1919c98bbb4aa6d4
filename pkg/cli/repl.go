package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/funvibe/gwn/internal/analyzer"
	"github.com/funvibe/gwn/internal/evaluator"
	"github.com/funvibe/gwn/internal/lexer"
	"github.com/funvibe/gwn/internal/parser"
	"github.com/funvibe/gwn/internal/pipeline"
	"github.com/funvibe/gwn/internal/symbols"
)

const defaultPrompt = "gwn> "

// RunREPL reads inputs from in and evaluates them against one persistent
// symbol table and environment, so constants declared earlier stay visible.
func RunREPL(in io.Reader, out io.Writer, cfg *Config) {
	prompt := cfg.Prompt
	if prompt == "" {
		prompt = defaultPrompt
	}

	table := symbols.New()
	analyzer.RegisterBuiltins(table)
	env := evaluator.NewEnvironment()
	evaluator.RegisterBuiltins(env)

	var history *History
	if cfg.History.Enabled && cfg.History.Path != "" {
		h, err := OpenHistory(cfg.History.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: history disabled: %s\n", err)
		} else {
			history = h
			defer history.Close()
		}
	}

	fmt.Fprintln(out, "gwn repl. :quit to leave, :type <expr> for types.")
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, prompt)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ":") {
			if replCommand(line, table, out, history) {
				return
			}
			continue
		}

		if history != nil {
			if err := history.Append(line); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: history write failed: %s\n", err)
			}
		}

		ctx := runPipeline(line, "", table, env, out)
		if ctx.HasErrors() {
			for _, err := range ctx.Errors {
				fmt.Fprintf(out, "- %s\n", err.Error())
			}
			continue
		}
		if result, ok := ctx.Result.(evaluator.Object); ok && result.Type() != evaluator.NIL_OBJ {
			fmt.Fprintln(out, result.Inspect())
		}
	}
}

// replCommand handles the `:` commands. It returns true when the REPL should
// exit.
func replCommand(line string, table *symbols.SymbolTable, out io.Writer, history *History) bool {
	cmd, rest, _ := strings.Cut(line, " ")
	switch cmd {
	case ":quit", ":q", ":exit":
		return true

	case ":type", ":t":
		if strings.TrimSpace(rest) == "" {
			fmt.Fprintln(out, "usage: :type <expr>")
			return false
		}
		showType(rest, table, out)
		return false

	case ":history":
		if history == nil {
			fmt.Fprintln(out, "history is disabled")
			return false
		}
		entries, err := history.Recent(20)
		if err != nil {
			fmt.Fprintf(out, "history error: %s\n", err)
			return false
		}
		for _, entry := range entries {
			fmt.Fprintf(out, "  %s\n", entry)
		}
		return false
	}

	fmt.Fprintf(out, "unknown command %q\n", cmd)
	return false
}

// showType infers the type of an expression without evaluating it. The
// enclosed scope keeps `:type x = ...` from polluting the session table.
func showType(source string, table *symbols.SymbolTable, out io.Writer) {
	ctx := &pipeline.PipelineContext{
		SourceCode:  source,
		SymbolTable: symbols.NewEnclosed(table),
	}
	pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		&analyzer.SemanticAnalyzerProcessor{},
	).Run(ctx)

	if ctx.HasErrors() {
		for _, err := range ctx.Errors {
			fmt.Fprintf(out, "- %s\n", err.Error())
		}
		return
	}
	fmt.Fprintln(out, ctx.Scheme)
}
