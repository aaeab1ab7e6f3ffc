package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"newt/internal/evaluator"
	"newt/internal/lexer"
	"newt/internal/object"
	"newt/internal/parser"
	"newt/internal/validator"
)

const PROMPT = ">> "

// Start runs the read-eval-print loop until in is exhausted or ctx is
// cancelled. Bindings persist across lines in one shared environment.
func Start(ctx context.Context, in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)
	env := object.NewEnvironment()

	for {
		if ctx.Err() != nil {
			return
		}

		fmt.Fprint(out, PROMPT)
		scanned := scanner.Scan()
		if !scanned {
			return
		}

		line := scanner.Text()
		l := lexer.New(line)
		p := parser.New(l)

		program := p.ParseProgram()
		if len(p.Errors()) != 0 {
			printParserErrors(out, p.Errors())
			continue
		}

		// Each line gets a fresh validator seeded with the builtins plus
		// every name bound on earlier lines, so cross-line references
		// resolve.
		v := validator.New(append(evaluator.BuiltinNames(), env.Names()...))
		if err := v.Validate(program); err != nil {
			fmt.Fprintf(out, "\t%s\n", err)
			continue
		}

		ev := evaluator.New(ctx)
		evaluated := ev.Eval(program, env)
		if evaluated != nil {
			io.WriteString(out, evaluated.Inspect())
			io.WriteString(out, "\n")
		}
	}
}

func printParserErrors(out io.Writer, errors []string) {
	io.WriteString(out, "parser errors:\n")
	for _, msg := range errors {
		io.WriteString(out, "\t"+msg+"\n")
	}
}
