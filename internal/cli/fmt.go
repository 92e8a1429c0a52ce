package cli

import (
	"fmt"
	"os"

	"complexity/internal/formatter"
	"complexity/internal/lexer"
	"complexity/internal/parser"
)

// runFmt implements `complexity fmt FILE...`: reparses each file and
// prints the formatter's canonical rendering to stdout, the same
// round-trip a source pretty-printer gives an editor's format-on-save.
// It does not rewrite files in place — a caller wanting that pipes the
// output back to the path itself.
func runFmt(args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "complexity: fmt requires at least one FILE")
		return 1
	}

	exit := 0
	for _, path := range args {
		source, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "complexity: %s: %v\n", path, err)
			exit = 1
			continue
		}

		scanner := lexer.NewScannerWithFile(string(source), path)
		tokens := scanner.ScanTokens()
		p := parser.NewParserWithSource(tokens, string(source), path)
		program := p.Parse()
		for _, perr := range p.Errors {
			fmt.Fprintf(os.Stderr, "complexity: %s: %v\n", path, perr)
			exit = 1
		}

		f := formatter.NewFormatter()
		fmt.Print(f.Format(program))
	}
	return exit
}
