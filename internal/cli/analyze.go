package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"complexity/internal/analyzer"
	"complexity/internal/lexer"
	"complexity/internal/parser"
)

// runAnalyze implements `complexity analyze [--config FILE] [--json] FILE...`:
// parse each file with this tree's own scanner/parser, run it through an
// analyzer.Session, and print either a human-readable table or a JSON
// array of analyzer.DocumentResult, one per input file.
func runAnalyze(args []string) int {
	sess, rest, err := loadSession(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "complexity: %v\n", err)
		return 1
	}

	asJSON := false
	var files []string
	for _, a := range rest {
		if a == "--json" {
			asJSON = true
			continue
		}
		files = append(files, a)
	}

	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "complexity: analyze requires at least one FILE")
		return 1
	}

	ctx := context.Background()
	exit := 0

	// Parsing is cheap and sequential; the analyzer.AnalyzeBatch call
	// below is where concurrency across documents actually happens (spec
	// §5 "Parallelism across documents is permissible at the driver
	// level").
	var inputs []analyzer.BatchInput
	var ordered []string
	for _, path := range files {
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
		}

		inputs = append(inputs, analyzer.BatchInput{File: path, Program: program})
		ordered = append(ordered, path)
	}

	results, err := sess.AnalyzeBatch(ctx, inputs, analyzer.DefaultBatchConcurrency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "complexity: batch analysis: %v\n", err)
		return 1
	}

	if !asJSON {
		for i, result := range results {
			printDocumentResult(ordered[i], result)
		}
		return exit
	}

	var jsonOut []interface{}
	for i, result := range results {
		jsonOut = append(jsonOut, map[string]interface{}{
			"file":   ordered[i],
			"result": result,
		})
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(jsonOut); err != nil {
		fmt.Fprintf(os.Stderr, "complexity: encoding results: %v\n", err)
		return 1
	}

	return exit
}

// printDocumentResult renders one analyzer.DocumentResult as the plain
// text table the CLI shows by default (--json switches to structured
// output instead).
func printDocumentResult(path string, result analyzer.DocumentResult) {
	fmt.Printf("%s: %s\n", path, result.Aggregate)
	for _, m := range result.Methods {
		line := fmt.Sprintf("  %-24s %-14s confidence=%.2f", m.MethodName, m.TimeComplexity, m.Confidence)
		if m.SpaceComplexity != "" {
			line += fmt.Sprintf(" space=%s", m.SpaceComplexity)
		}
		if m.IsAmortized {
			line += " amortized"
		}
		if m.IsProbabilistic {
			line += " probabilistic"
		}
		if m.RequiresReview {
			line += fmt.Sprintf(" [review: %s]", m.ReviewReason)
		}
		fmt.Println(line)
	}
	for _, d := range result.Diagnostics {
		fmt.Printf("  diagnostic: %s\n", d.Error())
	}
	for _, name := range result.IncompleteRegions {
		fmt.Printf("  incomplete: %s\n", name)
	}
}
