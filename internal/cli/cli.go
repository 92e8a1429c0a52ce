// Package cli implements the command-line front end: manual os.Args
// dispatch by subcommand, the same shape the project's own command-line
// entry point uses rather than a flag-parsing library, since the
// surface here is a handful of subcommands each taking a short,
// position-driven argument list.
package cli

import (
	"fmt"
	"os"

	"complexity/internal/analyzer"
	"complexity/internal/config"
)

const version = "0.1.0"

// commandAliases mirrors the project's own short-form aliases for its
// subcommands.
var commandAliases = map[string]string{
	"a": "analyze",
	"s": "serve",
	"f": "fmt",
	"v": "version",
	"h": "help",
}

// Run dispatches args (os.Args[1:]) to a subcommand and returns the
// process exit code.
func Run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 1
	}

	cmd := args[0]
	if alias, ok := commandAliases[cmd]; ok {
		cmd = alias
	}

	switch cmd {
	case "--help", "-h", "help":
		printUsage()
		return 0
	case "--version", "-v", "version":
		fmt.Printf("complexity %s\n", version)
		return 0
	case "analyze":
		return runAnalyze(args[1:])
	case "serve":
		return runServe(args[1:])
	case "fmt":
		return runFmt(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", cmd)
		printUsage()
		return 1
	}
}

func printUsage() {
	fmt.Println(`complexity - static asymptotic complexity analysis

Usage:
  complexity analyze [--config FILE] [--json] FILE...
  complexity serve [--config FILE]
  complexity fmt FILE...
  complexity version
  complexity help

Commands:
  analyze    Analyze one or more source files and report Big-O bounds
  serve      Run the JSON-RPC analysis server over stdio
  fmt        Print the canonical formatting of one or more source files
  version    Print the version
  help       Show this help`)
}

// loadSession builds an analyzer.Session from an optional --config flag,
// consuming it (and its value) out of args and returning the remainder.
func loadSession(args []string) (*analyzer.Session, []string, error) {
	configPath := ""
	var rest []string
	for i := 0; i < len(args); i++ {
		if args[i] == "--config" && i+1 < len(args) {
			configPath = args[i+1]
			i++
			continue
		}
		rest = append(rest, args[i])
	}

	opts, oracleURL, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	sess := analyzer.NewSession(opts)
	if oracleURL != "" {
		sess.Oracle = newOracleClient(oracleURL)
	}
	return sess, rest, nil
}

func runServe(args []string) int {
	sess, _, err := loadSession(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "complexity: %v\n", err)
		return 1
	}
	return serve(sess)
}
