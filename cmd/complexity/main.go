// Command complexity is the process entry point: it forwards os.Args to
// internal/cli and exits with the returned status code, mirroring the
// teacher's own cmd/<tool>/main.go split between process wiring and
// subcommand logic.
package main

import (
	"os"

	"complexity/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
