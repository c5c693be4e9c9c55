// main is the command-line entrypoint for periscan.
package main

import (
	"fmt"
	"os"

	"github.com/periscan/periscan/cmd"
	"github.com/periscan/periscan/internal/runstore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// run executes the CLI and tears down shared state. Kept separate from main
// so the deferred cleanup still fires on a command error.
func run() error {
	defer runstore.CloseStore()
	defer func() {
		if err := cmd.StopProfiling(); err != nil {
			fmt.Fprintln(os.Stderr, "Warn stopping profiler:", err)
		}
	}()
	return cmd.Execute()
}
