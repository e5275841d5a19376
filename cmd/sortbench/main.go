// Command sortbench is the instrumented sort/search workbench.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/sortbench/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
