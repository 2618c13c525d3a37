// Command manual browses, searches and maintains the help manual from the terminal.
package main

import (
	"os"

	"github.com/p-n-ai/pai-manual/cmd/manual/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
