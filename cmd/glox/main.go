// Command glox is a tree-walking interpreter for Lox.
package main

import (
	"os"

	"github.com/cwbudde/glox/cmd/glox/cmd"
)

func main() {
	err := cmd.Execute()
	os.Exit(cmd.ExitCode(err))
}
