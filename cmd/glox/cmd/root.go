// Package cmd wires the glox CLI: a single root command implementing
// spec §6's exact contract (REPL / run-file / usage), built on cobra the
// way go-dws structures its own CLI.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// exitError carries the process exit code spec §6 mandates (0/64/65/70)
// through cobra's error-returning RunE without reaching for os.Exit deep
// inside the command tree.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	return ""
}

func (e *exitError) Unwrap() error { return e.err }

func newExitError(code int, err error) *exitError {
	return &exitError{code: code, err: err}
}

// ExitCode extracts the process exit code an Execute() error should map
// to: 0 if err is nil, the code carried by an *exitError, or 1 for
// anything else (cobra's own flag-parsing failures, etc.).
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var ee *exitError
	if asExitError(err, &ee) {
		return ee.code
	}
	return 1
}

func asExitError(err error, target **exitError) bool {
	for err != nil {
		if ee, ok := err.(*exitError); ok {
			*target = ee
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

var dumpAST bool

var rootCmd = &cobra.Command{
	Use:   "glox [script]",
	Short: "Lox interpreter",
	Long: `glox is a tree-walking interpreter for Lox, the language from
Crafting Interpreters.

Run with no arguments to start an interactive REPL, or pass a single
script path to run it once.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		switch len(args) {
		case 0:
			return runREPL(cmd.OutOrStdout(), cmd.ErrOrStderr())
		case 1:
			return runFile(args[0], dumpAST, cmd.OutOrStdout(), cmd.ErrOrStderr())
		default:
			fmt.Fprintf(cmd.ErrOrStderr(), "Usage: %s\n", cmd.Use)
			return newExitError(64, fmt.Errorf("usage error"))
		}
	},
}

// Execute runs the root command and returns an error ExitCode can map to
// a process exit status.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "print the parsed statement tree before execution")
}
