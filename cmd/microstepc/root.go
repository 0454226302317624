// Command microstepc compiles a Statechart Tree into a Microstep Program:
// normalization (internal/normalize) followed by microstep synthesis
// (internal/synth). See compile.go for the shared pipeline used by both
// subcommands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "microstepc",
		Short:         "Compile Statechart Trees into Microstep Programs",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newCompileCommand())
	root.AddCommand(newWatchCommand())
	return root
}
