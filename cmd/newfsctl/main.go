// Command newfsctl is a reference CLI driving the NewFS core directly
// against a device image file: it is a minimal, single-shot "daemon"
// useful for scripting and tests, not a POSIX dispatch loop (§4.10).
//
// Grounded in the teacher's cmd/sqfs, rebuilt on spf13/cobra the way the
// rest of the pack's CLIs (e.g. distr1-distri) structure subcommands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "newfsctl",
		Short: "Inspect and manipulate a NewFS device image",
	}

	root.AddCommand(
		formatCmd(),
		infoCmd(),
		mkdirCmd(),
		touchCmd(),
		lsCmd(),
		catCmd(),
		writeCmd(),
		fsckCmd(),
		snapshotCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
