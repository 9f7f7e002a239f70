package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Exit statuses. Zero is success; violations and fatal errors are kept
// distinct so CI can tell "the docs are broken" from "the check could not
// run".
const (
	exitViolations = 2
	exitFatal      = 1
)

// NewRootCmd creates the root command for doclink.
// Invoking doclink with no arguments runs the check with defaults against
// the docs directory, so the bare binary works as a CI step.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doclink",
		Short: "Check documentation for broken internal links",
		Long: `doclink validates that a documentation directory's internal hyperlinks and
resource references (href/src attribute values) point to files that exist
on disk.

Run with no arguments it checks the relative docs directory and exits with
status 0 when every internal target exists, or status 2 listing every
broken reference. External references (http, mailto:, #, data:) are never
checked.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          runDefaultCheck,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewCheckCmd())
	cmd.AddCommand(NewCompareCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command and maps its outcome to the process exit
// status: 0 success, 2 violations found (the report was already printed),
// 1 anything fatal.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		if errors.Is(err, errViolationsFound) {
			os.Exit(exitViolations)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitFatal)
	}
}
