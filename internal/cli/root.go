package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/krishjag/tealeaf/internal/domain"
	"github.com/krishjag/tealeaf/internal/infra/logger"
)

// verbose is bound to the persistent --verbose flag; commands consult it
// when wiring the logger.
var verbose bool

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if hint := domain.HintOf(err); hint != "" {
			fmt.Fprintf(os.Stderr, "Hint: %s\n", hint)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "tokenbench",
		Short:         "tokenbench — token accounting for prompt format comparisons",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable debug logging to runs/tokenbench.log")

	cmd.AddCommand(
		countCmd(),
		validateCmd(),
		reportCmd(),
		tasksCmd(),
		profilesCmd(),
		runsCmd(),
		browseCmd(),
		workspaceCmd(),
		versionCmd(),
	)
	return cmd
}

// setupLogging wires the file logger once a workspace root is known. The
// returned cleanup is a no-op when setup fails; commands still run, just
// without a log file.
func setupLogging(root string) func() {
	cleanup, err := logger.Setup(logger.Config{Root: root, Verbose: verbose})
	if err != nil || cleanup == nil {
		return func() {}
	}
	return func() { _ = cleanup() }
}
