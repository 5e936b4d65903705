package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/krishjag/tealeaf/internal/report"
)

func runsCmd() *cobra.Command {
	var workspace string

	c := &cobra.Command{
		Use:   "runs",
		Short: "List saved count runs (newest first)",
		RunE: func(_ *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(workspace)
			if err != nil {
				return err
			}
			defer ws.close()

			refs, err := ws.store.ListRuns()
			if err != nil {
				return err
			}
			if len(refs) == 0 {
				fmt.Println("(no saved runs)")
				return nil
			}

			for _, r := range refs {
				fmt.Printf("- %s  %s  %s\n", r.ID, r.Model, r.StartedAt.UTC().Format(time.RFC3339))
			}
			return nil
		},
	}

	c.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")

	c.AddCommand(runsShowCmd())
	return c
}

func runsShowCmd() *cobra.Command {
	var workspace string
	var asJSON bool

	c := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Render a saved count run",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ws, err := loadWorkspace(workspace)
			if err != nil {
				return err
			}
			defer ws.close()

			run, err := ws.store.LoadRun(args[0])
			if err != nil {
				return err
			}

			if asJSON {
				return printJSON(os.Stdout, run)
			}
			fmt.Print(report.CountSummary(run))
			return nil
		},
	}

	c.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	c.Flags().BoolVar(&asJSON, "json", false, "Emit the run as JSON instead of tables")
	return c
}
