package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/krishjag/tealeaf/internal/report"
	"github.com/krishjag/tealeaf/internal/usecase"
)

func reportCmd() *cobra.Command {
	var workspace string
	var resultsFile string
	var tasksFile string
	var asJSON bool

	c := &cobra.Command{
		Use:   "report",
		Short: "Roll the results document up by domain and format",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(workspace)
			if err != nil {
				return err
			}
			defer ws.close()

			results := resultsFile
			if results == "" {
				results = ws.cfg.Paths.ResultsFile
			}
			manifest := tasksFile
			if manifest == "" {
				manifest = ws.cfg.Paths.TasksFile
			}

			uc := usecase.NewReportDomains(ws.results, ws.tasks)
			rep, err := uc.Execute(cmd.Context(), usecase.ReportRequest{
				ResultsFile: ws.path(results),
				TasksFile:   ws.path(manifest),
			})
			if err != nil {
				return err
			}

			if asJSON {
				return printJSON(os.Stdout, rep)
			}
			fmt.Print(report.Domains(rep.Rollups, rep.Formats))
			return nil
		},
	}

	c.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	c.Flags().StringVar(&resultsFile, "results", "", "Results document (defaults to the configured path)")
	c.Flags().StringVar(&tasksFile, "tasks-file", "", "Task manifest with domain overrides (defaults to the configured path)")
	c.Flags().BoolVar(&asJSON, "json", false, "Emit rollups as JSON instead of tables")
	return c
}
