package cli

import (
	"github.com/spf13/cobra"

	"github.com/krishjag/tealeaf/internal/infra/logger"
	"github.com/krishjag/tealeaf/internal/ui/tui"
)

func browseCmd() *cobra.Command {
	var workspace string

	c := &cobra.Command{
		Use:   "browse",
		Short: "Browse saved count runs interactively",
		RunE: func(_ *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(workspace)
			if err != nil {
				return err
			}
			defer ws.close()

			return tui.Run(tui.Deps{
				Store:  ws.store,
				Logger: logger.L(),
				Debug:  verbose,
			})
		},
	}

	c.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	return c
}
