package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

func profilesCmd() *cobra.Command {
	var workspace string

	c := &cobra.Command{
		Use:   "profiles",
		Short: "List provider profiles in the workspace",
		RunE: func(_ *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(workspace)
			if err != nil {
				return err
			}
			defer ws.close()

			refs, err := ws.profileCatalog.ListProfiles(ws.root)
			if err != nil {
				return err
			}
			if len(refs) == 0 {
				fmt.Println("(no profiles found)")
				return nil
			}

			fmt.Printf("Workspace: %s\n", ws.root)
			fmt.Printf("Default:   %s\n\n", ws.cfg.Defaults.Profile)

			for _, r := range refs {
				rel, _ := filepath.Rel(ws.root, r.Path)
				fmt.Printf("- %s  (%s)\n", r.Name, rel)
			}
			return nil
		},
	}

	c.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	return c
}
