package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/krishjag/tealeaf/internal/infra/fsworkspace"
	"github.com/krishjag/tealeaf/internal/usecase"
)

func workspaceCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "workspace",
		Short: "Manage the tokenbench workspace",
	}

	c.AddCommand(initCmd())
	return c
}

func initCmd() *cobra.Command {
	var path string
	var force bool

	c := &cobra.Command{
		Use:   "init",
		Short: "Scaffold a workspace (config, profiles, prompt and run directories)",
		RunE: func(_ *cobra.Command, _ []string) error {
			abs, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("invalid path: %w", err)
			}

			uc := usecase.NewInitWorkspace(fsworkspace.NewInitializer())
			if err := uc.Execute(abs, force); err != nil {
				return err
			}

			fmt.Printf("Workspace ready at %s\n", abs)
			fmt.Println("Next: drop prompt dumps under prompts/ and run `tokenbench count`.")
			return nil
		},
	}

	c.Flags().StringVar(&path, "path", ".", "Directory to scaffold")
	c.Flags().BoolVar(&force, "force", false, "Overwrite existing template files")
	return c
}
