package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/krishjag/tealeaf/internal/domain"
)

func tasksCmd() *cobra.Command {
	var workspace string
	var promptsDir string

	c := &cobra.Command{
		Use:   "tasks",
		Short: "List dumped tasks with their domains and available formats",
		RunE: func(_ *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(workspace)
			if err != nil {
				return err
			}
			defer ws.close()

			dir := promptsDir
			if dir == "" {
				dir = ws.cfg.Paths.PromptsDir
			}

			sets, err := ws.prompts.ScanPrompts(ws.path(dir), nil)
			if err != nil {
				return err
			}
			if len(sets) == 0 {
				fmt.Println("(no dumped prompts found)")
				return nil
			}

			manifest, err := ws.tasks.LoadTasks(ws.path(ws.cfg.Paths.TasksFile))
			if err != nil {
				return err
			}
			overrides := manifest.DomainOverrides()

			fmt.Printf("Workspace: %s\n\n", ws.root)
			for _, set := range sets {
				dom := overrides[set.TaskID]
				if dom == "" {
					dom = domain.TaskDomain(set.TaskID)
				}

				var formats []string
				for _, f := range domain.KnownFormats() {
					if _, ok := set.Prompts[f]; ok {
						formats = append(formats, strings.ToUpper(string(f)))
					}
				}
				fmt.Printf("- %s  %s  [%s]\n", set.TaskID, dom, strings.Join(formats, ", "))
			}
			return nil
		},
	}

	c.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	c.Flags().StringVar(&promptsDir, "prompts-dir", "", "Prompt dump directory (defaults to the configured path)")
	return c
}
