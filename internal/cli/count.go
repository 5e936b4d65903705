package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/krishjag/tealeaf/internal/domain"
	"github.com/krishjag/tealeaf/internal/infra/anthropiccounter"
	"github.com/krishjag/tealeaf/internal/infra/httpclient"
	"github.com/krishjag/tealeaf/internal/infra/logger"
	"github.com/krishjag/tealeaf/internal/ports"
	"github.com/krishjag/tealeaf/internal/report"
	"github.com/krishjag/tealeaf/internal/usecase"
)

func countCmd() *cobra.Command {
	var workspace string
	var promptsDir string
	var profile string
	var model string
	var tasks []string
	var noSave bool
	var asJSON bool

	c := &cobra.Command{
		Use:   "count",
		Short: "Count every dumped prompt via the provider's counting endpoint",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(workspace)
			if err != nil {
				return err
			}
			defer ws.close()

			prof, err := resolveProfile(ws, profile)
			if err != nil {
				return err
			}
			key, err := requireAPIKey(prof)
			if err != nil {
				return err
			}

			taskIDs, err := resolveTaskFilter(ws, tasks)
			if err != nil {
				return err
			}

			counter := anthropiccounter.New(key,
				anthropiccounter.WithHTTPClient(httpclient.New(httpConfig(ws.cfg))),
			)

			var store ports.ArtifactStore
			if !noSave {
				store = ws.store
			}

			uc := usecase.NewCountPrompts(ws.prompts, counter,
				usecase.WithCountStore(store),
				usecase.WithCountLogger(logger.L()),
			)

			dir := promptsDir
			if dir == "" {
				dir = ws.cfg.Paths.PromptsDir
			}

			run, runID, err := uc.Execute(cmd.Context(), usecase.CountRequest{
				PromptsDir: ws.path(dir),
				Provider:   prof.Provider,
				Model:      domain.ResolveModel(model, prof, ws.cfg),
				TaskIDs:    taskIDs,
			})
			if err != nil {
				return err
			}

			if asJSON {
				return printJSON(os.Stdout, map[string]any{
					"run_id": runID,
					"run":    run,
				})
			}

			fmt.Print(report.CountSummary(run))
			if runID != "" {
				fmt.Printf("\nSaved run: %s\n", runID)
			}
			return nil
		},
	}

	c.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	c.Flags().StringVar(&promptsDir, "prompts-dir", "", "Prompt dump directory (defaults to the configured path)")
	c.Flags().StringVarP(&profile, "profile", "p", "", "Provider profile name (defaults to the configured profile)")
	c.Flags().StringVarP(&model, "model", "m", "", "Counting model (defaults to profile, then config)")
	c.Flags().StringSliceVarP(&tasks, "tasks", "t", nil, "Task IDs to count (defaults to the manifest, then every dumped task)")
	c.Flags().BoolVar(&noSave, "no-save", false, "Do not save a run artifact under runs/")
	c.Flags().BoolVar(&asJSON, "json", false, "Emit the run as JSON instead of tables")
	return c
}

func httpConfig(cfg domain.Config) httpclient.Config {
	hc := httpclient.DefaultConfig()
	if cfg.HTTP.TimeoutSeconds > 0 {
		hc.Timeout = time.Duration(cfg.HTTP.TimeoutSeconds) * time.Second
	}
	return hc
}

func printJSON(w io.Writer, payload any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
