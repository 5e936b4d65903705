package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/krishjag/tealeaf/internal/domain"
	"github.com/krishjag/tealeaf/internal/infra/logger"
	"github.com/krishjag/tealeaf/internal/infra/tiktokencounter"
	"github.com/krishjag/tealeaf/internal/report"
	"github.com/krishjag/tealeaf/internal/usecase"
)

func validateCmd() *cobra.Command {
	var workspace string
	var promptsDir string
	var resultsFile string
	var profile string
	var model string
	var encoding string
	var tasks []string
	var asJSON bool

	c := &cobra.Command{
		Use:   "validate",
		Short: "Split prompts into instruction and data tokens and cross-check reported counts (offline)",
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

			taskIDs, err := resolveTaskFilter(ws, tasks)
			if err != nil {
				return err
			}

			fallback := encoding
			if fallback == "" {
				fallback = prof.Encoding
			}
			local, err := tiktokencounter.ForModel(domain.ResolveModel(model, prof, ws.cfg), fallback)
			if err != nil {
				return err
			}

			uc := usecase.NewValidateCounts(ws.prompts, ws.results, local,
				usecase.WithValidateLogger(logger.L()),
			)

			dir := promptsDir
			if dir == "" {
				dir = ws.cfg.Paths.PromptsDir
			}
			results := resultsFile
			if results == "" {
				results = ws.cfg.Paths.ResultsFile
			}

			rep, err := uc.Execute(cmd.Context(), usecase.ValidateRequest{
				PromptsDir:  ws.path(dir),
				ResultsFile: ws.path(results),
				Provider:    prof.Provider,
				TaskIDs:     taskIDs,
			})
			if err != nil {
				return err
			}

			if asJSON {
				return printJSON(os.Stdout, map[string]any{
					"encoding": local.EncodingName(),
					"report":   rep,
				})
			}

			fmt.Print(report.Validation(rep, local.EncodingName()))

			if rep.Overall == domain.VerdictFail {
				return fmt.Errorf("cross-validation failed")
			}
			return nil
		},
	}

	c.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	c.Flags().StringVar(&promptsDir, "prompts-dir", "", "Prompt dump directory (defaults to the configured path)")
	c.Flags().StringVar(&resultsFile, "results", "", "Results document (defaults to the configured path)")
	c.Flags().StringVarP(&profile, "profile", "p", "", "Provider profile name (defaults to the configured profile)")
	c.Flags().StringVarP(&model, "model", "m", "", "Model used to pick the local tokenizer")
	c.Flags().StringVar(&encoding, "encoding", "", "Local tokenizer encoding override (e.g. o200k_base)")
	c.Flags().StringSliceVarP(&tasks, "tasks", "t", nil, "Task IDs to validate (defaults to the manifest, then every dumped task)")
	c.Flags().BoolVar(&asJSON, "json", false, "Emit the report as JSON instead of tables")
	return c
}
