package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/krishjag/tealeaf/internal/domain"
	"github.com/krishjag/tealeaf/internal/infra/analysisdoc"
	"github.com/krishjag/tealeaf/internal/infra/logger"
	"github.com/krishjag/tealeaf/internal/infra/promptdump"
	"github.com/krishjag/tealeaf/internal/infra/runstore"
	"github.com/krishjag/tealeaf/internal/infra/workspacefinder"
	"github.com/krishjag/tealeaf/internal/infra/yamlprofile"
	"github.com/krishjag/tealeaf/internal/infra/yamltasks"
	"github.com/krishjag/tealeaf/internal/ports"
)

type workspaceCtx struct {
	root string
	cfg  domain.Config

	prompts ports.PromptSource
	results ports.ResultsSource
	tasks   ports.TaskCatalog

	profiles       ports.ProfileLoader
	profileCatalog ports.ProfileCatalog

	store ports.ArtifactStore

	cleanup func()
}

// close flushes and closes the log file. Safe on a zero-value context.
func (ws *workspaceCtx) close() {
	if ws.cleanup != nil {
		ws.cleanup()
	}
}

func loadWorkspace(workspaceFlag string) (*workspaceCtx, error) {
	root, err := resolveWorkspaceRoot(workspaceFlag)
	if err != nil {
		return nil, err
	}

	cfg, err := workspacefinder.LoadConfig(root)
	if err != nil {
		return nil, err
	}

	// Logging must be live before the adapters below capture the global
	// logger.
	cleanup := setupLogging(root)

	// Credentials may live in the workspace .env; absence is fine, the
	// per-command checks report missing keys with a remedy.
	_ = godotenv.Load(filepath.Join(root, ".env"))

	profileLoader := yamlprofile.NewLoader(
		root,
		yamlprofile.WithProfilesDir(cfg.Paths.ProfilesDir),
	)

	store := runstore.NewJSONStore(root, cfg, runstore.WithIndex(true))

	return &workspaceCtx{
		root:           root,
		cfg:            cfg,
		prompts:        promptdump.NewSource(promptdump.WithLogger(logger.L())),
		results:        analysisdoc.NewParser(analysisdoc.WithLogger(logger.L())),
		tasks:          yamltasks.NewLoader(),
		profiles:       profileLoader,
		profileCatalog: profileLoader,
		store:          store,
		cleanup:        cleanup,
	}, nil
}

// path resolves a config-relative path against the workspace root. Absolute
// inputs pass through untouched so flags can point anywhere.
func (ws *workspaceCtx) path(p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(ws.root, p)
}

func resolveWorkspaceRoot(workspaceFlag string) (string, error) {
	w := strings.TrimSpace(workspaceFlag)
	if w != "" {
		abs, err := filepath.Abs(w)
		if err != nil {
			return "", fmt.Errorf("invalid workspace path: %w", err)
		}
		return abs, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	locator := workspacefinder.NewFinder()
	root, err := locator.FindRoot(wd)
	if err != nil {
		return "", err
	}
	return root, nil
}

// resolveProfile loads the named profile (flag wins over the config default)
// and fills its blanks from the config.
func resolveProfile(ws *workspaceCtx, flagValue string) (domain.Profile, error) {
	name := strings.TrimSpace(flagValue)
	if name == "" {
		name = ws.cfg.Defaults.Profile
	}
	p, err := ws.profiles.LoadProfile(name)
	if err != nil {
		return domain.Profile{}, err
	}
	return p.WithDefaults(ws.cfg), nil
}

// requireAPIKey reads the profile's credential variable. Counting commands
// call this before any work so a missing key fails fast instead of after a
// partial batch.
func requireAPIKey(p domain.Profile) (string, error) {
	key := strings.TrimSpace(os.Getenv(p.APIKeyEnv))
	if key == "" {
		return "", &domain.OpError{
			Op:   "cli.credentials",
			Kind: domain.KindMissingKey,
			Hint: fmt.Sprintf("export %s or add it to the workspace .env file", p.APIKeyEnv),
			Err:  fmt.Errorf("%s is not set", p.APIKeyEnv),
		}
	}
	return key, nil
}

// resolveTaskFilter applies the flag > manifest precedence for the task
// filter. IDs are matched case-insensitively, so normalize once here.
func resolveTaskFilter(ws *workspaceCtx, flagValue []string) ([]string, error) {
	if len(flagValue) > 0 {
		out := make([]string, 0, len(flagValue))
		for _, id := range flagValue {
			id = strings.ToUpper(strings.TrimSpace(id))
			if id != "" {
				out = append(out, id)
			}
		}
		return out, nil
	}

	manifest, err := ws.tasks.LoadTasks(ws.path(ws.cfg.Paths.TasksFile))
	if err != nil {
		return nil, err
	}
	return manifest.IDs(), nil
}
