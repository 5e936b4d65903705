package workspacefinder

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/krishjag/tealeaf/internal/domain"
)

// LoadConfig loads tokenbench.yaml from the workspace root and applies it on
// top of the defaults. A missing file is fine: defaults apply unchanged.
func LoadConfig(root string) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	path := filepath.Join(root, ConfigFileName)
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindIO,
			Path: path,
			Err:  err,
		}
	}

	var y yamlConfig
	if err := yaml.Unmarshal(b, &y); err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	// Apply parsed values on top of defaults.
	tb := y.Tokenbench
	if tb.Defaults.Profile != "" {
		cfg.Defaults.Profile = tb.Defaults.Profile
	}
	if tb.Defaults.Model != "" {
		cfg.Defaults.Model = tb.Defaults.Model
	}
	if tb.Defaults.Encoding != "" {
		cfg.Defaults.Encoding = tb.Defaults.Encoding
	}
	if tb.Paths.PromptsDir != "" {
		cfg.Paths.PromptsDir = tb.Paths.PromptsDir
	}
	if tb.Paths.ResultsFile != "" {
		cfg.Paths.ResultsFile = tb.Paths.ResultsFile
	}
	if tb.Paths.RunsDir != "" {
		cfg.Paths.RunsDir = tb.Paths.RunsDir
	}
	if tb.Paths.ProfilesDir != "" {
		cfg.Paths.ProfilesDir = tb.Paths.ProfilesDir
	}
	if tb.Paths.TasksFile != "" {
		cfg.Paths.TasksFile = tb.Paths.TasksFile
	}
	if tb.HTTP.TimeoutSeconds != nil && *tb.HTTP.TimeoutSeconds > 0 {
		cfg.HTTP.TimeoutSeconds = *tb.HTTP.TimeoutSeconds
	}

	return cfg, nil
}

type yamlConfig struct {
	Tokenbench struct {
		Defaults struct {
			Profile  string `yaml:"profile"`
			Model    string `yaml:"model"`
			Encoding string `yaml:"encoding"`
		} `yaml:"defaults"`

		Paths struct {
			PromptsDir  string `yaml:"prompts_dir"`
			ResultsFile string `yaml:"results_file"`
			RunsDir     string `yaml:"runs_dir"`
			ProfilesDir string `yaml:"profiles_dir"`
			TasksFile   string `yaml:"tasks_file"`
		} `yaml:"paths"`

		HTTP struct {
			TimeoutSeconds *int `yaml:"timeout_seconds"`
		} `yaml:"http"`
	} `yaml:"tokenbench"`
}
