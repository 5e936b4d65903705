package domain

// Config represents the minimal configuration loaded from tokenbench.yaml.
type Config struct {
	Defaults DefaultsConfig
	Paths    PathsConfig
	HTTP     HTTPConfig
}

type DefaultsConfig struct {
	// Profile names the provider profile used when no --profile flag is
	// given.
	Profile string

	// Model is the counting model identifier sent to the remote endpoint.
	Model string

	// Encoding is the local tokenizer encoding used when the model has no
	// known tokenizer match.
	Encoding string
}

type HTTPConfig struct {
	TimeoutSeconds int
}

type PathsConfig struct {
	PromptsDir  string
	ResultsFile string
	RunsDir     string
	ProfilesDir string
	TasksFile   string
}

// DefaultConfig provides sane defaults if tokenbench.yaml is partially
// missing.
func DefaultConfig() Config {
	return Config{
		Defaults: DefaultsConfig{
			Profile:  "anthropic",
			Model:    "claude-sonnet-4-5-20250929",
			Encoding: "o200k_base",
		},
		Paths: PathsConfig{
			PromptsDir:  "prompts",
			ResultsFile: "results/analysis.tl",
			RunsDir:     "runs",
			ProfilesDir: "profiles",
			TasksFile:   "tasks.yaml",
		},
		HTTP: HTTPConfig{
			TimeoutSeconds: 60,
		},
	}
}
