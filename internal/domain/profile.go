package domain

// Profile defines the counting setup for one provider. Profiles live as YAML
// files under the workspace's profiles directory; unset fields fall back to
// the config defaults at resolution time.
type Profile struct {
	Name string

	// Provider is the counting backend identifier (e.g. "anthropic").
	Provider string

	// Model is sent to the remote counting endpoint.
	Model string

	// APIKeyEnv names the environment variable holding the credential.
	APIKeyEnv string

	// Encoding selects the local tokenizer vocabulary for this provider's
	// models when the model itself has no known match.
	Encoding string
}

// WithDefaults returns a copy of p with empty fields filled from cfg.
// Explicit profile values always win over config defaults.
func (p Profile) WithDefaults(cfg Config) Profile {
	out := p
	if out.Provider == "" {
		out.Provider = "anthropic"
	}
	if out.Model == "" {
		out.Model = cfg.Defaults.Model
	}
	if out.APIKeyEnv == "" {
		out.APIKeyEnv = "ANTHROPIC_API_KEY"
	}
	if out.Encoding == "" {
		out.Encoding = cfg.Defaults.Encoding
	}
	return out
}

// ResolveModel applies the flag > profile > config precedence for the model
// identifier used by a run.
func ResolveModel(flagValue string, p Profile, cfg Config) string {
	if flagValue != "" {
		return flagValue
	}
	if p.Model != "" {
		return p.Model
	}
	return cfg.Defaults.Model
}
