// Package yamlprofile loads provider profiles from YAML files under the
// workspace's profiles directory.
package yamlprofile

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/krishjag/tealeaf/internal/domain"
	"github.com/krishjag/tealeaf/internal/ports"
)

type Loader struct {
	rootDir     string
	profilesDir string
}

type Option func(*Loader)

func WithProfilesDir(dir string) Option {
	return func(l *Loader) { l.profilesDir = dir }
}

func NewLoader(root string, opts ...Option) *Loader {
	l := &Loader{
		rootDir:     root,
		profilesDir: "profiles",
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

var _ ports.ProfileLoader = (*Loader)(nil)
var _ ports.ProfileCatalog = (*Loader)(nil)

// LoadProfile accepts either a profile name (e.g. "anthropic") or a full
// path to a YAML file.
func (l *Loader) LoadProfile(nameOrPath string) (domain.Profile, error) {
	var path string
	var name string

	if strings.HasSuffix(nameOrPath, ".yaml") || strings.HasSuffix(nameOrPath, ".yml") ||
		strings.Contains(nameOrPath, string(filepath.Separator)) {
		path = filepath.Clean(nameOrPath)
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	} else {
		name = nameOrPath
		path = filepath.Join(l.rootDir, l.profilesDir, name+".yaml")
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return domain.Profile{}, &domain.OpError{
			Op:   "yamlprofile.load",
			Kind: domain.KindMissingInput,
			Path: path,
			Hint: "list available profiles with `tokenbench profiles`",
			Err:  err,
		}
	}

	var y yamlProfile
	if err := yaml.Unmarshal(b, &y); err != nil {
		return domain.Profile{}, &domain.OpError{
			Op:   "yamlprofile.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	p := domain.Profile{
		Name:      y.Name,
		Provider:  y.Provider,
		Model:     y.Model,
		APIKeyEnv: y.APIKeyEnv,
		Encoding:  y.Encoding,
	}
	if strings.TrimSpace(p.Name) == "" {
		p.Name = name
	}
	return p, nil
}

// ListProfiles enumerates the profile files under the workspace root.
func (l *Loader) ListProfiles(root string) ([]domain.ProfileRef, error) {
	dir := filepath.Join(root, l.profilesDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, &domain.OpError{
			Op:   "yamlprofile.list",
			Kind: domain.KindIO,
			Path: dir,
			Err:  err,
		}
	}

	var refs []domain.ProfileRef
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || (!strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml")) {
			continue
		}

		p := filepath.Join(dir, name)
		n := strings.TrimSuffix(name, filepath.Ext(name))
		if loaded, err := l.LoadProfile(p); err == nil && strings.TrimSpace(loaded.Name) != "" {
			n = loaded.Name
		}

		refs = append(refs, domain.ProfileRef{Name: n, Path: p})
	}

	sort.Slice(refs, func(i, j int) bool { return refs[i].Name < refs[j].Name })
	return refs, nil
}

type yamlProfile struct {
	Name      string `yaml:"name"`
	Provider  string `yaml:"provider"`
	Model     string `yaml:"model"`
	APIKeyEnv string `yaml:"api_key_env"`
	Encoding  string `yaml:"encoding"`
}
