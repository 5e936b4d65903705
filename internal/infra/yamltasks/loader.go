// Package yamltasks loads the optional task manifest. A manifest fixes the
// task filter and display order of a run; without one, runs fall back to the
// sorted dump-directory listing.
package yamltasks

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/krishjag/tealeaf/internal/domain"
	"github.com/krishjag/tealeaf/internal/ports"
)

type Loader struct{}

func NewLoader() *Loader {
	return &Loader{}
}

var _ ports.TaskCatalog = (*Loader)(nil)

// LoadTasks reads a manifest. A missing file yields an empty manifest and no
// error: the manifest is optional by contract. Entries may be plain task-ID
// strings or mappings with an id and an optional domain override.
func (l *Loader) LoadTasks(path string) (domain.TaskManifest, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.TaskManifest{}, nil
		}
		return domain.TaskManifest{}, &domain.OpError{
			Op:   "yamltasks.load",
			Kind: domain.KindIO,
			Path: path,
			Err:  err,
		}
	}

	var y yamlManifest
	if err := yaml.Unmarshal(b, &y); err != nil {
		return domain.TaskManifest{}, &domain.OpError{
			Op:   "yamltasks.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	m := domain.TaskManifest{}
	for i, e := range y.Tasks {
		id := strings.ToUpper(strings.TrimSpace(e.ID))
		if id == "" {
			return domain.TaskManifest{}, &domain.OpError{
				Op:   "yamltasks.load",
				Kind: domain.KindInvalidConfig,
				Path: path,
				Err:  fmt.Errorf("task entry %d has no id", i),
			}
		}
		m.Tasks = append(m.Tasks, domain.TaskRef{ID: id, Domain: strings.TrimSpace(e.Domain)})
	}
	return m, nil
}

type yamlManifest struct {
	Tasks []yamlTask `yaml:"tasks"`
}

type yamlTask struct {
	ID     string
	Domain string
}

// UnmarshalYAML accepts both `- FIN-001` and `- id: FIN-001` entry shapes.
func (t *yamlTask) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		return node.Decode(&t.ID)
	}

	var m struct {
		ID     string `yaml:"id"`
		Domain string `yaml:"domain"`
	}
	if err := node.Decode(&m); err != nil {
		return err
	}
	t.ID = m.ID
	t.Domain = m.Domain
	return nil
}
