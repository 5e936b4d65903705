// Package runstore persists count runs as pretty JSON under the workspace's
// runs directory, with an append-only JSONL index for fast listing.
package runstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/krishjag/tealeaf/internal/domain"
	"github.com/krishjag/tealeaf/internal/ports"
)

const defaultRunsDir = "runs"
const indexFile = "index.jsonl"

type JSONStore struct {
	rootDir     string
	runsDirName string
	writeIndex  bool
	now         func() time.Time
}

type Option func(*JSONStore)

// WithIndex enables the JSONL index: runs/index.jsonl
func WithIndex(enabled bool) Option {
	return func(s *JSONStore) { s.writeIndex = enabled }
}

// WithNow is useful for tests.
func WithNow(now func() time.Time) Option {
	return func(s *JSONStore) { s.now = now }
}

func NewJSONStore(root string, cfg domain.Config, opts ...Option) *JSONStore {
	runsDir := cfg.Paths.RunsDir
	if strings.TrimSpace(runsDir) == "" {
		runsDir = defaultRunsDir
	}

	s := &JSONStore{
		rootDir:     root,
		runsDirName: runsDir,
		writeIndex:  false,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.ArtifactStore = (*JSONStore)(nil)

func (s *JSONStore) SaveRun(run domain.CountRun) (string, error) {
	dir := filepath.Join(s.rootDir, s.runsDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &domain.OpError{
			Op:   "runstore.mkdir",
			Kind: domain.KindIO,
			Path: dir,
			Err:  err,
		}
	}

	ts := run.StartedAt
	if ts.IsZero() {
		ts = s.now()
	}
	ts = ts.UTC()

	toSave := run
	if toSave.StartedAt.IsZero() {
		toSave.StartedAt = ts
	}

	slug := slugify(run.Model)
	if slug == "" {
		slug = "run"
	}

	id := fmt.Sprintf("%s_%s", ts.Format("20060102T150405Z"), slug)
	if toSave.ID != "" {
		id = toSave.ID
	} else {
		toSave.ID = id
	}

	filename := id + ".json"
	path := filepath.Join(dir, filename)

	b, err := json.MarshalIndent(toSave, "", "  ")
	if err != nil {
		return "", &domain.OpError{
			Op:   "runstore.marshal",
			Kind: domain.KindInternal,
			Path: path,
			Err:  err,
		}
	}

	// Atomic write: tmp then rename, tmp removed on the failure path.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return "", &domain.OpError{
			Op:   "runstore.write",
			Kind: domain.KindIO,
			Path: tmp,
			Err:  err,
		}
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", &domain.OpError{
			Op:   "runstore.rename",
			Kind: domain.KindIO,
			Path: path,
			Err:  err,
		}
	}

	if s.writeIndex {
		_ = s.appendIndex(dir, domain.RunRef{
			ID:        id,
			Path:      path,
			Model:     toSave.Model,
			StartedAt: toSave.StartedAt,
		})
	}

	return id, nil
}

func (s *JSONStore) appendIndex(dir string, ref domain.RunRef) error {
	line, err := json.Marshal(ref)
	if err != nil {
		return err
	}

	indexPath := filepath.Join(dir, indexFile)
	f, err := os.OpenFile(indexPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()

	_, _ = f.Write(append(line, '\n'))
	return nil
}

// ListRuns scans the runs directory for artifacts, newest first. The scan
// trusts filenames rather than the index so runs copied in by hand still
// show up.
func (s *JSONStore) ListRuns() ([]domain.RunRef, error) {
	dir := filepath.Join(s.rootDir, s.runsDirName)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, &domain.OpError{
			Op:   "runstore.list",
			Kind: domain.KindIO,
			Path: dir,
			Err:  err,
		}
	}

	var refs []domain.RunRef
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}

		path := filepath.Join(dir, name)
		run, err := readRun(path)
		if err != nil {
			// A malformed artifact should not hide the rest.
			continue
		}

		refs = append(refs, domain.RunRef{
			ID:        strings.TrimSuffix(name, ".json"),
			Path:      path,
			Model:     run.Model,
			StartedAt: run.StartedAt,
		})
	}

	sort.Slice(refs, func(i, j int) bool {
		return refs[i].StartedAt.After(refs[j].StartedAt)
	})
	return refs, nil
}

func (s *JSONStore) LoadRun(id string) (domain.CountRun, error) {
	path := filepath.Join(s.rootDir, s.runsDirName, id+".json")
	run, err := readRun(path)
	if err != nil {
		return domain.CountRun{}, &domain.OpError{
			Op:   "runstore.load",
			Kind: domain.KindMissingInput,
			Path: path,
			Hint: "list saved runs with `tokenbench runs`",
			Err:  err,
		}
	}
	return run, nil
}

func readRun(path string) (domain.CountRun, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.CountRun{}, err
	}
	var run domain.CountRun
	if err := json.Unmarshal(b, &run); err != nil {
		return domain.CountRun{}, err
	}
	return run, nil
}

// slugify produces a safe filename component from a model identifier.
func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))

	lastDash := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}

	return strings.Trim(b.String(), "-")
}
