package fsworkspace

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/krishjag/tealeaf/internal/domain"
)

func TestInitializer_Init_CreatesWorkspaceFiles(t *testing.T) {
	tmp := t.TempDir()

	i := NewInitializer()
	if err := i.Init(domain.WorkspaceSpec{Root: tmp}, false); err != nil {
		t.Fatalf("Init error: %v", err)
	}

	assertFileExists(t, filepath.Join(tmp, "tokenbench.yaml"))
	assertFileExists(t, filepath.Join(tmp, "tasks.yaml"))
	assertFileExists(t, filepath.Join(tmp, "profiles", "anthropic.yaml"))

	for _, d := range []string{"prompts", "results", "runs", "profiles"} {
		info, err := os.Stat(filepath.Join(tmp, d))
		if err != nil {
			t.Fatalf("expected dir %s, stat err=%v", d, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %s to be a directory", d)
		}
	}
}

func TestInitializer_Init_SkipsExistingFilesUnlessForce(t *testing.T) {
	tmp := t.TempDir()

	cfgPath := filepath.Join(tmp, "tokenbench.yaml")
	if err := os.WriteFile(cfgPath, []byte("custom\n"), 0o644); err != nil {
		t.Fatalf("write existing tokenbench.yaml: %v", err)
	}

	i := NewInitializer()

	if err := i.Init(domain.WorkspaceSpec{Root: tmp}, false); err != nil {
		t.Fatalf("Init (force=false) error: %v", err)
	}

	b, err := os.ReadFile(cfgPath)
	if err != nil {
		t.Fatalf("read tokenbench.yaml: %v", err)
	}
	if string(b) != "custom\n" {
		t.Fatalf("expected tokenbench.yaml preserved, got %q", string(b))
	}

	if err := i.Init(domain.WorkspaceSpec{Root: tmp}, true); err != nil {
		t.Fatalf("Init (force=true) error: %v", err)
	}

	b, err = os.ReadFile(cfgPath)
	if err != nil {
		t.Fatalf("read tokenbench.yaml after force: %v", err)
	}
	if !strings.Contains(string(b), "tokenbench:") {
		t.Fatalf("expected tokenbench.yaml overwritten with template, got %q", string(b))
	}
}

func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected file %s, stat err=%v", path, err)
	}
}
