// Package promptdump reads the prompt dump files written by the benchmark's
// prompt-generation step.
package promptdump

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/krishjag/tealeaf/internal/domain"
	"github.com/krishjag/tealeaf/internal/ports"
)

// PromptMarker separates the dump's metadata header from the literal prompt
// body.
const PromptMarker = "=== PROMPT ==="

type Source struct {
	log *slog.Logger
}

func NewSource(opts ...Option) *Source {
	s := &Source{log: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type Option func(*Source)

func WithLogger(log *slog.Logger) Option {
	return func(s *Source) { s.log = log }
}

var _ ports.PromptSource = (*Source)(nil)

// Extract returns the prompt body after the marker line, with leading
// newlines stripped. Files without the marker are returned whole: extraction
// degrades gracefully instead of aborting a batch run.
func Extract(raw string) string {
	_, after, found := strings.Cut(raw, PromptMarker)
	if !found {
		return raw
	}
	return strings.TrimLeft(after, "\n")
}

// ParseFilename splits a dump filename like "fin-001-tl.txt" into the task
// ID (uppercased) and format tag. ok is false for files that do not follow
// the naming scheme at all; an unrecognized format tag still parses, as
// domain.FormatUnknown, so the caller can log and skip it.
func ParseFilename(name string) (taskID string, format domain.Format, ok bool) {
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	i := strings.LastIndex(stem, "-")
	if i <= 0 {
		return "", domain.FormatUnknown, false
	}
	return strings.ToUpper(stem[:i]), domain.ParseFormat(stem[i+1:]), true
}

// ScanPrompts loads every recognized `.txt` dump under dir, grouped by task.
// Unknown-format files are skipped with a warning. When taskIDs is non-empty
// it filters and orders the result; otherwise order follows the sorted file
// listing.
func (s *Source) ScanPrompts(dir string, taskIDs []string) ([]domain.PromptSet, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "promptdump.scan",
			Kind: domain.KindMissingInput,
			Path: dir,
			Hint: "run the prompt-generation step first, or point --prompts-dir at an existing dump directory",
			Err:  err,
		}
	}

	sets := map[string]*domain.PromptSet{}
	var order []string

	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".txt") {
			continue
		}

		taskID, format, ok := ParseFilename(e.Name())
		if !ok {
			s.log.Warn("skipping unrecognized dump filename", "file", e.Name())
			continue
		}
		if format == domain.FormatUnknown {
			s.log.Warn("skipping dump with unknown format tag", "file", e.Name())
			continue
		}

		path := filepath.Join(dir, e.Name())
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, &domain.OpError{
				Op:   "promptdump.read",
				Kind: domain.KindIO,
				Path: path,
				Err:  err,
			}
		}

		raw := string(b)
		set, seen := sets[taskID]
		if !seen {
			set = &domain.PromptSet{TaskID: taskID, Prompts: map[domain.Format]domain.PromptFile{}}
			sets[taskID] = set
			order = append(order, taskID)
		}
		set.Prompts[format] = domain.PromptFile{
			TaskID:     taskID,
			Format:     format,
			Path:       path,
			RawText:    raw,
			PromptText: Extract(raw),
		}
	}

	if len(taskIDs) > 0 {
		order = filterOrder(order, taskIDs)
	}

	out := make([]domain.PromptSet, 0, len(order))
	for _, id := range order {
		if set, ok := sets[id]; ok {
			out = append(out, *set)
		}
	}
	return out, nil
}

// filterOrder keeps only the wanted IDs, in the wanted order. Wanted IDs
// with no dumps are dropped silently; the usecase reports coverage.
func filterOrder(have, want []string) []string {
	present := map[string]bool{}
	for _, id := range have {
		present[id] = true
	}

	out := make([]string, 0, len(want))
	for _, id := range want {
		if present[strings.ToUpper(id)] {
			out = append(out, strings.ToUpper(id))
		}
	}
	return out
}
