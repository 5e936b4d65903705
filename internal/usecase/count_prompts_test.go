package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/krishjag/tealeaf/internal/domain"
)

// --- fakes used across the usecase tests ---

type fakePromptSource struct {
	sets []domain.PromptSet
	err  error

	lastDir     string
	lastTaskIDs []string
}

func (f *fakePromptSource) ScanPrompts(dir string, taskIDs []string) ([]domain.PromptSet, error) {
	f.lastDir = dir
	f.lastTaskIDs = taskIDs
	if f.err != nil {
		return nil, f.err
	}
	return f.sets, nil
}

type stubRemoteCounter struct {
	// counts maps prompt text to the count returned for it.
	counts map[string]int
	err    error

	calls int
}

func (s *stubRemoteCounter) Count(_ context.Context, _ string, text string) (int, error) {
	s.calls++
	if s.err != nil {
		return 0, s.err
	}
	return s.counts[text], nil
}

type fakeStore struct {
	saved bool
	last  domain.CountRun
}

func (s *fakeStore) SaveRun(run domain.CountRun) (string, error) {
	s.saved = true
	s.last = run
	return "run-123", nil
}

func (s *fakeStore) ListRuns() ([]domain.RunRef, error) { return nil, nil }

func (s *fakeStore) LoadRun(string) (domain.CountRun, error) {
	return domain.CountRun{}, errors.New("not implemented")
}

func promptSet(taskID string, texts map[domain.Format]string) domain.PromptSet {
	set := domain.PromptSet{TaskID: taskID, Prompts: map[domain.Format]domain.PromptFile{}}
	for f, text := range texts {
		set.Prompts[f] = domain.PromptFile{TaskID: taskID, Format: f, PromptText: text}
	}
	return set
}

// --- tests ---

func TestCountPrompts_FoldsPairsAndSaves(t *testing.T) {
	ps := &fakePromptSource{sets: []domain.PromptSet{
		promptSet("FIN-001", map[domain.Format]string{
			domain.FormatTL:   "tl-1",
			domain.FormatJSON: "json-1",
		}),
		promptSet("FIN-002", map[domain.Format]string{
			domain.FormatTL:   "tl-2",
			domain.FormatJSON: "json-2",
		}),
	}}
	rc := &stubRemoteCounter{counts: map[string]int{
		"tl-1":   800,
		"json-1": 1400,
		"tl-2":   90,
		"json-2": 100,
	}}
	store := &fakeStore{}

	uc := NewCountPrompts(ps, rc, WithCountStore(store))

	run, id, err := uc.Execute(context.Background(), CountRequest{
		PromptsDir: "prompts",
		Provider:   "anthropic",
		Model:      "claude-sonnet-4-5-20250929",
	})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	if id != "run-123" || !store.saved {
		t.Fatalf("expected run saved with id, got id=%q saved=%v", id, store.saved)
	}
	if rc.calls != 4 {
		t.Fatalf("expected 4 counting calls, got %d", rc.calls)
	}
	if len(run.Tasks) != 2 {
		t.Fatalf("expected 2 task records, got %d", len(run.Tasks))
	}

	var tlJSON *domain.PairSummary
	for i := range run.Pairs {
		if run.Pairs[i].FormatA == domain.FormatTL && run.Pairs[i].FormatB == domain.FormatJSON {
			tlJSON = &run.Pairs[i]
		}
	}
	if tlJSON == nil {
		t.Fatalf("expected a tl-vs-json pair, got %+v", run.Pairs)
	}
	if tlJSON.TotalA != 890 || tlJSON.TotalB != 1500 {
		t.Fatalf("expected totals 890/1500, got %d/%d", tlJSON.TotalA, tlJSON.TotalB)
	}

	// Weighted from totals; median from per-task pcts. The task sizes are
	// deliberately unequal so the two must diverge.
	if tlJSON.WeightedPct == tlJSON.MedianPct {
		t.Fatalf("expected weighted and median to diverge, both %.4f", tlJSON.WeightedPct)
	}
}

func TestCountPrompts_MissingFormatExcludedFromPair(t *testing.T) {
	ps := &fakePromptSource{sets: []domain.PromptSet{
		promptSet("FIN-001", map[domain.Format]string{
			domain.FormatTL:   "tl-1",
			domain.FormatJSON: "json-1",
		}),
		promptSet("FIN-002", map[domain.Format]string{
			domain.FormatTL: "tl-2", // no JSON rendering
		}),
	}}
	rc := &stubRemoteCounter{counts: map[string]int{
		"tl-1": 100, "json-1": 200, "tl-2": 300,
	}}

	uc := NewCountPrompts(ps, rc)

	run, _, err := uc.Execute(context.Background(), CountRequest{PromptsDir: "prompts"})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	for _, p := range run.Pairs {
		if p.FormatA == domain.FormatTL && p.FormatB == domain.FormatJSON {
			if p.TotalA != 100 || p.TotalB != 200 {
				t.Fatalf("expected only FIN-001 in the pair, got %d/%d", p.TotalA, p.TotalB)
			}
		}
	}
}

func TestCountPrompts_ServiceErrorAbortsRun(t *testing.T) {
	ps := &fakePromptSource{sets: []domain.PromptSet{
		promptSet("FIN-001", map[domain.Format]string{domain.FormatTL: "tl-1"}),
	}}
	rc := &stubRemoteCounter{err: &domain.OpError{
		Op:   "anthropiccounter.count",
		Kind: domain.KindService,
		Err:  errors.New("boom"),
	}}
	store := &fakeStore{}

	uc := NewCountPrompts(ps, rc, WithCountStore(store))

	_, _, err := uc.Execute(context.Background(), CountRequest{PromptsDir: "prompts"})
	if !domain.IsKind(err, domain.KindService) {
		t.Fatalf("expected service error, got: %v", err)
	}
	if store.saved {
		t.Fatalf("expected no artifact saved after an aborted run")
	}
}

func TestCountPrompts_ContextCancelStopsRun(t *testing.T) {
	ps := &fakePromptSource{sets: []domain.PromptSet{
		promptSet("FIN-001", map[domain.Format]string{domain.FormatTL: "tl-1"}),
		promptSet("FIN-002", map[domain.Format]string{domain.FormatTL: "tl-2"}),
	}}
	rc := &stubRemoteCounter{counts: map[string]int{"tl-1": 1, "tl-2": 2}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	uc := NewCountPrompts(ps, rc)

	_, _, err := uc.Execute(ctx, CountRequest{PromptsDir: "prompts"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got: %v", err)
	}
	if rc.calls != 0 {
		t.Fatalf("expected no counting calls after cancel, got %d", rc.calls)
	}
}

func TestCountPrompts_PassesTaskFilterToSource(t *testing.T) {
	ps := &fakePromptSource{}
	rc := &stubRemoteCounter{}

	uc := NewCountPrompts(ps, rc)

	_, _, err := uc.Execute(context.Background(), CountRequest{
		PromptsDir: "prompts",
		TaskIDs:    []string{"FIN-001", "HLT-002"},
	})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if len(ps.lastTaskIDs) != 2 || ps.lastTaskIDs[0] != "FIN-001" {
		t.Fatalf("expected task filter forwarded, got %v", ps.lastTaskIDs)
	}
}
