package usecase

import (
	"context"
	"math"
	"testing"

	"github.com/krishjag/tealeaf/internal/domain"
)

// byteLenCounter stands in for the local tokenizer: one token per byte keeps
// the arithmetic in assertions exact.
type byteLenCounter struct{}

func (byteLenCounter) Count(text string) int { return len(text) }
func (byteLenCounter) EncodingName() string  { return "bytes" }

type fakeResultsSource struct {
	doc domain.ResultsDoc
	err error
}

func (f fakeResultsSource) LoadResults(string) (domain.ResultsDoc, error) {
	if f.err != nil {
		return domain.ResultsDoc{}, f.err
	}
	return f.doc, nil
}

func TestValidateCounts_SplitsAndProbes(t *testing.T) {
	const tlPrompt = "INSTR:AAAA:END"       // 14 bytes
	const jsonPrompt = "INSTR:[1,2,3]:END"  // 17 bytes

	ps := &fakePromptSource{sets: []domain.PromptSet{
		promptSet("FIN-001", map[domain.Format]string{
			domain.FormatTL:   tlPrompt,
			domain.FormatJSON: jsonPrompt,
		}),
	}}
	rs := fakeResultsSource{doc: domain.ResultsDoc{
		Responses: []domain.ResponseRow{
			{TaskID: "FIN-001", Provider: "anthropic", Format: domain.FormatTL, InputTokens: 14},
			{TaskID: "FIN-001", Provider: "anthropic", Format: domain.FormatJSON, InputTokens: 17},
		},
	}}

	uc := NewValidateCounts(ps, rs, byteLenCounter{})

	report, err := uc.Execute(context.Background(), ValidateRequest{
		PromptsDir:  "prompts",
		ResultsFile: "results/analysis.tl",
		Provider:    "anthropic",
	})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	if len(report.Tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(report.Tasks))
	}
	tv := report.Tasks[0]

	// Shared affix is "INSTR:" + ":END" = 10 bytes; data slices are the
	// middles. The partition must be lossless for both inputs.
	if tv.InstructionTokens != 10 {
		t.Fatalf("expected 10 instruction tokens, got %d", tv.InstructionTokens)
	}
	if got := tv.DataTokens[domain.FormatTL]; got != 4 {
		t.Fatalf("expected 4 tl data tokens, got %d", got)
	}
	if got := tv.DataTokens[domain.FormatJSON]; got != 7 {
		t.Fatalf("expected 7 json data tokens, got %d", got)
	}
	if tv.InstructionTokens+tv.DataTokens[domain.FormatTL] != len(tlPrompt) {
		t.Fatalf("split is not a lossless partition of the tl prompt")
	}
	if tv.InstructionTokens+tv.DataTokens[domain.FormatJSON] != len(jsonPrompt) {
		t.Fatalf("split is not a lossless partition of the json prompt")
	}

	if tv.Records != 3 {
		t.Fatalf("expected 3 probed records, got %d", tv.Records)
	}

	wantSavings := (7.0 - 4.0) / 7.0 * 100
	if math.Abs(tv.SavingsPct-wantSavings) > 1e-9 {
		t.Fatalf("expected savings %.4f, got %.4f", wantSavings, tv.SavingsPct)
	}

	// Measured totals equal the reported ones exactly, so every check and
	// the overall verdict must pass.
	if len(report.Checks) != 2 {
		t.Fatalf("expected 2 cross-checks, got %d", len(report.Checks))
	}
	for _, c := range report.Checks {
		if c.Verdict != domain.VerdictPass {
			t.Fatalf("expected PASS for %s, got %s (measured=%d reported=%d)",
				c.Name, c.Verdict, c.Measured, c.Reported)
		}
	}
	if report.Overall != domain.VerdictPass {
		t.Fatalf("expected overall PASS, got %s", report.Overall)
	}
}

func TestValidateCounts_WeightedAndMedianDiverge(t *testing.T) {
	// Task one saves 50% of 1000 data bytes, task two saves 10% of 10.
	// The weighted figure must track the big task; the median sits between.
	big := promptSet("FIN-001", map[domain.Format]string{
		domain.FormatTL:   "P:" + stringOfLen("a", 500) + ":S",
		domain.FormatJSON: "P:" + stringOfLen("b", 1000) + ":S",
	})
	small := promptSet("FIN-002", map[domain.Format]string{
		domain.FormatTL:   "P:" + stringOfLen("c", 9) + ":S",
		domain.FormatJSON: "P:" + stringOfLen("d", 10) + ":S",
	})

	ps := &fakePromptSource{sets: []domain.PromptSet{big, small}}
	rs := fakeResultsSource{}

	uc := NewValidateCounts(ps, rs, byteLenCounter{})

	report, err := uc.Execute(context.Background(), ValidateRequest{
		PromptsDir: "prompts", ResultsFile: "r", Provider: "anthropic",
	})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	wantWeighted := (1010.0 - 509.0) / 1010.0 * 100
	if math.Abs(report.WeightedSavingsPct-wantWeighted) > 1e-9 {
		t.Fatalf("expected weighted %.4f, got %.4f", wantWeighted, report.WeightedSavingsPct)
	}

	if report.WeightedSavingsPct == report.MedianSavingsPct {
		t.Fatalf("expected weighted and median to diverge, both %.4f", report.WeightedSavingsPct)
	}
}

func TestValidateCounts_FallsBackToToonWhenNoTL(t *testing.T) {
	ps := &fakePromptSource{sets: []domain.PromptSet{
		promptSet("FIN-001", map[domain.Format]string{
			domain.FormatTOON: "P:xx:S",
			domain.FormatJSON: "P:[1]:S",
		}),
	}}

	uc := NewValidateCounts(ps, fakeResultsSource{}, byteLenCounter{})

	report, err := uc.Execute(context.Background(), ValidateRequest{
		PromptsDir: "prompts", ResultsFile: "r", Provider: "anthropic",
	})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if len(report.Tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(report.Tasks))
	}
	if _, ok := report.Tasks[0].DataTokens[domain.FormatTOON]; !ok {
		t.Fatalf("expected toon data tokens, got %v", report.Tasks[0].DataTokens)
	}
}

func TestValidateCounts_TaskWithoutJSONIsSkipped(t *testing.T) {
	ps := &fakePromptSource{sets: []domain.PromptSet{
		promptSet("FIN-001", map[domain.Format]string{domain.FormatTL: "only tl"}),
	}}

	uc := NewValidateCounts(ps, fakeResultsSource{}, byteLenCounter{})

	report, err := uc.Execute(context.Background(), ValidateRequest{
		PromptsDir: "prompts", ResultsFile: "r", Provider: "anthropic",
	})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if len(report.Tasks) != 0 {
		t.Fatalf("expected no split tasks, got %d", len(report.Tasks))
	}
	if report.Overall != "" {
		t.Fatalf("expected empty overall verdict with nothing to check, got %q", report.Overall)
	}
}

func stringOfLen(ch string, n int) string {
	out := ""
	for i := 0; i < n; i++ {
		out += ch
	}
	return out
}
