package aggregate

import (
	"math"
	"testing"

	"github.com/krishjag/tealeaf/internal/domain"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestPct_ZeroDenominator(t *testing.T) {
	for _, a := range []float64{0, 1, -3, 1e9} {
		if got := Pct(a, 0); got != 0 {
			t.Fatalf("Pct(%v, 0) = %v, want 0", a, got)
		}
	}
}

func TestPct_ScoreDelta(t *testing.T) {
	// avg(tl)=0.945 vs avg(json)=0.9475 comes out around -0.26%.
	got := Pct(0.945, 0.9475)
	if !almostEqual(got, -0.2639, 0.001) {
		t.Fatalf("Pct = %v, want about -0.26", got)
	}
}

func TestSavingsSign(t *testing.T) {
	if got := Savings(80, 100); !almostEqual(got, 20, 1e-9) {
		t.Fatalf("Savings(80,100) = %v, want 20", got)
	}
	if got := Savings(120, 100); !almostEqual(got, -20, 1e-9) {
		t.Fatalf("Savings(120,100) = %v, want -20", got)
	}
}

func TestMedian(t *testing.T) {
	if got := Median(nil); got != 0 {
		t.Fatalf("median of empty = %v, want 0", got)
	}
	if got := Median([]float64{3, 1, 2}); got != 2 {
		t.Fatalf("odd median = %v, want 2", got)
	}
	if got := Median([]float64{4, 1, 2, 3}); got != 2.5 {
		t.Fatalf("even median = %v, want 2.5", got)
	}
}

func TestComparePair_WeightedDivergesFromMedian(t *testing.T) {
	// One huge task dominates the totals while the median ignores size.
	tasks := []domain.TaskCountRecord{
		{TaskID: "FIN-001", Counts: map[domain.Format]int{domain.FormatTL: 100, domain.FormatJSON: 200}},
		{TaskID: "RET-001", Counts: map[domain.Format]int{domain.FormatTL: 900, domain.FormatJSON: 1000}},
		{TaskID: "HLT-001", Counts: map[domain.Format]int{domain.FormatTL: 450, domain.FormatJSON: 500}},
	}

	sum := ComparePair(tasks, domain.FormatPair{A: domain.FormatTL, B: domain.FormatJSON})

	if sum.TotalA != 1450 || sum.TotalB != 1700 {
		t.Fatalf("totals = %d/%d, want 1450/1700", sum.TotalA, sum.TotalB)
	}
	if !almostEqual(sum.WeightedPct, -14.7059, 0.001) {
		t.Fatalf("weighted = %v, want about -14.71", sum.WeightedPct)
	}
	if sum.MedianPct != -10 {
		t.Fatalf("median = %v, want -10", sum.MedianPct)
	}
	if almostEqual(sum.WeightedPct, sum.MedianPct, 0.5) {
		t.Fatalf("weighted and median should diverge on unequal task sizes")
	}
}

func TestComparePair_SkipsTasksMissingAFormat(t *testing.T) {
	tasks := []domain.TaskCountRecord{
		{TaskID: "FIN-001", Counts: map[domain.Format]int{domain.FormatTL: 100, domain.FormatJSON: 150}},
		{TaskID: "RET-001", Counts: map[domain.Format]int{domain.FormatTL: 999}},
	}

	sum := ComparePair(tasks, domain.FormatPair{A: domain.FormatTL, B: domain.FormatJSON})
	if sum.TotalA != 100 || sum.TotalB != 150 {
		t.Fatalf("totals = %d/%d, partial task must be excluded", sum.TotalA, sum.TotalB)
	}
}

func TestDataOnly_MinSubtraction(t *testing.T) {
	tasks := []domain.TaskCountRecord{
		{TaskID: "FIN-001", Counts: map[domain.Format]int{domain.FormatTL: 800, domain.FormatJSON: 1400}},
		{TaskID: "RET-001", Counts: map[domain.Format]int{domain.FormatTL: 500, domain.FormatTOON: 600, domain.FormatJSON: 700}},
	}

	est := DataOnly(tasks, []domain.FormatPair{{A: domain.FormatTL, B: domain.FormatJSON}})

	if est.Totals[domain.FormatTL] != 0 {
		t.Fatalf("tl data-only total = %d, want 0", est.Totals[domain.FormatTL])
	}
	if est.Totals[domain.FormatJSON] != 800 {
		t.Fatalf("json data-only total = %d, want 800", est.Totals[domain.FormatJSON])
	}
	if est.Totals[domain.FormatTOON] != 100 {
		t.Fatalf("toon data-only total = %d, want 100", est.Totals[domain.FormatTOON])
	}

	if len(est.Pairs) != 1 {
		t.Fatalf("expected one pair, got %d", len(est.Pairs))
	}
	if !almostEqual(est.Pairs[0].WeightedPct, -100, 1e-9) {
		t.Fatalf("weighted = %v, want -100", est.Pairs[0].WeightedPct)
	}
}

func TestFormatSummary_FoldsTokensAndScores(t *testing.T) {
	doc := domain.ResultsDoc{
		Responses: []domain.ResponseRow{
			{TaskID: "FIN-001", Provider: "anthropic", Format: domain.FormatTL, InputTokens: 100, OutputTokens: 40},
			{TaskID: "RET-001", Provider: "anthropic", Format: domain.FormatTL, InputTokens: 200, OutputTokens: 60},
			{TaskID: "FIN-001", Provider: "anthropic", Format: domain.FormatJSON, InputTokens: 180, OutputTokens: 50},
			{TaskID: "BAD-001", Provider: "anthropic", Format: domain.FormatJSON, InputTokens: -5, OutputTokens: 1},
		},
		Analysis: []domain.ResultRow{
			{TaskID: "FIN-001", Provider: "anthropic", Format: domain.FormatTL,
				Completeness: 0.95, Relevance: 0.94, Coherence: 0.96, FactualAccuracy: 0.93},
			{TaskID: "RET-001", Provider: "anthropic", Format: domain.FormatTL,
				Completeness: 0.90, Relevance: 0.90, Coherence: 0.90, FactualAccuracy: 0.90},
		},
	}

	stats := FormatSummary(doc)
	if len(stats) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(stats))
	}

	// Sorted by provider then format: json before tl.
	js := stats[0]
	if js.Key.Format != domain.FormatJSON || js.InputTokens != 180 {
		t.Fatalf("json bucket wrong: %+v (negative row must be excluded)", js)
	}

	tl := stats[1]
	if tl.InputTokens != 300 || tl.OutputTokens != 100 {
		t.Fatalf("tl tokens = %d/%d, want 300/100", tl.InputTokens, tl.OutputTokens)
	}
	if !almostEqual(tl.AvgScore, (0.945+0.90)/2, 1e-9) {
		t.Fatalf("tl avg score = %v", tl.AvgScore)
	}
}

func TestReportedInputTotals_TaskFilter(t *testing.T) {
	doc := domain.ResultsDoc{
		Responses: []domain.ResponseRow{
			{TaskID: "FIN-001", Provider: "anthropic", Format: domain.FormatTL, InputTokens: 100},
			{TaskID: "RET-001", Provider: "anthropic", Format: domain.FormatTL, InputTokens: 200},
		},
	}

	got := ReportedInputTotals(doc, map[string]bool{"FIN-001": true})
	key := domain.GroupKey{Provider: "anthropic", Format: domain.FormatTL}
	if got[key] != 100 {
		t.Fatalf("filtered total = %d, want 100", got[key])
	}

	all := ReportedInputTotals(doc, nil)
	if all[key] != 300 {
		t.Fatalf("unfiltered total = %d, want 300", all[key])
	}
}

func TestRollup_DomainsAndOverrides(t *testing.T) {
	doc := domain.ResultsDoc{
		Responses: []domain.ResponseRow{
			{TaskID: "FIN-001", Provider: "anthropic", Format: domain.FormatTL, InputTokens: 100, OutputTokens: 10},
			{TaskID: "FIN-002", Provider: "anthropic", Format: domain.FormatTL, InputTokens: 50, OutputTokens: 5},
			{TaskID: "ZZZ-001", Provider: "anthropic", Format: domain.FormatTL, InputTokens: 30, OutputTokens: 3},
			{TaskID: "LAB-001", Provider: "anthropic", Format: domain.FormatTL, InputTokens: 20, OutputTokens: 2},
		},
		Analysis: []domain.ResultRow{
			{TaskID: "FIN-001", Provider: "anthropic", Format: domain.FormatTL,
				Completeness: 1, Relevance: 1, Coherence: 1, FactualAccuracy: 1},
			{TaskID: "FIN-002", Provider: "anthropic", Format: domain.FormatTL,
				Completeness: 0.5, Relevance: 0.5, Coherence: 0.5, FactualAccuracy: 0.5},
		},
	}
	overrides := map[string]string{"LAB-001": "Research"}

	rolls := Rollup(doc, overrides)

	byDomain := map[string]domain.DomainRollup{}
	for _, r := range rolls {
		byDomain[r.Key.Domain] = r
	}

	fin := byDomain["Finance"]
	if fin.InputTokens != 150 || fin.Tasks != 2 {
		t.Fatalf("finance rollup wrong: %+v", fin)
	}
	if !almostEqual(fin.AvgScore, 0.75, 1e-9) {
		t.Fatalf("finance avg = %v, want 0.75", fin.AvgScore)
	}

	if _, ok := byDomain["ZZZ"]; !ok {
		t.Fatalf("unmapped prefix must become a singleton domain")
	}
	if _, ok := byDomain["Research"]; !ok {
		t.Fatalf("manifest override must win")
	}
}
