// Package aggregate combines per-task token counts and quality scores into
// comparison tables, medians, weighted totals, and domain rollups.
//
// Every function is a pure fold over ordered input records: inputs are never
// mutated and all state lives in the returned aggregates, so task processing
// order cannot affect correctness.
package aggregate

import (
	"sort"

	"github.com/krishjag/tealeaf/internal/domain"
)

// Pct returns the percentage difference of a against baseline b:
// (a-b)/b*100. A zero baseline yields exactly 0 rather than raising a
// division error; tests rely on this guard.
func Pct(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return (a - b) / b * 100
}

// Savings is the positive-when-cheaper convenience view of Pct: how much of
// baseline b is saved by a.
func Savings(a, b float64) float64 {
	return -Pct(a, b)
}

// Median returns the median of xs without mutating it. Empty input yields 0.
func Median(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}

	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// ComparePair folds the task records into one pairwise summary. Only tasks
// carrying counts for both formats contribute.
//
// WeightedPct comes from the summed totals; MedianPct is the median of the
// per-task percentages. These are deliberately distinct figures: they diverge
// whenever task sizes vary, and both are always reported.
func ComparePair(tasks []domain.TaskCountRecord, pair domain.FormatPair) domain.PairSummary {
	sum := domain.PairSummary{FormatA: pair.A, FormatB: pair.B}

	var perTask []float64
	for _, t := range tasks {
		a, okA := t.Counts[pair.A]
		b, okB := t.Counts[pair.B]
		if !okA || !okB {
			continue
		}
		sum.TotalA += a
		sum.TotalB += b
		perTask = append(perTask, Pct(float64(a), float64(b)))
	}

	sum.WeightedPct = Pct(float64(sum.TotalA), float64(sum.TotalB))
	sum.MedianPct = Median(perTask)
	return sum
}

// ComparePairs folds the records once per requested pair.
func ComparePairs(tasks []domain.TaskCountRecord, pairs []domain.FormatPair) []domain.PairSummary {
	out := make([]domain.PairSummary, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, ComparePair(tasks, p))
	}
	return out
}

// DataOnly estimates data-only token totals: each task's minimum count
// across its formats stands in for the shared instruction overhead and is
// subtracted from every format's count before totalling.
//
// This is a conservative single-number estimate. It is not a substitute for
// the exact prefix/suffix split measurement and the two are always reported
// separately; their disagreement is itself diagnostic.
func DataOnly(tasks []domain.TaskCountRecord, pairs []domain.FormatPair) domain.DataOnlySummary {
	adjusted := make([]domain.TaskCountRecord, 0, len(tasks))
	totals := map[domain.Format]int{}

	for _, t := range tasks {
		if len(t.Counts) == 0 {
			continue
		}

		min := 0
		first := true
		for _, c := range t.Counts {
			if first || c < min {
				min = c
				first = false
			}
		}

		rec := domain.TaskCountRecord{TaskID: t.TaskID, Counts: map[domain.Format]int{}}
		for f, c := range t.Counts {
			rec.Counts[f] = c - min
			totals[f] += c - min
		}
		adjusted = append(adjusted, rec)
	}

	return domain.DataOnlySummary{
		Totals: totals,
		Pairs:  ComparePairs(adjusted, pairs),
	}
}

// FormatStat aggregates the results document per (provider, format).
type FormatStat struct {
	Key domain.GroupKey

	InputTokens  int
	OutputTokens int

	AvgScore float64
	Rows     int
}

// FormatSummary folds a results document into per-(provider, format) token
// totals and mean quality scores, sorted by provider then format.
func FormatSummary(doc domain.ResultsDoc) []FormatStat {
	type acc struct {
		in, out   int
		scoreSum  float64
		scoreRows int
	}

	buckets := map[domain.GroupKey]*acc{}
	bucket := func(k domain.GroupKey) *acc {
		if b, ok := buckets[k]; ok {
			return b
		}
		b := &acc{}
		buckets[k] = b
		return b
	}

	for _, r := range doc.Responses {
		if !r.TokensValid() {
			continue
		}
		b := bucket(domain.GroupKey{Provider: r.Provider, Format: r.Format})
		b.in += r.InputTokens
		b.out += r.OutputTokens
	}
	for _, r := range doc.Analysis {
		b := bucket(domain.GroupKey{Provider: r.Provider, Format: r.Format})
		b.scoreSum += r.AvgScore()
		b.scoreRows++
	}

	out := make([]FormatStat, 0, len(buckets))
	for k, b := range buckets {
		stat := FormatStat{
			Key:          k,
			InputTokens:  b.in,
			OutputTokens: b.out,
			Rows:         b.scoreRows,
		}
		if b.scoreRows > 0 {
			stat.AvgScore = b.scoreSum / float64(b.scoreRows)
		}
		out = append(out, stat)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Key.Provider != out[j].Key.Provider {
			return out[i].Key.Provider < out[j].Key.Provider
		}
		return out[i].Key.Format < out[j].Key.Format
	})
	return out
}

// ReportedInputTotals sums the document's reported input tokens per
// (provider, format), restricted to the given task IDs when non-nil. Rows
// with invalid token counts are excluded.
func ReportedInputTotals(doc domain.ResultsDoc, taskIDs map[string]bool) map[domain.GroupKey]int {
	out := map[domain.GroupKey]int{}
	for _, r := range doc.Responses {
		if !r.TokensValid() {
			continue
		}
		if taskIDs != nil && !taskIDs[r.TaskID] {
			continue
		}
		out[domain.GroupKey{Provider: r.Provider, Format: r.Format}] += r.InputTokens
	}
	return out
}

// Rollup folds a results document into (domain, provider, format) buckets:
// summed token counts and arithmetic-mean accuracy. Domain membership comes
// from the task-ID prefix table unless overridden per task.
func Rollup(doc domain.ResultsDoc, overrides map[string]string) []domain.DomainRollup {
	type acc struct {
		in, out   int
		scoreSum  float64
		scoreRows int
		tasks     map[string]bool
	}

	resolve := func(taskID string) string {
		if d, ok := overrides[taskID]; ok {
			return d
		}
		return domain.TaskDomain(taskID)
	}

	buckets := map[domain.DomainKey]*acc{}
	bucket := func(k domain.DomainKey) *acc {
		if b, ok := buckets[k]; ok {
			return b
		}
		b := &acc{tasks: map[string]bool{}}
		buckets[k] = b
		return b
	}

	for _, r := range doc.Responses {
		if !r.TokensValid() {
			continue
		}
		k := domain.DomainKey{Domain: resolve(r.TaskID), Provider: r.Provider, Format: r.Format}
		b := bucket(k)
		b.in += r.InputTokens
		b.out += r.OutputTokens
		b.tasks[r.TaskID] = true
	}
	for _, r := range doc.Analysis {
		k := domain.DomainKey{Domain: resolve(r.TaskID), Provider: r.Provider, Format: r.Format}
		b := bucket(k)
		b.scoreSum += r.AvgScore()
		b.scoreRows++
		b.tasks[r.TaskID] = true
	}

	out := make([]domain.DomainRollup, 0, len(buckets))
	for k, b := range buckets {
		roll := domain.DomainRollup{
			Key:          k,
			InputTokens:  b.in,
			OutputTokens: b.out,
			Tasks:        len(b.tasks),
		}
		if b.scoreRows > 0 {
			roll.AvgScore = b.scoreSum / float64(b.scoreRows)
		}
		out = append(out, roll)
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Key, out[j].Key
		if a.Domain != b.Domain {
			return a.Domain < b.Domain
		}
		if a.Provider != b.Provider {
			return a.Provider < b.Provider
		}
		return a.Format < b.Format
	})
	return out
}
