package usecase

import (
	"context"
	"io"
	"log/slog"

	"github.com/krishjag/tealeaf/internal/domain"
	"github.com/krishjag/tealeaf/internal/ports"
	"github.com/krishjag/tealeaf/internal/usecase/aggregate"
	"github.com/krishjag/tealeaf/internal/usecase/probe"
	"github.com/krishjag/tealeaf/internal/usecase/verdict"
)

// sharedFloorFraction is the minimum share of the shorter prompt that the
// common affix must cover before the split is trusted. Below it the two
// prompts likely came from different instruction templates.
const sharedFloorFraction = 0.2

type ValidateCounts struct {
	prompts ports.PromptSource
	results ports.ResultsSource
	local   ports.LocalTokenCounter
	log     *slog.Logger
}

type ValidateOption func(*ValidateCounts)

func WithValidateLogger(log *slog.Logger) ValidateOption {
	return func(uc *ValidateCounts) { uc.log = log }
}

func NewValidateCounts(ps ports.PromptSource, rs ports.ResultsSource, lc ports.LocalTokenCounter, opts ...ValidateOption) *ValidateCounts {
	uc := &ValidateCounts{
		prompts: ps,
		results: rs,
		local:   lc,
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

type ValidateRequest struct {
	PromptsDir  string
	ResultsFile string

	// Provider keys the measured totals when cross-checking against the
	// results document's reported counts.
	Provider string

	TaskIDs []string
}

// Execute splits each task's compact and JSON prompts into shared
// instruction text and data payloads, measures both slices with the local
// tokenizer, and cross-checks measured full-prompt totals against the
// reported counts in the results document.
//
// The prefix/suffix split is exact where the instruction template is
// byte-identical across formats; the per-task record count is probed from
// the JSON payload as a tokenizer-independent size column.
func (uc *ValidateCounts) Execute(ctx context.Context, req ValidateRequest) (domain.ValidationReport, error) {
	sets, err := uc.prompts.ScanPrompts(req.PromptsDir, req.TaskIDs)
	if err != nil {
		return domain.ValidationReport{}, err
	}

	doc, err := uc.results.LoadResults(req.ResultsFile)
	if err != nil {
		return domain.ValidationReport{}, err
	}

	report := domain.ValidationReport{}
	measured := map[domain.GroupKey]int{}
	scanned := map[string]bool{}

	var perTaskSavings []float64
	var totalCompactData, totalJSONData int

	for _, set := range sets {
		if err := ctx.Err(); err != nil {
			return domain.ValidationReport{}, err
		}

		scanned[set.TaskID] = true

		// Full-prompt measurements feed the cross-check regardless of
		// whether the task can be split.
		for f, p := range set.Prompts {
			k := domain.GroupKey{Provider: req.Provider, Format: f}
			measured[k] += uc.local.Count(p.PromptText)
		}

		if !set.Has(domain.FormatJSON) {
			uc.log.Warn("task has no JSON rendering, skipping split", "task", set.TaskID)
			continue
		}
		jsonPrompt := set.Prompts[domain.FormatJSON]

		compact := domain.FormatTL
		if !set.Has(compact) {
			if !set.Has(domain.FormatTOON) {
				uc.log.Warn("task has no compact rendering, skipping split", "task", set.TaskID)
				continue
			}
			compact = domain.FormatTOON
		}

		tv := domain.TaskValidation{
			TaskID:     set.TaskID,
			DataTokens: map[domain.Format]int{},
		}

		split := domain.SplitCommonAffix(set.Prompts[compact].PromptText, jsonPrompt.PromptText)
		uc.warnOnDegenerateSplit(set.TaskID, set.Prompts[compact].PromptText, jsonPrompt.PromptText, split)

		tv.InstructionTokens = uc.local.Count(split.SharedText())
		tv.DataTokens[compact] = uc.local.Count(split.DataA)
		tv.DataTokens[domain.FormatJSON] = uc.local.Count(split.DataB)

		// A third rendering splits against the same JSON baseline.
		if compact == domain.FormatTL && set.Has(domain.FormatTOON) {
			s := domain.SplitCommonAffix(set.Prompts[domain.FormatTOON].PromptText, jsonPrompt.PromptText)
			tv.DataTokens[domain.FormatTOON] = uc.local.Count(s.DataA)
		}

		if n, err := probe.Records(split.DataB); err == nil {
			tv.Records = n
		} else {
			uc.log.Debug("record probe failed", "task", set.TaskID, "err", err)
		}

		compactData := tv.DataTokens[compact]
		jsonData := tv.DataTokens[domain.FormatJSON]
		tv.SavingsPct = aggregate.Savings(float64(compactData), float64(jsonData))

		totalCompactData += compactData
		totalJSONData += jsonData
		perTaskSavings = append(perTaskSavings, tv.SavingsPct)

		report.Tasks = append(report.Tasks, tv)
	}

	// Weighted savings from summed totals; median from per-task figures.
	// They diverge whenever task sizes vary, and both are reported.
	report.WeightedSavingsPct = aggregate.Savings(float64(totalCompactData), float64(totalJSONData))
	report.MedianSavingsPct = aggregate.Median(perTaskSavings)

	reported := aggregate.ReportedInputTotals(doc, scanned)
	report.Checks = verdict.Evaluate(measured, reported)
	report.Overall = verdict.Overall(report.Checks)

	return report, nil
}

func (uc *ValidateCounts) warnOnDegenerateSplit(taskID, a, b string, split domain.AffixSplit) {
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}
	if minLen == 0 {
		return
	}
	if float64(split.SharedLen()) < sharedFloorFraction*float64(minLen) {
		uc.log.Warn("shared instruction text is degenerate; prompts may use different templates",
			"task", taskID, "shared_bytes", split.SharedLen(), "min_prompt_bytes", minLen)
	}
}
