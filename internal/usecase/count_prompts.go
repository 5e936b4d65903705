// Package usecase orchestrates the counting, validation, and reporting
// pipelines over the ports. Orchestration is sequential and batch-oriented:
// one remote call at a time, no shared mutable state across tasks, and all
// aggregation happens in a final fold.
package usecase

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/krishjag/tealeaf/internal/domain"
	"github.com/krishjag/tealeaf/internal/ports"
	"github.com/krishjag/tealeaf/internal/usecase/aggregate"
)

type CountPrompts struct {
	prompts ports.PromptSource
	counter ports.RemoteTokenCounter
	store   ports.ArtifactStore
	log     *slog.Logger
}

type CountOption func(*CountPrompts)

// WithCountStore enables artifact persistence. Without a store the run is
// computed and returned but not saved.
func WithCountStore(store ports.ArtifactStore) CountOption {
	return func(uc *CountPrompts) { uc.store = store }
}

func WithCountLogger(log *slog.Logger) CountOption {
	return func(uc *CountPrompts) { uc.log = log }
}

func NewCountPrompts(ps ports.PromptSource, rc ports.RemoteTokenCounter, opts ...CountOption) *CountPrompts {
	uc := &CountPrompts{
		prompts: ps,
		counter: rc,
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

type CountRequest struct {
	PromptsDir string
	Provider   string
	Model      string

	// TaskIDs optionally filters and orders the run; empty means every task
	// found in the dump directory, sorted.
	TaskIDs []string
}

// Execute counts every (task, format) prompt through the remote endpoint and
// folds the counts into pairwise comparisons, totals, and the data-only
// estimate. A failed counting call aborts the whole run: counts must never
// be silently zero-filled.
func (uc *CountPrompts) Execute(ctx context.Context, req CountRequest) (domain.CountRun, string, error) {
	sets, err := uc.prompts.ScanPrompts(req.PromptsDir, req.TaskIDs)
	if err != nil {
		return domain.CountRun{}, "", err
	}

	run := domain.CountRun{
		Provider:   req.Provider,
		Model:      req.Model,
		PromptsDir: req.PromptsDir,
		StartedAt:  time.Now().UTC(),
	}

	for _, set := range sets {
		if err := ctx.Err(); err != nil {
			return domain.CountRun{}, "", err
		}

		rec := domain.TaskCountRecord{
			TaskID: set.TaskID,
			Counts: map[domain.Format]int{},
		}

		// Formats a task is missing are simply absent from the record; the
		// pair fold excludes the task from comparisons needing them.
		for _, f := range domain.KnownFormats() {
			p, ok := set.Prompts[f]
			if !ok {
				continue
			}

			n, err := uc.counter.Count(ctx, req.Model, p.PromptText)
			if err != nil {
				return domain.CountRun{}, "", err
			}

			rec.Counts[f] = n
			uc.log.Info("counted prompt",
				"task", set.TaskID, "format", string(f), "tokens", n)
		}

		run.Tasks = append(run.Tasks, rec)
	}

	pairs := domain.DefaultFormatPairs()
	run.Pairs = aggregate.ComparePairs(run.Tasks, pairs)
	run.DataOnly = aggregate.DataOnly(run.Tasks, pairs)
	run.FinishedAt = time.Now().UTC()

	var id string
	if uc.store != nil {
		id, err = uc.store.SaveRun(run)
		if err != nil {
			return run, "", err
		}
	}

	return run, id, nil
}
