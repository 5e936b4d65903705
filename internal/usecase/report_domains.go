package usecase

import (
	"context"

	"github.com/krishjag/tealeaf/internal/domain"
	"github.com/krishjag/tealeaf/internal/ports"
	"github.com/krishjag/tealeaf/internal/usecase/aggregate"
)

type ReportDomains struct {
	results ports.ResultsSource
	tasks   ports.TaskCatalog
}

func NewReportDomains(rs ports.ResultsSource, tc ports.TaskCatalog) *ReportDomains {
	return &ReportDomains{results: rs, tasks: tc}
}

type ReportRequest struct {
	ResultsFile string

	// TasksFile points at the optional manifest; its domain overrides win
	// over the prefix table.
	TasksFile string
}

type DomainReport struct {
	Rollups []domain.DomainRollup
	Formats []aggregate.FormatStat
}

// Execute joins the results document's token usage with its quality scores
// and folds both into domain rollups plus a per-(provider, format) summary.
func (uc *ReportDomains) Execute(ctx context.Context, req ReportRequest) (DomainReport, error) {
	if err := ctx.Err(); err != nil {
		return DomainReport{}, err
	}

	doc, err := uc.results.LoadResults(req.ResultsFile)
	if err != nil {
		return DomainReport{}, err
	}

	overrides := map[string]string{}
	if uc.tasks != nil && req.TasksFile != "" {
		manifest, err := uc.tasks.LoadTasks(req.TasksFile)
		if err != nil {
			return DomainReport{}, err
		}
		overrides = manifest.DomainOverrides()
	}

	return DomainReport{
		Rollups: aggregate.Rollup(doc, overrides),
		Formats: aggregate.FormatSummary(doc),
	}, nil
}
