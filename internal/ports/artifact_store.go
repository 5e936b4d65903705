package ports

import "github.com/krishjag/tealeaf/internal/domain"

// ArtifactStore persists count runs for reproducibility.
type ArtifactStore interface {
	SaveRun(run domain.CountRun) (id string, err error)
	ListRuns() ([]domain.RunRef, error)
	LoadRun(id string) (domain.CountRun, error)
}
