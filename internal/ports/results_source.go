package ports

import "github.com/krishjag/tealeaf/internal/domain"

// ResultsSource parses a structured results document.
type ResultsSource interface {
	LoadResults(path string) (domain.ResultsDoc, error)
}
