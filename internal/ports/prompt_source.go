package ports

import "github.com/krishjag/tealeaf/internal/domain"

// PromptSource loads dumped prompt files from a source (e.g., filesystem).
type PromptSource interface {
	// ScanPrompts loads every recognized prompt under dir, grouped by task.
	// When taskIDs is non-empty it also filters and orders the result by it;
	// otherwise order follows the sorted file listing.
	ScanPrompts(dir string, taskIDs []string) ([]domain.PromptSet, error)
}
