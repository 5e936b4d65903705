package ports

import "github.com/krishjag/tealeaf/internal/domain"

// TaskCatalog loads the optional task manifest.
type TaskCatalog interface {
	LoadTasks(path string) (domain.TaskManifest, error)
}
