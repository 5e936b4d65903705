package ports

import "github.com/krishjag/tealeaf/internal/domain"

// ProfileLoader loads provider profiles from a source (e.g., filesystem).
type ProfileLoader interface {
	LoadProfile(path string) (domain.Profile, error)
}
