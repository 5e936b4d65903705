package ports

import "github.com/krishjag/tealeaf/internal/domain"

type ProfileCatalog interface {
	ListProfiles(root string) ([]domain.ProfileRef, error)
}
