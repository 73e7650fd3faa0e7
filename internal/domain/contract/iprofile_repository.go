package contract

import (
	"context"

	"github.com/mikiasgoitom/Coursely/internal/domain/entity"
)

// IProfileRepository is the profile table. Nothing in the access policy reads from it.
type IProfileRepository interface {
	// CreateProfileIfAbsent inserts the profile unless one with the same id exists.
	// It returns the stored profile and whether this call created it.
	CreateProfileIfAbsent(ctx context.Context, profile *entity.Profile) (*entity.Profile, bool, error)
	// GetProfileByID returns entity.ErrProfileNotFound when no row exists yet.
	GetProfileByID(ctx context.Context, id string) (*entity.Profile, error)
	UpdateNames(ctx context.Context, id, firstName, lastName, fullName string) (*entity.Profile, error)
	UpdateRole(ctx context.Context, id string, role entity.UserRole) (*entity.Profile, error)
	UpdateStatus(ctx context.Context, id string, status entity.ProfileStatus) (*entity.Profile, error)
	ListProfiles(ctx context.Context, page, pageSize int) ([]entity.Profile, int64, error)
}
