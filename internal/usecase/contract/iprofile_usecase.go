package usecasecontract

import (
	"context"

	"github.com/mikiasgoitom/Coursely/internal/domain/entity"
)

type IProfileUseCase interface {
	GetProfile(ctx context.Context, principal entity.Principal, id string) (*entity.Profile, error)
	UpdateOwnProfile(ctx context.Context, principal entity.Principal, firstName, lastName string) (*entity.Profile, error)
	ListProfiles(ctx context.Context, principal entity.Principal, page, pageSize int) ([]entity.Profile, int64, error)
	SetRole(ctx context.Context, principal entity.Principal, id string, role entity.UserRole) (*entity.Profile, error)
	SetStatus(ctx context.Context, principal entity.Principal, id string, status entity.ProfileStatus) (*entity.Profile, error)
}
