package contract

import (
	"context"
	"time"

	"github.com/mikiasgoitom/Coursely/internal/domain/entity"
)

type IIdentityRepository interface {
	CreateIdentity(ctx context.Context, identity *entity.Identity) error
	GetIdentityByID(ctx context.Context, id string) (*entity.Identity, error)
	// GetIdentityByEmail returns entity.ErrNotFound when no identity uses the email.
	GetIdentityByEmail(ctx context.Context, email string) (*entity.Identity, error)
	// MarkEmailConfirmed sets the confirmation time once; later calls leave it unchanged.
	MarkEmailConfirmed(ctx context.Context, id string, at time.Time) error
	// ClaimPendingIdentity confirms a pending identity for a provider-verified owner. The
	// password and signup metadata of the pending signup are replaced.
	ClaimPendingIdentity(ctx context.Context, id string, metadata entity.SignupMetadata, at time.Time) error
}
