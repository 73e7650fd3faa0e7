package contract

import (
	"context"

	"github.com/mikiasgoitom/Coursely/internal/domain/entity"
)

// IStatusStore records admin status changes keyed by identity so they take effect before the
// affected session token is refreshed. It is read with the caller's id only.
type IStatusStore interface {
	SetStatus(ctx context.Context, identityID string, status entity.ProfileStatus) error
	// GetStatus reports ok=false when no override is recorded.
	GetStatus(ctx context.Context, identityID string) (entity.ProfileStatus, bool, error)
}

// IEventPublisher is the publishing half of the application event bus.
type IEventPublisher interface {
	Publish(ctx context.Context, topic string, event any) error
}
