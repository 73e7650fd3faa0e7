package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mikiasgoitom/Coursely/internal/domain/contract"
	"github.com/mikiasgoitom/Coursely/internal/domain/entity"
)

// StatusStore keeps admin status changes in Redis for as long as an access token can live,
// after which every token in circulation already carries the new status.
type StatusStore struct {
	rdb *redis.Client
	ttl time.Duration
}

var _ contract.IStatusStore = (*StatusStore)(nil)

func NewStatusStore(rdb *redis.Client, ttl time.Duration) *StatusStore {
	return &StatusStore{rdb: rdb, ttl: ttl}
}

func statusKey(identityID string) string { return fmt.Sprintf("session:status:%s", identityID) }

func (s *StatusStore) SetStatus(ctx context.Context, identityID string, status entity.ProfileStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: unknown status %q", entity.ErrValidation, status)
	}
	return s.rdb.Set(ctx, statusKey(identityID), string(status), s.ttl).Err()
}

func (s *StatusStore) GetStatus(ctx context.Context, identityID string) (entity.ProfileStatus, bool, error) {
	v, err := s.rdb.Get(ctx, statusKey(identityID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	status := entity.ProfileStatus(v)
	if !status.Valid() {
		return "", false, nil
	}
	return status, true, nil
}
