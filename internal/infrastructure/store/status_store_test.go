package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikiasgoitom/Coursely/internal/domain/entity"
)

func newTestStore(t *testing.T) (*StatusStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewStatusStore(rdb, 15*time.Minute), mr
}

func TestStatusStore_SetAndGet(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	_, ok, err := s.GetStatus(ctx, "user-1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.SetStatus(ctx, "user-1", entity.ProfileStatusSuspended))
	status, ok, err := s.GetStatus(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, entity.ProfileStatusSuspended, status)

	require.NoError(t, s.SetStatus(ctx, "user-1", entity.ProfileStatusActive))
	status, _, _ = s.GetStatus(ctx, "user-1")
	assert.Equal(t, entity.ProfileStatusActive, status)
}

func TestStatusStore_Expires(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetStatus(ctx, "user-1", entity.ProfileStatusSuspended))
	mr.FastForward(16 * time.Minute)

	_, ok, err := s.GetStatus(ctx, "user-1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStatusStore_RejectsUnknownStatus(t *testing.T) {
	s, mr := newTestStore(t)
	assert.ErrorIs(t, s.SetStatus(context.Background(), "user-1", "banned"), entity.ErrValidation)

	mr.Set("session:status:user-2", "garbage")
	_, ok, err := s.GetStatus(context.Background(), "user-2")
	require.NoError(t, err)
	assert.False(t, ok)
}
