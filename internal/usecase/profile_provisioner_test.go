package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikiasgoitom/Coursely/internal/domain/entity"
)

func confirmedIdentity(repo *fakeIdentityRepo, id string, role entity.UserRole) *entity.Identity {
	now := time.Now()
	identity := &entity.Identity{
		ID:               id,
		Email:            id + "@example.com",
		Metadata:         entity.SignupMetadata{FirstName: "Test", LastName: "User", Role: role},
		EmailConfirmedAt: &now,
	}
	_ = repo.CreateIdentity(context.Background(), identity)
	return identity
}

func TestProvision_IsIdempotent(t *testing.T) {
	identities, profiles := newFakeIdentityRepo(), newFakeProfileRepo()
	metrics := &countingMetrics{}
	p := NewProfileProvisioner(identities, profiles, &fakePublisher{}, &fakeLogger{}, fakeConfig{maxAttempts: 3}, metrics)
	identity := confirmedIdentity(identities, "p1", entity.UserRoleCreator)

	first, err := p.Provision(context.Background(), identity)
	require.NoError(t, err)
	profiles.byID["p1"].Role = entity.UserRoleAdmin
	second, err := p.Provision(context.Background(), identity)
	require.NoError(t, err)

	assert.Equal(t, entity.UserRoleCreator, first.Role)
	assert.Equal(t, entity.UserRoleAdmin, second.Role, "existing profile must not be overwritten")
	assert.Equal(t, 1, metrics.get("provision:"+ProvisionCreated))
	assert.Equal(t, 1, metrics.get("provision:"+ProvisionExisting))
}

func TestStart_RetriesUntilProfileExists(t *testing.T) {
	identities, profiles := newFakeIdentityRepo(), newFakeProfileRepo()
	publisher := &fakePublisher{}
	p := NewProfileProvisioner(identities, profiles, publisher, &fakeLogger{}, fakeConfig{maxAttempts: 3}, nil)
	identity := confirmedIdentity(identities, "p2", "")

	var handler func(context.Context, entity.ProfileProvisionRetry) error
	require.NoError(t, p.Start(context.Background(), func(_ context.Context, h func(context.Context, entity.ProfileProvisionRetry) error) error {
		handler = h
		return nil
	}))
	require.NotNil(t, handler)

	profiles.failCreates = 2
	assert.Nil(t, p.ProvisionOrDefer(context.Background(), identity))
	require.Len(t, publisher.events, 1)

	// drive the retry chain the way the bus would
	for i := 0; i < len(publisher.events); i++ {
		event := publisher.events[i].event.(entity.ProfileProvisionRetry)
		require.NoError(t, handler(context.Background(), event))
	}

	assert.Len(t, publisher.events, 2)
	profile, err := profiles.GetProfileByID(context.Background(), "p2")
	require.NoError(t, err)
	assert.Equal(t, entity.UserRoleStudent, profile.Role)
}

func TestHandleRetry_GivesUpAfterMaxAttempts(t *testing.T) {
	identities, profiles := newFakeIdentityRepo(), newFakeProfileRepo()
	publisher := &fakePublisher{}
	metrics := &countingMetrics{}
	p := NewProfileProvisioner(identities, profiles, publisher, &fakeLogger{}, fakeConfig{maxAttempts: 2}, metrics)
	confirmedIdentity(identities, "p3", "")
	profiles.failCreates = 10

	err := p.HandleRetry(context.Background(), entity.ProfileProvisionRetry{IdentityID: "p3", Attempt: 2})
	assert.Error(t, err)
	assert.Empty(t, publisher.events)
	assert.Equal(t, 1, metrics.get("provision:"+ProvisionFailed))
}

func TestHandleRetry_IgnoresUnknownAndPending(t *testing.T) {
	identities, profiles := newFakeIdentityRepo(), newFakeProfileRepo()
	p := NewProfileProvisioner(identities, profiles, &fakePublisher{}, &fakeLogger{}, fakeConfig{maxAttempts: 2}, nil)
	require.NoError(t, identities.CreateIdentity(context.Background(), &entity.Identity{ID: "pending", Email: "pending@example.com"}))

	assert.NoError(t, p.HandleRetry(context.Background(), entity.ProfileProvisionRetry{IdentityID: "ghost", Attempt: 1}))
	assert.NoError(t, p.HandleRetry(context.Background(), entity.ProfileProvisionRetry{IdentityID: "pending", Attempt: 1}))
	assert.Equal(t, 0, profiles.creates)
}

func TestHandleRetry_SchedulesNextAttemptWithoutBlocking(t *testing.T) {
	identities, profiles := newFakeIdentityRepo(), newFakeProfileRepo()
	publisher := &fakePublisher{}
	p := NewProfileProvisioner(identities, profiles, publisher, &fakeLogger{}, fakeConfig{maxAttempts: 5, retryDelay: time.Hour}, nil)
	var delays []time.Duration
	var pending []func()
	p.afterFunc = func(d time.Duration, f func()) *time.Timer {
		delays = append(delays, d)
		pending = append(pending, f)
		return nil
	}
	confirmedIdentity(identities, "p4", "")
	confirmedIdentity(identities, "p5", "")
	profiles.failCreates = 2

	start := time.Now()
	require.NoError(t, p.HandleRetry(context.Background(), entity.ProfileProvisionRetry{IdentityID: "p4", Attempt: 1}))
	require.NoError(t, p.HandleRetry(context.Background(), entity.ProfileProvisionRetry{IdentityID: "p5", Attempt: 1}))

	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, []time.Duration{time.Hour, time.Hour}, delays)
	assert.Empty(t, publisher.events, "retries are published only when their timer fires")

	for _, f := range pending {
		f()
	}
	require.Len(t, publisher.events, 2)
	assert.Equal(t, 2, publisher.events[0].event.(entity.ProfileProvisionRetry).Attempt)
}
