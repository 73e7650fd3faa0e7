package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikiasgoitom/Coursely/internal/domain/entity"
	"github.com/mikiasgoitom/Coursely/internal/domain/policy"
)

var (
	adminPrincipal   = entity.Principal{ID: "admin", Role: entity.UserRoleAdmin, Status: entity.ProfileStatusActive}
	creatorPrincipal = entity.Principal{ID: "creator", Role: entity.UserRoleCreator, Status: entity.ProfileStatusActive}
	studentPrincipal = entity.Principal{ID: "student", Role: entity.UserRoleStudent, Status: entity.ProfileStatusActive}
)

func seedProfiles() *fakeProfileRepo {
	repo := newFakeProfileRepo()
	for _, p := range []entity.Principal{adminPrincipal, creatorPrincipal, studentPrincipal} {
		repo.byID[p.ID] = &entity.Profile{ID: p.ID, Role: p.Role, Status: p.Status, FullName: p.ID}
	}
	return repo
}

func TestGetProfile(t *testing.T) {
	ctx := context.Background()
	courses := newFakeCourseRepo(entity.Course{ID: "c1", CreatorID: "creator", State: entity.CourseStateDraft})
	uc := NewProfileUsecase(seedProfiles(), courses, nil, &fakePublisher{}, policy.NewEvaluator(nil), &fakeLogger{})

	p, err := uc.GetProfile(ctx, studentPrincipal, "student")
	require.NoError(t, err)
	assert.Equal(t, "student", p.ID)

	_, err = uc.GetProfile(ctx, studentPrincipal, "creator")
	assert.ErrorIs(t, err, entity.ErrForbidden, "creator without published course is private")

	courses.courses["c1"].State = entity.CourseStatePublished
	p, err = uc.GetProfile(ctx, studentPrincipal, "creator")
	require.NoError(t, err)
	assert.Equal(t, "creator", p.ID)

	_, err = uc.GetProfile(ctx, entity.Anonymous(), "student")
	assert.ErrorIs(t, err, entity.ErrAuthRequired)

	_, err = uc.GetProfile(ctx, adminPrincipal, "missing")
	assert.ErrorIs(t, err, entity.ErrProfileNotFound)
}

func TestGetProfile_SuspendedMayReadOwnOnly(t *testing.T) {
	ctx := context.Background()
	courses := newFakeCourseRepo(entity.Course{ID: "c1", CreatorID: "creator", State: entity.CourseStatePublished})
	uc := NewProfileUsecase(seedProfiles(), courses, nil, &fakePublisher{}, policy.NewEvaluator(nil), &fakeLogger{})
	suspended := studentPrincipal
	suspended.Status = entity.ProfileStatusSuspended

	_, err := uc.GetProfile(ctx, suspended, "student")
	assert.NoError(t, err)
	_, err = uc.GetProfile(ctx, suspended, "creator")
	assert.ErrorIs(t, err, entity.ErrSuspended)
	_, err = uc.UpdateOwnProfile(ctx, suspended, "New", "Name")
	assert.ErrorIs(t, err, entity.ErrSuspended)
}

func TestUpdateOwnProfile(t *testing.T) {
	uc := NewProfileUsecase(seedProfiles(), newFakeCourseRepo(), nil, &fakePublisher{}, policy.NewEvaluator(nil), &fakeLogger{})

	p, err := uc.UpdateOwnProfile(context.Background(), studentPrincipal, " Alan ", "Turing")
	require.NoError(t, err)
	assert.Equal(t, "Alan", p.FirstName)
	assert.Equal(t, "Alan Turing", p.FullName)
	assert.Equal(t, entity.UserRoleStudent, p.Role)

	_, err = uc.UpdateOwnProfile(context.Background(), studentPrincipal, " ", "")
	assert.ErrorIs(t, err, entity.ErrValidation)
}

func TestAdminOperations(t *testing.T) {
	ctx := context.Background()
	store := &fakeStatusStore{}
	publisher := &fakePublisher{}
	uc := NewProfileUsecase(seedProfiles(), newFakeCourseRepo(), store, publisher, policy.NewEvaluator(nil), &fakeLogger{})

	_, _, err := uc.ListProfiles(ctx, creatorPrincipal, 1, 10)
	assert.ErrorIs(t, err, entity.ErrForbidden)
	_, err = uc.SetRole(ctx, studentPrincipal, "student", entity.UserRoleAdmin)
	assert.ErrorIs(t, err, entity.ErrForbidden, "no self promotion")

	profiles, total, err := uc.ListProfiles(ctx, adminPrincipal, 0, 0)
	require.NoError(t, err)
	assert.Len(t, profiles, 3)
	assert.EqualValues(t, 3, total)

	p, err := uc.SetRole(ctx, adminPrincipal, "student", entity.UserRoleCreator)
	require.NoError(t, err)
	assert.Equal(t, entity.UserRoleCreator, p.Role)
	_, err = uc.SetRole(ctx, adminPrincipal, "student", "overlord")
	assert.ErrorIs(t, err, entity.ErrValidation)

	p, err = uc.SetStatus(ctx, adminPrincipal, "student", entity.ProfileStatusSuspended)
	require.NoError(t, err)
	assert.Equal(t, entity.ProfileStatusSuspended, p.Status)
	status, ok, _ := store.GetStatus(ctx, "student")
	assert.True(t, ok)
	assert.Equal(t, entity.ProfileStatusSuspended, status)
	assert.Contains(t, publisher.topics(), entity.TopicProfileStatusChanged)
}
