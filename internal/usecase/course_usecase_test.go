package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikiasgoitom/Coursely/internal/domain/entity"
	"github.com/mikiasgoitom/Coursely/internal/domain/policy"
	usecasecontract "github.com/mikiasgoitom/Coursely/internal/usecase/contract"
)

func newCourseFixture(courses ...entity.Course) (*CourseUsecase, *fakeCourseRepo, *fakeEnrollmentRepo) {
	repo := newFakeCourseRepo(courses...)
	enrollments := &fakeEnrollmentRepo{}
	uc := NewCourseUsecase(repo, enrollments, fakeStorage{}, policy.NewEvaluator(nil), &seqGenerator{}, &fakeLogger{})
	return uc, repo, enrollments
}

func TestCreateCourse(t *testing.T) {
	uc, _, _ := newCourseFixture()
	ctx := context.Background()
	in := usecasecontract.CourseInput{Title: "Go in Practice", PriceCents: 1999, ThumbnailKey: "thumbs/go.png"}

	course, err := uc.CreateCourse(ctx, creatorPrincipal, in)
	require.NoError(t, err)
	assert.Equal(t, "creator", course.CreatorID)
	assert.Equal(t, entity.CourseStateDraft, course.State)
	assert.Equal(t, "https://cdn.test/thumbs/go.png", uc.ThumbnailURL(course))

	_, err = uc.CreateCourse(ctx, studentPrincipal, in)
	assert.ErrorIs(t, err, entity.ErrForbidden)
	_, err = uc.CreateCourse(ctx, entity.Anonymous(), in)
	assert.ErrorIs(t, err, entity.ErrAuthRequired)
	_, err = uc.CreateCourse(ctx, creatorPrincipal, usecasecontract.CourseInput{Title: " "})
	assert.ErrorIs(t, err, entity.ErrValidation)
}

func TestGetCourse_UnpublishedHiddenFromOthers(t *testing.T) {
	uc, _, _ := newCourseFixture(entity.Course{ID: "draft", CreatorID: "creator", State: entity.CourseStateDraft})
	ctx := context.Background()

	_, err := uc.GetCourse(ctx, studentPrincipal, "draft")
	assert.ErrorIs(t, err, entity.ErrForbidden)
	_, err = uc.GetCourse(ctx, entity.Anonymous(), "draft")
	assert.ErrorIs(t, err, entity.ErrAuthRequired)

	_, err = uc.GetCourse(ctx, creatorPrincipal, "draft")
	assert.NoError(t, err)
	_, err = uc.GetCourse(ctx, adminPrincipal, "draft")
	assert.NoError(t, err)

	_, err = uc.GetCourse(ctx, adminPrincipal, "missing")
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestPublishLifecycle(t *testing.T) {
	uc, _, _ := newCourseFixture(entity.Course{ID: "c", CreatorID: "creator", Title: "C", State: entity.CourseStateDraft})
	ctx := context.Background()

	_, err := uc.PublishCourse(ctx, studentPrincipal, "c")
	assert.ErrorIs(t, err, entity.ErrForbidden)

	course, err := uc.PublishCourse(ctx, creatorPrincipal, "c")
	require.NoError(t, err)
	assert.True(t, course.IsPublished())
	require.NotNil(t, course.PublishedAt)

	_, err = uc.GetCourse(ctx, entity.Anonymous(), "c")
	assert.NoError(t, err)
	published, total, err := uc.ListPublishedCourses(ctx, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Len(t, published, 1)

	course, err = uc.UnpublishCourse(ctx, creatorPrincipal, "c")
	require.NoError(t, err)
	assert.False(t, course.IsPublished())
	assert.Nil(t, course.PublishedAt)
}

func TestListCreatorCourses_FiltersDrafts(t *testing.T) {
	uc, _, _ := newCourseFixture(
		entity.Course{ID: "a", CreatorID: "creator", State: entity.CourseStatePublished},
		entity.Course{ID: "b", CreatorID: "creator", State: entity.CourseStateDraft},
	)
	ctx := context.Background()

	own, err := uc.ListCreatorCourses(ctx, creatorPrincipal, "creator")
	require.NoError(t, err)
	assert.Len(t, own, 2)

	public, err := uc.ListCreatorCourses(ctx, entity.Anonymous(), "creator")
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, "a", public[0].ID)
}

func TestUpdateAndDeleteCourse(t *testing.T) {
	uc, repo, enrollments := newCourseFixture(entity.Course{ID: "c", CreatorID: "creator", Title: "Old", State: entity.CourseStatePublished})
	ctx := context.Background()
	enrollments.enrollments = []entity.Enrollment{{ID: "e", UserID: "student", CourseID: "c"}}

	_, err := uc.UpdateCourse(ctx, studentPrincipal, "c", usecasecontract.CourseInput{Title: "Hacked"})
	assert.ErrorIs(t, err, entity.ErrForbidden)

	course, err := uc.UpdateCourse(ctx, creatorPrincipal, "c", usecasecontract.CourseInput{Title: "New", PriceCents: 500})
	require.NoError(t, err)
	assert.Equal(t, "New", course.Title)
	assert.EqualValues(t, 500, repo.courses["c"].PriceCents)

	assert.ErrorIs(t, uc.DeleteCourse(ctx, studentPrincipal, "c"), entity.ErrForbidden)
	require.NoError(t, uc.DeleteCourse(ctx, creatorPrincipal, "c"))
	assert.Empty(t, repo.courses)
	assert.Empty(t, enrollments.enrollments)
}

func TestCourseVideoKeyScopedToCourse(t *testing.T) {
	uc, repo, _ := newCourseFixture(
		entity.Course{ID: "c", CreatorID: "creator", Title: "Mine", State: entity.CourseStateDraft},
		entity.Course{ID: "paid", CreatorID: "other", Title: "Paid", State: entity.CourseStatePublished, VideoKey: "courses/paid/full.mp4"},
	)
	ctx := context.Background()

	for _, key := range []string{"courses/paid/full.mp4", "videos/full.mp4", "courses/c/../paid/full.mp4", "courses/cx/full.mp4"} {
		_, err := uc.UpdateCourse(ctx, creatorPrincipal, "c", usecasecontract.CourseInput{Title: "Mine", VideoKey: key})
		assert.ErrorIs(t, err, entity.ErrValidation, key)
	}
	assert.Empty(t, repo.courses["c"].VideoKey)

	course, err := uc.UpdateCourse(ctx, creatorPrincipal, "c", usecasecontract.CourseInput{Title: "Mine", VideoKey: "courses/c/intro.mp4"})
	require.NoError(t, err)
	assert.Equal(t, "courses/c/intro.mp4", course.VideoKey)

	_, err = uc.CreateCourse(ctx, creatorPrincipal, usecasecontract.CourseInput{Title: "New", VideoKey: "courses/paid/full.mp4"})
	assert.ErrorIs(t, err, entity.ErrValidation)
	created, err := uc.CreateCourse(ctx, creatorPrincipal, usecasecontract.CourseInput{Title: "New", VideoKey: "courses/id-2/intro.mp4"})
	require.NoError(t, err)
	assert.Equal(t, "id-2", created.ID)
	assert.Equal(t, "courses/id-2/intro.mp4", created.VideoKey)
}
