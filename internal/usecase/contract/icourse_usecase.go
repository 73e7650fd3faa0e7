package usecasecontract

import (
	"context"
	"time"

	"github.com/mikiasgoitom/Coursely/internal/domain/entity"
)

type CourseInput struct {
	Title        string
	Description  string
	PriceCents   int64
	ThumbnailKey string
	VideoKey     string
}

type ICourseUseCase interface {
	CreateCourse(ctx context.Context, principal entity.Principal, in CourseInput) (*entity.Course, error)
	GetCourse(ctx context.Context, principal entity.Principal, id string) (*entity.Course, error)
	ListPublishedCourses(ctx context.Context, page, pageSize int) ([]entity.Course, int64, error)
	ListCreatorCourses(ctx context.Context, principal entity.Principal, creatorID string) ([]entity.Course, error)
	UpdateCourse(ctx context.Context, principal entity.Principal, id string, in CourseInput) (*entity.Course, error)
	PublishCourse(ctx context.Context, principal entity.Principal, id string) (*entity.Course, error)
	UnpublishCourse(ctx context.Context, principal entity.Principal, id string) (*entity.Course, error)
	DeleteCourse(ctx context.Context, principal entity.Principal, id string) error
	ThumbnailURL(course *entity.Course) string
}

type PlaybackURL struct {
	URL       string
	ExpiresAt time.Time
}

type IEnrollmentUseCase interface {
	Enroll(ctx context.Context, principal entity.Principal, courseID string) (*entity.Enrollment, bool, error)
	ListMyEnrollments(ctx context.Context, principal entity.Principal) ([]entity.Enrollment, error)
	PlaybackURL(ctx context.Context, principal entity.Principal, courseID string) (*PlaybackURL, error)
	ResolveSignedMedia(ctx context.Context, token string) (string, error)
}
