package contract

import (
	"context"

	"github.com/mikiasgoitom/Coursely/internal/domain/entity"
)

type ICourseRepository interface {
	CreateCourse(ctx context.Context, course *entity.Course) error
	GetCourseByID(ctx context.Context, id string) (*entity.Course, error)
	UpdateCourse(ctx context.Context, course *entity.Course) error
	DeleteCourse(ctx context.Context, id string) error
	ListPublishedCourses(ctx context.Context, page, pageSize int) ([]entity.Course, int64, error)
	ListCoursesByCreator(ctx context.Context, creatorID string) ([]entity.Course, error)
	// HasPublishedCourseByCreator backs public attribution of creator profiles.
	HasPublishedCourseByCreator(ctx context.Context, creatorID string) (bool, error)
}

type IEnrollmentRepository interface {
	// CreateEnrollmentIfAbsent is idempotent per (user, course).
	CreateEnrollmentIfAbsent(ctx context.Context, enrollment *entity.Enrollment) (*entity.Enrollment, bool, error)
	GetEnrollment(ctx context.Context, userID, courseID string) (*entity.Enrollment, error)
	ListEnrollmentsByUser(ctx context.Context, userID string) ([]entity.Enrollment, error)
	DeleteEnrollmentsByCourse(ctx context.Context, courseID string) error
}
