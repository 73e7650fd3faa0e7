package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mikiasgoitom/Coursely/internal/domain/contract"
	"github.com/mikiasgoitom/Coursely/internal/domain/entity"
	"github.com/mikiasgoitom/Coursely/internal/domain/policy"
	usecasecontract "github.com/mikiasgoitom/Coursely/internal/usecase/contract"
)

type EnrollmentUsecase struct {
	courseRepo     contract.ICourseRepository
	enrollmentRepo contract.IEnrollmentRepository
	storage        contract.IObjectStorage
	evaluator      *policy.Evaluator
	uuidGenerator  contract.IUUIDGenerator
	logger         usecasecontract.IAppLogger
	signedURLTTL   time.Duration
	now            func() time.Time
}

var _ usecasecontract.IEnrollmentUseCase = (*EnrollmentUsecase)(nil)

func NewEnrollmentUsecase(
	courseRepo contract.ICourseRepository,
	enrollmentRepo contract.IEnrollmentRepository,
	storage contract.IObjectStorage,
	evaluator *policy.Evaluator,
	uuidGenerator contract.IUUIDGenerator,
	logger usecasecontract.IAppLogger,
	cfg usecasecontract.IConfigProvider,
) *EnrollmentUsecase {
	return &EnrollmentUsecase{
		courseRepo:     courseRepo,
		enrollmentRepo: enrollmentRepo,
		storage:        storage,
		evaluator:      evaluator,
		uuidGenerator:  uuidGenerator,
		logger:         logger,
		signedURLTTL:   cfg.GetSignedURLExpiry(),
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// Enroll is idempotent; the bool reports whether a new enrollment was stored.
func (uc *EnrollmentUsecase) Enroll(ctx context.Context, principal entity.Principal, courseID string) (*entity.Enrollment, bool, error) {
	course, err := uc.loadCourse(ctx, courseID)
	if err != nil {
		return nil, false, err
	}
	resource := policy.Resource{Kind: policy.KindEnrollment, ID: course.ID, OwnerID: principal.ID, Published: course.IsPublished()}
	if err := uc.evaluator.Authorize(principal, resource, policy.ActionCreate); err != nil {
		return nil, false, err
	}

	enrollment, created, err := uc.enrollmentRepo.CreateEnrollmentIfAbsent(ctx, &entity.Enrollment{
		ID:         uc.uuidGenerator.NewUUID(),
		UserID:     principal.ID,
		CourseID:   course.ID,
		EnrolledAt: uc.now(),
	})
	if err != nil {
		uc.logger.Errorf("failed to enroll %s in %s: %v", principal.ID, course.ID, err)
		return nil, false, errors.New(errInternalServer)
	}
	return enrollment, created, nil
}

func (uc *EnrollmentUsecase) ListMyEnrollments(ctx context.Context, principal entity.Principal) ([]entity.Enrollment, error) {
	resource := policy.Resource{Kind: policy.KindEnrollment, OwnerID: principal.ID}
	if err := uc.evaluator.Authorize(principal, resource, policy.ActionRead); err != nil {
		return nil, err
	}
	enrollments, err := uc.enrollmentRepo.ListEnrollmentsByUser(ctx, principal.ID)
	if err != nil {
		uc.logger.Errorf("failed to list enrollments of %s: %v", principal.ID, err)
		return nil, errors.New(errInternalServer)
	}
	return enrollments, nil
}

// PlaybackURL issues a short-lived signed URL for the course video to its creator, enrolled
// students and admins.
func (uc *EnrollmentUsecase) PlaybackURL(ctx context.Context, principal entity.Principal, courseID string) (*usecasecontract.PlaybackURL, error) {
	course, err := uc.loadCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	resource := policy.Resource{Kind: policy.KindCourseContent, ID: course.ID, OwnerID: course.CreatorID, Published: course.IsPublished()}
	if principal.IsAuthenticated() && !principal.IsSuspended() && principal.ID != course.CreatorID {
		_, err := uc.enrollmentRepo.GetEnrollment(ctx, principal.ID, course.ID)
		switch {
		case err == nil:
			resource.Enrolled = true
		case !errors.Is(err, entity.ErrNotFound):
			uc.logger.Errorf("failed to check enrollment of %s in %s: %v", principal.ID, course.ID, err)
			return nil, errors.New(errInternalServer)
		}
	}
	if err := uc.evaluator.Authorize(principal, resource, policy.ActionRead); err != nil {
		return nil, err
	}
	if course.VideoKey == "" {
		return nil, fmt.Errorf("course %s has no video: %w", course.ID, entity.ErrNotFound)
	}

	url, expiresAt, err := uc.storage.SignedURL(ctx, course.VideoKey, uc.signedURLTTL)
	if err != nil {
		uc.logger.Errorf("failed to sign playback url for %s: %v", course.ID, err)
		return nil, errors.New(errInternalServer)
	}
	return &usecasecontract.PlaybackURL{URL: url, ExpiresAt: expiresAt}, nil
}

// ResolveSignedMedia verifies a signed media token and returns a protected object URL that
// expires together with the token.
func (uc *EnrollmentUsecase) ResolveSignedMedia(_ context.Context, token string) (string, error) {
	key, expiresAt, err := uc.storage.VerifySignedURL(token)
	if err != nil {
		return "", err
	}
	return uc.storage.ProtectedURL(key, expiresAt)
}

func (uc *EnrollmentUsecase) loadCourse(ctx context.Context, id string) (*entity.Course, error) {
	course, err := uc.courseRepo.GetCourseByID(ctx, id)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, err
		}
		uc.logger.Errorf("failed to load course %s: %v", id, err)
		return nil, errors.New(errInternalServer)
	}
	return course, nil
}
