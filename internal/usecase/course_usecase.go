package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mikiasgoitom/Coursely/internal/domain/contract"
	"github.com/mikiasgoitom/Coursely/internal/domain/entity"
	"github.com/mikiasgoitom/Coursely/internal/domain/policy"
	usecasecontract "github.com/mikiasgoitom/Coursely/internal/usecase/contract"
)

// CourseUsecase loads each course, builds its policy resource and evaluates before acting.
type CourseUsecase struct {
	courseRepo     contract.ICourseRepository
	enrollmentRepo contract.IEnrollmentRepository
	storage        contract.IObjectStorage
	evaluator      *policy.Evaluator
	uuidGenerator  contract.IUUIDGenerator
	logger         usecasecontract.IAppLogger
	now            func() time.Time
}

var _ usecasecontract.ICourseUseCase = (*CourseUsecase)(nil)

func NewCourseUsecase(
	courseRepo contract.ICourseRepository,
	enrollmentRepo contract.IEnrollmentRepository,
	storage contract.IObjectStorage,
	evaluator *policy.Evaluator,
	uuidGenerator contract.IUUIDGenerator,
	logger usecasecontract.IAppLogger,
) *CourseUsecase {
	return &CourseUsecase{
		courseRepo:     courseRepo,
		enrollmentRepo: enrollmentRepo,
		storage:        storage,
		evaluator:      evaluator,
		uuidGenerator:  uuidGenerator,
		logger:         logger,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

func courseResource(c *entity.Course) policy.Resource {
	return policy.Resource{Kind: policy.KindCourse, ID: c.ID, OwnerID: c.CreatorID, Published: c.IsPublished()}
}

// CreateCourse stores a draft course owned by the caller.
func (uc *CourseUsecase) CreateCourse(ctx context.Context, principal entity.Principal, in usecasecontract.CourseInput) (*entity.Course, error) {
	if err := uc.evaluator.Authorize(principal, policy.Resource{Kind: policy.KindCourse, OwnerID: principal.ID}, policy.ActionCreate); err != nil {
		return nil, err
	}
	id := uc.uuidGenerator.NewUUID()
	if err := validateCourseInput(id, in); err != nil {
		return nil, err
	}

	now := uc.now()
	course := &entity.Course{
		ID:        id,
		CreatorID: principal.ID,
		State:     entity.CourseStateDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyCourseInput(course, in)
	if err := uc.courseRepo.CreateCourse(ctx, course); err != nil {
		uc.logger.Errorf("failed to create course: %v", err)
		return nil, errors.New(errInternalServer)
	}
	return course, nil
}

func (uc *CourseUsecase) GetCourse(ctx context.Context, principal entity.Principal, id string) (*entity.Course, error) {
	return uc.loadAuthorized(ctx, principal, id, policy.ActionRead)
}

func (uc *CourseUsecase) ListPublishedCourses(ctx context.Context, page, pageSize int) ([]entity.Course, int64, error) {
	page, pageSize = normalizePage(page, pageSize)
	courses, total, err := uc.courseRepo.ListPublishedCourses(ctx, page, pageSize)
	if err != nil {
		uc.logger.Errorf("failed to list published courses: %v", err)
		return nil, 0, errors.New(errInternalServer)
	}
	return courses, total, nil
}

// ListCreatorCourses returns the creator's courses the caller may read: drafts only for the
// creator and admins.
func (uc *CourseUsecase) ListCreatorCourses(ctx context.Context, principal entity.Principal, creatorID string) ([]entity.Course, error) {
	courses, err := uc.courseRepo.ListCoursesByCreator(ctx, creatorID)
	if err != nil {
		uc.logger.Errorf("failed to list courses of %s: %v", creatorID, err)
		return nil, errors.New(errInternalServer)
	}
	visible := make([]entity.Course, 0, len(courses))
	for i := range courses {
		d := uc.evaluator.Evaluate(principal, courseResource(&courses[i]), policy.ActionRead)
		if d.Err == nil {
			visible = append(visible, courses[i])
		} else if errors.Is(d.Err, entity.ErrSuspended) {
			return nil, d.Err
		}
	}
	return visible, nil
}

func (uc *CourseUsecase) UpdateCourse(ctx context.Context, principal entity.Principal, id string, in usecasecontract.CourseInput) (*entity.Course, error) {
	course, err := uc.loadAuthorized(ctx, principal, id, policy.ActionUpdate)
	if err != nil {
		return nil, err
	}
	if err := validateCourseInput(course.ID, in); err != nil {
		return nil, err
	}
	applyCourseInput(course, in)
	return uc.save(ctx, course)
}

func (uc *CourseUsecase) PublishCourse(ctx context.Context, principal entity.Principal, id string) (*entity.Course, error) {
	course, err := uc.loadAuthorized(ctx, principal, id, policy.ActionUpdate)
	if err != nil {
		return nil, err
	}
	if course.IsPublished() {
		return course, nil
	}
	now := uc.now()
	course.State = entity.CourseStatePublished
	course.PublishedAt = &now
	return uc.save(ctx, course)
}

func (uc *CourseUsecase) UnpublishCourse(ctx context.Context, principal entity.Principal, id string) (*entity.Course, error) {
	course, err := uc.loadAuthorized(ctx, principal, id, policy.ActionUpdate)
	if err != nil {
		return nil, err
	}
	if !course.IsPublished() {
		return course, nil
	}
	course.State = entity.CourseStateDraft
	course.PublishedAt = nil
	return uc.save(ctx, course)
}

// DeleteCourse removes the course and its enrollments.
func (uc *CourseUsecase) DeleteCourse(ctx context.Context, principal entity.Principal, id string) error {
	if _, err := uc.loadAuthorized(ctx, principal, id, policy.ActionDelete); err != nil {
		return err
	}
	if err := uc.courseRepo.DeleteCourse(ctx, id); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return err
		}
		uc.logger.Errorf("failed to delete course %s: %v", id, err)
		return errors.New(errInternalServer)
	}
	if err := uc.enrollmentRepo.DeleteEnrollmentsByCourse(ctx, id); err != nil {
		uc.logger.Warnf("enrollments of deleted course %s not removed: %v", id, err)
	}
	return nil
}

// ThumbnailURL is public; thumbnails are shown in the catalog.
func (uc *CourseUsecase) ThumbnailURL(course *entity.Course) string {
	if course == nil || course.ThumbnailKey == "" {
		return ""
	}
	return uc.storage.PublicURL(course.ThumbnailKey)
}

func (uc *CourseUsecase) loadAuthorized(ctx context.Context, principal entity.Principal, id string, action policy.Action) (*entity.Course, error) {
	course, err := uc.courseRepo.GetCourseByID(ctx, id)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, err
		}
		uc.logger.Errorf("failed to load course %s: %v", id, err)
		return nil, errors.New(errInternalServer)
	}
	if err := uc.evaluator.Authorize(principal, courseResource(course), action); err != nil {
		return nil, err
	}
	return course, nil
}

func (uc *CourseUsecase) save(ctx context.Context, course *entity.Course) (*entity.Course, error) {
	if err := uc.courseRepo.UpdateCourse(ctx, course); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, err
		}
		uc.logger.Errorf("failed to update course %s: %v", course.ID, err)
		return nil, errors.New(errInternalServer)
	}
	return course, nil
}

func validateCourseInput(courseID string, in usecasecontract.CourseInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("%w: title is required", entity.ErrValidation)
	}
	if in.PriceCents < 0 {
		return fmt.Errorf("%w: price cannot be negative", entity.ErrValidation)
	}
	if in.VideoKey != "" && !strings.HasPrefix(in.VideoKey, videoKeyPrefix(courseID)) {
		return fmt.Errorf("%w: video key must start with %s", entity.ErrValidation, videoKeyPrefix(courseID))
	}
	if strings.Contains(in.VideoKey, "..") {
		return fmt.Errorf("%w: video key cannot leave the course folder", entity.ErrValidation)
	}
	return nil
}

// videoKeyPrefix is the storage folder a course's protected video must live under.
func videoKeyPrefix(courseID string) string {
	return "courses/" + courseID + "/"
}

func applyCourseInput(course *entity.Course, in usecasecontract.CourseInput) {
	course.Title = strings.TrimSpace(in.Title)
	course.Description = strings.TrimSpace(in.Description)
	course.PriceCents = in.PriceCents
	course.ThumbnailKey = in.ThumbnailKey
	course.VideoKey = in.VideoKey
}
