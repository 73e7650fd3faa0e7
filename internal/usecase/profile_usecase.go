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

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type ProfileUsecase struct {
	profileRepo contract.IProfileRepository
	courseRepo  contract.ICourseRepository
	statusStore contract.IStatusStore
	publisher   contract.IEventPublisher
	evaluator   *policy.Evaluator
	logger      usecasecontract.IAppLogger
	now         func() time.Time
}

var _ usecasecontract.IProfileUseCase = (*ProfileUsecase)(nil)

// NewProfileUsecase wires the profile operations. statusStore may be nil.
func NewProfileUsecase(
	profileRepo contract.IProfileRepository,
	courseRepo contract.ICourseRepository,
	statusStore contract.IStatusStore,
	publisher contract.IEventPublisher,
	evaluator *policy.Evaluator,
	logger usecasecontract.IAppLogger,
) *ProfileUsecase {
	return &ProfileUsecase{
		profileRepo: profileRepo,
		courseRepo:  courseRepo,
		statusStore: statusStore,
		publisher:   publisher,
		evaluator:   evaluator,
		logger:      logger,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// GetProfile returns a profile the caller may see: their own, any profile for admins, and
// creators with at least one published course.
func (uc *ProfileUsecase) GetProfile(ctx context.Context, principal entity.Principal, id string) (*entity.Profile, error) {
	resource := policy.Resource{Kind: policy.KindProfile, ID: id, OwnerID: id}
	if principal.ID != id && !principal.IsSuspended() {
		public, err := uc.courseRepo.HasPublishedCourseByCreator(ctx, id)
		if err != nil {
			uc.logger.Errorf("failed to check public attribution for %s: %v", id, err)
			return nil, errors.New(errInternalServer)
		}
		resource.PublicCreator = public
	}
	if err := uc.evaluator.Authorize(principal, resource, policy.ActionRead); err != nil {
		return nil, err
	}
	return uc.load(ctx, id)
}

func (uc *ProfileUsecase) UpdateOwnProfile(ctx context.Context, principal entity.Principal, firstName, lastName string) (*entity.Profile, error) {
	resource := policy.Resource{Kind: policy.KindProfile, ID: principal.ID, OwnerID: principal.ID}
	if err := uc.evaluator.Authorize(principal, resource, policy.ActionUpdate); err != nil {
		return nil, err
	}
	if entity.FullNameOf(firstName, lastName) == "" {
		return nil, fmt.Errorf("%w: first or last name required", entity.ErrValidation)
	}
	var p entity.Profile
	p.SetNames(firstName, lastName)
	profile, err := uc.profileRepo.UpdateNames(ctx, principal.ID, p.FirstName, p.LastName, p.FullName)
	if err != nil {
		return nil, uc.storeError("update names", principal.ID, err)
	}
	return profile, nil
}

func (uc *ProfileUsecase) ListProfiles(ctx context.Context, principal entity.Principal, page, pageSize int) ([]entity.Profile, int64, error) {
	if err := uc.evaluator.Authorize(principal, policy.Resource{Kind: policy.KindProfile}, policy.ActionAdminister); err != nil {
		return nil, 0, err
	}
	page, pageSize = normalizePage(page, pageSize)
	profiles, total, err := uc.profileRepo.ListProfiles(ctx, page, pageSize)
	if err != nil {
		uc.logger.Errorf("failed to list profiles: %v", err)
		return nil, 0, errors.New(errInternalServer)
	}
	return profiles, total, nil
}

// SetRole changes a profile's role. The caller's new role reaches their token on refresh.
func (uc *ProfileUsecase) SetRole(ctx context.Context, principal entity.Principal, id string, role entity.UserRole) (*entity.Profile, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", entity.ErrValidation, role)
	}
	if err := uc.evaluator.Authorize(principal, policy.Resource{Kind: policy.KindProfile, ID: id, OwnerID: id}, policy.ActionAdminister); err != nil {
		return nil, err
	}
	profile, err := uc.profileRepo.UpdateRole(ctx, id, role)
	if err != nil {
		return nil, uc.storeError("update role", id, err)
	}
	uc.logger.Infof("admin %s set role of %s to %s", principal.ID, id, role)
	return profile, nil
}

// SetStatus suspends or reactivates a profile. The status overlay makes the change visible
// to the resolver before the affected token is refreshed.
func (uc *ProfileUsecase) SetStatus(ctx context.Context, principal entity.Principal, id string, status entity.ProfileStatus) (*entity.Profile, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", entity.ErrValidation, status)
	}
	if err := uc.evaluator.Authorize(principal, policy.Resource{Kind: policy.KindProfile, ID: id, OwnerID: id}, policy.ActionAdminister); err != nil {
		return nil, err
	}
	profile, err := uc.profileRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, uc.storeError("update status", id, err)
	}
	if uc.statusStore != nil {
		if err := uc.statusStore.SetStatus(ctx, id, status); err != nil {
			uc.logger.Warnf("status overlay not updated for %s: %v", id, err)
		}
	}
	event := entity.ProfileStatusChanged{ProfileID: id, Status: status, ChangedBy: principal.ID, OccurredAt: uc.now()}
	if err := uc.publisher.Publish(ctx, entity.TopicProfileStatusChanged, event); err != nil {
		uc.logger.Warnf("failed to publish %s: %v", entity.TopicProfileStatusChanged, err)
	}
	uc.logger.Infof("admin %s set status of %s to %s", principal.ID, id, status)
	return profile, nil
}

func (uc *ProfileUsecase) load(ctx context.Context, id string) (*entity.Profile, error) {
	profile, err := uc.profileRepo.GetProfileByID(ctx, id)
	if err != nil {
		return nil, uc.storeError("get", id, err)
	}
	return profile, nil
}

func (uc *ProfileUsecase) storeError(op, id string, err error) error {
	if errors.Is(err, entity.ErrProfileNotFound) {
		return err
	}
	uc.logger.Errorf("profile %s %s failed: %v", op, id, err)
	return errors.New(errInternalServer)
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}
