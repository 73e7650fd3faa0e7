package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/mikiasgoitom/Coursely/internal/domain/contract"
	"github.com/mikiasgoitom/Coursely/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/Coursely/internal/usecase/contract"
)

// ProfileResolver turns session claims into a Principal. It reads the profile table at most
// once per call and never evaluates access itself.
type ProfileResolver struct {
	profileRepo contract.IProfileRepository
	statusStore contract.IStatusStore
	logger      usecasecontract.IAppLogger
	metrics     Metrics
}

var _ usecasecontract.IProfileResolver = (*ProfileResolver)(nil)

// NewProfileResolver builds a resolver. statusStore may be nil.
func NewProfileResolver(profileRepo contract.IProfileRepository, statusStore contract.IStatusStore, logger usecasecontract.IAppLogger, metrics Metrics) *ProfileResolver {
	return &ProfileResolver{
		profileRepo: profileRepo,
		statusStore: statusStore,
		logger:      logger,
		metrics:     metricsOrNoop(metrics),
	}
}

// Resolve returns entity.ErrProfileNotFound with an unprivileged principal when the profile
// has not been created yet, and entity.ErrSuspended together with the suspended principal.
func (r *ProfileResolver) Resolve(ctx context.Context, claims *entity.Claims) (entity.Principal, error) {
	if claims == nil || claims.UserID == "" {
		return entity.Anonymous(), nil
	}
	principal := entity.Principal{ID: claims.UserID}

	if claims.HasProfileClaims() {
		principal.Role = claims.Role
		principal.Status = claims.Status
		r.metrics.ResolverSource("claims")
	} else {
		r.metrics.ResolverSource("lookup")
		profile, err := r.profileRepo.GetProfileByID(ctx, claims.UserID)
		if err != nil {
			if errors.Is(err, entity.ErrProfileNotFound) {
				return principal, entity.ErrProfileNotFound
			}
			return principal, fmt.Errorf("resolve profile %s: %w", claims.UserID, err)
		}
		principal.Role = profile.Role
		principal.Status = profile.Status
	}

	if r.statusStore != nil {
		status, ok, err := r.statusStore.GetStatus(ctx, claims.UserID)
		if err != nil {
			r.logger.Warnf("status overlay unavailable for %s: %v", claims.UserID, err)
		} else if ok {
			principal.Status = status
		}
	}

	if principal.IsSuspended() {
		return principal, entity.ErrSuspended
	}
	return principal, nil
}
