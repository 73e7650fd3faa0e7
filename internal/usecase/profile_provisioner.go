package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mikiasgoitom/Coursely/internal/domain/contract"
	"github.com/mikiasgoitom/Coursely/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/Coursely/internal/usecase/contract"
)

// Provisioning outcomes reported to Metrics.
const (
	ProvisionCreated  = "created"
	ProvisionExisting = "existing"
	ProvisionDeferred = "deferred"
	ProvisionFailed   = "failed"
)

// RetrySubscriber registers handler for profile provisioning retry events.
type RetrySubscriber func(ctx context.Context, handler func(context.Context, entity.ProfileProvisionRetry) error) error

// ProfileProvisioner creates the Profile for a confirmed identity. Creation is
// insert-if-absent, so running it again for the same identity is harmless.
type ProfileProvisioner struct {
	identityRepo contract.IIdentityRepository
	profileRepo  contract.IProfileRepository
	publisher    contract.IEventPublisher
	logger       usecasecontract.IAppLogger
	metrics      Metrics
	maxAttempts  int
	retryDelay   time.Duration
	now          func() time.Time
	afterFunc    func(time.Duration, func()) *time.Timer
}

func NewProfileProvisioner(
	identityRepo contract.IIdentityRepository,
	profileRepo contract.IProfileRepository,
	publisher contract.IEventPublisher,
	logger usecasecontract.IAppLogger,
	cfg usecasecontract.IConfigProvider,
	metrics Metrics,
) *ProfileProvisioner {
	maxAttempts := cfg.GetProfileProvisionMaxAttempts()
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &ProfileProvisioner{
		identityRepo: identityRepo,
		profileRepo:  profileRepo,
		publisher:    publisher,
		logger:       logger,
		metrics:      metricsOrNoop(metrics),
		maxAttempts:  maxAttempts,
		retryDelay:   cfg.GetProfileProvisionRetryDelay(),
		now:          func() time.Time { return time.Now().UTC() },
		afterFunc:    time.AfterFunc,
	}
}

// Provision stores the initial profile built from the identity's signup metadata, or
// returns the one already stored.
func (p *ProfileProvisioner) Provision(ctx context.Context, identity *entity.Identity) (*entity.Profile, error) {
	profile, created, err := p.profileRepo.CreateProfileIfAbsent(ctx, identity.NewProfile(p.now()))
	if err != nil {
		return nil, fmt.Errorf("create profile for %s: %w", identity.ID, err)
	}
	if created {
		p.metrics.ProvisionResult(ProvisionCreated)
		p.logger.Infof("profile created for identity %s with role %s", identity.ID, profile.Role)
	} else {
		p.metrics.ProvisionResult(ProvisionExisting)
	}
	return profile, nil
}

// ProvisionOrDefer never fails its caller. When creation fails it schedules a retry
// and returns nil.
func (p *ProfileProvisioner) ProvisionOrDefer(ctx context.Context, identity *entity.Identity) *entity.Profile {
	profile, err := p.Provision(ctx, identity)
	if err == nil {
		return profile
	}
	p.logger.Errorf("profile provisioning deferred for identity %s: %v", identity.ID, err)
	p.metrics.ProvisionResult(ProvisionDeferred)
	p.scheduleRetry(ctx, identity.ID, 1, err)
	return nil
}

// Start subscribes the retry handler. It returns once the subscription is registered.
func (p *ProfileProvisioner) Start(ctx context.Context, subscribe RetrySubscriber) error {
	if err := subscribe(ctx, p.HandleRetry); err != nil {
		return fmt.Errorf("subscribe to provisioning retries: %w", err)
	}
	return nil
}

// HandleRetry tries again right away and reschedules until the attempt budget is spent.
// The delay between attempts is applied when a retry is scheduled, so the handler never blocks.
func (p *ProfileProvisioner) HandleRetry(ctx context.Context, event entity.ProfileProvisionRetry) error {
	identity, err := p.identityRepo.GetIdentityByID(ctx, event.IdentityID)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			p.logger.Warnf("dropping provisioning retry for unknown identity %s", event.IdentityID)
			return nil
		}
		return p.retryOrGiveUp(ctx, event, err)
	}
	if !identity.IsConfirmed() {
		p.logger.Warnf("dropping provisioning retry for unconfirmed identity %s", identity.ID)
		return nil
	}

	if _, err := p.Provision(ctx, identity); err != nil {
		return p.retryOrGiveUp(ctx, event, err)
	}
	return nil
}

func (p *ProfileProvisioner) retryOrGiveUp(ctx context.Context, event entity.ProfileProvisionRetry, cause error) error {
	if event.Attempt >= p.maxAttempts {
		p.metrics.ProvisionResult(ProvisionFailed)
		return fmt.Errorf("giving up on profile for identity %s after %d attempts: %w", event.IdentityID, event.Attempt, cause)
	}
	p.logger.Warnf("profile provisioning attempt %d for identity %s failed: %v", event.Attempt, event.IdentityID, cause)
	p.scheduleRetry(ctx, event.IdentityID, event.Attempt+1, cause)
	return nil
}

// scheduleRetry publishes the retry event after retryDelay. The caller's cancellation does
// not apply: the retry outlives the request that deferred it.
func (p *ProfileProvisioner) scheduleRetry(ctx context.Context, identityID string, attempt int, cause error) {
	event := entity.ProfileProvisionRetry{
		IdentityID: identityID,
		Attempt:    attempt,
		LastError:  cause.Error(),
		OccurredAt: p.now(),
	}
	publishCtx := context.WithoutCancel(ctx)
	publish := func() {
		if err := p.publisher.Publish(publishCtx, entity.TopicProfileProvisionRetry, event); err != nil {
			p.logger.Errorf("failed to schedule profile provisioning retry for identity %s: %v", identityID, err)
		}
	}
	if p.retryDelay <= 0 {
		publish()
		return
	}
	p.afterFunc(p.retryDelay, publish)
}
