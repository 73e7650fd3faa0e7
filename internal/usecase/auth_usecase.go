package usecase

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mikiasgoitom/Coursely/internal/domain/contract"
	"github.com/mikiasgoitom/Coursely/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/Coursely/internal/usecase/contract"
)

// Confirmation outcomes reported to Metrics.
const (
	ConfirmationConfirmed        = "confirmed"
	ConfirmationAlreadyConfirmed = "already_confirmed"
	ConfirmationRejected         = "rejected"
)

const errInternalServer = "internal server error"

// AuthUsecase implements the signup, confirmation and session flows.
type AuthUsecase struct {
	identityRepo  contract.IIdentityRepository
	profileRepo   contract.IProfileRepository
	tokenRepo     contract.ITokenRepository
	confirmations *EmailConfirmationUseCase
	provisioner   *ProfileProvisioner
	hasher        contract.IHasher
	jwtService    JWTService
	publisher     contract.IEventPublisher
	logger        usecasecontract.IAppLogger
	config        usecasecontract.IConfigProvider
	validator     usecasecontract.IValidator
	uuidGenerator contract.IUUIDGenerator
	metrics       Metrics
	now           func() time.Time
}

// NewAuthUsecase creates a new AuthUsecase instance.
func NewAuthUsecase(
	identityRepo contract.IIdentityRepository,
	profileRepo contract.IProfileRepository,
	tokenRepo contract.ITokenRepository,
	confirmations *EmailConfirmationUseCase,
	provisioner *ProfileProvisioner,
	hasher contract.IHasher,
	jwtService JWTService,
	publisher contract.IEventPublisher,
	logger usecasecontract.IAppLogger,
	cfg usecasecontract.IConfigProvider,
	validator usecasecontract.IValidator,
	uuidGenerator contract.IUUIDGenerator,
	metrics Metrics,
) *AuthUsecase {
	return &AuthUsecase{
		identityRepo:  identityRepo,
		profileRepo:   profileRepo,
		tokenRepo:     tokenRepo,
		confirmations: confirmations,
		provisioner:   provisioner,
		hasher:        hasher,
		jwtService:    jwtService,
		publisher:     publisher,
		logger:        logger,
		config:        cfg,
		validator:     validator,
		uuidGenerator: uuidGenerator,
		metrics:       metricsOrNoop(metrics),
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// check if AuthUsecase implements the IAuthUseCase
var _ usecasecontract.IAuthUseCase = (*AuthUsecase)(nil)

// Signup registers a student or creator. Admin accounts go through AdminSignup.
func (uc *AuthUsecase) Signup(ctx context.Context, in usecasecontract.SignupInput) (*entity.Identity, error) {
	role := in.Role
	switch role {
	case "":
		role = entity.DefaultRole()
	case entity.UserRoleStudent, entity.UserRoleCreator:
	default:
		return nil, fmt.Errorf("%w: role %q cannot be requested at signup", entity.ErrValidation, in.Role)
	}
	return uc.signup(ctx, in, role)
}

// AdminSignup registers an admin when accessCode matches the configured code.
func (uc *AuthUsecase) AdminSignup(ctx context.Context, in usecasecontract.SignupInput, accessCode string) (*entity.Identity, error) {
	expected := uc.config.GetAdminAccessCode()
	if expected == "" || subtle.ConstantTimeCompare([]byte(accessCode), []byte(expected)) != 1 {
		uc.logger.Warnf("admin signup rejected for %s: wrong access code", in.Email)
		return nil, entity.ErrInvalidAccessCode
	}
	return uc.signup(ctx, in, entity.UserRoleAdmin)
}

func (uc *AuthUsecase) signup(ctx context.Context, in usecasecontract.SignupInput, role entity.UserRole) (*entity.Identity, error) {
	email := normalizeEmail(in.Email)
	if err := uc.validator.ValidateEmail(email); err != nil {
		return nil, fmt.Errorf("%w: invalid email format: %v", entity.ErrValidation, err)
	}
	if err := uc.validator.ValidatePasswordStrength(in.Password); err != nil {
		return nil, fmt.Errorf("%w: weak password: %v", entity.ErrValidation, err)
	}

	existing, err := uc.identityRepo.GetIdentityByEmail(ctx, email)
	if err != nil && !errors.Is(err, entity.ErrNotFound) {
		uc.logger.Errorf("failed to check for existing identity by email: %v", err)
		return nil, errors.New(errInternalServer)
	}
	if existing != nil {
		return nil, fmt.Errorf("identity with email %s: %w", email, entity.ErrConflict)
	}

	hashedPassword, err := uc.hasher.HashPassword(in.Password)
	if err != nil {
		uc.logger.Errorf("failed to hash password: %v", err)
		return nil, errors.New("failed to process password")
	}

	now := uc.now()
	identity := &entity.Identity{
		ID:           uc.uuidGenerator.NewUUID(),
		Email:        email,
		PasswordHash: hashedPassword,
		Metadata: entity.SignupMetadata{
			FirstName: strings.TrimSpace(in.FirstName),
			LastName:  strings.TrimSpace(in.LastName),
			Role:      role,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	sendEmail := uc.config.GetSendConfirmationEmail()
	if !sendEmail {
		identity.EmailConfirmedAt = &now
	}

	if err := uc.identityRepo.CreateIdentity(ctx, identity); err != nil {
		if errors.Is(err, entity.ErrConflict) {
			return nil, err
		}
		uc.logger.Errorf("failed to create identity: %v", err)
		return nil, errors.New("failed to register identity")
	}
	uc.publish(ctx, entity.TopicIdentitySignedUp, entity.IdentitySignedUp{
		IdentityID: identity.ID,
		Email:      identity.Email,
		Role:       role,
		OccurredAt: now,
	})

	if !sendEmail {
		uc.provisioner.ProvisionOrDefer(ctx, identity)
		return identity, nil
	}
	// the identity exists either way; a lost email can be re-requested
	if err := uc.confirmations.RequestConfirmationEmail(ctx, identity); err != nil {
		uc.logger.Errorf("confirmation email for %s not delivered: %v", identity.ID, err)
	}
	return identity, nil
}

// ConfirmEmail accepts the link token or the email plus code. Confirming an identity that is
// already confirmed succeeds and only re-runs the idempotent profile creation.
func (uc *AuthUsecase) ConfirmEmail(ctx context.Context, in usecasecontract.ConfirmEmailInput) (*usecasecontract.ConfirmEmailResult, error) {
	identity, token, err := uc.lookupConfirmation(ctx, in)
	if err != nil {
		if errors.Is(err, entity.ErrInvalidToken) || errors.Is(err, entity.ErrValidation) {
			uc.metrics.ConfirmationResult(ConfirmationRejected)
		}
		return nil, err
	}

	if identity.IsConfirmed() {
		uc.metrics.ConfirmationResult(ConfirmationAlreadyConfirmed)
		return &usecasecontract.ConfirmEmailResult{
			Identity:         identity,
			Profile:          uc.provisioner.ProvisionOrDefer(ctx, identity),
			AlreadyConfirmed: true,
		}, nil
	}
	if token == nil || !uc.confirmations.Usable(token) {
		uc.metrics.ConfirmationResult(ConfirmationRejected)
		return nil, entity.ErrInvalidToken
	}

	now := uc.now()
	if err := uc.identityRepo.MarkEmailConfirmed(ctx, identity.ID, now); err != nil {
		uc.logger.Errorf("failed to mark identity %s confirmed: %v", identity.ID, err)
		return nil, errors.New(errInternalServer)
	}
	identity.EmailConfirmedAt = &now
	if err := uc.confirmations.Consume(ctx, token); err != nil {
		uc.logger.Warnf("%v", err)
	}

	uc.metrics.ConfirmationResult(ConfirmationConfirmed)
	return &usecasecontract.ConfirmEmailResult{
		Identity: identity,
		Profile:  uc.provisioner.ProvisionOrDefer(ctx, identity),
	}, nil
}

func (uc *AuthUsecase) lookupConfirmation(ctx context.Context, in usecasecontract.ConfirmEmailInput) (*entity.Identity, *entity.Token, error) {
	switch {
	case in.Token != "":
		token, err := uc.confirmations.LookupLinkToken(ctx, strings.TrimSpace(in.Token))
		if err != nil {
			return nil, nil, err
		}
		identity, err := uc.identityRepo.GetIdentityByID(ctx, token.UserID)
		if err != nil {
			if errors.Is(err, entity.ErrNotFound) {
				return nil, nil, entity.ErrInvalidToken
			}
			return nil, nil, fmt.Errorf("load identity %s: %w", token.UserID, err)
		}
		return identity, token, nil

	case in.Email != "" && in.Code != "":
		identity, err := uc.identityRepo.GetIdentityByEmail(ctx, normalizeEmail(in.Email))
		if err != nil {
			if errors.Is(err, entity.ErrNotFound) {
				return nil, nil, entity.ErrInvalidToken
			}
			return nil, nil, fmt.Errorf("load identity: %w", err)
		}
		if identity.IsConfirmed() {
			return identity, nil, nil
		}
		token, err := uc.confirmations.CheckCode(ctx, identity.ID, in.Code)
		if err != nil {
			return nil, nil, err
		}
		return identity, token, nil
	}
	return nil, nil, fmt.Errorf("%w: token or email and confirmation code required", entity.ErrValidation)
}

// ResendConfirmation mails fresh credentials to a pending identity. Unknown and confirmed
// emails are ignored so the endpoint does not reveal which addresses are registered.
func (uc *AuthUsecase) ResendConfirmation(ctx context.Context, email string) error {
	identity, err := uc.identityRepo.GetIdentityByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil
		}
		uc.logger.Errorf("failed to load identity for resend: %v", err)
		return errors.New(errInternalServer)
	}
	if identity.IsConfirmed() {
		return nil
	}
	if err := uc.confirmations.RequestConfirmationEmail(ctx, identity); err != nil {
		uc.logger.Errorf("resend confirmation for %s failed: %v", identity.ID, err)
		return errors.New("failed to send confirmation email")
	}
	return nil
}

// Login checks credentials and issues a session. Pending identities are rejected.
func (uc *AuthUsecase) Login(ctx context.Context, email, password string) (*usecasecontract.LoginResult, error) {
	identity, err := uc.identityRepo.GetIdentityByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, entity.ErrInvalidCredentials
		}
		uc.logger.Errorf("failed to retrieve identity for login: %v", err)
		return nil, errors.New(errInternalServer)
	}
	if identity.PasswordHash == "" {
		return nil, entity.ErrInvalidCredentials
	}
	if err := uc.hasher.ComparePasswordHash(password, identity.PasswordHash); err != nil {
		return nil, entity.ErrInvalidCredentials
	}
	if !identity.IsConfirmed() {
		return nil, entity.ErrEmailNotConfirmed
	}
	return uc.startSession(ctx, identity)
}

// LoginWithOAuth signs in an identity whose email the provider already verified, creating it
// on first use.
func (uc *AuthUsecase) LoginWithOAuth(ctx context.Context, firstName, lastName, email string) (*usecasecontract.LoginResult, error) {
	email = normalizeEmail(email)
	now := uc.now()

	identity, err := uc.identityRepo.GetIdentityByEmail(ctx, email)
	switch {
	case errors.Is(err, entity.ErrNotFound):
		identity = &entity.Identity{
			ID:    uc.uuidGenerator.NewUUID(),
			Email: email,
			Metadata: entity.SignupMetadata{
				FirstName: strings.TrimSpace(firstName),
				LastName:  strings.TrimSpace(lastName),
				Role:      entity.DefaultRole(),
			},
			EmailConfirmedAt: &now,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		if err := uc.identityRepo.CreateIdentity(ctx, identity); err != nil {
			uc.logger.Errorf("failed to create oauth identity: %v", err)
			return nil, errors.New("failed to register identity")
		}
		uc.publish(ctx, entity.TopicIdentitySignedUp, entity.IdentitySignedUp{
			IdentityID: identity.ID,
			Email:      identity.Email,
			Role:       identity.Metadata.Role,
			OccurredAt: now,
		})
	case err != nil:
		uc.logger.Errorf("failed to retrieve identity for oauth login: %v", err)
		return nil, errors.New(errInternalServer)
	case !identity.IsConfirmed():
		// The pending signup never proved ownership of the address; its password and
		// signup details are discarded.
		metadata := entity.SignupMetadata{
			FirstName: strings.TrimSpace(firstName),
			LastName:  strings.TrimSpace(lastName),
			Role:      entity.DefaultRole(),
		}
		if err := uc.identityRepo.ClaimPendingIdentity(ctx, identity.ID, metadata, now); err != nil {
			uc.logger.Errorf("failed to confirm identity %s after oauth: %v", identity.ID, err)
			return nil, errors.New(errInternalServer)
		}
		if err := uc.tokenRepo.RevokeAllTokensForUser(ctx, identity.ID, entity.TokenTypeEmailConfirmation); err != nil {
			uc.logger.Errorf("failed to revoke confirmation tokens for %s after oauth: %v", identity.ID, err)
			return nil, errors.New(errInternalServer)
		}
		identity, err = uc.identityRepo.GetIdentityByID(ctx, identity.ID)
		if err != nil {
			uc.logger.Errorf("failed to reload identity after oauth: %v", err)
			return nil, errors.New(errInternalServer)
		}
	}
	return uc.startSession(ctx, identity)
}

// RefreshToken rotates the refresh token and re-reads the profile so role and status
// changes reach the claims.
func (uc *AuthUsecase) RefreshToken(ctx context.Context, refreshToken string) (string, string, error) {
	claims, err := uc.jwtService.ParseRefreshToken(refreshToken)
	if err != nil {
		return "", "", err
	}

	storedToken, err := uc.tokenRepo.GetTokenByUserID(ctx, claims.UserID, entity.TokenTypeRefresh)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return "", "", fmt.Errorf("%w: refresh token revoked, please log in again", entity.ErrInvalidToken)
		}
		uc.logger.Errorf("failed to retrieve stored refresh token: %v", err)
		return "", "", errors.New(errInternalServer)
	}
	if !uc.hasher.CheckHash(refreshToken, storedToken.TokenHash) {
		uc.logger.Warnf("refresh token mismatch for user %s", claims.UserID)
		_ = uc.tokenRepo.RevokeToken(ctx, storedToken.ID)
		return "", "", fmt.Errorf("%w: refresh token mismatch", entity.ErrInvalidToken)
	}
	if storedToken.Expired(uc.now()) {
		_ = uc.tokenRepo.RevokeToken(ctx, storedToken.ID)
		return "", "", fmt.Errorf("%w: refresh token expired, please log in again", entity.ErrInvalidToken)
	}

	profile, err := uc.currentProfile(ctx, claims.UserID)
	if err != nil {
		return "", "", err
	}
	newAccessToken, err := uc.accessTokenFor(claims.UserID, profile)
	if err != nil {
		return "", "", err
	}
	newRefreshToken, err := uc.jwtService.GenerateRefreshToken(claims.UserID)
	if err != nil {
		uc.logger.Errorf("failed to generate new refresh token during refresh: %v", err)
		return "", "", errors.New("failed to generate new refresh token")
	}

	err = uc.tokenRepo.UpdateToken(ctx, storedToken.ID, uc.hasher.HashString(newRefreshToken), uc.now().Add(uc.config.GetRefreshTokenExpiry()))
	if err != nil {
		uc.logger.Errorf("failed to update refresh token in db: %v", err)
		return "", "", errors.New("failed to update token")
	}
	return newAccessToken, newRefreshToken, nil
}

// Logout revokes the caller's refresh token. An already invalid token is not an error.
func (uc *AuthUsecase) Logout(ctx context.Context, refreshToken string) error {
	claims, err := uc.jwtService.ParseRefreshToken(refreshToken)
	if err != nil {
		uc.logger.Warnf("failed to parse refresh token on logout, assuming it's already invalid: %v", err)
		return nil
	}
	if err := uc.tokenRepo.RevokeAllTokensForUser(ctx, claims.UserID, entity.TokenTypeRefresh); err != nil {
		uc.logger.Errorf("failed to revoke refresh tokens for user %s: %v", claims.UserID, err)
		return errors.New("failed to revoke token")
	}
	return nil
}

func (uc *AuthUsecase) startSession(ctx context.Context, identity *entity.Identity) (*usecasecontract.LoginResult, error) {
	profile, err := uc.profileRepo.GetProfileByID(ctx, identity.ID)
	if errors.Is(err, entity.ErrProfileNotFound) {
		// creation was deferred at confirmation; try again before giving up on role claims
		profile, err = uc.provisioner.Provision(ctx, identity)
		if err != nil {
			uc.logger.Warnf("issuing session without role claims for %s: %v", identity.ID, err)
			profile, err = nil, nil
		}
	}
	if err != nil {
		uc.logger.Errorf("failed to load profile for %s: %v", identity.ID, err)
		return nil, errors.New(errInternalServer)
	}

	accessToken, err := uc.accessTokenFor(identity.ID, profile)
	if err != nil {
		return nil, err
	}
	refreshToken, err := uc.jwtService.GenerateRefreshToken(identity.ID)
	if err != nil {
		uc.logger.Errorf("failed to generate refresh token: %v", err)
		return nil, errors.New("failed to generate token")
	}

	refreshTokenExpiry := uc.config.GetRefreshTokenExpiry()
	if refreshTokenExpiry <= 0 {
		uc.logger.Errorf("invalid refresh token expiry configuration: %v", refreshTokenExpiry)
		return nil, errors.New("invalid refresh token expiry configuration")
	}
	if err := uc.tokenRepo.RevokeAllTokensForUser(ctx, identity.ID, entity.TokenTypeRefresh); err != nil {
		uc.logger.Warnf("failed to revoke previous refresh tokens for %s: %v", identity.ID, err)
	}
	now := uc.now()
	tokenEntity := &entity.Token{
		ID:        uc.uuidGenerator.NewUUID(),
		UserID:    identity.ID,
		TokenType: entity.TokenTypeRefresh,
		TokenHash: uc.hasher.HashString(refreshToken),
		ExpiresAt: now.Add(refreshTokenExpiry),
		CreatedAt: now,
	}
	if err := uc.tokenRepo.CreateToken(ctx, tokenEntity); err != nil {
		uc.logger.Errorf("failed to store refresh token for user %s: %v", identity.ID, err)
		return nil, errors.New("failed to store token")
	}

	return &usecasecontract.LoginResult{
		Identity:     identity,
		Profile:      profile,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// currentProfile returns nil without error when the profile does not exist yet.
func (uc *AuthUsecase) currentProfile(ctx context.Context, identityID string) (*entity.Profile, error) {
	profile, err := uc.profileRepo.GetProfileByID(ctx, identityID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, entity.ErrProfileNotFound) {
		uc.logger.Errorf("failed to load profile for %s: %v", identityID, err)
		return nil, errors.New(errInternalServer)
	}
	identity, err := uc.identityRepo.GetIdentityByID(ctx, identityID)
	if err != nil || !identity.IsConfirmed() {
		return nil, nil
	}
	profile, err = uc.provisioner.Provision(ctx, identity)
	if err != nil {
		uc.logger.Warnf("profile for %s still missing: %v", identityID, err)
		return nil, nil
	}
	return profile, nil
}

func (uc *AuthUsecase) accessTokenFor(identityID string, profile *entity.Profile) (string, error) {
	var role entity.UserRole
	var status entity.ProfileStatus
	if profile != nil {
		role, status = profile.Role, profile.Status
	}
	token, err := uc.jwtService.GenerateAccessToken(identityID, role, status)
	if err != nil {
		uc.logger.Errorf("failed to generate access token: %v", err)
		return "", errors.New("failed to generate token")
	}
	return token, nil
}

func (uc *AuthUsecase) publish(ctx context.Context, topic string, event any) {
	if err := uc.publisher.Publish(ctx, topic, event); err != nil {
		uc.logger.Warnf("failed to publish %s: %v", topic, err)
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
