package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mikiasgoitom/Coursely/internal/domain/contract"
	"github.com/mikiasgoitom/Coursely/internal/domain/entity"
	"golang.org/x/crypto/bcrypt"
)

const (
	confirmationCodeDigits = 6
	// maxConfirmationCodeAttempts wrong codes revoke the token; a new one must be requested.
	maxConfirmationCodeAttempts = 5
)

// EmailConfirmationUseCase issues and checks email confirmation credentials. Each issue
// produces a link token of the form verifier.secret and a six digit code; only hashes are stored.
type EmailConfirmationUseCase struct {
	tokenRepository contract.ITokenRepository
	emailService    contract.IEmailService
	hasher          contract.IHasher
	RandomGenerator contract.IRandomGenerator
	UUIDGenerator   contract.IUUIDGenerator
	baseURL         string
	ttl             time.Duration
	now             func() time.Time
}

func NewEmailConfirmationUseCase(tr contract.ITokenRepository, es contract.IEmailService, hasher contract.IHasher, rg contract.IRandomGenerator, uuidgen contract.IUUIDGenerator, baseURL string, ttl time.Duration) *EmailConfirmationUseCase {
	return &EmailConfirmationUseCase{
		tokenRepository: tr,
		emailService:    es,
		hasher:          hasher,
		RandomGenerator: rg,
		UUIDGenerator:   uuidgen,
		baseURL:         strings.TrimRight(baseURL, "/"),
		ttl:             ttl,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

// RequestConfirmationEmail revokes earlier confirmation tokens, stores a new one and mails it.
func (eu *EmailConfirmationUseCase) RequestConfirmationEmail(ctx context.Context, identity *entity.Identity) error {
	if err := eu.tokenRepository.RevokeAllTokensForUser(ctx, identity.ID, entity.TokenTypeEmailConfirmation); err != nil {
		return fmt.Errorf("failed to revoke old tokens: %w", err)
	}

	secret, err := eu.RandomGenerator.GenerateRandomToken(32)
	if err != nil {
		return fmt.Errorf("failed to create token: %w", err)
	}
	secretHash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash token: %w", err)
	}
	verifier, err := eu.RandomGenerator.GenerateRandomToken(16)
	if err != nil {
		return fmt.Errorf("failed to create verifier: %w", err)
	}
	code, err := eu.RandomGenerator.GenerateNumericCode(confirmationCodeDigits)
	if err != nil {
		return fmt.Errorf("failed to create confirmation code: %w", err)
	}

	now := eu.now()
	newToken := entity.Token{
		ID:        eu.UUIDGenerator.NewUUID(),
		UserID:    identity.ID,
		TokenType: entity.TokenTypeEmailConfirmation,
		TokenHash: string(secretHash),
		CodeHash:  eu.hasher.HashString(code),
		Verifier:  verifier,
		ExpiresAt: now.Add(eu.ttl),
		CreatedAt: now,
	}
	if err = eu.tokenRepository.CreateToken(ctx, &newToken); err != nil {
		return fmt.Errorf("failed to create token in db: %w", err)
	}

	link := fmt.Sprintf("%s/confirm-email?token=%s.%s", eu.baseURL, verifier, secret)
	subject := "Confirm your email address"
	body := fmt.Sprintf("Hello %s,\n\nconfirm your email address by opening %s\nor enter this code: %s\n\nThe link and code expire in %s.",
		entity.FullNameOf(identity.Metadata.FirstName, identity.Metadata.LastName), link, code, eu.ttl)
	if err = eu.emailService.SendEmail(ctx, identity.Email, subject, body); err != nil {
		return fmt.Errorf("failed to send confirmation email: %w", err)
	}
	return nil
}

// LookupLinkToken returns the stored token a link token refers to, revoked or expired ones
// included, once the secret has been checked.
func (eu *EmailConfirmationUseCase) LookupLinkToken(ctx context.Context, linkToken string) (*entity.Token, error) {
	verifier, secret, ok := strings.Cut(linkToken, ".")
	if !ok || verifier == "" || secret == "" {
		return nil, entity.ErrInvalidToken
	}
	token, err := eu.tokenRepository.GetTokenByVerifier(ctx, verifier)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, entity.ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to fetch token: %w", err)
	}
	if token.TokenType != entity.TokenTypeEmailConfirmation {
		return nil, entity.ErrInvalidToken
	}
	if err = bcrypt.CompareHashAndPassword([]byte(token.TokenHash), []byte(secret)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, entity.ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to compare token: %w", err)
	}
	return token, nil
}

// CheckCode validates the emailed code against the identity's live confirmation token.
func (eu *EmailConfirmationUseCase) CheckCode(ctx context.Context, identityID, code string) (*entity.Token, error) {
	token, err := eu.tokenRepository.GetTokenByUserID(ctx, identityID, entity.TokenTypeEmailConfirmation)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, entity.ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to fetch token: %w", err)
	}
	if token.Expired(eu.now()) {
		_ = eu.tokenRepository.RevokeToken(ctx, token.ID)
		return nil, entity.ErrInvalidToken
	}
	if token.FailedAttempts >= maxConfirmationCodeAttempts {
		_ = eu.tokenRepository.RevokeToken(ctx, token.ID)
		return nil, entity.ErrInvalidToken
	}
	if token.CodeHash == "" || !eu.hasher.CheckHash(strings.TrimSpace(code), token.CodeHash) {
		failed, err := eu.tokenRepository.RecordFailedAttempt(ctx, token.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to record confirmation attempt: %w", err)
		}
		if failed >= maxConfirmationCodeAttempts {
			if err := eu.tokenRepository.RevokeToken(ctx, token.ID); err != nil {
				return nil, fmt.Errorf("failed to revoke token after too many attempts: %w", err)
			}
		}
		return nil, entity.ErrInvalidToken
	}
	return token, nil
}

// Usable reports whether a looked-up token may still confirm an identity.
func (eu *EmailConfirmationUseCase) Usable(token *entity.Token) bool {
	return !token.Revoke && !token.Expired(eu.now())
}

// Consume revokes a token after it confirmed an identity.
func (eu *EmailConfirmationUseCase) Consume(ctx context.Context, token *entity.Token) error {
	if err := eu.tokenRepository.RevokeToken(ctx, token.ID); err != nil {
		return fmt.Errorf("failed to revoke token after confirmation: %w", err)
	}
	return nil
}
