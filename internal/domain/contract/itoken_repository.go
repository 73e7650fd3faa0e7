package contract

import (
	"context"
	"time"

	"github.com/mikiasgoitom/Coursely/internal/domain/entity"
)

type ITokenRepository interface {
	CreateToken(ctx context.Context, token *entity.Token) error
	GetTokenByUserID(ctx context.Context, userID string, tokenType entity.TokenType) (*entity.Token, error)
	UpdateToken(ctx context.Context, tokenID string, tokenHash string, expiry time.Time) error
	GetTokenByVerifier(ctx context.Context, verifier string) (*entity.Token, error)
	RevokeToken(ctx context.Context, id string) error
	RevokeAllTokensForUser(ctx context.Context, userID string, tokenType entity.TokenType) error
	// RecordFailedAttempt increments the token's failed attempt counter and returns the new count.
	RecordFailedAttempt(ctx context.Context, id string) (int, error)
}
