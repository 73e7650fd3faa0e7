package contract

import (
	"context"
	"time"
)

type IHasher interface {
	HashPassword(password string) (string, error)
	ComparePasswordHash(password, hashedPassword string) error
	// HashString is a fast digest for long random secrets such as refresh tokens.
	HashString(s string) string
	CheckHash(s, hash string) bool
}

type IEmailService interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

type IRandomGenerator interface {
	GenerateRandomToken(n int) (string, error)
	// GenerateNumericCode returns a zero-padded decimal code of the given length.
	GenerateNumericCode(digits int) (string, error)
}

type IUUIDGenerator interface {
	NewUUID() string
}

// IObjectStorage resolves object keys to URLs. Protected content needs a short-lived signed URL,
// and is only fetched through a protected URL that expires with the grant.
type IObjectStorage interface {
	PublicURL(key string) string
	SignedURL(ctx context.Context, key string, ttl time.Duration) (string, time.Time, error)
	VerifySignedURL(token string) (string, time.Time, error)
	ProtectedURL(key string, expiresAt time.Time) (string, error)
}
