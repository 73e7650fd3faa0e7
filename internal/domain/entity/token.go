package entity

import "time"

type TokenType string

const (
	TokenTypeEmailConfirmation TokenType = "email_confirmation"
	TokenTypeRefresh           TokenType = "refresh"
)

// Token is a stored credential. Only hashes of secrets are persisted.
type Token struct {
	ID        string
	UserID    string
	TokenType TokenType
	Verifier  string
	TokenHash string
	CodeHash  string
	ExpiresAt time.Time
	CreatedAt time.Time
	Revoke    bool

	// FailedAttempts counts wrong confirmation codes entered against this token.
	FailedAttempts int
}

func (t *Token) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
