package jwt

import (
	"errors"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

const (
	issuer           = "coursely"
	tokenKindAccess  = "access"
	tokenKindRefresh = "refresh"
)

var ErrWrongTokenKind = errors.New("wrong token kind")

// CustomClaims is the signed payload. Role and Status are copied from the profile at issuance.
type CustomClaims struct {
	Role   string `json:"role,omitempty"`
	Status string `json:"status,omitempty"`
	Kind   string `json:"kind"`
	gojwt.RegisteredClaims
}

// JWTManager signs and verifies HS256 tokens.
type JWTManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewJWTManager(secret string, accessTTL, refreshTTL time.Duration) *JWTManager {
	return &JWTManager{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

func (m *JWTManager) GenerateAccessToken(userID, role, status string) (string, error) {
	return m.sign(CustomClaims{
		Role:             role,
		Status:           status,
		Kind:             tokenKindAccess,
		RegisteredClaims: m.registered("", userID, m.accessTTL),
	})
}

// GenerateRefreshToken issues a refresh token. tokenID makes every token unique.
func (m *JWTManager) GenerateRefreshToken(tokenID, userID string) (string, error) {
	return m.sign(CustomClaims{
		Kind:             tokenKindRefresh,
		RegisteredClaims: m.registered(tokenID, userID, m.refreshTTL),
	})
}

func (m *JWTManager) VerifyToken(tokenStr string) (*CustomClaims, error) {
	return m.verify(tokenStr, tokenKindAccess)
}

func (m *JWTManager) VerifyRefreshToken(tokenStr string) (*CustomClaims, error) {
	return m.verify(tokenStr, tokenKindRefresh)
}

func (m *JWTManager) registered(id, subject string, ttl time.Duration) gojwt.RegisteredClaims {
	now := m.now()
	return gojwt.RegisteredClaims{
		ID:        id,
		Issuer:    issuer,
		Subject:   subject,
		IssuedAt:  gojwt.NewNumericDate(now),
		NotBefore: gojwt.NewNumericDate(now),
		ExpiresAt: gojwt.NewNumericDate(now.Add(ttl)),
	}
}

func (m *JWTManager) sign(claims CustomClaims) (string, error) {
	token := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (m *JWTManager) verify(tokenStr, kind string) (*CustomClaims, error) {
	claims := &CustomClaims{}
	_, err := gojwt.ParseWithClaims(tokenStr, claims, func(t *gojwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		gojwt.WithValidMethods([]string{gojwt.SigningMethodHS256.Alg()}),
		gojwt.WithIssuer(issuer),
		gojwt.WithExpirationRequired(),
		gojwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, err
	}
	if claims.Kind != kind {
		return nil, ErrWrongTokenKind
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}
	return claims, nil
}
