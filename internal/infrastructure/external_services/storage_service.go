package external_services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/mikiasgoitom/Coursely/internal/domain/contract"
	"github.com/mikiasgoitom/Coursely/internal/domain/entity"
)

const mediaAudience = "coursely-media"

// mediaClaims binds a signed URL to a single object key.
type mediaClaims struct {
	Key string `json:"key"`
	gojwt.RegisteredClaims
}

// StorageService resolves object keys against the object store's public base URL and signs
// short-lived URLs for protected objects such as course videos. Protected objects are only
// served from the protected base URL, which rejects requests without a valid signature.
type StorageService struct {
	publicBaseURL    string
	protectedBaseURL string
	signedBaseURL    string
	secret           []byte
	now              func() time.Time
}

var _ contract.IObjectStorage = (*StorageService)(nil)

// NewStorageService takes the public and protected object base URLs, the API base URL that
// serves signed media, and the signing secret.
func NewStorageService(publicBaseURL, protectedBaseURL, apiBaseURL, secret string) *StorageService {
	return &StorageService{
		publicBaseURL:    strings.TrimRight(publicBaseURL, "/"),
		protectedBaseURL: strings.TrimRight(protectedBaseURL, "/"),
		signedBaseURL:    strings.TrimRight(apiBaseURL, "/") + "/api/v1/media/signed",
		secret:           []byte(secret),
		now:              time.Now,
	}
}

func (s *StorageService) PublicURL(key string) string {
	if key == "" {
		return ""
	}
	return s.publicBaseURL + "/" + escapeKey(key)
}

func (s *StorageService) SignedURL(ctx context.Context, key string, ttl time.Duration) (string, time.Time, error) {
	if err := ctx.Err(); err != nil {
		return "", time.Time{}, err
	}
	if key == "" {
		return "", time.Time{}, fmt.Errorf("%w: empty object key", entity.ErrNotFound)
	}
	now := s.now()
	expiresAt := now.Add(ttl)
	token := gojwt.NewWithClaims(gojwt.SigningMethodHS256, mediaClaims{
		Key: key,
		RegisteredClaims: gojwt.RegisteredClaims{
			Audience:  gojwt.ClaimStrings{mediaAudience},
			IssuedAt:  gojwt.NewNumericDate(now),
			ExpiresAt: gojwt.NewNumericDate(expiresAt),
		},
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign media url: %w", err)
	}
	return s.signedBaseURL + "?token=" + url.QueryEscape(signed), expiresAt, nil
}

// VerifySignedURL returns the object key a signed media token grants and when the grant ends.
func (s *StorageService) VerifySignedURL(token string) (string, time.Time, error) {
	claims := &mediaClaims{}
	_, err := gojwt.ParseWithClaims(token, claims, func(t *gojwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		gojwt.WithValidMethods([]string{gojwt.SigningMethodHS256.Alg()}),
		gojwt.WithAudience(mediaAudience),
		gojwt.WithExpirationRequired(),
		gojwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%w: %v", entity.ErrInvalidToken, err)
	}
	if claims.Key == "" {
		return "", time.Time{}, errors.Join(entity.ErrInvalidToken, errors.New("token has no key"))
	}
	return claims.Key, claims.ExpiresAt.Time, nil
}

// ProtectedURL returns an origin URL for key that stops working at expiresAt. The origin
// checks signature against HMAC-SHA256(secret, key + "\n" + expires).
func (s *StorageService) ProtectedURL(key string, expiresAt time.Time) (string, error) {
	if key == "" {
		return "", fmt.Errorf("%w: empty object key", entity.ErrNotFound)
	}
	if !expiresAt.After(s.now()) {
		return "", fmt.Errorf("%w: grant already expired", entity.ErrInvalidToken)
	}
	expires := strconv.FormatInt(expiresAt.Unix(), 10)
	q := url.Values{}
	q.Set("expires", expires)
	q.Set("signature", s.originSignature(key, expires))
	return s.protectedBaseURL + "/" + escapeKey(key) + "?" + q.Encode(), nil
}

func (s *StorageService) originSignature(key, expires string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(strings.TrimLeft(key, "/") + "\n" + expires))
	return hex.EncodeToString(mac.Sum(nil))
}

func escapeKey(key string) string {
	parts := strings.Split(strings.TrimLeft(key, "/"), "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}
