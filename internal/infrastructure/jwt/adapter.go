package jwt

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/mikiasgoitom/Coursely/internal/domain/entity"
	"github.com/mikiasgoitom/Coursely/internal/usecase"
)

// JWTServiceAdapter adapts JWTManager to the usecase.JWTService interface.
type JWTServiceAdapter struct {
	mgr *JWTManager
}

// NewJWTService creates a new usecase.JWTService from JWTManager
func NewJWTService(mgr *JWTManager) usecase.JWTService {
	return &JWTServiceAdapter{mgr: mgr}
}

// GenerateAccessToken issues an access token carrying the profile's role and status.
func (a *JWTServiceAdapter) GenerateAccessToken(userID string, role entity.UserRole, status entity.ProfileStatus) (string, error) {
	return a.mgr.GenerateAccessToken(userID, string(role), string(status))
}

// GenerateRefreshToken issues a refresh token for a user.
func (a *JWTServiceAdapter) GenerateRefreshToken(userID string) (string, error) {
	tokenID := uuid.New().String()
	return a.mgr.GenerateRefreshToken(tokenID, userID)
}

// ParseAccessToken validates an access token and returns Claims.
// Unknown role or status values are dropped so the resolver treats them as absent.
func (a *JWTServiceAdapter) ParseAccessToken(tokenStr string) (*entity.Claims, error) {
	customClaims, err := a.mgr.VerifyToken(tokenStr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrInvalidToken, err)
	}
	claims := &entity.Claims{
		UserID:           customClaims.Subject,
		RegisteredClaims: customClaims.RegisteredClaims,
	}
	if role := entity.UserRole(customClaims.Role); role.Valid() {
		claims.Role = role
	}
	if status := entity.ProfileStatus(customClaims.Status); status.Valid() {
		claims.Status = status
	}
	return claims, nil
}

// ParseRefreshToken validates a refresh token and returns Claims.
func (a *JWTServiceAdapter) ParseRefreshToken(tokenStr string) (*entity.Claims, error) {
	customClaims, err := a.mgr.VerifyRefreshToken(tokenStr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrInvalidToken, err)
	}
	return &entity.Claims{
		UserID:           customClaims.Subject,
		RegisteredClaims: customClaims.RegisteredClaims,
	}, nil
}
