package mocks

import (
	"context"
	"errors"
	"strings"

	"github.com/mikiasgoitom/Coursely/internal/domain/entity"
	"github.com/mikiasgoitom/Coursely/internal/usecase"
	usecasecontract "github.com/mikiasgoitom/Coursely/internal/usecase/contract"
)

// MockJWTService accepts access tokens of the form "valid:<userID>".
type MockJWTService struct{}

var _ usecase.JWTService = (*MockJWTService)(nil)

func (m *MockJWTService) GenerateAccessToken(userID string, role entity.UserRole, status entity.ProfileStatus) (string, error) {
	return "valid:" + userID, nil
}

func (m *MockJWTService) GenerateRefreshToken(userID string) (string, error) {
	return "refresh:" + userID, nil
}

func (m *MockJWTService) ParseAccessToken(token string) (*entity.Claims, error) {
	userID, ok := strings.CutPrefix(token, "valid:")
	if !ok || userID == "" {
		return nil, errors.New("invalid token")
	}
	return &entity.Claims{UserID: userID}, nil
}

func (m *MockJWTService) ParseRefreshToken(token string) (*entity.Claims, error) {
	userID, ok := strings.CutPrefix(token, "refresh:")
	if !ok {
		return nil, errors.New("invalid token")
	}
	return &entity.Claims{UserID: userID}, nil
}

// MockProfileResolver returns Principals[id] with Errs[id], defaulting to an active student.
type MockProfileResolver struct {
	Principals map[string]entity.Principal
	Errs       map[string]error
	Calls      int
}

var _ usecasecontract.IProfileResolver = (*MockProfileResolver)(nil)

func NewMockProfileResolver() *MockProfileResolver {
	return &MockProfileResolver{
		Principals: map[string]entity.Principal{},
		Errs:       map[string]error{},
	}
}

func (m *MockProfileResolver) Resolve(ctx context.Context, claims *entity.Claims) (entity.Principal, error) {
	m.Calls++
	if claims == nil {
		return entity.Anonymous(), nil
	}
	p, ok := m.Principals[claims.UserID]
	if !ok {
		p = entity.Principal{ID: claims.UserID, Role: entity.UserRoleStudent, Status: entity.ProfileStatusActive}
	}
	return p, m.Errs[claims.UserID]
}
