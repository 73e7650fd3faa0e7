package mocks

import (
	"context"
	"time"

	"github.com/mikiasgoitom/Coursely/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/Coursely/internal/usecase/contract"
)

// MockAuthUsecase is a mock implementation of the auth usecase. Each Err field makes the
// matching method fail with that error.
type MockAuthUsecase struct {
	SignupErr       error
	AdminSignupErr  error
	ConfirmErr      error
	ResendErr       error
	LoginErr        error
	RefreshErr      error
	LogoutErr       error
	OAuthErr        error
	ConfirmedSignup bool

	// Recorded arguments
	LastSignup     usecasecontract.SignupInput
	LastAccessCode string
	LastConfirm    usecasecontract.ConfirmEmailInput

	// Return values
	MockIdentity     entity.Identity
	MockProfile      *entity.Profile
	MockAccessToken  string
	MockRefreshToken string
}

var _ usecasecontract.IAuthUseCase = (*MockAuthUsecase)(nil)

func NewMockAuthUsecase() *MockAuthUsecase {
	return &MockAuthUsecase{
		MockIdentity: entity.Identity{
			ID:        "mock-identity-id",
			Email:     "test@example.com",
			CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		MockProfile: &entity.Profile{
			ID:        "mock-identity-id",
			FirstName: "Test",
			LastName:  "User",
			FullName:  "Test User",
			Role:      entity.UserRoleStudent,
			Status:    entity.ProfileStatusActive,
		},
		MockAccessToken:  "mock_access_token",
		MockRefreshToken: "mock_refresh_token",
	}
}

func (m *MockAuthUsecase) identity() *entity.Identity {
	identity := m.MockIdentity
	if m.ConfirmedSignup {
		now := time.Now()
		identity.EmailConfirmedAt = &now
	}
	return &identity
}

func (m *MockAuthUsecase) Signup(ctx context.Context, in usecasecontract.SignupInput) (*entity.Identity, error) {
	m.LastSignup = in
	if m.SignupErr != nil {
		return nil, m.SignupErr
	}
	return m.identity(), nil
}

func (m *MockAuthUsecase) AdminSignup(ctx context.Context, in usecasecontract.SignupInput, accessCode string) (*entity.Identity, error) {
	m.LastSignup = in
	m.LastAccessCode = accessCode
	if m.AdminSignupErr != nil {
		return nil, m.AdminSignupErr
	}
	return m.identity(), nil
}

func (m *MockAuthUsecase) ConfirmEmail(ctx context.Context, in usecasecontract.ConfirmEmailInput) (*usecasecontract.ConfirmEmailResult, error) {
	m.LastConfirm = in
	if m.ConfirmErr != nil {
		return nil, m.ConfirmErr
	}
	return &usecasecontract.ConfirmEmailResult{Identity: m.identity(), Profile: m.MockProfile}, nil
}

func (m *MockAuthUsecase) ResendConfirmation(ctx context.Context, email string) error {
	return m.ResendErr
}

func (m *MockAuthUsecase) Login(ctx context.Context, email, password string) (*usecasecontract.LoginResult, error) {
	if m.LoginErr != nil {
		return nil, m.LoginErr
	}
	return m.loginResult(), nil
}

func (m *MockAuthUsecase) RefreshToken(ctx context.Context, refreshToken string) (string, string, error) {
	if m.RefreshErr != nil {
		return "", "", m.RefreshErr
	}
	return m.MockAccessToken, m.MockRefreshToken, nil
}

func (m *MockAuthUsecase) Logout(ctx context.Context, refreshToken string) error {
	return m.LogoutErr
}

func (m *MockAuthUsecase) LoginWithOAuth(ctx context.Context, firstName, lastName, email string) (*usecasecontract.LoginResult, error) {
	if m.OAuthErr != nil {
		return nil, m.OAuthErr
	}
	return m.loginResult(), nil
}

func (m *MockAuthUsecase) loginResult() *usecasecontract.LoginResult {
	return &usecasecontract.LoginResult{
		Identity:     m.identity(),
		Profile:      m.MockProfile,
		AccessToken:  m.MockAccessToken,
		RefreshToken: m.MockRefreshToken,
	}
}
