package usecasecontract

import (
	"context"

	"github.com/mikiasgoitom/Coursely/internal/domain/entity"
)

type SignupInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	// Role is optional; empty means student. Admin is rejected on the regular path.
	Role entity.UserRole
}

// ConfirmEmailInput carries either the link token or an email plus the emailed code.
type ConfirmEmailInput struct {
	Token string
	Email string
	Code  string
}

type ConfirmEmailResult struct {
	Identity *entity.Identity
	// Profile is nil when creation was deferred to a retry.
	Profile          *entity.Profile
	AlreadyConfirmed bool
}

type LoginResult struct {
	Identity     *entity.Identity
	Profile      *entity.Profile
	AccessToken  string
	RefreshToken string
}

type IAuthUseCase interface {
	Signup(ctx context.Context, in SignupInput) (*entity.Identity, error)
	AdminSignup(ctx context.Context, in SignupInput, accessCode string) (*entity.Identity, error)
	ConfirmEmail(ctx context.Context, in ConfirmEmailInput) (*ConfirmEmailResult, error)
	ResendConfirmation(ctx context.Context, email string) error
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	RefreshToken(ctx context.Context, refreshToken string) (string, string, error)
	Logout(ctx context.Context, refreshToken string) error
	LoginWithOAuth(ctx context.Context, firstName, lastName, email string) (*LoginResult, error)
}

// IProfileResolver maps session claims to the principal used for access decisions.
type IProfileResolver interface {
	Resolve(ctx context.Context, claims *entity.Claims) (entity.Principal, error)
}
