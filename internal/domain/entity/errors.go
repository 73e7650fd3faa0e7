package entity

import "errors"

var (
	// ErrAuthRequired means the caller has no session.
	ErrAuthRequired = errors.New("authentication required")
	// ErrForbidden means the access policy denied the action.
	ErrForbidden = errors.New("forbidden")
	ErrNotFound  = errors.New("not found")
	// ErrProfileNotFound is the transient state between signup and profile creation.
	ErrProfileNotFound = errors.New("profile not found")
	ErrSuspended       = errors.New("account suspended")

	ErrEmailNotConfirmed  = errors.New("email not confirmed")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidAccessCode  = errors.New("invalid access code")
	ErrConflict           = errors.New("already exists")
	ErrValidation         = errors.New("validation failed")
)
