package usecasecontract

import "time"

// IAppLogger is the application logger.
type IAppLogger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Fatalf(format string, args ...interface{})
}

type IValidator interface {
	ValidateEmail(email string) error
	ValidatePasswordStrength(password string) error
}

// IConfigProvider exposes the settings usecases depend on.
type IConfigProvider interface {
	GetSendConfirmationEmail() bool
	GetAppBaseURL() string
	GetAccessTokenExpiry() time.Duration
	GetRefreshTokenExpiry() time.Duration
	GetEmailConfirmationTokenExpiry() time.Duration
	GetAdminAccessCode() string
	GetSignedURLExpiry() time.Duration
	GetProfileProvisionMaxAttempts() int
	GetProfileProvisionRetryDelay() time.Duration
}
