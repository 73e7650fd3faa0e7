package config

import (
	"os"
	"strconv"
	"time"

	usecasecontract "github.com/mikiasgoitom/Coursely/internal/usecase/contract"
)

const defaultAdminAccessCode = "ADMIN2024"

// Config holds application configuration values.
type Config struct {
	Port                         string
	MongoURI                     string
	MongoDBName                  string
	RedisURL                     string
	JWTSecret                    string
	SendConfirmationEmail        bool
	AppBaseURL                   string
	AccessTokenExpiry            time.Duration
	RefreshTokenExpiry           time.Duration
	EmailConfirmationTokenExpiry time.Duration
	AdminAccessCode              string
	StoragePublicBaseURL         string
	StorageProtectedBaseURL      string
	StorageSigningSecret         string
	SignedURLExpiry              time.Duration
	ProfileProvisionMaxAttempts  int
	ProfileProvisionRetryDelay   time.Duration
	RateLimitPerSecond           float64
	SMTP                         SMTPConfig
	GoogleClientID               string
	GoogleClientSecret           string
}

type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

var _ usecasecontract.IConfigProvider = (*Config)(nil)

// NewConfig creates a new Config instance, loading values from environment variables.
func NewConfig() *Config {
	jwtSecret := getEnv("JWT_SECRET", "")
	return &Config{
		Port:                         getEnv("PORT", "8080"),
		MongoURI:                     getEnv("MONGODB_URI", ""),
		MongoDBName:                  getEnv("MONGODB_DB_NAME", "coursely"),
		RedisURL:                     getEnv("REDIS_URL", ""),
		JWTSecret:                    jwtSecret,
		SendConfirmationEmail:        getEnvAsBool("SEND_CONFIRMATION_EMAIL", true),
		AppBaseURL:                   getEnv("APP_BASE_URL", "http://localhost:8080"),
		AccessTokenExpiry:            time.Minute * time.Duration(getEnvAsInt("ACCESS_TOKEN_EXPIRY_MINUTES", 15)),
		RefreshTokenExpiry:           time.Hour * time.Duration(getEnvAsInt("REFRESH_TOKEN_EXPIRY_HOURS", 168)), // 7 days
		EmailConfirmationTokenExpiry: time.Minute * time.Duration(getEnvAsInt("EMAIL_CONFIRMATION_TOKEN_EXPIRY_MINUTES", 24*60)),
		AdminAccessCode:              getEnv("ADMIN_ACCESS_CODE", defaultAdminAccessCode),
		StoragePublicBaseURL:         getEnv("STORAGE_PUBLIC_BASE_URL", "http://localhost:8080/media"),
		StorageProtectedBaseURL:      getEnv("STORAGE_PROTECTED_BASE_URL", "http://localhost:8080/protected"),
		StorageSigningSecret:         getEnv("STORAGE_SIGNING_SECRET", jwtSecret),
		SignedURLExpiry:              time.Minute * time.Duration(getEnvAsInt("SIGNED_URL_EXPIRY_MINUTES", 10)),
		ProfileProvisionMaxAttempts:  getEnvAsInt("PROFILE_PROVISION_MAX_ATTEMPTS", 5),
		ProfileProvisionRetryDelay:   time.Second * time.Duration(getEnvAsInt("PROFILE_PROVISION_RETRY_SECONDS", 30)),
		RateLimitPerSecond:           getEnvAsFloat("RATE_LIMIT_PER_SECOND", 10),
		SMTP: SMTPConfig{
			Host:     getEnv("EMAIL_HOST", ""),
			Port:     getEnv("EMAIL_PORT", "587"),
			Username: getEnv("EMAIL_USERNAME", ""),
			Password: getEnv("EMAIL_APP_PASSWORD", ""),
			From:     getEnv("EMAIL_FROM", "no-reply@coursely.local"),
		},
		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
	}
}

// GetSendConfirmationEmail returns whether signup sends a confirmation email.
// When false identities are confirmed immediately.
func (c *Config) GetSendConfirmationEmail() bool {
	return c.SendConfirmationEmail
}

// GetAppBaseURL returns the base URL of the application.
func (c *Config) GetAppBaseURL() string {
	return c.AppBaseURL
}

func (c *Config) GetAccessTokenExpiry() time.Duration {
	return c.AccessTokenExpiry
}

// GetRefreshTokenExpiry returns the expiry duration for refresh tokens.
func (c *Config) GetRefreshTokenExpiry() time.Duration {
	return c.RefreshTokenExpiry
}

// GetEmailConfirmationTokenExpiry returns how long a confirmation link and code stay valid.
func (c *Config) GetEmailConfirmationTokenExpiry() time.Duration {
	return c.EmailConfirmationTokenExpiry
}

// GetAdminAccessCode returns the code guarding the admin signup path.
func (c *Config) GetAdminAccessCode() string {
	return c.AdminAccessCode
}

func (c *Config) GetSignedURLExpiry() time.Duration {
	return c.SignedURLExpiry
}

func (c *Config) GetProfileProvisionMaxAttempts() int {
	return c.ProfileProvisionMaxAttempts
}

func (c *Config) GetProfileProvisionRetryDelay() time.Duration {
	return c.ProfileProvisionRetryDelay
}

// Helper function to get an environment variable or return a default value.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// Helper function to get an environment variable as an integer or return a default value.
func getEnvAsInt(name string, fallback int) int {
	valueStr := getEnv(name, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(name string, fallback float64) float64 {
	valueStr := getEnv(name, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return fallback
}

// Helper function to get an environment variable as a boolean or return a default value.
func getEnvAsBool(name string, fallback bool) bool {
	valStr := getEnv(name, "")
	if val, err := strconv.ParseBool(valStr); err == nil {
		return val
	}
	return fallback
}
