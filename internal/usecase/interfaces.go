package usecase

import (
	"github.com/mikiasgoitom/Coursely/internal/domain/entity"
)

// JWTService defines the interface for session token operations.
type JWTService interface {
	// GenerateAccessToken embeds role and status as claims. Empty role and status are omitted.
	GenerateAccessToken(userID string, role entity.UserRole, status entity.ProfileStatus) (string, error)
	GenerateRefreshToken(userID string) (string, error)
	ParseAccessToken(token string) (*entity.Claims, error)
	ParseRefreshToken(token string) (*entity.Claims, error)
}

// Metrics receives usecase outcomes for instrumentation.
type Metrics interface {
	ProvisionResult(result string)
	ConfirmationResult(result string)
	ResolverSource(source string)
}

type noopMetrics struct{}

func (noopMetrics) ProvisionResult(string)    {}
func (noopMetrics) ConfirmationResult(string) {}
func (noopMetrics) ResolverSource(string)     {}

func metricsOrNoop(m Metrics) Metrics {
	if m == nil {
		return noopMetrics{}
	}
	return m
}
