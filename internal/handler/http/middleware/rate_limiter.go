package middleware

import (
	"time"

	"github.com/didip/tollbooth/v7"
	"github.com/didip/tollbooth/v7/limiter"
	"github.com/didip/tollbooth_gin"
	"github.com/gin-gonic/gin"
)

// NewLimiter builds a per-IP limiter allowing perSecond requests.
func NewLimiter(perSecond float64) *limiter.Limiter {
	lmt := tollbooth.NewLimiter(perSecond, &limiter.ExpirableOptions{DefaultExpirationTTL: time.Hour})
	lmt.SetIPLookups([]string{"RemoteAddr", "X-Forwarded-For", "X-Real-IP"})
	lmt.SetMessage("Too many requests, please try again later.")
	return lmt
}

func RateLimiter(lmt *limiter.Limiter) gin.HandlerFunc {
	return tollbooth_gin.LimitHandler(lmt)
}
