package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mikiasgoitom/Coursely/internal/domain/entity"
	"github.com/mikiasgoitom/Coursely/internal/usecase"
	usecasecontract "github.com/mikiasgoitom/Coursely/internal/usecase/contract"
)

const principalKey = "principal"

// AuthMiddleWare requires a valid bearer access token and stores the resolved principal.
// A missing profile or a suspension does not abort: the access policy decides per action.
func AuthMiddleWare(jwtService usecase.JWTService, resolver usecasecontract.IProfileResolver, logger usecasecontract.IAppLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": entity.ErrAuthRequired.Error()})
			return
		}
		authenticate(c, jwtService, resolver, logger, token)
	}
}

// OptionalAuth resolves a bearer token when present and leaves the caller anonymous otherwise.
// A present but invalid token is still rejected.
func OptionalAuth(jwtService usecase.JWTService, resolver usecasecontract.IProfileResolver, logger usecasecontract.IAppLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			SetPrincipal(c, entity.Anonymous())
			c.Next()
			return
		}
		authenticate(c, jwtService, resolver, logger, token)
	}
}

func authenticate(c *gin.Context, jwtService usecase.JWTService, resolver usecasecontract.IProfileResolver, logger usecasecontract.IAppLogger, token string) {
	claims, err := jwtService.ParseAccessToken(token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired access token"})
		return
	}

	principal, err := resolver.Resolve(c.Request.Context(), claims)
	switch {
	case err == nil:
	case errors.Is(err, entity.ErrProfileNotFound):
		logger.Debugf("no profile yet for %s, continuing without a role", principal.ID)
	case errors.Is(err, entity.ErrSuspended):
		logger.Debugf("suspended principal %s", principal.ID)
	default:
		logger.Errorf("failed to resolve principal: %v", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	SetPrincipal(c, principal)
	c.Set("userID", principal.ID)
	c.Next()
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", false
	}
	return strings.TrimSpace(token), true
}

func SetPrincipal(c *gin.Context, p entity.Principal) {
	c.Set(principalKey, p)
}

// PrincipalFrom returns the caller stored by the auth middleware, or the anonymous principal.
func PrincipalFrom(c *gin.Context) entity.Principal {
	if v, ok := c.Get(principalKey); ok {
		if p, ok := v.(entity.Principal); ok {
			return p
		}
	}
	return entity.Anonymous()
}
