package middleware

import (
	"net/http"
	"strings"

	"store_manager/internal/authz"
	"store_manager/internal/logger"
	"store_manager/internal/services"

	"github.com/gin-gonic/gin"
)

const claimsKey = "claims"

type TokenValidator interface {
	ValidateAccessToken(token string) (*services.Claims, error)
}

// Authenticate resolves the caller from an optional bearer token and then
// asks the access policy whether that caller may use the route. A token
// that is present but invalid is always rejected, even on public routes.
func Authenticate(tokens TokenValidator, policy *authz.Policy, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		subject := authz.Anonymous

		if header := c.GetHeader("Authorization"); header != "" {
			parts := strings.Fields(header)
			if len(parts) != 2 || parts[0] != "Bearer" {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"detail": "Authorization header must contain two space-delimited values",
					"code":   "bad_authorization_header",
				})
				return
			}

			claims, err := tokens.ValidateAccessToken(parts[1])
			if err != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"detail": "Given token not valid for any token type",
					"code":   "token_not_valid",
				})
				return
			}
			c.Set(claimsKey, claims)
			subject = authz.Staff
		}

		allowed, err := policy.Allow(subject, c.Request.URL.Path, c.Request.Method)
		if err != nil {
			log.Error("access check failed", "error", err, "path", c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error."})
			return
		}
		if !allowed {
			if subject == authz.Anonymous {
				c.Header("WWW-Authenticate", `Bearer realm="api"`)
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Authentication credentials were not provided."})
				return
			}
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"detail": "You do not have permission to perform this action."})
			return
		}

		c.Next()
	}
}

// GetClaims returns the verified token claims, if the caller sent a token.
func GetClaims(c *gin.Context) (*services.Claims, bool) {
	value, exists := c.Get(claimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*services.Claims)
	return claims, ok
}
