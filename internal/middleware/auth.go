package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/yukikurage/task-tracker-api/internal/auth"
	"github.com/yukikurage/task-tracker-api/internal/constants"
	apierrors "github.com/yukikurage/task-tracker-api/internal/errors"
)

// TokenVerifier resolves a bearer token to the identity it asserts.
type TokenVerifier interface {
	Verify(token string) (auth.Identity, error)
}

// RequireAuth checks the bearer token of the request.
// A missing or malformed header is rejected with 401, a token that fails
// verification with 403. On success the identity is stored in the context.
func RequireAuth(verifier TokenVerifier, logger log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(constants.AuthorizationHeader)
		if !strings.HasPrefix(header, constants.BearerPrefix) {
			apierrors.Unauthorized(c, "No token, authorization denied or invalid token format")
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(header, constants.BearerPrefix))
		if tokenString == "" {
			apierrors.Unauthorized(c, "No token, authorization denied or invalid token format")
			return
		}

		identity, err := verifier.Verify(tokenString)
		if err != nil {
			reason := "invalid"
			if errors.Is(err, auth.ErrTokenExpired) {
				reason = "expired"
			}
			level.Debug(logger).Log("msg", "token verification failed", "reason", reason, "path", c.Request.URL.Path, "err", err)
			apierrors.Forbidden(c, "Token is not valid or expired")
			return
		}

		// Store identity in context for easy access in handlers
		c.Set(constants.ContextKeyIdentity, identity)
		c.Next()
	}
}

// GetIdentity retrieves the authenticated identity from context
func GetIdentity(c *gin.Context) (auth.Identity, bool) {
	v, exists := c.Get(constants.ContextKeyIdentity)
	if !exists {
		return auth.Identity{}, false
	}

	identity, ok := v.(auth.Identity)
	if !ok || identity.UserID == 0 {
		return auth.Identity{}, false
	}
	return identity, true
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	identity, ok := GetIdentity(c)
	if !ok {
		return 0, false
	}
	return identity.UserID, true
}
