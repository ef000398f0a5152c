package api

import (
	"errors"
	"net/http"
	"strconv"

	"tamrino/trainer-app/internal/domain"
	"tamrino/trainer-app/internal/service"

	"github.com/gin-gonic/gin"
)

// Constants for context keys
const (
	ContextIdentityKey  = "identity"
	ContextAuthErrorKey = "authError"
)

// SessionAuth resolves the session cookie into a domain.Identity exactly
// once per request and stores it in the Gin context. It never aborts;
// requests without a valid session carry an anonymous identity and the
// Require* middlewares decide whether that is acceptable.
func SessionAuth(authService service.AuthService, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := domain.Identity{Kind: domain.IdentityAnonymous}

		cookie, err := c.Cookie(cookieName)
		if err == nil && cookie != "" {
			resolved, resolveErr := authService.ResolveCookie(c.Request.Context(), cookie)
			if resolveErr != nil {
				// Keep the reason around so RequireStudent can tell a
				// deactivated account apart from a stale session.
				c.Set(ContextAuthErrorKey, resolveErr)
			} else {
				identity = resolved
			}
		}

		c.Set(ContextIdentityKey, identity)
		c.Next()
	}
}

// RequireTrainer aborts unless the resolved identity is a trainer.
// Must run AFTER SessionAuth.
func RequireTrainer() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := identityFromContext(c)
		if !identity.IsTrainer() {
			abortWithError(c, http.StatusUnauthorized, "trainer authentication required")
			return
		}
		c.Next()
	}
}

// RequireStudent aborts unless the resolved identity is a student. A
// session that failed resolution because the account was deactivated
// gets 403 with the deactivation message rather than a generic 401.
func RequireStudent() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := identityFromContext(c)
		if identity.IsStudent() {
			c.Next()
			return
		}
		if err := authErrorFromContext(c); errors.Is(err, service.ErrAccountDeactivated) {
			abortWithError(c, http.StatusForbidden, service.ErrAccountDeactivated.Error())
			return
		}
		abortWithError(c, http.StatusUnauthorized, "student authentication required")
	}
}

// RequireAuthenticated aborts anonymous requests; either role passes.
func RequireAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := identityFromContext(c)
		if identity.Kind == domain.IdentityAnonymous {
			if err := authErrorFromContext(c); errors.Is(err, service.ErrAccountDeactivated) {
				abortWithError(c, http.StatusForbidden, service.ErrAccountDeactivated.Error())
				return
			}
			abortWithError(c, http.StatusUnauthorized, "authentication required")
			return
		}
		c.Next()
	}
}

// Helper to return JSON error response and abort request
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

// identityFromContext returns the identity stored by SessionAuth,
// defaulting to anonymous if the middleware did not run.
func identityFromContext(c *gin.Context) domain.Identity {
	raw, exists := c.Get(ContextIdentityKey)
	if !exists {
		return domain.Identity{Kind: domain.IdentityAnonymous}
	}
	identity, ok := raw.(domain.Identity)
	if !ok {
		return domain.Identity{Kind: domain.IdentityAnonymous}
	}
	return identity
}

func authErrorFromContext(c *gin.Context) error {
	raw, exists := c.Get(ContextAuthErrorKey)
	if !exists {
		return nil
	}
	err, ok := raw.(error)
	if !ok {
		return nil
	}
	return err
}

// parseIDParam parses a numeric path parameter, aborting with 400 on
// garbage input.
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		abortWithError(c, http.StatusBadRequest, "invalid "+name+" parameter")
		return 0, false
	}
	return id, true
}
