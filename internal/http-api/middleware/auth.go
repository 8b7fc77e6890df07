package middleware

import (
	"errors"
	"net/http"
	"strings"

	"yamdb/internal/http-api/models"
	"yamdb/internal/http-api/service"
	"yamdb/internal/permission"

	"github.com/gin-gonic/gin"
)

const (
	userKey      = "user"
	principalKey = "principal"
)

// Authenticate resolves an optional bearer token to the current user.
// Requests without an Authorization header continue anonymously; a header
// that is malformed or carries a bad token is rejected with 401.
func Authenticate(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		// format: "Bearer <token>"
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			return
		}

		user, err := authService.Authenticate(c.Request.Context(), parts[1])
		if err != nil {
			if errors.Is(err, service.ErrUnauthenticated) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
				return
			}
			_ = c.Error(err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}

		SetUser(c, user)
		c.Next()
	}
}

// SetUser stores the authenticated user on the request context.
func SetUser(c *gin.Context, user *models.User) {
	c.Set(userKey, user)
	c.Set(principalKey, user.Principal())
}

// CurrentUser returns the authenticated user, or nil for anonymous requests.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}

// CurrentPrincipal returns the caller's principal, or nil for anonymous requests.
func CurrentPrincipal(c *gin.Context) *permission.Principal {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil
	}
	p, _ := v.(*permission.Principal)
	return p
}

// Policy decides whether a principal may use an HTTP method on a resource.
type Policy func(p *permission.Principal, method string) permission.Decision

// Guard enforces a collection-level policy before the handler runs.
func Guard(policy Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch policy(CurrentPrincipal(c), c.Request.Method) {
		case permission.Allow:
			c.Next()
		case permission.Unauthenticated:
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": service.ErrUnauthenticated.Error()})
		default:
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": service.ErrForbidden.Error()})
		}
	}
}
