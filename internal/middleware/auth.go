package middleware

import (
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/victor-romero-martinez/api-agendapp/internal/auth"
	"github.com/victor-romero-martinez/api-agendapp/internal/constants"
	apierrors "github.com/victor-romero-martinez/api-agendapp/internal/errors"
)

// TokenVerifier validates a session token and returns its claims.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// RequireAuth checks that the request carries a valid session token, either in
// the session cookie or as a bearer token, and stores its claims in the context.
func RequireAuth(tokens TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c)
		if token == "" {
			token = bearerToken(c)
		}
		if token == "" {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		claims, err := tokens.Verify(token)
		if err != nil {
			apierrors.InvalidToken(c, "")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyIdentity, claims)
		c.Next()
	}
}

// GetIdentity retrieves the claims stored by RequireAuth
func GetIdentity(c *gin.Context) (*auth.Claims, bool) {
	value, exists := c.Get(constants.ContextKeyIdentity)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*auth.Claims)
	if !ok || claims == nil {
		return nil, false
	}
	return claims, true
}

func sessionToken(c *gin.Context) string {
	if _, ok := c.Get(sessions.DefaultKey); !ok {
		return ""
	}
	token, _ := sessions.Default(c).Get(constants.SessionKeyToken).(string)
	return token
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader(constants.HeaderAuthorization)
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
