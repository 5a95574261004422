package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/martijn/papertrade/internal/core/service"
)

const (
	SessionCookieName = "session"
	AuthContextKey    = "auth"
)

// SessionMiddleware validates the session cookie and makes the claims
// available to handlers. Requests without a valid session are redirected
// to the login page, matching the anonymous → authenticated state machine.
func SessionMiddleware(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookieName)
		if err != nil || token == "" {
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}

		claims, err := authService.ValidateSessionToken(token)
		if err != nil {
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}

		c.Set(AuthContextKey, claims)

		c.Next()
	}
}

// GetSessionClaims retrieves session claims from context
func GetSessionClaims(c *gin.Context) (*service.SessionClaims, bool) {
	claims, exists := c.Get(AuthContextKey)
	if !exists {
		return nil, false
	}

	sessionClaims, ok := claims.(*service.SessionClaims)
	return sessionClaims, ok
}
