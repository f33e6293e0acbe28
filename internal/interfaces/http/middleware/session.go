// internal/interfaces/http/middleware/session.go
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/session"
)

const sessionContextKey = "session_id"

// Session resolves the client session id from the X-Session-ID header or
// the session cookie, issuing a fresh id when neither is present. It
// then reconciles the session's favorites store with the identity the
// auth middleware resolved, so login, logout and account switches take
// effect on the very next request.
func Session(cfg *config.Config, manager *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader("X-Session-ID")
		if sessionID == "" {
			if cookie, err := c.Cookie(cfg.Session.CookieName); err == nil {
				sessionID = cookie
			}
		}
		if sessionID == "" {
			sessionID = manager.NewSessionID()
			c.SetCookie(cfg.Session.CookieName, sessionID, int(cfg.Session.CartTTL.Seconds()), "/", "", cfg.IsProduction(), true)
		}

		c.Set(sessionContextKey, sessionID)

		userID, _ := GetUserIDFromContext(c)
		manager.SetIdentity(c.Request.Context(), sessionID, userID)

		c.Next()
	}
}

// GetSessionIDFromContext extracts the session id from gin context
func GetSessionIDFromContext(c *gin.Context) (string, bool) {
	sessionID, exists := c.Get(sessionContextKey)
	if !exists {
		return "", false
	}
	return sessionID.(string), true
}
