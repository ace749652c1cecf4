// internal/interfaces/http/middleware/session.go
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// SessionHeader carries the guest cart session id.
	SessionHeader = "X-Session-ID"
	// SessionCookie mirrors the header for browser clients.
	SessionCookie = "cart_session"
)

// Session resolves the device-scoped session id for cart routes. The id
// comes from the X-Session-ID header or the session cookie; if neither
// is present a new one is generated and echoed back on both.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader(SessionHeader)
		if sessionID == "" {
			if cookie, err := c.Cookie(SessionCookie); err == nil {
				sessionID = cookie
			}
		}
		if sessionID == "" {
			sessionID = uuid.NewString()
			c.SetCookie(SessionCookie, sessionID, 86400, "/", "", false, true)
		}

		c.Header(SessionHeader, sessionID)
		c.Set("session_id", sessionID)

		c.Next()
	}
}

// GetSessionIDFromContext extracts the cart session id from gin context
func GetSessionIDFromContext(c *gin.Context) string {
	sessionID, exists := c.Get("session_id")
	if !exists {
		return ""
	}
	return sessionID.(string)
}
