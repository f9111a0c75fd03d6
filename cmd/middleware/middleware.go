package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wb-go/wbf/zlog"

	"youthcouncil/internal/auth"
	"youthcouncil/internal/dto"
	"youthcouncil/internal/service"
)

func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		zlog.Logger.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

// Auth verifies the bearer token and injects the session into the request
// context. Handlers read the session from there; nothing is kept in process
// globals.
func Auth(sessions *auth.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			dto.UnauthorizedError(c, "Missing bearer token")
			c.Abort()
			return
		}
		session, err := sessions.Verify(token)
		if err != nil {
			dto.UnauthorizedError(c, "Invalid or expired token")
			c.Abort()
			return
		}
		c.Set(service.SessionKey, session)
		c.Next()
	}
}

// AdminOnly must run after Auth.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := c.Get(service.SessionKey)
		session, _ := v.(*auth.Session)
		if !ok || !session.IsAdmin() {
			dto.ForbiddenError(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

// OptionalAuth attaches a session when a valid token is present but lets
// anonymous requests through, for endpoints like feedback submission.
func OptionalAuth(sessions *auth.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			if session, err := sessions.Verify(token); err == nil {
				c.Set(service.SessionKey, session)
			}
		}
		c.Next()
	}
}
