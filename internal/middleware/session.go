package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/quizdesk/quizdesk/internal/session"
)

const (
	// CookieName is the session cookie.
	CookieName = "qd_session"

	// ContextKeySession is the Gin context key for the loaded session.
	ContextKeySession = "session"
)

// LoadSession resolves the session cookie into a server-side session and
// attaches it to the request context. Requests without a valid session
// proceed anonymously; the guards decide what that means per route.
func LoadSession(mgr *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(CookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		sess, err := mgr.Load(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, session.ErrNoSession) {
				_ = c.Error(err)
			}
			c.Next()
			return
		}

		c.Set(ContextKeySession, sess)
		c.Next()
	}
}

// GetSession retrieves the loaded session from the Gin context, nil when
// the request is anonymous.
func GetSession(c *gin.Context) *session.Session {
	val, exists := c.Get(ContextKeySession)
	if !exists {
		return nil
	}
	sess, ok := val.(*session.Session)
	if !ok {
		return nil
	}
	return sess
}

// SetCookie writes the session cookie for a freshly started session.
func SetCookie(c *gin.Context, token string, maxAgeSeconds int) {
	c.SetCookie(CookieName, token, maxAgeSeconds, "/", "", false, true)
}

// ClearCookie expires the session cookie.
func ClearCookie(c *gin.Context) {
	c.SetCookie(CookieName, "", -1, "/", "", false, true)
}
