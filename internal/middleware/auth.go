package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quizdesk/quizdesk/internal/model"
	"github.com/quizdesk/quizdesk/internal/session"
)

// Decision is the tagged outcome of an access-control check, consumed
// uniformly by the guard middlewares.
type Decision int

const (
	Allowed Decision = iota
	RedirectToLogin
	Forbidden
)

// Authorize applies the two independent gate checks: a session with an
// identity must be present, and when a role is required the session's
// role must match it case-insensitively.
func Authorize(sess *session.Session, required model.Role) Decision {
	if sess == nil || sess.UserID() == 0 || sess.Role() == "" {
		return RedirectToLogin
	}
	if required == "" {
		return Allowed
	}
	if !sess.Role().Matches(required) {
		return Forbidden
	}
	return Allowed
}

func apply(c *gin.Context, d Decision) {
	switch d {
	case Allowed:
		c.Next()
	case RedirectToLogin:
		c.Redirect(http.StatusSeeOther, "/login")
		c.Abort()
	case Forbidden:
		c.HTML(http.StatusForbidden, "error", gin.H{
			"Status":  http.StatusForbidden,
			"Message": "You do not have permission to do that.",
		})
		c.Abort()
	}
}

// RequireLogin redirects anonymous requests to the login page.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		apply(c, Authorize(GetSession(c), ""))
	}
}

// RequireRole additionally enforces the action's required role.
func RequireRole(role model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		apply(c, Authorize(GetSession(c), role))
	}
}
