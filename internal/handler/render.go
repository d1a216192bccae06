package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quizdesk/quizdesk/internal/middleware"
	"github.com/quizdesk/quizdesk/internal/model"
)

// render writes an HTML page with the shared layout data merged in: the
// signed-in identity, the CSRF token for forms, and any pending flash
// messages. Flashes are consumed here, so each message shows exactly once.
func render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}

	if sess := middleware.GetSession(c); sess != nil {
		data["Username"] = sess.Username()
		data["Role"] = sess.Role()
		data["IsTeacher"] = sess.Role().Matches(model.RoleTeacher)
		data["CSRFToken"] = sess.CSRFToken()

		errMsg, successMsg := sess.PopFlashes(c.Request.Context())
		if errMsg != "" {
			data["FlashError"] = errMsg
		}
		if successMsg != "" {
			data["FlashSuccess"] = successMsg
		}
	}

	c.HTML(status, name, data)
}

func renderNotFound(c *gin.Context) {
	render(c, http.StatusNotFound, "error", gin.H{
		"Status":  http.StatusNotFound,
		"Message": "That page does not exist.",
	})
}

func renderForbidden(c *gin.Context) {
	render(c, http.StatusForbidden, "error", gin.H{
		"Status":  http.StatusForbidden,
		"Message": "You do not have permission to do that.",
	})
}

func renderInternalError(c *gin.Context, err error) {
	_ = c.Error(err)
	render(c, http.StatusInternalServerError, "error", gin.H{
		"Status":  http.StatusInternalServerError,
		"Message": "Something went wrong. Try again.",
	})
}

// homePath returns the landing page for a role.
func homePath(role model.Role) string {
	if role.Matches(model.RoleTeacher) {
		return "/teacher"
	}
	return "/student"
}
