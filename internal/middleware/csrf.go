package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// CSRFField is the hidden form field every mutating form must carry.
const CSRFField = "_csrf"

// VerifyCSRF rejects mutating requests whose form token does not match the
// session's anti-forgery token. Must run after LoadSession and the auth
// guards, so a session is known to exist.
func VerifyCSRF() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := GetSession(c)
		if sess == nil {
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}

		submitted := c.PostForm(CSRFField)
		expected := sess.CSRFToken()
		if expected == "" || subtle.ConstantTimeCompare([]byte(submitted), []byte(expected)) != 1 {
			c.HTML(http.StatusForbidden, "error", gin.H{
				"Status":  http.StatusForbidden,
				"Message": "The form has expired. Go back and try again.",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
