package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/quizdesk/quizdesk/internal/model"
)

func TestAuthorizeNilSession(t *testing.T) {
	if got := Authorize(nil, ""); got != RedirectToLogin {
		t.Errorf("Authorize(nil) = %v, want RedirectToLogin", got)
	}
	if got := Authorize(nil, model.RoleTeacher); got != RedirectToLogin {
		t.Errorf("Authorize(nil, teacher) = %v, want RedirectToLogin", got)
	}
}

func TestRequireLoginRedirectsAnonymous(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/quizzes", RequireLogin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/quizzes", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusSeeOther)
	}
	if loc := w.Header().Get("Location"); loc != "/login" {
		t.Errorf("location = %q, want /login", loc)
	}
}

func TestRequireRoleRedirectsAnonymous(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/teacher", RequireRole(model.RoleTeacher), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/teacher", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusSeeOther)
	}
}

func TestGetSessionMissing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	if sess := GetSession(c); sess != nil {
		t.Errorf("GetSession = %v, want nil", sess)
	}
}
