package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func TestResultBadAttemptIDRedirectsToQuizList(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewSolveHandler(nil, nil, zerolog.Nop())

	router := gin.New()
	router.GET("/quizzes/:id/result/:attempt_id", h.Result)

	for _, attemptID := range []string{"abc", "0", "-3"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/quizzes/5/result/"+attemptID, nil)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusSeeOther {
			t.Fatalf("attempt_id %q: status = %d, want %d", attemptID, w.Code, http.StatusSeeOther)
		}
		if loc := w.Header().Get("Location"); loc != "/quizzes" {
			t.Errorf("attempt_id %q: location = %q, want /quizzes", attemptID, loc)
		}
	}
}
