package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/quizdesk/quizdesk/internal/middleware"
	"github.com/quizdesk/quizdesk/internal/model"
	"github.com/quizdesk/quizdesk/internal/service"
	"github.com/quizdesk/quizdesk/internal/session"
	"github.com/quizdesk/quizdesk/internal/validator"
	"github.com/rs/zerolog"
)

// SolveHandler serves the attempt lifecycle: starting a quiz, stepping
// through its questions, finishing and the result page.
type SolveHandler struct {
	quizService    *service.QuizService
	attemptService *service.AttemptService
	log            zerolog.Logger
}

// NewSolveHandler creates a new SolveHandler.
func NewSolveHandler(quizService *service.QuizService, attemptService *service.AttemptService, log zerolog.Logger) *SolveHandler {
	return &SolveHandler{
		quizService:    quizService,
		attemptService: attemptService,
		log:            log.With().Str("component", "solve_handler").Logger(),
	}
}

// Start godoc
// POST /quizzes/:id/solve
func (h *SolveHandler) Start(c *gin.Context) {
	sess := middleware.GetSession(c)
	id, ok := quizID(c)
	if !ok {
		return
	}

	quiz, err := h.quizService.GetSolvable(c.Request.Context(), id, sess.UnlockedQuizIDs())
	if err != nil {
		h.renderError(c, err)
		return
	}

	attempt, err := h.attemptService.Start(c.Request.Context(), quiz, sess.UserID())
	if err != nil {
		if ve, ok := service.IsValidation(err); ok {
			_ = sess.FlashError(c.Request.Context(), ve.Message)
			c.Redirect(http.StatusSeeOther, "/quizzes")
			return
		}
		renderInternalError(c, err)
		return
	}

	if err := sess.SetActiveAttempt(c.Request.Context(), attempt.ID, quiz.ID); err != nil {
		renderInternalError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/solve")
}

// active resolves the session's attempt pointer to a live open attempt and
// its quiz. A stale pointer is cleared and the student sent back to the
// quiz list.
func (h *SolveHandler) active(c *gin.Context, sess *session.Session) (*model.Quiz, *model.Attempt, bool) {
	attemptID, qID, ok := sess.ActiveAttempt()
	if !ok {
		c.Redirect(http.StatusSeeOther, "/quizzes")
		return nil, nil, false
	}

	attempt, err := h.attemptService.GetOpenForSolving(c.Request.Context(), attemptID, qID, sess.UserID())
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			_ = sess.ClearActiveAttempt(c.Request.Context())
			c.Redirect(http.StatusSeeOther, "/quizzes")
			return nil, nil, false
		}
		renderInternalError(c, err)
		return nil, nil, false
	}

	quiz, err := h.quizService.Get(c.Request.Context(), qID)
	if err != nil {
		h.renderError(c, err)
		return nil, nil, false
	}

	return quiz, attempt, true
}

// expireIfOut finishes the attempt when its time limit has run out and
// redirects to the result page. Returns the remaining seconds otherwise.
func (h *SolveHandler) expireIfOut(c *gin.Context, sess *session.Session, quiz *model.Quiz, attempt *model.Attempt) (int, bool) {
	remaining := service.RemainingSeconds(quiz, attempt, time.Now())
	if remaining != 0 {
		return remaining, true
	}

	finished, err := h.attemptService.FinishAndScore(c.Request.Context(), attempt)
	if err != nil {
		renderInternalError(c, err)
		return 0, false
	}
	_ = sess.ClearActiveAttempt(c.Request.Context())
	_ = sess.FlashError(c.Request.Context(), "Time is up. Your answers were scored.")
	c.Redirect(http.StatusSeeOther, resultPath(quiz.ID, finished.ID))
	return 0, false
}

// Solve godoc
// GET /solve
func (h *SolveHandler) Solve(c *gin.Context) {
	sess := middleware.GetSession(c)
	quiz, attempt, ok := h.active(c, sess)
	if !ok {
		return
	}

	remaining, ok := h.expireIfOut(c, sess, quiz, attempt)
	if !ok {
		return
	}

	order, _ := strconv.Atoi(c.DefaultQuery("order", "0"))
	if order < 0 {
		order = 0
	}

	// Requesting past the last question is how an attempt finishes.
	if order >= attempt.TotalQuestions {
		finished, err := h.attemptService.FinishAndScore(c.Request.Context(), attempt)
		if err != nil {
			renderInternalError(c, err)
			return
		}
		_ = sess.ClearActiveAttempt(c.Request.Context())
		c.Redirect(http.StatusSeeOther, resultPath(quiz.ID, finished.ID))
		return
	}

	question, err := h.attemptService.QuestionAt(c.Request.Context(), quiz.ID, order)
	if err != nil {
		h.renderError(c, err)
		return
	}

	selected, err := h.attemptService.SelectedAnswer(c.Request.Context(), attempt.ID, question.ID)
	if err != nil {
		renderInternalError(c, err)
		return
	}

	render(c, http.StatusOK, "solve", gin.H{
		"Quiz":      quiz,
		"Attempt":   attempt,
		"Question":  question,
		"Order":     order,
		"Selected":  selected,
		"Remaining": remaining,
		"Total":     attempt.TotalQuestions,
		"HasPrev":   order > 0,
		"HasNext":   order < attempt.TotalQuestions-1,
		"IsLast":    order == attempt.TotalQuestions-1,
	})
}

// Answer godoc
// POST /solve/answer
func (h *SolveHandler) Answer(c *gin.Context) {
	sess := middleware.GetSession(c)
	quiz, attempt, ok := h.active(c, sess)
	if !ok {
		return
	}

	if _, ok := h.expireIfOut(c, sess, quiz, attempt); !ok {
		return
	}

	var form model.SolveForm
	if fields := validator.Bind(c, &form); fields != nil {
		_ = sess.FlashError(c.Request.Context(), "Pick one of the listed choices.")
		c.Redirect(http.StatusSeeOther, "/solve?order="+strconv.Itoa(form.Order))
		return
	}

	question, err := h.attemptService.QuestionAt(c.Request.Context(), quiz.ID, form.Order)
	if err != nil {
		h.renderError(c, err)
		return
	}

	if err := h.attemptService.RecordAnswer(c.Request.Context(), attempt, question, form.Selected); err != nil {
		if ve, ok := service.IsValidation(err); ok {
			_ = sess.FlashError(c.Request.Context(), ve.Message)
			c.Redirect(http.StatusSeeOther, "/solve?order="+strconv.Itoa(form.Order))
			return
		}
		renderInternalError(c, err)
		return
	}

	// Advancing past the last question lands on the finishing path in Solve.
	c.Redirect(http.StatusSeeOther, "/solve?order="+strconv.Itoa(form.Order+1))
}

// Finish godoc
// POST /solve/finish
func (h *SolveHandler) Finish(c *gin.Context) {
	sess := middleware.GetSession(c)
	quiz, attempt, ok := h.active(c, sess)
	if !ok {
		return
	}

	if _, ok := h.expireIfOut(c, sess, quiz, attempt); !ok {
		return
	}

	finished, err := h.attemptService.FinishAndScore(c.Request.Context(), attempt)
	if err != nil {
		renderInternalError(c, err)
		return
	}
	_ = sess.ClearActiveAttempt(c.Request.Context())

	c.Redirect(http.StatusSeeOther, resultPath(quiz.ID, finished.ID))
}

// Result godoc
// GET /quizzes/:id/result/:attempt_id
func (h *SolveHandler) Result(c *gin.Context) {
	sess := middleware.GetSession(c)
	id, ok := quizID(c)
	if !ok {
		return
	}
	attemptID, err := strconv.Atoi(c.Param("attempt_id"))
	if err != nil || attemptID <= 0 {
		c.Redirect(http.StatusSeeOther, "/quizzes")
		return
	}

	quiz, err := h.quizService.Get(c.Request.Context(), id)
	if err != nil {
		h.renderError(c, err)
		return
	}

	// A missing or foreign attempt sends the student back to the list
	// rather than a 404 page.
	result, err := h.attemptService.GetResult(c.Request.Context(), attemptID, id, sess.UserID())
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.Redirect(http.StatusSeeOther, "/quizzes")
			return
		}
		renderInternalError(c, err)
		return
	}

	render(c, http.StatusOK, "result", gin.H{"Quiz": quiz, "Result": result})
}

func resultPath(quizID, attemptID int) string {
	return "/quizzes/" + strconv.Itoa(quizID) + "/result/" + strconv.Itoa(attemptID)
}

func (h *SolveHandler) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		renderNotFound(c)
	case errors.Is(err, service.ErrForbidden):
		renderForbidden(c)
	default:
		renderInternalError(c, err)
	}
}
