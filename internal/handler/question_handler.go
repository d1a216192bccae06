package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/quizdesk/quizdesk/internal/middleware"
	"github.com/quizdesk/quizdesk/internal/model"
	"github.com/quizdesk/quizdesk/internal/service"
	"github.com/quizdesk/quizdesk/internal/validator"
	"github.com/rs/zerolog"
)

// QuestionHandler serves the quiz builder's question mutations.
type QuestionHandler struct {
	quizService     *service.QuizService
	questionService *service.QuestionService
	log             zerolog.Logger
}

// NewQuestionHandler creates a new QuestionHandler.
func NewQuestionHandler(quizService *service.QuizService, questionService *service.QuestionService, log zerolog.Logger) *QuestionHandler {
	return &QuestionHandler{
		quizService:     quizService,
		questionService: questionService,
		log:             log.With().Str("component", "question_handler").Logger(),
	}
}

// Add godoc
// POST /quizzes/:id/questions
func (h *QuestionHandler) Add(c *gin.Context) {
	sess := middleware.GetSession(c)
	id, ok := quizID(c)
	if !ok {
		return
	}

	if _, err := h.quizService.GetOwned(c.Request.Context(), sess.UserID(), id); err != nil {
		h.renderError(c, err)
		return
	}

	builderPath := "/quizzes/" + strconv.Itoa(id) + "/builder"

	var form model.QuestionForm
	if fields := validator.Bind(c, &form); fields != nil {
		_ = sess.FlashError(c.Request.Context(), validator.FirstError(fields))
		c.Redirect(http.StatusSeeOther, builderPath)
		return
	}

	// Image upload is optional; a missing file is not an error.
	image, err := c.FormFile("image")
	if err != nil {
		image = nil
	}

	if _, err := h.questionService.Add(c.Request.Context(), id, &form, image); err != nil {
		if ve, ok := service.IsValidation(err); ok {
			_ = sess.FlashError(c.Request.Context(), ve.Message)
			c.Redirect(http.StatusSeeOther, builderPath)
			return
		}
		renderInternalError(c, err)
		return
	}

	_ = sess.FlashSuccess(c.Request.Context(), "Question added.")
	c.Redirect(http.StatusSeeOther, builderPath)
}

// Delete godoc
// POST /quizzes/:id/questions/:question_id/delete
func (h *QuestionHandler) Delete(c *gin.Context) {
	sess := middleware.GetSession(c)
	id, ok := quizID(c)
	if !ok {
		return
	}
	questionID, err := strconv.Atoi(c.Param("question_id"))
	if err != nil || questionID <= 0 {
		renderNotFound(c)
		return
	}

	if _, err := h.quizService.GetOwned(c.Request.Context(), sess.UserID(), id); err != nil {
		h.renderError(c, err)
		return
	}

	if err := h.questionService.Delete(c.Request.Context(), id, questionID); err != nil {
		h.renderError(c, err)
		return
	}

	_ = sess.FlashSuccess(c.Request.Context(), "Question removed.")
	c.Redirect(http.StatusSeeOther, "/quizzes/"+strconv.Itoa(id)+"/builder")
}

func (h *QuestionHandler) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		renderNotFound(c)
	case errors.Is(err, service.ErrForbidden):
		renderForbidden(c)
	default:
		renderInternalError(c, err)
	}
}
