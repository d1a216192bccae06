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

// QuizHandler serves the quiz list, the unlock exchange and the teacher's
// authoring pages.
type QuizHandler struct {
	quizService     *service.QuizService
	questionService *service.QuestionService
	log             zerolog.Logger
}

// NewQuizHandler creates a new QuizHandler.
func NewQuizHandler(quizService *service.QuizService, questionService *service.QuestionService, log zerolog.Logger) *QuizHandler {
	return &QuizHandler{
		quizService:     quizService,
		questionService: questionService,
		log:             log.With().Str("component", "quiz_handler").Logger(),
	}
}

func quizID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		renderNotFound(c)
		return 0, false
	}
	return id, true
}

// Index godoc
// GET /quizzes
func (h *QuizHandler) Index(c *gin.Context) {
	sess := middleware.GetSession(c)

	var (
		items []service.QuizListItem
		err   error
	)
	if sess.Role().Matches(model.RoleTeacher) {
		items, err = h.quizService.ListForTeacher(c.Request.Context(), sess.UserID())
	} else {
		items, err = h.quizService.ListForStudent(c.Request.Context(), sess.UnlockedQuizIDs())
	}
	if err != nil {
		renderInternalError(c, err)
		return
	}

	render(c, http.StatusOK, "quiz_index", gin.H{"Quizzes": items})
}

// Unlock godoc
// POST /quizzes/unlock
func (h *QuizHandler) Unlock(c *gin.Context) {
	sess := middleware.GetSession(c)

	var form model.UnlockForm
	_ = c.ShouldBind(&form)

	quiz, err := h.quizService.UnlockByCode(c.Request.Context(), &form)
	if err != nil {
		if ve, ok := service.IsValidation(err); ok {
			_ = sess.FlashError(c.Request.Context(), ve.Message)
			c.Redirect(http.StatusSeeOther, "/quizzes")
			return
		}
		renderInternalError(c, err)
		return
	}

	if err := sess.AddUnlockedQuiz(c.Request.Context(), quiz.ID); err != nil {
		renderInternalError(c, err)
		return
	}

	_ = sess.FlashSuccess(c.Request.Context(), "Unlocked \""+quiz.Name+"\".")
	c.Redirect(http.StatusSeeOther, "/quizzes")
}

// New godoc
// GET /quizzes/new
func (h *QuizHandler) New(c *gin.Context) {
	render(c, http.StatusOK, "quiz_new", gin.H{"Form": &model.QuizForm{}})
}

// Create godoc
// POST /quizzes
func (h *QuizHandler) Create(c *gin.Context) {
	sess := middleware.GetSession(c)

	var form model.QuizForm
	if fields := validator.Bind(c, &form); fields != nil {
		render(c, http.StatusUnprocessableEntity, "quiz_new", gin.H{
			"Form": &form, "Error": validator.FirstError(fields),
		})
		return
	}

	quiz, err := h.quizService.Create(c.Request.Context(), sess.UserID(), &form)
	if err != nil {
		if ve, ok := service.IsValidation(err); ok {
			render(c, http.StatusUnprocessableEntity, "quiz_new", gin.H{
				"Form": &form, "Error": ve.Message,
			})
			return
		}
		renderInternalError(c, err)
		return
	}

	_ = sess.FlashSuccess(c.Request.Context(), "Quiz created. Add some questions.")
	c.Redirect(http.StatusSeeOther, "/quizzes/"+strconv.Itoa(quiz.ID)+"/builder")
}

// Builder godoc
// GET /quizzes/:id/builder
func (h *QuizHandler) Builder(c *gin.Context) {
	sess := middleware.GetSession(c)
	id, ok := quizID(c)
	if !ok {
		return
	}

	quiz, err := h.quizService.GetOwned(c.Request.Context(), sess.UserID(), id)
	if err != nil {
		h.renderQuizError(c, err)
		return
	}

	questions, err := h.questionService.List(c.Request.Context(), id)
	if err != nil {
		renderInternalError(c, err)
		return
	}
	nextNum, err := h.questionService.NextNumber(c.Request.Context(), id)
	if err != nil {
		renderInternalError(c, err)
		return
	}

	render(c, http.StatusOK, "quiz_builder", gin.H{
		"Quiz":          quiz,
		"Questions":     questions,
		"NextNum":       nextNum,
		"ChoiceLetters": model.ChoiceLetters,
	})
}

// Details godoc
// GET /quizzes/:id
func (h *QuizHandler) Details(c *gin.Context) {
	sess := middleware.GetSession(c)
	id, ok := quizID(c)
	if !ok {
		return
	}

	quiz, err := h.quizService.GetOwned(c.Request.Context(), sess.UserID(), id)
	if err != nil {
		h.renderQuizError(c, err)
		return
	}

	questions, err := h.questionService.List(c.Request.Context(), id)
	if err != nil {
		renderInternalError(c, err)
		return
	}

	render(c, http.StatusOK, "quiz_details", gin.H{"Quiz": quiz, "Questions": questions})
}

// Edit godoc
// GET /quizzes/:id/edit
func (h *QuizHandler) Edit(c *gin.Context) {
	sess := middleware.GetSession(c)
	id, ok := quizID(c)
	if !ok {
		return
	}

	quiz, err := h.quizService.GetOwned(c.Request.Context(), sess.UserID(), id)
	if err != nil {
		h.renderQuizError(c, err)
		return
	}

	form := &model.QuizForm{
		Name:     quiz.Name,
		IsPublic: quiz.IsPublic,
	}
	if quiz.Genre != nil {
		form.Genre = *quiz.Genre
	}
	if quiz.TimeLimitMins != nil {
		form.TimeLimitMins = *quiz.TimeLimitMins
	}
	if quiz.AccessCode != nil {
		form.AccessCode = *quiz.AccessCode
	}

	render(c, http.StatusOK, "quiz_edit", gin.H{"Quiz": quiz, "Form": form})
}

// Update godoc
// POST /quizzes/:id/edit
func (h *QuizHandler) Update(c *gin.Context) {
	sess := middleware.GetSession(c)
	id, ok := quizID(c)
	if !ok {
		return
	}

	var form model.QuizForm
	if fields := validator.Bind(c, &form); fields != nil {
		h.rerenderEdit(c, sess.UserID(), id, &form, validator.FirstError(fields))
		return
	}

	if _, err := h.quizService.Update(c.Request.Context(), sess.UserID(), id, &form); err != nil {
		if ve, ok := service.IsValidation(err); ok {
			h.rerenderEdit(c, sess.UserID(), id, &form, ve.Message)
			return
		}
		h.renderQuizError(c, err)
		return
	}

	_ = sess.FlashSuccess(c.Request.Context(), "Quiz updated.")
	c.Redirect(http.StatusSeeOther, "/quizzes/"+strconv.Itoa(id))
}

func (h *QuizHandler) rerenderEdit(c *gin.Context, teacherID, id int, form *model.QuizForm, msg string) {
	quiz, err := h.quizService.GetOwned(c.Request.Context(), teacherID, id)
	if err != nil {
		h.renderQuizError(c, err)
		return
	}
	render(c, http.StatusUnprocessableEntity, "quiz_edit", gin.H{
		"Quiz": quiz, "Form": form, "Error": msg,
	})
}

// ConfirmDelete godoc
// GET /quizzes/:id/delete
func (h *QuizHandler) ConfirmDelete(c *gin.Context) {
	sess := middleware.GetSession(c)
	id, ok := quizID(c)
	if !ok {
		return
	}

	quiz, err := h.quizService.GetOwned(c.Request.Context(), sess.UserID(), id)
	if err != nil {
		h.renderQuizError(c, err)
		return
	}

	render(c, http.StatusOK, "quiz_delete", gin.H{"Quiz": quiz})
}

// Delete godoc
// POST /quizzes/:id/delete
func (h *QuizHandler) Delete(c *gin.Context) {
	sess := middleware.GetSession(c)
	id, ok := quizID(c)
	if !ok {
		return
	}

	if err := h.quizService.Delete(c.Request.Context(), sess.UserID(), id); err != nil {
		h.renderQuizError(c, err)
		return
	}

	_ = sess.FlashSuccess(c.Request.Context(), "Quiz deleted.")
	c.Redirect(http.StatusSeeOther, "/quizzes")
}

// Scoreboard godoc
// GET /quizzes/:id/scoreboard
func (h *QuizHandler) Scoreboard(c *gin.Context) {
	sess := middleware.GetSession(c)
	id, ok := quizID(c)
	if !ok {
		return
	}

	quiz, rows, err := h.quizService.Scoreboard(c.Request.Context(), sess.UserID(), id)
	if err != nil {
		h.renderQuizError(c, err)
		return
	}

	render(c, http.StatusOK, "scoreboard", gin.H{"Quiz": quiz, "Rows": rows})
}

func (h *QuizHandler) renderQuizError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		renderNotFound(c)
	case errors.Is(err, service.ErrForbidden):
		renderForbidden(c)
	default:
		renderInternalError(c, err)
	}
}
