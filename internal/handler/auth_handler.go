package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quizdesk/quizdesk/internal/config"
	"github.com/quizdesk/quizdesk/internal/middleware"
	"github.com/quizdesk/quizdesk/internal/model"
	"github.com/quizdesk/quizdesk/internal/service"
	"github.com/quizdesk/quizdesk/internal/session"
	"github.com/quizdesk/quizdesk/internal/validator"
	"github.com/rs/zerolog"
)

// AuthHandler serves the login flow and the role home pages.
type AuthHandler struct {
	authService *service.AuthService
	sessions    *session.Manager
	cookieAge   int
	log         zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService, sessions *session.Manager, cfg *config.Config, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessions:    sessions,
		cookieAge:   int(cfg.SessionIdle.Seconds()),
		log:         log.With().Str("component", "auth_handler").Logger(),
	}
}

// Root godoc
// GET /
func (h *AuthHandler) Root(c *gin.Context) {
	if sess := middleware.GetSession(c); sess != nil && sess.UserID() != 0 {
		c.Redirect(http.StatusSeeOther, homePath(sess.Role()))
		return
	}
	c.Redirect(http.StatusSeeOther, "/login")
}

// ShowLogin godoc
// GET /login
func (h *AuthHandler) ShowLogin(c *gin.Context) {
	if sess := middleware.GetSession(c); sess != nil && sess.UserID() != 0 {
		c.Redirect(http.StatusSeeOther, homePath(sess.Role()))
		return
	}
	render(c, http.StatusOK, "login", gin.H{"Roles": []model.Role{model.RoleTeacher, model.RoleStudent}})
}

// Login godoc
// POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	var form model.LoginForm
	if fields := validator.Bind(c, &form); fields != nil {
		h.rerenderLogin(c, "Fill in every field.", form.Role, form.Username)
		return
	}

	user, err := h.authService.Login(c.Request.Context(), &form)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.rerenderLogin(c, "Wrong username, password or role.", form.Role, form.Username)
			return
		}
		renderInternalError(c, err)
		return
	}

	sess, token, err := h.sessions.Start(c.Request.Context(), user)
	if err != nil {
		renderInternalError(c, err)
		return
	}
	middleware.SetCookie(c, token, h.cookieAge)

	h.log.Info().Int("user_id", user.ID).Str("role", string(user.Role)).Str("session_id", sess.ID).Msg("User signed in")
	c.Redirect(http.StatusSeeOther, homePath(user.Role))
}

func (h *AuthHandler) rerenderLogin(c *gin.Context, msg, role, username string) {
	render(c, http.StatusUnprocessableEntity, "login", gin.H{
		"Error":        msg,
		"FormRole":     role,
		"FormUsername": username,
		"Roles":        []model.Role{model.RoleTeacher, model.RoleStudent},
	})
}

// Logout godoc
// POST /logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if sess := middleware.GetSession(c); sess != nil {
		if err := h.sessions.Destroy(c.Request.Context(), sess); err != nil {
			h.log.Warn().Err(err).Msg("Session destroy failed")
		}
	}
	middleware.ClearCookie(c)
	c.Redirect(http.StatusSeeOther, "/login")
}

// TeacherHome godoc
// GET /teacher
func (h *AuthHandler) TeacherHome(c *gin.Context) {
	render(c, http.StatusOK, "home_teacher", nil)
}

// StudentHome godoc
// GET /student
func (h *AuthHandler) StudentHome(c *gin.Context) {
	render(c, http.StatusOK, "home_student", nil)
}
