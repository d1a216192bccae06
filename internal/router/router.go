package router

import (
	"html/template"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/quizdesk/quizdesk/internal/config"
	"github.com/quizdesk/quizdesk/internal/handler"
	"github.com/quizdesk/quizdesk/internal/middleware"
	"github.com/quizdesk/quizdesk/internal/model"
	"github.com/quizdesk/quizdesk/internal/session"
	"github.com/quizdesk/quizdesk/web"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth     *handler.AuthHandler
	Quiz     *handler.QuizHandler
	Question *handler.QuestionHandler
	Solve    *handler.SolveHandler
}

// SetupRouter configures the Gin engine: templates, shared middleware and
// every page route with its guard chain.
func SetupRouter(
	sessions *session.Manager,
	handlers *Handlers,
	cfg *config.Config,
) (*gin.Engine, error) {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	funcs := template.FuncMap{
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
	}
	tmpl, err := template.New("").Funcs(funcs).ParseFS(web.Templates, "templates/*.tmpl")
	if err != nil {
		return nil, err
	}
	router.SetHTMLTemplate(tmpl)

	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	router.Use(middleware.RequestID())
	router.Use(middleware.LoadSession(sessions))

	// Serve uploaded question images statically with aggressive caching;
	// filenames are UUIDs, so content never changes under a URL.
	uploadsGroup := router.Group("/uploads")
	uploadsGroup.Use(middleware.CacheControl(31536000))
	{
		uploadsGroup.Static("/", cfg.UploadDir)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Login attempts are rate limited per IP.
	loginLimiter := middleware.NewRateLimiter(30, time.Minute)

	router.GET("/", handlers.Auth.Root)
	router.GET("/login", handlers.Auth.ShowLogin)
	router.POST("/login", loginLimiter.Middleware(), handlers.Auth.Login)
	router.POST("/logout", middleware.RequireLogin(), handlers.Auth.Logout)

	router.GET("/teacher", middleware.RequireRole(model.RoleTeacher), handlers.Auth.TeacherHome)
	router.GET("/student", middleware.RequireRole(model.RoleStudent), handlers.Auth.StudentHome)

	quizzes := router.Group("/quizzes")
	quizzes.Use(middleware.RequireLogin())
	{
		quizzes.GET("", handlers.Quiz.Index)

		// Teacher authoring.
		teacher := quizzes.Group("")
		teacher.Use(middleware.RequireRole(model.RoleTeacher))
		{
			teacher.GET("/new", handlers.Quiz.New)
			teacher.POST("", middleware.VerifyCSRF(), handlers.Quiz.Create)
			teacher.GET("/:id", handlers.Quiz.Details)
			teacher.GET("/:id/builder", handlers.Quiz.Builder)
			teacher.GET("/:id/scoreboard", handlers.Quiz.Scoreboard)
			teacher.GET("/:id/edit", handlers.Quiz.Edit)
			teacher.POST("/:id/edit", middleware.VerifyCSRF(), handlers.Quiz.Update)
			teacher.GET("/:id/delete", handlers.Quiz.ConfirmDelete)
			teacher.POST("/:id/delete", middleware.VerifyCSRF(), handlers.Quiz.Delete)
			teacher.POST("/:id/questions", middleware.VerifyCSRF(), handlers.Question.Add)
			teacher.POST("/:id/questions/:question_id/delete", middleware.VerifyCSRF(), handlers.Question.Delete)
		}

		// Student attempt lifecycle.
		student := quizzes.Group("")
		student.Use(middleware.RequireRole(model.RoleStudent))
		{
			student.POST("/unlock", middleware.VerifyCSRF(), handlers.Quiz.Unlock)
			student.POST("/:id/solve", middleware.VerifyCSRF(), handlers.Solve.Start)
			student.GET("/:id/result/:attempt_id", handlers.Solve.Result)
		}
	}

	solve := router.Group("/solve")
	solve.Use(middleware.RequireRole(model.RoleStudent))
	{
		solve.GET("", handlers.Solve.Solve)
		solve.POST("/answer", middleware.VerifyCSRF(), handlers.Solve.Answer)
		solve.POST("/finish", middleware.VerifyCSRF(), handlers.Solve.Finish)
	}

	return router, nil
}
