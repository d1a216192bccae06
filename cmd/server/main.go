package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/quizdesk/quizdesk/internal/config"
	"github.com/quizdesk/quizdesk/internal/database"
	"github.com/quizdesk/quizdesk/internal/handler"
	"github.com/quizdesk/quizdesk/internal/logger"
	"github.com/quizdesk/quizdesk/internal/model"
	"github.com/quizdesk/quizdesk/internal/repository"
	"github.com/quizdesk/quizdesk/internal/router"
	"github.com/quizdesk/quizdesk/internal/service"
	"github.com/quizdesk/quizdesk/internal/session"
	"github.com/quizdesk/quizdesk/internal/validator"
	"github.com/rs/zerolog"
)

func main() {
	cfg := config.Load()

	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting QuizDesk")

	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	if err := database.MigrateUp(cfg.DatabaseURL, log); err != nil {
		log.Fatal().Err(err).Msg("Migrations failed")
	}

	userRepo := repository.NewUserRepository(pool)
	quizRepo := repository.NewQuizRepository(pool)
	questionRepo := repository.NewQuestionRepository(pool)
	attemptRepo := repository.NewAttemptRepository(pool)
	answerRepo := repository.NewAnswerRepository(pool)

	authService := service.NewAuthService(userRepo, cfg, log)
	mediaService := service.NewMediaService(cfg, log)
	quizService := service.NewQuizService(quizRepo, questionRepo, attemptRepo, mediaService, log)
	questionService := service.NewQuestionService(questionRepo, mediaService, log)
	attemptService := service.NewAttemptService(attemptRepo, questionRepo, answerRepo, log)

	if err := seedUsers(ctx, userRepo, authService, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("Seeding failed")
	}

	sessions := session.NewManager(rdb, cfg, log)

	handlers := &router.Handlers{
		Auth:     handler.NewAuthHandler(authService, sessions, cfg, log),
		Quiz:     handler.NewQuizHandler(quizService, questionService, log),
		Question: handler.NewQuestionHandler(quizService, questionService, log),
		Solve:    handler.NewSolveHandler(quizService, attemptService, log),
	}

	r, err := router.SetupRouter(sessions, handlers, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Router setup failed")
	}

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// seedUsers provisions the demo teacher and student accounts on an empty
// database. Accounts are created through the CLI afterwards; there is no
// self-registration.
func seedUsers(ctx context.Context, userRepo *repository.UserRepository, authService *service.AuthService, cfg *config.Config, log zerolog.Logger) error {
	n, err := userRepo.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	seeds := []struct {
		username string
		password string
		role     model.Role
	}{
		{cfg.SeedTeacherUsername, cfg.SeedTeacherPassword, model.RoleTeacher},
		{cfg.SeedStudentUsername, cfg.SeedStudentPassword, model.RoleStudent},
	}

	for _, s := range seeds {
		hash, err := authService.HashPassword(s.password)
		if err != nil {
			return err
		}
		user := &model.User{Username: s.username, PasswordHash: hash, Role: s.role}
		if err := userRepo.Create(ctx, user); err != nil {
			return err
		}
		log.Info().Str("username", s.username).Str("role", string(s.role)).Msg("Seeded user")
	}
	return nil
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
