package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/quizdesk/quizdesk/internal/config"
	"github.com/quizdesk/quizdesk/internal/model"
	"github.com/quizdesk/quizdesk/internal/repository"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials covers every login failure: unknown username, wrong
// password, or a role that does not match the account. Callers must not
// reveal which check failed.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService handles login checks and password hashing.
type AuthService struct {
	userRepo   *repository.UserRepository
	bcryptCost int
	log        zerolog.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo *repository.UserRepository, cfg *config.Config, log zerolog.Logger) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		bcryptCost: cfg.BcryptCost,
		log:        log.With().Str("component", "auth_service").Logger(),
	}
}

// Login verifies the submitted credentials. The selected role is matched
// case-insensitively against the account's stored role; a mismatch fails
// exactly like a wrong password.
func (s *AuthService) Login(ctx context.Context, form *model.LoginForm) (*model.User, error) {
	role, ok := model.ParseRole(form.Role)
	if !ok {
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByUsername(ctx, form.Username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Burn a hash comparison so unknown usernames take as long
			// as wrong passwords.
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(form.Password))
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(form.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.Role.Matches(role) {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// HashPassword hashes a password with the configured bcrypt cost.
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	return string(hash), err
}

// dummyHash is a valid bcrypt hash of a random string, used to equalize
// timing for unknown usernames.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")
