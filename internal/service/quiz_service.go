package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/quizdesk/quizdesk/internal/model"
	"github.com/quizdesk/quizdesk/internal/repository"
	"github.com/rs/zerolog"
)

// QuizService handles quiz authoring, visibility and the access-code
// unlock exchange.
type QuizService struct {
	quizRepo     *repository.QuizRepository
	questionRepo *repository.QuestionRepository
	attemptRepo  *repository.AttemptRepository
	media        *MediaService
	log          zerolog.Logger
}

// NewQuizService creates a new QuizService.
func NewQuizService(
	quizRepo *repository.QuizRepository,
	questionRepo *repository.QuestionRepository,
	attemptRepo *repository.AttemptRepository,
	media *MediaService,
	log zerolog.Logger,
) *QuizService {
	return &QuizService{
		quizRepo:     quizRepo,
		questionRepo: questionRepo,
		attemptRepo:  attemptRepo,
		media:        media,
		log:          log.With().Str("component", "quiz_service").Logger(),
	}
}

// normalizeQuizForm trims and validates the cross-field rules of the quiz
// form, returning the values ready for storage. Public quizzes never carry
// an access code, whatever the form said.
func normalizeQuizForm(form *model.QuizForm) (name string, genre *string, timeLimit *int, accessCode *string, err error) {
	name = strings.TrimSpace(form.Name)
	if name == "" {
		return "", nil, nil, nil, Validationf("Quiz name is required.")
	}
	if len(name) > model.QuizNameMax {
		return "", nil, nil, nil, Validationf(fmt.Sprintf("Quiz name must be at most %d characters.", model.QuizNameMax))
	}

	if g := strings.TrimSpace(form.Genre); g != "" {
		if len(g) > model.QuizGenreMax {
			return "", nil, nil, nil, Validationf(fmt.Sprintf("Genre must be at most %d characters.", model.QuizGenreMax))
		}
		genre = &g
	}

	if form.TimeLimitMins > 0 {
		t := form.TimeLimitMins
		timeLimit = &t
	}

	if !form.IsPublic {
		code := strings.TrimSpace(form.AccessCode)
		if code == "" {
			return "", nil, nil, nil, Validationf("A private quiz needs an access code.")
		}
		if len(code) > model.AccessCodeMax {
			return "", nil, nil, nil, Validationf(fmt.Sprintf("Access code must be at most %d characters.", model.AccessCodeMax))
		}
		accessCode = &code
	}

	return name, genre, timeLimit, accessCode, nil
}

// Create authors a new quiz for a teacher.
func (s *QuizService) Create(ctx context.Context, teacherID int, form *model.QuizForm) (*model.Quiz, error) {
	name, genre, timeLimit, accessCode, err := normalizeQuizForm(form)
	if err != nil {
		return nil, err
	}

	quiz := &model.Quiz{
		Name:           name,
		Genre:          genre,
		TimeLimitMins:  timeLimit,
		IsPublic:       form.IsPublic,
		AccessCode:     accessCode,
		OwnerTeacherID: teacherID,
	}
	if err := s.quizRepo.Create(ctx, quiz); err != nil {
		return nil, fmt.Errorf("create quiz: %w", err)
	}

	s.log.Info().Int("quiz_id", quiz.ID).Int("teacher_id", teacherID).Msg("Quiz created")
	return quiz, nil
}

// Update rewrites a quiz's settings. Only the owner may edit.
func (s *QuizService) Update(ctx context.Context, teacherID, quizID int, form *model.QuizForm) (*model.Quiz, error) {
	quiz, err := s.GetOwned(ctx, teacherID, quizID)
	if err != nil {
		return nil, err
	}

	name, genre, timeLimit, accessCode, err := normalizeQuizForm(form)
	if err != nil {
		return nil, err
	}

	quiz.Name = name
	quiz.Genre = genre
	quiz.TimeLimitMins = timeLimit
	quiz.IsPublic = form.IsPublic
	quiz.AccessCode = accessCode

	if err := s.quizRepo.Update(ctx, quiz); err != nil {
		return nil, fmt.Errorf("update quiz: %w", err)
	}
	return quiz, nil
}

// Delete removes a quiz with all questions, attempts and answers. Stored
// question images are cleaned up best-effort before the row goes.
func (s *QuizService) Delete(ctx context.Context, teacherID, quizID int) error {
	if _, err := s.GetOwned(ctx, teacherID, quizID); err != nil {
		return err
	}

	paths, err := s.questionRepo.ListImagePaths(ctx, quizID)
	if err != nil {
		return fmt.Errorf("list image paths: %w", err)
	}

	if err := s.quizRepo.Delete(ctx, quizID); err != nil {
		return fmt.Errorf("delete quiz: %w", err)
	}

	for _, p := range paths {
		s.media.Remove(p)
	}

	s.log.Info().Int("quiz_id", quizID).Int("teacher_id", teacherID).Msg("Quiz deleted")
	return nil
}

// Get retrieves a quiz by id.
func (s *QuizService) Get(ctx context.Context, quizID int) (*model.Quiz, error) {
	quiz, err := s.quizRepo.GetByID(ctx, quizID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get quiz: %w", err)
	}
	return quiz, nil
}

// GetOwned retrieves a quiz and verifies the teacher owns it.
func (s *QuizService) GetOwned(ctx context.Context, teacherID, quizID int) (*model.Quiz, error) {
	quiz, err := s.Get(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if quiz.OwnerTeacherID != teacherID {
		return nil, ErrForbidden
	}
	return quiz, nil
}

// GetSolvable retrieves a quiz a student may take: public, or unlocked in
// this session.
func (s *QuizService) GetSolvable(ctx context.Context, quizID int, unlocked map[int]struct{}) (*model.Quiz, error) {
	quiz, err := s.Get(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if !quiz.IsPublic {
		if _, ok := unlocked[quizID]; !ok {
			return nil, ErrForbidden
		}
	}
	return quiz, nil
}

// ListForTeacher returns the quizzes a teacher owns, with question counts.
func (s *QuizService) ListForTeacher(ctx context.Context, teacherID int) ([]QuizListItem, error) {
	quizzes, err := s.quizRepo.ListByOwner(ctx, teacherID)
	if err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	return s.withCounts(ctx, quizzes)
}

// ListForStudent returns public quizzes plus those unlocked this session,
// with question counts.
func (s *QuizService) ListForStudent(ctx context.Context, unlocked map[int]struct{}) ([]QuizListItem, error) {
	ids := make([]int, 0, len(unlocked))
	for id := range unlocked {
		ids = append(ids, id)
	}
	quizzes, err := s.quizRepo.ListVisibleToStudent(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	return s.withCounts(ctx, quizzes)
}

// QuizListItem is a quiz plus the display metadata the list pages show.
type QuizListItem struct {
	model.Quiz
	QuestionCount int
}

func (s *QuizService) withCounts(ctx context.Context, quizzes []model.Quiz) ([]QuizListItem, error) {
	items := make([]QuizListItem, 0, len(quizzes))
	for _, q := range quizzes {
		n, err := s.questionRepo.CountByQuiz(ctx, q.ID)
		if err != nil {
			return nil, fmt.Errorf("count questions: %w", err)
		}
		items = append(items, QuizListItem{Quiz: q, QuestionCount: n})
	}
	return items, nil
}

// UnlockByCode exchanges an access code for the matching private quiz. The
// code is matched exactly after trimming surrounding whitespace.
func (s *QuizService) UnlockByCode(ctx context.Context, form *model.UnlockForm) (*model.Quiz, error) {
	code := strings.TrimSpace(form.AccessCode)
	if code == "" {
		return nil, Validationf("Enter an access code.")
	}
	if len(code) > model.AccessCodeMax {
		return nil, Validationf("That access code is not valid.")
	}

	quiz, err := s.quizRepo.GetByAccessCode(ctx, code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, Validationf("That access code is not valid.")
		}
		return nil, fmt.Errorf("get quiz by code: %w", err)
	}
	return quiz, nil
}

// Scoreboard returns the finished attempts of a quiz, best score first.
// Only the owning teacher may view it.
func (s *QuizService) Scoreboard(ctx context.Context, teacherID, quizID int) (*model.Quiz, []repository.ScoreboardRow, error) {
	quiz, err := s.GetOwned(ctx, teacherID, quizID)
	if err != nil {
		return nil, nil, err
	}
	rows, err := s.attemptRepo.ListFinishedByQuiz(ctx, quizID)
	if err != nil {
		return nil, nil, fmt.Errorf("list finished attempts: %w", err)
	}
	return quiz, rows, nil
}
