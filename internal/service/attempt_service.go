package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/quizdesk/quizdesk/internal/model"
	"github.com/quizdesk/quizdesk/internal/repository"
	"github.com/rs/zerolog"
)

// AttemptService handles the attempt lifecycle: start, answer, time check,
// finish and result.
type AttemptService struct {
	attemptRepo  *repository.AttemptRepository
	questionRepo *repository.QuestionRepository
	answerRepo   *repository.AnswerRepository
	log          zerolog.Logger
}

// NewAttemptService creates a new AttemptService.
func NewAttemptService(
	attemptRepo *repository.AttemptRepository,
	questionRepo *repository.QuestionRepository,
	answerRepo *repository.AnswerRepository,
	log zerolog.Logger,
) *AttemptService {
	return &AttemptService{
		attemptRepo:  attemptRepo,
		questionRepo: questionRepo,
		answerRepo:   answerRepo,
		log:          log.With().Str("component", "attempt_service").Logger(),
	}
}

// Start returns the student's open attempt on the quiz, creating one when
// none exists. The question count is snapshotted at creation; a quiz with
// no questions cannot be started.
func (s *AttemptService) Start(ctx context.Context, quiz *model.Quiz, userID int) (*model.Attempt, error) {
	existing, err := s.attemptRepo.GetOpen(ctx, quiz.ID, userID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("get open attempt: %w", err)
	}

	total, err := s.questionRepo.CountByQuiz(ctx, quiz.ID)
	if err != nil {
		return nil, fmt.Errorf("count questions: %w", err)
	}
	if total == 0 {
		return nil, Validationf("This quiz has no questions yet.")
	}

	attempt := &model.Attempt{QuizID: quiz.ID, UserID: userID, TotalQuestions: total}
	if err := s.attemptRepo.Create(ctx, attempt); err != nil {
		return nil, fmt.Errorf("create attempt: %w", err)
	}

	s.log.Info().Int("attempt_id", attempt.ID).Int("quiz_id", quiz.ID).Int("user_id", userID).Msg("Attempt started")
	return attempt, nil
}

// GetOpenForSolving retrieves the open attempt behind a session pointer and
// verifies it belongs to the student and quiz. A finished or foreign
// attempt yields ErrNotFound so the student is bounced back to the list.
func (s *AttemptService) GetOpenForSolving(ctx context.Context, attemptID, quizID, userID int) (*model.Attempt, error) {
	attempt, err := s.attemptRepo.GetForStudent(ctx, attemptID, quizID, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get attempt: %w", err)
	}
	if attempt.Finished() {
		return nil, ErrNotFound
	}
	return attempt, nil
}

// GetResult retrieves a finished attempt for the result page, scoped to the
// student who made it.
func (s *AttemptService) GetResult(ctx context.Context, attemptID, quizID, userID int) (*AttemptResult, error) {
	attempt, err := s.attemptRepo.GetForStudent(ctx, attemptID, quizID, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get attempt: %w", err)
	}
	if !attempt.Finished() {
		return nil, ErrNotFound
	}

	answers, err := s.answerRepo.ListByAttempt(ctx, attempt.ID)
	if err != nil {
		return nil, fmt.Errorf("list answers: %w", err)
	}

	questions, err := s.questionRepo.ListByQuiz(ctx, attempt.QuizID)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}

	result := buildResult(attempt, answers)
	result.Items = reviewItems(questions, answers)
	return result, nil
}

// AttemptResult is the breakdown shown on the result page, with the full
// per-question review in display order.
type AttemptResult struct {
	Attempt *model.Attempt
	Correct int
	Wrong   int
	Blank   int
	Total   int
	Items   []ReviewItem
}

// ReviewItem pairs a question with the choice the student recorded for it,
// "" when it was left blank.
type ReviewItem struct {
	Question model.Question
	Selected string
}

func reviewItems(questions []model.Question, answers []model.Answer) []ReviewItem {
	selectedByID := make(map[int]string, len(answers))
	for _, a := range answers {
		selectedByID[a.QuestionID] = a.SelectedOption
	}

	items := make([]ReviewItem, 0, len(questions))
	for _, q := range questions {
		items = append(items, ReviewItem{Question: q, Selected: selectedByID[q.ID]})
	}
	return items
}

// buildResult derives the correct/wrong/blank breakdown from a finished
// attempt. Blank counts questions with no recorded answer; answered but
// incorrect makes up the rest.
func buildResult(attempt *model.Attempt, answers []model.Answer) *AttemptResult {
	answered := len(answers)
	blank := attempt.TotalQuestions - answered
	if blank < 0 {
		blank = 0
	}
	wrong := answered - attempt.CorrectCount
	if wrong < 0 {
		wrong = 0
	}
	return &AttemptResult{
		Attempt: attempt,
		Correct: attempt.CorrectCount,
		Wrong:   wrong,
		Blank:   blank,
		Total:   attempt.TotalQuestions,
	}
}

// RemainingSeconds returns the whole seconds left on a timed attempt,
// clamped at zero. Untimed quizzes return -1.
func RemainingSeconds(quiz *model.Quiz, attempt *model.Attempt, now time.Time) int {
	if !quiz.Timed() {
		return -1
	}
	return remainingSeconds(*quiz.TimeLimitMins, attempt.StartedAt, now)
}

func remainingSeconds(limitMins int, startedAt, now time.Time) int {
	elapsed := int(now.Sub(startedAt).Seconds())
	remaining := limitMins*60 - elapsed
	if remaining < 0 {
		return 0
	}
	return remaining
}

// QuestionAt retrieves the question at a zero-based position within the
// quiz. Past-the-end positions yield ErrNotFound, which the solve page
// treats as "attempt complete".
func (s *AttemptService) QuestionAt(ctx context.Context, quizID, position int) (*model.Question, error) {
	if position < 0 {
		return nil, ErrNotFound
	}
	q, err := s.questionRepo.GetByOffset(ctx, quizID, position)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get question: %w", err)
	}
	return q, nil
}

// SelectedAnswer returns the recorded choice for a question, "" when the
// student has not answered it yet.
func (s *AttemptService) SelectedAnswer(ctx context.Context, attemptID, questionID int) (string, error) {
	selected, err := s.answerRepo.GetSelected(ctx, attemptID, questionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("get selected: %w", err)
	}
	return selected, nil
}

// RecordAnswer stores the student's selection for a question, overwriting
// any earlier one. The selection is normalized to an upper-case letter
// before it is validated and stored; scoring and the schema only ever see
// canonical letters.
func (s *AttemptService) RecordAnswer(ctx context.Context, attempt *model.Attempt, question *model.Question, selected string) error {
	selected = normalizeChoice(selected)
	if !question.HasChoice(selected) {
		return Validationf("Pick one of the listed choices.")
	}
	if err := s.answerRepo.Upsert(ctx, attempt.ID, question.ID, selected); err != nil {
		return fmt.Errorf("record answer: %w", err)
	}
	return nil
}

func normalizeChoice(selected string) string {
	return strings.ToUpper(strings.TrimSpace(selected))
}

// FinishAndScore closes an attempt with a fresh recount of its answers
// against the current correct options. Scoring is a pure function of the
// stored rows, never an incremental tally.
func (s *AttemptService) FinishAndScore(ctx context.Context, attempt *model.Attempt) (*model.Attempt, error) {
	questions, err := s.questionRepo.ListByQuiz(ctx, attempt.QuizID)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	answers, err := s.answerRepo.ListByAttempt(ctx, attempt.ID)
	if err != nil {
		return nil, fmt.Errorf("list answers: %w", err)
	}

	score := scoreAnswers(questions, answers)
	finishedAt := time.Now()

	if err := s.attemptRepo.Finish(ctx, attempt.ID, score, finishedAt); err != nil {
		return nil, fmt.Errorf("finish attempt: %w", err)
	}

	attempt.CorrectCount = score
	attempt.FinishedAt = &finishedAt

	s.log.Info().Int("attempt_id", attempt.ID).Int("score", score).Int("total", attempt.TotalQuestions).Msg("Attempt finished")
	return attempt, nil
}

// scoreAnswers counts answers whose selection matches the question's
// current correct option.
func scoreAnswers(questions []model.Question, answers []model.Answer) int {
	correctByID := make(map[int]string, len(questions))
	for _, q := range questions {
		correctByID[q.ID] = q.CorrectOption
	}

	score := 0
	for _, a := range answers {
		if correct, ok := correctByID[a.QuestionID]; ok && a.SelectedOption == correct {
			score++
		}
	}
	return score
}
