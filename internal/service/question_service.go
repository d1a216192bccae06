package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/quizdesk/quizdesk/internal/model"
	"github.com/quizdesk/quizdesk/internal/repository"
	"github.com/rs/zerolog"
)

// QuestionService handles the quiz builder's question operations.
type QuestionService struct {
	questionRepo *repository.QuestionRepository
	media        *MediaService
	log          zerolog.Logger
}

// NewQuestionService creates a new QuestionService.
func NewQuestionService(questionRepo *repository.QuestionRepository, media *MediaService, log zerolog.Logger) *QuestionService {
	return &QuestionService{
		questionRepo: questionRepo,
		media:        media,
		log:          log.With().Str("component", "question_service").Logger(),
	}
}

// List returns a quiz's questions in display order.
func (s *QuestionService) List(ctx context.Context, quizID int) ([]model.Question, error) {
	questions, err := s.questionRepo.ListByQuiz(ctx, quizID)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	return questions, nil
}

// NextNumber returns the question number the builder should offer next.
func (s *QuestionService) NextNumber(ctx context.Context, quizID int) (int, error) {
	max, err := s.questionRepo.MaxQuestionNum(ctx, quizID)
	if err != nil {
		return 0, fmt.Errorf("max question number: %w", err)
	}
	return max + 1, nil
}

// validateQuestionForm trims and checks a submitted question against the
// next expected number. Choices keep only their surrounding whitespace
// trimmed; blank choices mark the label unused.
func validateQuestionForm(form *model.QuestionForm, nextNum int) (*model.Question, error) {
	if form.QuestionNum != nextNum {
		return nil, Validationf(fmt.Sprintf("Questions must be added in order; the next number is %d.", nextNum))
	}

	text := strings.TrimSpace(form.Text)
	if text == "" {
		return nil, Validationf("Question text is required.")
	}

	q := &model.Question{
		QuestionNum:   form.QuestionNum,
		Text:          text,
		ChoiceA:       strings.TrimSpace(form.ChoiceA),
		ChoiceB:       strings.TrimSpace(form.ChoiceB),
		ChoiceC:       strings.TrimSpace(form.ChoiceC),
		ChoiceD:       strings.TrimSpace(form.ChoiceD),
		ChoiceE:       strings.TrimSpace(form.ChoiceE),
		CorrectOption: strings.ToUpper(strings.TrimSpace(form.CorrectOption)),
	}

	filled := q.FilledChoices()
	if len(filled) < 2 {
		return nil, Validationf("A question needs at least two answer choices.")
	}
	if !q.HasChoice(q.CorrectOption) {
		return nil, Validationf("The correct answer must be one of the filled choices.")
	}

	return q, nil
}

// Add appends a question to a quiz. The submitted number must be exactly
// one past the current maximum, keeping numbering contiguous. An optional
// image upload is stored before the row is written.
func (s *QuestionService) Add(ctx context.Context, quizID int, form *model.QuestionForm, image *multipart.FileHeader) (*model.Question, error) {
	nextNum, err := s.NextNumber(ctx, quizID)
	if err != nil {
		return nil, err
	}

	q, err := validateQuestionForm(form, nextNum)
	if err != nil {
		return nil, err
	}
	q.QuizID = quizID

	if image != nil {
		path, err := s.media.SaveQuestionImage(image)
		if err != nil {
			if errors.Is(err, ErrUnsupportedFileType) || errors.Is(err, ErrFileTooLarge) {
				return nil, Validationf(err.Error())
			}
			return nil, fmt.Errorf("save image: %w", err)
		}
		q.ImagePath = &path
	}

	if err := s.questionRepo.Create(ctx, q); err != nil {
		if q.ImagePath != nil {
			s.media.Remove(*q.ImagePath)
		}
		return nil, fmt.Errorf("create question: %w", err)
	}

	s.log.Info().Int("quiz_id", quizID).Int("question_num", q.QuestionNum).Msg("Question added")
	return q, nil
}

// Delete removes a question and renumbers the rest of the quiz so numbers
// stay contiguous. Its stored image, if any, is cleaned up best-effort.
func (s *QuestionService) Delete(ctx context.Context, quizID, questionID int) error {
	q, err := s.questionRepo.GetByID(ctx, quizID, questionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("get question: %w", err)
	}

	if err := s.questionRepo.Delete(ctx, quizID, questionID, q.QuestionNum); err != nil {
		return fmt.Errorf("delete question: %w", err)
	}

	if q.ImagePath != nil {
		s.media.Remove(*q.ImagePath)
	}
	return nil
}
