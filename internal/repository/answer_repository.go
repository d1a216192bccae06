package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/quizdesk/quizdesk/internal/model"
)

// AnswerRepository handles answer data access.
type AnswerRepository struct {
	pool *pgxpool.Pool
}

// NewAnswerRepository creates a new AnswerRepository.
func NewAnswerRepository(pool *pgxpool.Pool) *AnswerRepository {
	return &AnswerRepository{pool: pool}
}

// Upsert records the selected choice for (attempt, question); the last
// write wins.
func (r *AnswerRepository) Upsert(ctx context.Context, attemptID, questionID int, selected string) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO answers (attempt_id, question_id, selected_option)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (attempt_id, question_id)
		 DO UPDATE SET selected_option = EXCLUDED.selected_option`,
		attemptID, questionID, selected)
	return err
}

// ListByAttempt retrieves all answers recorded for an attempt.
func (r *AnswerRepository) ListByAttempt(ctx context.Context, attemptID int) ([]model.Answer, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, attempt_id, question_id, selected_option
		 FROM answers WHERE attempt_id = $1`, attemptID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var answers []model.Answer
	for rows.Next() {
		var a model.Answer
		if err := rows.Scan(&a.ID, &a.AttemptID, &a.QuestionID, &a.SelectedOption); err != nil {
			return nil, err
		}
		answers = append(answers, a)
	}
	return answers, rows.Err()
}

// GetSelected returns the recorded choice for (attempt, question), or ""
// when none exists.
func (r *AnswerRepository) GetSelected(ctx context.Context, attemptID, questionID int) (string, error) {
	var selected string
	err := r.pool.QueryRow(ctx,
		`SELECT selected_option FROM answers
		 WHERE attempt_id = $1 AND question_id = $2`, attemptID, questionID).Scan(&selected)
	if err != nil {
		return "", err
	}
	return selected, nil
}
