package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/quizdesk/quizdesk/internal/model"
)

// ScoreboardRow combines a finished attempt with the student who made it.
type ScoreboardRow struct {
	AttemptID      int        `json:"attempt_id"`
	Username       string     `json:"username"`
	CorrectCount   int        `json:"correct_count"`
	TotalQuestions int        `json:"total_questions"`
	StartedAt      time.Time  `json:"started_at"`
	FinishedAt     *time.Time `json:"finished_at"`
}

// AttemptRepository handles attempt data access.
type AttemptRepository struct {
	pool *pgxpool.Pool
}

// NewAttemptRepository creates a new AttemptRepository.
func NewAttemptRepository(pool *pgxpool.Pool) *AttemptRepository {
	return &AttemptRepository{pool: pool}
}

const attemptColumns = `id, quiz_id, user_id, started_at, finished_at, total_questions, correct_count`

func scanAttempt(row interface{ Scan(...any) error }) (*model.Attempt, error) {
	a := &model.Attempt{}
	err := row.Scan(&a.ID, &a.QuizID, &a.UserID, &a.StartedAt, &a.FinishedAt,
		&a.TotalQuestions, &a.CorrectCount)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// GetByID retrieves an attempt by id.
func (r *AttemptRepository) GetByID(ctx context.Context, id int) (*model.Attempt, error) {
	return scanAttempt(r.pool.QueryRow(ctx,
		`SELECT `+attemptColumns+` FROM attempts WHERE id = $1`, id))
}

// GetForStudent retrieves an attempt scoped to a quiz and student. Used by
// the result view so students cannot read each other's attempts.
func (r *AttemptRepository) GetForStudent(ctx context.Context, attemptID, quizID, userID int) (*model.Attempt, error) {
	return scanAttempt(r.pool.QueryRow(ctx,
		`SELECT `+attemptColumns+` FROM attempts
		 WHERE id = $1 AND quiz_id = $2 AND user_id = $3`, attemptID, quizID, userID))
}

// GetOpen retrieves the unfinished attempt for a (quiz, student) pair, if
// any. The schema permits at most one.
func (r *AttemptRepository) GetOpen(ctx context.Context, quizID, userID int) (*model.Attempt, error) {
	return scanAttempt(r.pool.QueryRow(ctx,
		`SELECT `+attemptColumns+` FROM attempts
		 WHERE quiz_id = $1 AND user_id = $2 AND finished_at IS NULL`, quizID, userID))
}

// Create inserts a new open attempt with a snapshot of the question count.
func (r *AttemptRepository) Create(ctx context.Context, a *model.Attempt) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO attempts (quiz_id, user_id, total_questions, correct_count)
		 VALUES ($1, $2, $3, 0)
		 RETURNING id, started_at`,
		a.QuizID, a.UserID, a.TotalQuestions,
	).Scan(&a.ID, &a.StartedAt)
}

// Finish closes an attempt with its final score.
func (r *AttemptRepository) Finish(ctx context.Context, id, correctCount int, finishedAt time.Time) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE attempts SET correct_count = $1, finished_at = $2 WHERE id = $3`,
		correctCount, finishedAt, id)
	return err
}

// ListFinishedByQuiz retrieves the scoreboard of a quiz: finished attempts
// with usernames, best score first, earlier finish breaking ties.
func (r *AttemptRepository) ListFinishedByQuiz(ctx context.Context, quizID int) ([]ScoreboardRow, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT a.id, u.username, a.correct_count, a.total_questions, a.started_at, a.finished_at
		 FROM attempts a
		 JOIN users u ON a.user_id = u.id
		 WHERE a.quiz_id = $1 AND a.finished_at IS NOT NULL
		 ORDER BY a.correct_count DESC, a.finished_at ASC`, quizID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var board []ScoreboardRow
	for rows.Next() {
		var row ScoreboardRow
		if err := rows.Scan(&row.AttemptID, &row.Username, &row.CorrectCount,
			&row.TotalQuestions, &row.StartedAt, &row.FinishedAt); err != nil {
			return nil, err
		}
		board = append(board, row)
	}
	return board, rows.Err()
}
