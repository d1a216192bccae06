package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/quizdesk/quizdesk/internal/model"
)

// QuizRepository handles quiz data access.
type QuizRepository struct {
	pool *pgxpool.Pool
}

// NewQuizRepository creates a new QuizRepository.
func NewQuizRepository(pool *pgxpool.Pool) *QuizRepository {
	return &QuizRepository{pool: pool}
}

const quizColumns = `id, name, genre, time_limit_mins, is_public, access_code,
	owner_teacher_id, created_at, updated_at`

func scanQuiz(row interface{ Scan(...any) error }) (*model.Quiz, error) {
	q := &model.Quiz{}
	err := row.Scan(&q.ID, &q.Name, &q.Genre, &q.TimeLimitMins, &q.IsPublic,
		&q.AccessCode, &q.OwnerTeacherID, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return q, nil
}

// GetByID retrieves a quiz by id.
func (r *QuizRepository) GetByID(ctx context.Context, id int) (*model.Quiz, error) {
	return scanQuiz(r.pool.QueryRow(ctx,
		`SELECT `+quizColumns+` FROM quizzes WHERE id = $1`, id))
}

// GetByAccessCode retrieves the non-public quiz matching the code exactly.
func (r *QuizRepository) GetByAccessCode(ctx context.Context, code string) (*model.Quiz, error) {
	return scanQuiz(r.pool.QueryRow(ctx,
		`SELECT `+quizColumns+` FROM quizzes
		 WHERE NOT is_public AND access_code = $1`, code))
}

// ListByOwner retrieves a teacher's quizzes, newest first.
func (r *QuizRepository) ListByOwner(ctx context.Context, teacherID int) ([]model.Quiz, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+quizColumns+` FROM quizzes
		 WHERE owner_teacher_id = $1
		 ORDER BY id DESC`, teacherID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var quizzes []model.Quiz
	for rows.Next() {
		q, err := scanQuiz(rows)
		if err != nil {
			return nil, err
		}
		quizzes = append(quizzes, *q)
	}
	return quizzes, rows.Err()
}

// ListVisibleToStudent retrieves public quizzes plus the given unlocked ids,
// newest first.
func (r *QuizRepository) ListVisibleToStudent(ctx context.Context, unlockedIDs []int) ([]model.Quiz, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+quizColumns+` FROM quizzes
		 WHERE is_public OR id = ANY($1)
		 ORDER BY id DESC`, unlockedIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var quizzes []model.Quiz
	for rows.Next() {
		q, err := scanQuiz(rows)
		if err != nil {
			return nil, err
		}
		quizzes = append(quizzes, *q)
	}
	return quizzes, rows.Err()
}

// Create inserts a new quiz.
func (r *QuizRepository) Create(ctx context.Context, q *model.Quiz) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO quizzes (name, genre, time_limit_mins, is_public, access_code, owner_teacher_id)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		q.Name, q.Genre, q.TimeLimitMins, q.IsPublic, q.AccessCode, q.OwnerTeacherID,
	).Scan(&q.ID, &q.CreatedAt, &q.UpdatedAt)
}

// Update rewrites the editable fields of a quiz.
func (r *QuizRepository) Update(ctx context.Context, q *model.Quiz) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE quizzes
		 SET name = $1, genre = $2, time_limit_mins = $3, is_public = $4,
		     access_code = $5, updated_at = NOW()
		 WHERE id = $6`,
		q.Name, q.Genre, q.TimeLimitMins, q.IsPublic, q.AccessCode, q.ID)
	return err
}

// Delete removes a quiz. Questions, attempts and answers are dropped by the
// schema's ON DELETE CASCADE rules.
func (r *QuizRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM quizzes WHERE id = $1`, id)
	return err
}
