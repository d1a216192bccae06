package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/quizdesk/quizdesk/internal/model"
)

// QuestionRepository handles question data access.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository creates a new QuestionRepository.
func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

const questionColumns = `id, quiz_id, question_num, text,
	choice_a, choice_b, choice_c, choice_d, choice_e, correct_option, image_path`

func scanQuestion(row interface{ Scan(...any) error }) (*model.Question, error) {
	q := &model.Question{}
	err := row.Scan(&q.ID, &q.QuizID, &q.QuestionNum, &q.Text,
		&q.ChoiceA, &q.ChoiceB, &q.ChoiceC, &q.ChoiceD, &q.ChoiceE,
		&q.CorrectOption, &q.ImagePath)
	if err != nil {
		return nil, err
	}
	return q, nil
}

// ListByQuiz retrieves all questions of a quiz ordered by question number.
func (r *QuestionRepository) ListByQuiz(ctx context.Context, quizID int) ([]model.Question, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+questionColumns+` FROM questions
		 WHERE quiz_id = $1
		 ORDER BY question_num`, quizID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []model.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		questions = append(questions, *q)
	}
	return questions, rows.Err()
}

// GetByID retrieves a question scoped to a quiz.
func (r *QuestionRepository) GetByID(ctx context.Context, quizID, questionID int) (*model.Question, error) {
	return scanQuestion(r.pool.QueryRow(ctx,
		`SELECT `+questionColumns+` FROM questions
		 WHERE id = $1 AND quiz_id = $2`, questionID, quizID))
}

// GetByOffset retrieves the question at a zero-based offset into the quiz's
// questions ordered by question number. Returns pgx.ErrNoRows past the end.
func (r *QuestionRepository) GetByOffset(ctx context.Context, quizID, offset int) (*model.Question, error) {
	return scanQuestion(r.pool.QueryRow(ctx,
		`SELECT `+questionColumns+` FROM questions
		 WHERE quiz_id = $1
		 ORDER BY question_num
		 OFFSET $2 LIMIT 1`, quizID, offset))
}

// CountByQuiz returns the number of questions in a quiz.
func (r *QuestionRepository) CountByQuiz(ctx context.Context, quizID int) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM questions WHERE quiz_id = $1`, quizID).Scan(&n)
	return n, err
}

// MaxQuestionNum returns the highest question number in a quiz, 0 when the
// quiz has no questions.
func (r *QuestionRepository) MaxQuestionNum(ctx context.Context, quizID int) (int, error) {
	var max int
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(MAX(question_num), 0) FROM questions WHERE quiz_id = $1`, quizID).Scan(&max)
	return max, err
}

// ListImagePaths returns the non-null image paths of a quiz's questions.
func (r *QuestionRepository) ListImagePaths(ctx context.Context, quizID int) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT image_path FROM questions
		 WHERE quiz_id = $1 AND image_path IS NOT NULL`, quizID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, rows.Err()
}

// Create inserts a new question.
func (r *QuestionRepository) Create(ctx context.Context, q *model.Question) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO questions (quiz_id, question_num, text, choice_a, choice_b, choice_c, choice_d, choice_e, correct_option, image_path)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id`,
		q.QuizID, q.QuestionNum, q.Text, q.ChoiceA, q.ChoiceB, q.ChoiceC,
		q.ChoiceD, q.ChoiceE, q.CorrectOption, q.ImagePath,
	).Scan(&q.ID)
}

// Delete removes a question and renumbers the survivors so question numbers
// stay contiguous from 1.
func (r *QuestionRepository) Delete(ctx context.Context, quizID, questionID, questionNum int) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// The decrement below would otherwise trip the unique constraint
	// mid-statement whenever a row is visited before the one holding its
	// target number.
	if _, err := tx.Exec(ctx,
		`SET CONSTRAINTS questions_quiz_num_key DEFERRED`); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx,
		`DELETE FROM questions WHERE id = $1 AND quiz_id = $2`, questionID, quizID); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx,
		`UPDATE questions SET question_num = question_num - 1
		 WHERE quiz_id = $1 AND question_num > $2`, quizID, questionNum); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
