package model

import "time"

// Attempt is one student's run through one quiz. TotalQuestions is a
// snapshot of the question count at start time; CorrectCount is final once
// FinishedAt is set.
type Attempt struct {
	ID             int        `json:"id"`
	QuizID         int        `json:"quiz_id"`
	UserID         int        `json:"user_id"`
	StartedAt      time.Time  `json:"started_at"`
	FinishedAt     *time.Time `json:"finished_at,omitempty"`
	TotalQuestions int        `json:"total_questions"`
	CorrectCount   int        `json:"correct_count"`
}

// Finished reports whether the attempt has been scored and closed.
func (a *Attempt) Finished() bool {
	return a.FinishedAt != nil
}

// SolveForm is the answer-submission payload.
type SolveForm struct {
	Order    int    `form:"order" binding:"min=0"`
	Selected string `form:"selected" binding:"required"`
}
