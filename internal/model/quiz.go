package model

import "time"

// Field ceilings. The entity-level limits are authoritative and applied
// uniformly on create and edit.
const (
	QuizNameMax   = 40
	QuizGenreMax  = 25
	AccessCodeMax = 20
)

// Quiz is an authored quiz. A non-public quiz carries an access code that
// students must exchange for a session-scoped unlock grant.
type Quiz struct {
	ID             int        `json:"id"`
	Name           string     `json:"name"`
	Genre          *string    `json:"genre,omitempty"`
	TimeLimitMins  *int       `json:"time_limit_mins,omitempty"`
	IsPublic       bool       `json:"is_public"`
	AccessCode     *string    `json:"access_code,omitempty"`
	OwnerTeacherID int        `json:"owner_teacher_id"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// Timed reports whether the quiz enforces a time limit.
func (q *Quiz) Timed() bool {
	return q.TimeLimitMins != nil && *q.TimeLimitMins > 0
}

// QuizForm is the create/edit payload. Cross-field rules (access code
// required for non-public quizzes) are enforced by the quiz service.
type QuizForm struct {
	Name          string `form:"quiz_name" binding:"required,max=40"`
	Genre         string `form:"genre" binding:"omitempty,max=25"`
	TimeLimitMins int    `form:"time_limit_mins" binding:"omitempty,min=1,max=480"`
	IsPublic      bool   `form:"is_public"`
	AccessCode    string `form:"access_code" binding:"omitempty,max=20"`
}

// UnlockForm is the access-code exchange payload. Validation is manual so
// the user sees the exact message for blank vs over-long codes.
type UnlockForm struct {
	AccessCode string `form:"access_code"`
}
