package model

// Answer records the selected choice for one question within one attempt.
// One row per (attempt, question); resubmissions overwrite it.
type Answer struct {
	ID             int    `json:"id"`
	AttemptID      int    `json:"attempt_id"`
	QuestionID     int    `json:"question_id"`
	SelectedOption string `json:"selected_option"`
}
