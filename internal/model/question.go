package model

import "strings"

// ChoiceLetters are the labels a question may use, in display order.
var ChoiceLetters = []string{"A", "B", "C", "D", "E"}

// Question is one multiple-choice question of a quiz. Question numbers are
// 1-based and contiguous within a quiz. A blank choice string means the
// label is unused.
type Question struct {
	ID            int     `json:"id"`
	QuizID        int     `json:"quiz_id"`
	QuestionNum   int     `json:"question_num"`
	Text          string  `json:"text"`
	ChoiceA       string  `json:"choice_a"`
	ChoiceB       string  `json:"choice_b"`
	ChoiceC       string  `json:"choice_c"`
	ChoiceD       string  `json:"choice_d"`
	ChoiceE       string  `json:"choice_e"`
	CorrectOption string  `json:"correct_option"`
	ImagePath     *string `json:"image_path,omitempty"`
}

// Choice returns the text behind a choice letter, or "" for an unknown
// letter.
func (q Question) Choice(letter string) string {
	switch strings.ToUpper(letter) {
	case "A":
		return q.ChoiceA
	case "B":
		return q.ChoiceB
	case "C":
		return q.ChoiceC
	case "D":
		return q.ChoiceD
	case "E":
		return q.ChoiceE
	}
	return ""
}

// FilledChoices returns the letters whose choice text is non-blank.
func (q Question) FilledChoices() []string {
	var filled []string
	for _, letter := range ChoiceLetters {
		if strings.TrimSpace(q.Choice(letter)) != "" {
			filled = append(filled, letter)
		}
	}
	return filled
}

// HasChoice reports whether the letter names a non-blank choice.
func (q Question) HasChoice(letter string) bool {
	return strings.TrimSpace(q.Choice(letter)) != ""
}

// QuestionForm is the add-question payload of the quiz builder.
type QuestionForm struct {
	QuestionNum   int    `form:"question_num" binding:"required,min=1"`
	Text          string `form:"text" binding:"required"`
	ChoiceA       string `form:"choice_a"`
	ChoiceB       string `form:"choice_b"`
	ChoiceC       string `form:"choice_c"`
	ChoiceD       string `form:"choice_d"`
	ChoiceE       string `form:"choice_e"`
	CorrectOption string `form:"correct_option" binding:"required"`
}
