package service

import (
	"testing"

	"github.com/quizdesk/quizdesk/internal/model"
)

func validForm() *model.QuestionForm {
	return &model.QuestionForm{
		QuestionNum:   3,
		Text:          "What is the capital of France?",
		ChoiceA:       "Paris",
		ChoiceB:       "Lyon",
		CorrectOption: "A",
	}
}

func TestValidateQuestionFormAccepts(t *testing.T) {
	q, err := validateQuestionForm(validForm(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.QuestionNum != 3 || q.Text != "What is the capital of France?" {
		t.Errorf("unexpected question: %+v", q)
	}
	if q.CorrectOption != "A" {
		t.Errorf("correct = %q, want A", q.CorrectOption)
	}
}

func TestValidateQuestionFormSequenceRule(t *testing.T) {
	form := validForm()
	form.QuestionNum = 5

	if _, err := validateQuestionForm(form, 3); err == nil {
		t.Fatal("expected error for out-of-sequence question number")
	} else if _, ok := IsValidation(err); !ok {
		t.Fatalf("expected ValidationError, got %T", err)
	}
}

func TestValidateQuestionFormNeedsTwoChoices(t *testing.T) {
	form := validForm()
	form.ChoiceB = "   "

	if _, err := validateQuestionForm(form, 3); err == nil {
		t.Fatal("expected error for a single filled choice")
	}
}

func TestValidateQuestionFormCorrectMustBeFilled(t *testing.T) {
	form := validForm()
	form.CorrectOption = "E"

	if _, err := validateQuestionForm(form, 3); err == nil {
		t.Fatal("expected error for blank correct choice")
	}
}

func TestValidateQuestionFormNormalizesCorrectOption(t *testing.T) {
	form := validForm()
	form.CorrectOption = " a "

	q, err := validateQuestionForm(form, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.CorrectOption != "A" {
		t.Errorf("correct = %q, want A", q.CorrectOption)
	}
}

func TestValidateQuestionFormBlankText(t *testing.T) {
	form := validForm()
	form.Text = "   "

	if _, err := validateQuestionForm(form, 3); err == nil {
		t.Fatal("expected error for blank text")
	}
}
