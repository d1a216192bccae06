package service

import (
	"strings"
	"testing"

	"github.com/quizdesk/quizdesk/internal/model"
)

func TestNormalizeQuizFormPublicClearsAccessCode(t *testing.T) {
	form := &model.QuizForm{Name: "Capitals", IsPublic: true, AccessCode: "SECRET"}

	name, genre, timeLimit, accessCode, err := normalizeQuizForm(form)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "Capitals" {
		t.Errorf("name = %q, want %q", name, "Capitals")
	}
	if genre != nil {
		t.Errorf("genre = %v, want nil", *genre)
	}
	if timeLimit != nil {
		t.Errorf("timeLimit = %v, want nil", *timeLimit)
	}
	if accessCode != nil {
		t.Errorf("accessCode = %q, want nil for a public quiz", *accessCode)
	}
}

func TestNormalizeQuizFormPrivateRequiresCode(t *testing.T) {
	form := &model.QuizForm{Name: "Capitals", IsPublic: false, AccessCode: "   "}

	if _, _, _, _, err := normalizeQuizForm(form); err == nil {
		t.Fatal("expected error for private quiz with blank access code")
	} else if _, ok := IsValidation(err); !ok {
		t.Fatalf("expected ValidationError, got %T", err)
	}
}

func TestNormalizeQuizFormTrimsFields(t *testing.T) {
	form := &model.QuizForm{
		Name:       "  Capitals  ",
		Genre:      "  Geography ",
		IsPublic:   false,
		AccessCode: " GEO42 ",
	}

	name, genre, _, accessCode, err := normalizeQuizForm(form)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "Capitals" {
		t.Errorf("name = %q, want trimmed", name)
	}
	if genre == nil || *genre != "Geography" {
		t.Errorf("genre = %v, want Geography", genre)
	}
	if accessCode == nil || *accessCode != "GEO42" {
		t.Errorf("accessCode = %v, want GEO42", accessCode)
	}
}

func TestNormalizeQuizFormCeilings(t *testing.T) {
	cases := []struct {
		name string
		form model.QuizForm
	}{
		{"name too long", model.QuizForm{Name: strings.Repeat("x", model.QuizNameMax+1), IsPublic: true}},
		{"genre too long", model.QuizForm{Name: "Q", Genre: strings.Repeat("g", model.QuizGenreMax+1), IsPublic: true}},
		{"code too long", model.QuizForm{Name: "Q", AccessCode: strings.Repeat("c", model.AccessCodeMax+1)}},
		{"blank name", model.QuizForm{Name: "   ", IsPublic: true}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, _, _, err := normalizeQuizForm(&tc.form); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestNormalizeQuizFormTimeLimit(t *testing.T) {
	form := &model.QuizForm{Name: "Q", IsPublic: true, TimeLimitMins: 15}
	_, _, timeLimit, _, err := normalizeQuizForm(form)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if timeLimit == nil || *timeLimit != 15 {
		t.Errorf("timeLimit = %v, want 15", timeLimit)
	}

	form = &model.QuizForm{Name: "Q", IsPublic: true, TimeLimitMins: 0}
	_, _, timeLimit, _, err = normalizeQuizForm(form)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if timeLimit != nil {
		t.Errorf("timeLimit = %v, want nil for 0", *timeLimit)
	}
}
