package service

import (
	"testing"
	"time"

	"github.com/quizdesk/quizdesk/internal/model"
)

func TestScoreAnswers(t *testing.T) {
	questions := []model.Question{
		{ID: 1, CorrectOption: "A"},
		{ID: 2, CorrectOption: "B"},
		{ID: 3, CorrectOption: "C"},
	}
	answers := []model.Answer{
		{QuestionID: 1, SelectedOption: "A"},
		{QuestionID: 2, SelectedOption: "D"},
		// Question 3 unanswered.
	}

	if got := scoreAnswers(questions, answers); got != 1 {
		t.Errorf("score = %d, want 1", got)
	}
}

func TestScoreAnswersIgnoresStaleAnswers(t *testing.T) {
	// Answers referencing deleted questions do not count.
	questions := []model.Question{{ID: 1, CorrectOption: "A"}}
	answers := []model.Answer{
		{QuestionID: 1, SelectedOption: "A"},
		{QuestionID: 99, SelectedOption: "A"},
	}

	if got := scoreAnswers(questions, answers); got != 1 {
		t.Errorf("score = %d, want 1", got)
	}
}

func TestScoreAnswersEmpty(t *testing.T) {
	if got := scoreAnswers(nil, nil); got != 0 {
		t.Errorf("score = %d, want 0", got)
	}
}

func TestNormalizeChoiceCanonicalizesInput(t *testing.T) {
	cases := map[string]string{
		"a":   "A",
		" b ": "B",
		"C":   "C",
		"":    "",
	}
	for in, want := range cases {
		if got := normalizeChoice(in); got != want {
			t.Errorf("normalizeChoice(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizedChoiceScores(t *testing.T) {
	// A lowercase submission must end up stored as the canonical letter,
	// otherwise the recount would miss it.
	questions := []model.Question{{ID: 1, CorrectOption: "A"}}
	answers := []model.Answer{{QuestionID: 1, SelectedOption: normalizeChoice(" a ")}}

	if got := scoreAnswers(questions, answers); got != 1 {
		t.Errorf("score = %d, want 1", got)
	}
}

func TestRemainingSecondsClampsAtZero(t *testing.T) {
	start := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)

	// 61 seconds into a 1-minute limit.
	if got := remainingSeconds(1, start, start.Add(61*time.Second)); got != 0 {
		t.Errorf("remaining = %d, want 0", got)
	}
}

func TestRemainingSecondsCountsDown(t *testing.T) {
	start := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)

	if got := remainingSeconds(10, start, start.Add(90*time.Second)); got != 510 {
		t.Errorf("remaining = %d, want 510", got)
	}
	if got := remainingSeconds(10, start, start); got != 600 {
		t.Errorf("remaining = %d, want 600", got)
	}
}

func TestRemainingSecondsUntimedQuiz(t *testing.T) {
	quiz := &model.Quiz{}
	attempt := &model.Attempt{StartedAt: time.Now()}

	if got := RemainingSeconds(quiz, attempt, time.Now()); got != -1 {
		t.Errorf("remaining = %d, want -1 for untimed quiz", got)
	}
}

func TestBuildResultBreakdown(t *testing.T) {
	attempt := &model.Attempt{TotalQuestions: 10, CorrectCount: 6}
	answers := make([]model.Answer, 8)

	res := buildResult(attempt, answers)
	if res.Correct != 6 {
		t.Errorf("correct = %d, want 6", res.Correct)
	}
	if res.Wrong != 2 {
		t.Errorf("wrong = %d, want 2", res.Wrong)
	}
	if res.Blank != 2 {
		t.Errorf("blank = %d, want 2", res.Blank)
	}
	if res.Total != 10 {
		t.Errorf("total = %d, want 10", res.Total)
	}
}

func TestReviewItemsKeepsQuestionOrder(t *testing.T) {
	questions := []model.Question{
		{ID: 4, QuestionNum: 1, CorrectOption: "A"},
		{ID: 7, QuestionNum: 2, CorrectOption: "B"},
	}
	answers := []model.Answer{{QuestionID: 7, SelectedOption: "C"}}

	items := reviewItems(questions, answers)
	if len(items) != 2 {
		t.Fatalf("len = %d, want 2", len(items))
	}
	if items[0].Selected != "" {
		t.Errorf("item 0 selected = %q, want blank", items[0].Selected)
	}
	if items[1].Selected != "C" {
		t.Errorf("item 1 selected = %q, want C", items[1].Selected)
	}
}

func TestBuildResultNoAnswers(t *testing.T) {
	attempt := &model.Attempt{TotalQuestions: 5, CorrectCount: 0}

	res := buildResult(attempt, nil)
	if res.Blank != 5 || res.Wrong != 0 || res.Correct != 0 {
		t.Errorf("unexpected breakdown: %+v", res)
	}
}
