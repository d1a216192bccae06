package model

import (
	"reflect"
	"testing"
)

func TestFilledChoices(t *testing.T) {
	q := Question{ChoiceA: "Paris", ChoiceB: " ", ChoiceC: "Lyon"}

	got := q.FilledChoices()
	want := []string{"A", "C"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FilledChoices() = %v, want %v", got, want)
	}
}

func TestHasChoice(t *testing.T) {
	q := Question{ChoiceA: "Paris", ChoiceB: "Lyon"}

	if !q.HasChoice("a") {
		t.Error("expected lowercase letter to match")
	}
	if q.HasChoice("C") {
		t.Error("blank choice must not count")
	}
	if q.HasChoice("Z") {
		t.Error("unknown letter must not count")
	}
}

func TestQuizTimed(t *testing.T) {
	limit := 10
	zero := 0

	if (&Quiz{}).Timed() {
		t.Error("nil limit must not be timed")
	}
	if (&Quiz{TimeLimitMins: &zero}).Timed() {
		t.Error("zero limit must not be timed")
	}
	if !(&Quiz{TimeLimitMins: &limit}).Timed() {
		t.Error("positive limit must be timed")
	}
}
