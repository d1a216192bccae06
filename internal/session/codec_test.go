package session

import "testing"

func TestEncodeQuizIDSetSorted(t *testing.T) {
	set := map[int]struct{}{9: {}, 2: {}, 14: {}}

	if got := EncodeQuizIDSet(set); got != "2,9,14" {
		t.Errorf("encoded = %q, want %q", got, "2,9,14")
	}
}

func TestEncodeQuizIDSetEmpty(t *testing.T) {
	if got := EncodeQuizIDSet(nil); got != "" {
		t.Errorf("encoded = %q, want empty", got)
	}
}

func TestParseQuizIDSet(t *testing.T) {
	set := ParseQuizIDSet("2,9,14")
	if len(set) != 3 {
		t.Fatalf("len = %d, want 3", len(set))
	}
	for _, id := range []int{2, 9, 14} {
		if _, ok := set[id]; !ok {
			t.Errorf("missing id %d", id)
		}
	}
}

func TestParseQuizIDSetDropsJunk(t *testing.T) {
	set := ParseQuizIDSet("2,abc,,9, ,0x1")
	if len(set) != 2 {
		t.Errorf("len = %d, want 2 (junk entries dropped)", len(set))
	}
}

func TestQuizIDSetRoundTrip(t *testing.T) {
	in := map[int]struct{}{7: {}, 1: {}, 30: {}}
	out := ParseQuizIDSet(EncodeQuizIDSet(in))
	if len(out) != len(in) {
		t.Fatalf("len = %d, want %d", len(out), len(in))
	}
	for id := range in {
		if _, ok := out[id]; !ok {
			t.Errorf("missing id %d after round trip", id)
		}
	}
}
