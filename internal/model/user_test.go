package model

import "testing"

func TestParseRole(t *testing.T) {
	cases := []struct {
		in   string
		want Role
		ok   bool
	}{
		{"teacher", RoleTeacher, true},
		{"STUDENT", RoleStudent, true},
		{" Teacher ", RoleTeacher, true},
		{"admin", "", false},
		{"", "", false},
	}

	for _, tc := range cases {
		got, ok := ParseRole(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("ParseRole(%q) = (%q, %v), want (%q, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestRoleMatches(t *testing.T) {
	if !Role("Teacher").Matches(RoleTeacher) {
		t.Error("expected case-insensitive match")
	}
	if Role("teacher").Matches(RoleStudent) {
		t.Error("teacher must not match student")
	}
}
