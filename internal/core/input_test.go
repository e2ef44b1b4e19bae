package core

import "testing"

func TestActionString(t *testing.T) {
	tests := []struct {
		a        Action
		expected string
	}{
		{ActionMoveLeft, "MoveLeft"},
		{ActionMoveRight, "MoveRight"},
		{ActionSubmitUsername, "SubmitUsername"},
		{Action(99), "Unknown"},
	}

	for _, tc := range tests {
		if got := tc.a.String(); got != tc.expected {
			t.Errorf("Action(%d).String() = %q, expected %q", tc.a, got, tc.expected)
		}
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in       string
		expected Mode
		ok       bool
	}{
		{"casual", ModeCasual, true},
		{" Leaderboard ", ModeLeaderboard, true},
		{"ranked", ModeLeaderboard, true},
		{"onchain", ModeCasual, false},
	}

	for _, tc := range tests {
		got, ok := ParseMode(tc.in)
		if got != tc.expected || ok != tc.ok {
			t.Errorf("ParseMode(%q) = (%v, %v), expected (%v, %v)", tc.in, got, ok, tc.expected, tc.ok)
		}
	}
}

func TestIntentConstructors(t *testing.T) {
	if in := SelectMode(ModeLeaderboard); in.Action != ActionSelectMode || in.Mode != ModeLeaderboard {
		t.Errorf("SelectMode() = %+v", in)
	}
	if in := SubmitUsername("rider"); in.Action != ActionSubmitUsername || in.Text != "rider" {
		t.Errorf("SubmitUsername() = %+v", in)
	}
	if in := NewIntent(ActionPause); in.Action != ActionPause || in.Text != "" {
		t.Errorf("NewIntent() = %+v", in)
	}
}
