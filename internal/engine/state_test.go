package engine

import (
	"errors"
	"testing"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to GameState
		expected bool
	}{
		{StateModeSelection, StateUsernameCreation, true},
		{StateModeSelection, StateGameplay, false},
		{StateUsernameCreation, StateStartScreen, true},
		{StateUsernameCreation, StateModeSelection, true},
		{StateStartScreen, StateGameplay, true},
		{StateStartScreen, StatePaused, false},
		{StateGameplay, StatePaused, true},
		{StateGameplay, StateGameOver, true},
		{StatePaused, StateGameplay, true},
		{StatePaused, StateGameOver, false},
		{StateGameOver, StateGameplay, true},
		{StateGameOver, StateStartScreen, false},
	}

	for _, tc := range tests {
		if got := CanTransition(tc.from, tc.to); got != tc.expected {
			t.Errorf("CanTransition(%s, %s) = %v, expected %v", tc.from, tc.to, got, tc.expected)
		}
	}
}

func TestParseGameState(t *testing.T) {
	for st := StateModeSelection; st <= StateGameOver; st++ {
		got, ok := ParseGameState(st.String())
		if !ok || got != st {
			t.Errorf("ParseGameState(%q) = %v, %v", st.String(), got, ok)
		}
	}
	if got, ok := ParseGameState(" paused "); !ok || got != StatePaused {
		t.Errorf("ParseGameState is not case-insensitive: %v, %v", got, ok)
	}
	if _, ok := ParseGameState("LOADING"); ok {
		t.Error("unknown state parsed")
	}
}

func TestVariantInitialState(t *testing.T) {
	if s := VariantModes.InitialState(); s != StateModeSelection {
		t.Errorf("VariantModes starts in %s", s)
	}
	if s := VariantClassic.InitialState(); s != StateStartScreen {
		t.Errorf("VariantClassic starts in %s", s)
	}
}

func TestNormalizeUsername(t *testing.T) {
	tests := []struct {
		in       string
		expected string
		ok       bool
	}{
		{"rider", "rider", true},
		{"  Seed_Runner9  ", "Seed_Runner9", true},
		{"abc", "abc", true},
		{"abcdefghijklmnop", "abcdefghijklmnop", true},
		{"ab", "", false},
		{"abcdefghijklmnopq", "", false},
		{"9lives", "", false},
		{"_under", "", false},
		{"no spaces", "", false},
		{"dash-name", "", false},
		{"", "", false},
	}

	for _, tc := range tests {
		got, err := NormalizeUsername(tc.in)
		if tc.ok {
			if err != nil || got != tc.expected {
				t.Errorf("NormalizeUsername(%q) = %q, %v, expected %q", tc.in, got, err, tc.expected)
			}
			continue
		}
		if !errors.Is(err, ErrInvalidUsername) {
			t.Errorf("NormalizeUsername(%q) error = %v, expected ErrInvalidUsername", tc.in, err)
		}
	}
}
