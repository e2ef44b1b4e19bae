package registry

import (
	"testing"
	"time"

	"github.com/vovakirdan/lane-runner/internal/core"
)

type stubGame struct{ id, title string }

func (g stubGame) ID() string { return g.id }
func (g stubGame) Title() string { return g.title }
func (g stubGame) Reset(core.RuntimeConfig) error { return nil }
func (g stubGame) Apply(core.Intent) {}
func (g stubGame) Frame(time.Time) {}
func (g stubGame) Resize(int, int) {}
func (g stubGame) Render(*core.Screen) {}
func (g stubGame) Status() core.Status { return core.Status{} }
func (g stubGame) Close() {}

func register(id, title string) {
	Register(id, func() Game { return stubGame{id: id, title: title} })
}

func TestRegistry(t *testing.T) {
	register("zz_stub", "Zed")
	register("aa_stub", "Ay")

	list := List()
	if len(list) < 2 || list[0].ID != "aa_stub" {
		t.Fatalf("List = %v, expected sorted IDs", list)
	}

	tests := []struct {
		id     string
		exists bool
		title  string
	}{
		{"aa_stub", true, "Ay"},
		{"zz_stub", true, "Zed"},
		{"missing", false, "missing"},
	}
	for _, tc := range tests {
		if got := Exists(tc.id); got != tc.exists {
			t.Errorf("Exists(%s) = %v", tc.id, got)
		}
		if got := Title(tc.id); got != tc.title {
			t.Errorf("Title(%s) = %q, expected %q", tc.id, got, tc.title)
		}
		g, err := Create(tc.id)
		if (err == nil) != tc.exists {
			t.Errorf("Create(%s) error = %v", tc.id, err)
		}
		if err == nil && g.ID() != tc.id {
			t.Errorf("Create(%s) built %s", tc.id, g.ID())
		}
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	register("dup_stub", "Dup")
	defer func() {
		if recover() == nil {
			t.Error("duplicate Register did not panic")
		}
	}()
	register("dup_stub", "Dup again")
}
