package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func TestNewMenu_SkipsDisabledFirstItem(t *testing.T) {
	m := NewMenu([]MenuItem{
		{Label: "RESUME", Disabled: true},
		{Label: "START"},
	})
	if m.Selected != 1 {
		t.Errorf("selected = %d, want 1", m.Selected)
	}
}

func TestMenu_NavigationSkipsDisabled(t *testing.T) {
	m := NewMenu([]MenuItem{
		{Label: "A"},
		{Label: "B", Disabled: true},
		{Label: "C"},
	})

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 2 {
		t.Errorf("after down: selected = %d, want 2", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 2 {
		t.Errorf("down at the end should stay: selected = %d", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if m.Selected != 0 {
		t.Errorf("after up: selected = %d, want 0", m.Selected)
	}
}

func TestMenu_EnterRunsAction(t *testing.T) {
	called := false
	m := NewMenu([]MenuItem{{Label: "GO", Action: func() tea.Cmd {
		called = true
		return nil
	}}})
	m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !called {
		t.Error("expected action to run")
	}
}

func TestOptionList_Markers(t *testing.T) {
	o := OptionList{
		Options: []string{"Argon", "Helium", "CO2"},
		Cursor:  1,
		Struck:  map[string]bool{"CO2": true},
	}
	v := o.View()
	if !strings.Contains(v, "▸") {
		t.Error("expected cursor marker while unanswered")
	}
	if !strings.Contains(v, "1)  Argon") || !strings.Contains(v, "3)  CO2") {
		t.Errorf("expected numbered options, got:\n%s", v)
	}

	o.Chosen = "Helium"
	v = o.View()
	if strings.Contains(v, "▸") {
		t.Error("cursor should be hidden once answered")
	}
	if !strings.Contains(v, "● 2)  Helium") {
		t.Errorf("expected chosen marker, got:\n%s", v)
	}
}

func TestLabel(t *testing.T) {
	if Label(0) != "1" || Label(8) != "9" {
		t.Errorf("Label(0)=%q Label(8)=%q", Label(0), Label(8))
	}
}

func TestProgressBar_ShowsPercent(t *testing.T) {
	v := NewProgressBar("Welding", 0.75, true, 40).View()
	if !strings.Contains(v, "Welding") || !strings.Contains(v, "75%") {
		t.Errorf("unexpected bar: %q", v)
	}
}

func TestProgressBar_ClampsOverflow(t *testing.T) {
	v := NewProgressBar("", 1.5, false, 10).View()
	if v == "" {
		t.Error("expected a rendered bar")
	}
}
