package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func press(t *testing.T, m MenuModel, k tea.KeyType) MenuModel {
	t.Helper()

	updated, _ := m.Update(tea.KeyMsg(tea.Key{Type: k}))
	model, ok := updated.(MenuModel)
	if !ok {
		t.Fatalf("expected MenuModel, got %T", updated)
	}
	return model
}

func pressRune(t *testing.T, m MenuModel, r rune) MenuModel {
	t.Helper()

	updated, _ := m.Update(tea.KeyMsg(tea.Key{Type: tea.KeyRunes, Runes: []rune{r}}))
	model, ok := updated.(MenuModel)
	if !ok {
		t.Fatalf("expected MenuModel, got %T", updated)
	}
	return model
}

func TestMenu(t *testing.T) {
	options := []Option{
		{Label: "First"},
		{Label: "Second", Desc: "with detail"},
		{Label: "Third"},
	}

	t.Run("Navigation", func(t *testing.T) {
		m := NewMenu("Pick one", options)

		m = press(t, m, tea.KeyDown)
		m = press(t, m, tea.KeyDown)
		if m.cursor != 2 {
			t.Errorf("expected cursor at 2, got %d", m.cursor)
		}

		// cursor clamps at the last option
		m = press(t, m, tea.KeyDown)
		if m.cursor != 2 {
			t.Errorf("expected cursor clamped at 2, got %d", m.cursor)
		}

		m = press(t, m, tea.KeyUp)
		if m.cursor != 1 {
			t.Errorf("expected cursor at 1, got %d", m.cursor)
		}
	})

	t.Run("Vim Keys", func(t *testing.T) {
		m := NewMenu("Pick one", options)

		m = pressRune(t, m, 'j')
		if m.cursor != 1 {
			t.Errorf("expected j to move down, cursor at %d", m.cursor)
		}
		m = pressRune(t, m, 'k')
		if m.cursor != 0 {
			t.Errorf("expected k to move up, cursor at %d", m.cursor)
		}
	})

	t.Run("Selection", func(t *testing.T) {
		m := NewMenu("Pick one", options)
		m = press(t, m, tea.KeyDown)

		updated, cmd := m.Update(tea.KeyMsg(tea.Key{Type: tea.KeyEnter}))
		m = updated.(MenuModel)

		if m.Choice() != 1 {
			t.Errorf("expected choice 1, got %d", m.Choice())
		}
		if cmd == nil {
			t.Error("expected quit command after selection")
		}
	})

	t.Run("Cancel", func(t *testing.T) {
		m := NewMenu("Pick one", options)

		updated, cmd := m.Update(tea.KeyMsg(tea.Key{Type: tea.KeyEsc}))
		m = updated.(MenuModel)

		if m.Choice() != -1 {
			t.Errorf("expected no choice after cancel, got %d", m.Choice())
		}
		if cmd == nil {
			t.Error("expected quit command after cancel")
		}
	})

	t.Run("View", func(t *testing.T) {
		m := NewMenu("Pick one", options)
		view := m.View()

		if !strings.Contains(view, "Pick one") {
			t.Error("expected title rendered")
		}
		for _, opt := range options {
			if !strings.Contains(view, opt.Label) {
				t.Errorf("expected option %q rendered", opt.Label)
			}
		}
		if !strings.Contains(view, "with detail") {
			t.Error("expected description rendered")
		}
		if !strings.Contains(view, "> First") {
			t.Error("expected cursor marker on the first option")
		}
	})
}
