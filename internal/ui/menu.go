// package ui contains the interactive terminal menus used by the transfer command.
package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"trackshift/internal/shared"
)

// Option is one selectable menu entry.
type Option struct {
	Label string
	Desc  string
}

// keyMap defines the key bindings for the menu.
type keyMap struct {
	up    key.Binding
	down  key.Binding
	enter key.Binding
	quit  key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "cancel"),
		),
	}
}

// MenuModel is a single-choice menu.
type MenuModel struct {
	title   string
	options []Option
	cursor  int
	choice  int
	keys    keyMap
}

// NewMenu creates a menu with the given title and options.
func NewMenu(title string, options []Option) MenuModel {
	return MenuModel{
		title:   title,
		options: options,
		choice:  -1,
		keys:    newKeyMap(),
	}
}

// Init implements tea.Model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles key presses.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, m.keys.down):
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, m.keys.enter):
		m.choice = m.cursor
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.quit):
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	s := titleStyle.Render(m.title) + "\n"

	for i, opt := range m.options {
		line := "  " + opt.Label
		if i == m.cursor {
			line = selectedStyle.Render("> " + opt.Label)
		} else {
			line = normalStyle.Render(line)
		}
		s += line
		if opt.Desc != "" {
			s += descStyle.Render("  " + opt.Desc)
		}
		s += "\n"
	}

	s += helpStyle.Render("↑/↓ move · enter select · q cancel")
	return s + "\n"
}

// Choice returns the selected option index, or -1 when cancelled.
func (m MenuModel) Choice() int {
	return m.choice
}

// Choose runs a menu to completion and returns the selected index.
// Cancelling returns [shared.ErrCancelled].
func Choose(title string, options []Option) (int, error) {
	program := tea.NewProgram(NewMenu(title, options))

	final, err := program.Run()
	if err != nil {
		return -1, fmt.Errorf("menu failed: %w", err)
	}

	model, ok := final.(MenuModel)
	if !ok || model.Choice() < 0 {
		return -1, shared.ErrCancelled
	}

	return model.Choice(), nil
}
