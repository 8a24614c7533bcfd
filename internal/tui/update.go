package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"focusctl/internal/classes"
	"focusctl/internal/focuserr"
	"focusctl/internal/model"
)

// MsgLoaded carries the settings read from disk.
type MsgLoaded struct {
	Classes []string
	Enabled model.EnabledFlag
}

// MsgSaved reports a successful write and what it changed.
type MsgSaved struct {
	Notice  string
	Classes []string
	Enabled model.EnabledFlag
}

// MsgError indicates an error occurred.
type MsgError struct{ Err error }

// Update handles events.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.WindowSize = msg
		return m, nil

	case MsgLoaded:
		m.Loading = false
		m.Err = nil
		m.Classes = msg.Classes
		m.Enabled = msg.Enabled
		m.clampSelection()
		return m, nil

	case MsgSaved:
		m.Modified = true
		m.Err = nil
		m.Notice = msg.Notice
		m.Classes = msg.Classes
		m.Enabled = msg.Enabled
		m.clampSelection()
		return m, nil

	case MsgError:
		m.Loading = false
		m.Err = msg.Err
		return m, nil

	case tea.KeyMsg:
		if m.InputMode {
			switch msg.Type {
			case tea.KeyEnter:
				m.InputMode = false
				m.InputBuffer.Blur()
				class := m.InputBuffer.Value()
				m.InputBuffer.SetValue("")
				return m, m.addCmd(class)
			case tea.KeyEsc:
				m.InputMode = false
				m.InputBuffer.Blur()
				m.InputBuffer.SetValue("")
				return m, nil
			}
			m.InputBuffer, cmd = m.InputBuffer.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.SelectedIdx > 0 {
				m.SelectedIdx--
			}
		case "down", "j":
			if m.SelectedIdx < len(m.Classes)-1 {
				m.SelectedIdx++
			}
		case "a":
			m.InputMode = true
			m.InputBuffer.Focus()
			m.InputBuffer.SetValue("")
			return m, textinput.Blink
		case "d", "x", "delete":
			if len(m.Classes) > 0 {
				return m, m.removeCmd(m.Classes[m.SelectedIdx])
			}
		case "e":
			return m, m.toggleCmd()
		case "r":
			m.Loading = true
			return m, LoadCmd(m.Store)
		}
	}

	return m, cmd
}

func (m *AppModel) clampSelection() {
	if m.SelectedIdx >= len(m.Classes) {
		m.SelectedIdx = max(0, len(m.Classes)-1)
	}
}

// LoadCmd reads the class list and flag.
func LoadCmd(store Store) tea.Cmd {
	return func() tea.Msg {
		list, err := store.Classes()
		if err != nil {
			return MsgError{Err: err}
		}
		flag, err := store.Enabled()
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgLoaded{Classes: list, Enabled: flag}
	}
}

func (m AppModel) addCmd(class string) tea.Cmd {
	store, enabled := m.Store, m.Enabled
	return func() tea.Msg {
		if classes.Key(class) == "" {
			return MsgError{Err: focuserr.InvalidInput("class is empty")}
		}
		current, err := store.Classes()
		if err != nil {
			return MsgError{Err: err}
		}
		updated, added := classes.Add(current, class)
		if !added {
			return MsgError{Err: focuserr.InvalidInput("%s is already present", class)}
		}
		if err := store.SetClasses(updated); err != nil {
			return MsgError{Err: err}
		}
		return MsgSaved{Notice: fmt.Sprintf("added %s", class), Classes: updated, Enabled: enabled}
	}
}

func (m AppModel) removeCmd(class string) tea.Cmd {
	store, enabled := m.Store, m.Enabled
	return func() tea.Msg {
		current, err := store.Classes()
		if err != nil {
			return MsgError{Err: err}
		}
		updated, removed := classes.Remove(current, class)
		if !removed {
			return MsgError{Err: focuserr.NotFound("%s is no longer configured", class)}
		}
		if err := store.SetClasses(updated); err != nil {
			return MsgError{Err: err}
		}
		return MsgSaved{Notice: fmt.Sprintf("removed %s", class), Classes: updated, Enabled: enabled}
	}
}

func (m AppModel) toggleCmd() tea.Cmd {
	store, list := m.Store, m.Classes
	enable := m.Enabled != model.EnabledTrue
	return func() tea.Msg {
		if err := store.SetEnabled(enable); err != nil {
			return MsgError{Err: err}
		}
		notice := "disabled the script"
		if enable {
			notice = "enabled the script"
		}
		return MsgSaved{Notice: notice, Classes: list, Enabled: model.FlagOf(enable)}
	}
}
