package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"focusctl/internal/model"
)

// Store is the persistence the editor works against. Every edit is written
// through immediately.
type Store interface {
	Classes() ([]string, error)
	Enabled() (model.EnabledFlag, error)
	SetClasses(list []string) error
	SetEnabled(enabled bool) error
}

// AppModel holds the TUI state.
type AppModel struct {
	// Data
	Store    Store
	Path     string // kwinrc shown in the header
	Target   string // Account being edited, for the header
	Classes  []string
	Enabled  model.EnabledFlag
	Loading  bool
	Err      error  // Last failure; cleared by the next successful action
	Notice   string // Last status message
	Modified bool   // Something was written; the caller reconfigures KWin

	// UI State
	SelectedIdx int
	WindowSize  tea.WindowSizeMsg

	// Add State
	InputMode   bool
	InputBuffer textinput.Model
}

// InitialModel returns the initial state.
func InitialModel(store Store, path, target string) AppModel {
	ti := textinput.New()
	ti.Placeholder = "Window class..."
	ti.CharLimit = 128
	ti.Width = 32

	return AppModel{
		Store:       store,
		Path:        path,
		Target:      target,
		Loading:     true,
		InputBuffer: ti,
	}
}

// Init loads the current settings.
func (m AppModel) Init() tea.Cmd {
	return LoadCmd(m.Store)
}
