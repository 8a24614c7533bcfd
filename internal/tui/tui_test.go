package tui

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusctl/internal/model"
)

type memStore struct {
	classes []string
	enabled model.EnabledFlag
	writes  int
	failSet error
}

func (s *memStore) Classes() ([]string, error)          { return append([]string(nil), s.classes...), nil }
func (s *memStore) Enabled() (model.EnabledFlag, error) { return s.enabled, nil }

func (s *memStore) SetClasses(list []string) error {
	if s.failSet != nil {
		return s.failSet
	}
	s.writes++
	s.classes = append([]string(nil), list...)
	return nil
}

func (s *memStore) SetEnabled(enabled bool) error {
	if s.failSet != nil {
		return s.failSet
	}
	s.writes++
	s.enabled = model.FlagOf(enabled)
	return nil
}

// step feeds msg through Update and then runs the returned command once.
func step(t *testing.T, m AppModel, msg tea.Msg) AppModel {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(AppModel)
	if cmd != nil {
		if out := cmd(); out != nil {
			if _, quit := out.(tea.QuitMsg); !quit {
				next, _ = m.Update(out)
				m = next.(AppModel)
			}
		}
	}
	return m
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func loaded(t *testing.T, store *memStore) AppModel {
	t.Helper()
	m := InitialModel(store, "/home/alice/.config/kwinrc", "alice")
	require.True(t, m.Loading)
	msg := m.Init()()
	next, _ := m.Update(msg)
	return next.(AppModel)
}

func TestLoad(t *testing.T) {
	m := loaded(t, &memStore{classes: []string{"firefox", "Code"}, enabled: model.EnabledTrue})
	assert.False(t, m.Loading)
	assert.Equal(t, []string{"firefox", "Code"}, m.Classes)
	assert.Equal(t, model.EnabledTrue, m.Enabled)
	assert.False(t, m.Modified)
}

func TestAddClass(t *testing.T) {
	store := &memStore{classes: []string{"firefox"}}
	m := loaded(t, store)

	next, _ := m.Update(key("a"))
	m = next.(AppModel)
	require.True(t, m.InputMode)

	next, _ = m.Update(key("Code"))
	m = next.(AppModel)
	m = step(t, m, key("enter"))

	assert.False(t, m.InputMode)
	assert.True(t, m.Modified)
	assert.Equal(t, []string{"firefox", "Code"}, store.classes)
	assert.Equal(t, []string{"firefox", "Code"}, m.Classes)
	assert.Equal(t, "added Code", m.Notice)
}

func TestAddDuplicateReportsError(t *testing.T) {
	store := &memStore{classes: []string{"firefox"}}
	m := loaded(t, store)

	next, _ := m.Update(key("a"))
	m = next.(AppModel)
	next, _ = m.Update(key("Firefox.desktop"))
	m = next.(AppModel)
	m = step(t, m, key("enter"))

	require.Error(t, m.Err)
	assert.False(t, m.Modified)
	assert.Zero(t, store.writes)
}

func TestAddCancelled(t *testing.T) {
	store := &memStore{}
	m := loaded(t, store)

	next, _ := m.Update(key("a"))
	m = next.(AppModel)
	next, _ = m.Update(key("Code"))
	m = next.(AppModel)
	m = step(t, m, key("esc"))

	assert.False(t, m.InputMode)
	assert.Empty(t, m.InputBuffer.Value())
	assert.Zero(t, store.writes)
}

func TestDeleteSelected(t *testing.T) {
	store := &memStore{classes: []string{"firefox", "Code", "kitty"}}
	m := loaded(t, store)

	m = step(t, m, key("down"))
	m = step(t, m, key("down"))
	require.Equal(t, 2, m.SelectedIdx)

	m = step(t, m, key("d"))
	assert.Equal(t, []string{"firefox", "Code"}, store.classes)
	assert.Equal(t, 1, m.SelectedIdx, "selection stays inside the shorter list")
	assert.True(t, m.Modified)
}

func TestDeleteOnEmptyList(t *testing.T) {
	store := &memStore{}
	m := loaded(t, store)
	m = step(t, m, key("d"))
	assert.Zero(t, store.writes)
	assert.False(t, m.Modified)
}

func TestToggleEnabled(t *testing.T) {
	store := &memStore{enabled: model.EnabledUnset}
	m := loaded(t, store)

	m = step(t, m, key("e"))
	assert.Equal(t, model.EnabledTrue, store.enabled)
	assert.Equal(t, model.EnabledTrue, m.Enabled)

	m = step(t, m, key("e"))
	assert.Equal(t, model.EnabledFalse, store.enabled)
	assert.Equal(t, "disabled the script", m.Notice)
}

func TestWriteFailure(t *testing.T) {
	store := &memStore{failSet: errors.New("read-only file system")}
	m := loaded(t, store)
	m = step(t, m, key("e"))
	require.Error(t, m.Err)
	assert.False(t, m.Modified)
	assert.Contains(t, m.View(), "read-only file system")
}

func TestQuit(t *testing.T) {
	m := loaded(t, &memStore{})
	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestView(t *testing.T) {
	m := loaded(t, &memStore{classes: []string{"firefox", "Code.desktop"}, enabled: model.EnabledTrue})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = next.(AppModel)

	out := m.View()
	assert.Contains(t, out, "firefox")
	assert.Contains(t, out, "enabled")
	assert.Contains(t, out, "match key: firefox")
	assert.NotContains(t, out, model.IconDuplicate)

	empty := loaded(t, &memStore{})
	assert.Contains(t, empty.View(), "no forced classes configured")
}

func TestView_TruncatesByWidth(t *testing.T) {
	long := "Überlanger-Fensterklassenname-mit-Ümläuten-und-mehr"
	m := loaded(t, &memStore{classes: []string{long}})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 20})
	m = next.(AppModel)

	list := m.listView(17, 10)
	assert.True(t, utf8.ValidString(list))
	for _, line := range strings.Split(list, "\n") {
		assert.LessOrEqual(t, ansi.StringWidth(line), 15, line)
	}
	assert.Contains(t, list, "...")
}

func TestTruncateLeft(t *testing.T) {
	assert.Equal(t, "/home/a/kwinrc", truncateLeft("/home/a/kwinrc", 20))

	got := truncateLeft("/home/jürgen/.config/kwinrc", 12)
	assert.Equal(t, "...ig/kwinrc", got)

	got = truncateLeft("/home/ü/ü/ü/ü/ü/kwinrc", 10)
	assert.True(t, utf8.ValidString(got))
	assert.LessOrEqual(t, ansi.StringWidth(got), 10)
}

func TestWindow(t *testing.T) {
	start, end := window(0, 3, 10)
	assert.Equal(t, [2]int{0, 3}, [2]int{start, end})

	start, end = window(9, 10, 4)
	assert.Equal(t, [2]int{6, 10}, [2]int{start, end})

	start, end = window(5, 10, 4)
	assert.Equal(t, [2]int{3, 7}, [2]int{start, end})
}
