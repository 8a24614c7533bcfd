package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"focusctl/internal/classes"
	"focusctl/internal/focuserr"
	"focusctl/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))

	selectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57"))

	normalItemStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	adviceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("208")) // Orange

	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	okStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("81")). // Sky Blue/Cyan
			Bold(true)

	borderColor = lipgloss.Color("63")
)

func (m AppModel) View() string {
	if m.Loading {
		return "\n  Reading kwinrc... please wait.\n"
	}

	width := m.WindowSize.Width
	height := m.WindowSize.Height
	if width == 0 {
		width = 80
	}
	if height == 0 {
		height = 24
	}

	// Subtracting 6 for borders and margin
	netWidth := max(width-6, 20)
	leftWidth := netWidth / 2
	rightWidth := netWidth - leftWidth

	// Title, status line, input line and footer
	boxHeight := max(height-6, 6)
	interiorHeight := max(boxHeight-2, 2)

	left := lipgloss.NewStyle().
		Width(leftWidth).
		Height(interiorHeight).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Render(m.listView(leftWidth, interiorHeight))

	right := lipgloss.NewStyle().
		Width(rightWidth).
		Height(interiorHeight).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1).
		Render(m.detailView(rightWidth - 2))

	var b strings.Builder
	b.WriteString(titleStyle.Render("focusctl: forced focus classes"))
	if m.Target != "" {
		b.WriteString(" " + dimStyle.Render(m.Target))
	}
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, right))
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	if m.InputMode {
		b.WriteString("Add class: " + m.InputBuffer.View())
	} else {
		b.WriteString(dimStyle.Render("↑/↓ move • a add • d delete • e toggle script • r reload • q quit"))
	}
	return b.String()
}

func (m AppModel) listView(width, height int) string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("Classes"))
	b.WriteString("\n\n")

	if len(m.Classes) == 0 {
		b.WriteString(dimStyle.Render("  (no forced classes configured)"))
		return b.String()
	}

	visible := max(height-2, 1)
	start, end := window(m.SelectedIdx, len(m.Classes), visible)

	for i := start; i < end; i++ {
		line := fmt.Sprintf("%2d. %s %s", i+1, model.IconOK, m.Classes[i])
		if width > 5 {
			line = ansi.Truncate(line, width-2, "...")
		}
		if i == m.SelectedIdx {
			b.WriteString(selectedItemStyle.Render(line))
		} else {
			b.WriteString(normalItemStyle.Render(line))
		}
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// window returns the visible slice bounds that keep selected centred.
func window(selected, total, visible int) (int, int) {
	if total <= visible {
		return 0, total
	}
	start := max(selected-visible/2, 0)
	if start+visible > total {
		start = total - visible
	}
	return start, start + visible
}

func (m AppModel) detailView(width int) string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("Details"))
	b.WriteString("\n\n")

	b.WriteString(dimStyle.Render("file: "))
	b.WriteString(truncateLeft(m.Path, width-6))
	b.WriteString("\n")

	b.WriteString(dimStyle.Render("script: "))
	switch m.Enabled {
	case model.EnabledTrue:
		b.WriteString(okStyle.Render("enabled"))
	case model.EnabledFalse:
		b.WriteString(adviceStyle.Render("disabled"))
	default:
		b.WriteString(adviceStyle.Render("not configured"))
	}
	b.WriteString("\n\n")

	if len(m.Classes) == 0 || m.SelectedIdx >= len(m.Classes) {
		return b.String()
	}

	class := m.Classes[m.SelectedIdx]
	b.WriteString(dimStyle.Render("class: "))
	b.WriteString(class)
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("match key: "))
	b.WriteString(keyStyle.Render(classes.Key(class)))
	b.WriteString("\n")
	return b.String()
}

func (m AppModel) statusLine() string {
	switch {
	case m.Err != nil:
		return errorStyle.Render(fmt.Sprintf("%s %s", model.IconError, focuserr.Describe(m.Err)))
	case m.Notice != "":
		return okStyle.Render(fmt.Sprintf("%s %s", model.IconOK, m.Notice))
	default:
		return ""
	}
}

// truncateLeft keeps the end of s within width display cells.
func truncateLeft(s string, width int) string {
	if width <= 3 || ansi.StringWidth(s) <= width {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && ansi.StringWidth(string(r))+3 > width {
		r = r[1:]
	}
	return "..." + string(r)
}
