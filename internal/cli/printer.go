package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/sergi/go-diff/diffmatchpatch"

	"focusctl/internal/model"
)

// Prefix starts every status line.
const Prefix = "focusctl: "

// DetectProfile decides the color profile from explicit inputs: the
// environment of the process and whether the output is a terminal.
// NO_COLOR (any value) or a non-terminal gives plain ASCII.
func DetectProfile(env []string, isTTY bool) termenv.Profile {
	if !isTTY {
		return termenv.Ascii
	}
	get := func(key string) (string, bool) {
		for i := len(env) - 1; i >= 0; i-- {
			if k, v, ok := strings.Cut(env[i], "="); ok && k == key {
				return v, true
			}
		}
		return "", false
	}
	if _, ok := get("NO_COLOR"); ok {
		return termenv.Ascii
	}
	term, _ := get("TERM")
	colorTerm, _ := get("COLORTERM")
	switch {
	case term == "dumb":
		return termenv.Ascii
	case colorTerm == "truecolor" || colorTerm == "24bit":
		return termenv.TrueColor
	case strings.Contains(term, "256color"):
		return termenv.ANSI256
	default:
		return termenv.ANSI
	}
}

// Printer writes user-facing output. Data goes to Out; status lines go to
// Err with the "focusctl: " prefix. Each stream is styled for its own
// color profile.
type Printer struct {
	Out        io.Writer
	Err        io.Writer
	Profile    termenv.Profile
	ErrProfile termenv.Profile

	renderer  *lipgloss.Renderer
	styles    styles
	errStyles styles
}

type styles struct {
	ok, warn, fail, faint, key, added, removed lipgloss.Style
}

func newRenderer(w io.Writer, profile termenv.Profile) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w, termenv.WithProfile(profile))
	r.SetColorProfile(profile)
	return r
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		ok:      r.NewStyle().Foreground(lipgloss.Color("42")),
		warn:    r.NewStyle().Foreground(lipgloss.Color("214")),
		fail:    r.NewStyle().Foreground(lipgloss.Color("196")),
		faint:   r.NewStyle().Foreground(lipgloss.Color("245")),
		key:     r.NewStyle().Foreground(lipgloss.Color("39")),
		added:   r.NewStyle().Foreground(lipgloss.Color("42")),
		removed: r.NewStyle().Foreground(lipgloss.Color("203")),
	}
}

// NewPrinter creates a printer whose Out styles render with profile and
// whose Err styles render with errProfile.
func NewPrinter(out, errOut io.Writer, profile, errProfile termenv.Profile) *Printer {
	r := newRenderer(out, profile)
	return &Printer{
		Out:        out,
		Err:        errOut,
		Profile:    profile,
		ErrProfile: errProfile,
		renderer:   r,
		styles:     newStyles(r),
		errStyles:  newStyles(newRenderer(errOut, errProfile)),
	}
}

// Colored reports whether output carries escape sequences.
func (p *Printer) Colored() bool {
	return p.Profile != termenv.Ascii
}

// Println writes a data line to Out.
func (p *Printer) Println(a ...any) {
	fmt.Fprintln(p.Out, a...)
}

// Printf writes formatted data to Out.
func (p *Printer) Printf(format string, a ...any) {
	fmt.Fprintf(p.Out, format, a...)
}

// Status writes a prefixed status line to Err.
func (p *Printer) Status(format string, a ...any) {
	fmt.Fprintln(p.Err, Prefix+fmt.Sprintf(format, a...))
}

// Warn writes a prefixed warning line to Err.
func (p *Printer) Warn(format string, a ...any) {
	fmt.Fprintln(p.Err, Prefix+p.errStyles.warn.Render(fmt.Sprintf(format, a...)))
}

// Error writes a prefixed error line to Err.
func (p *Printer) Error(format string, a ...any) {
	fmt.Fprintln(p.Err, Prefix+p.errStyles.fail.Render(fmt.Sprintf(format, a...)))
}

// Hint writes an unprefixed follow-up line to Err. Leading indentation is
// kept as written.
func (p *Printer) Hint(format string, a ...any) {
	line := fmt.Sprintf(format, a...)
	text := strings.TrimLeft(line, " \t")
	fmt.Fprintln(p.Err, line[:len(line)-len(text)]+p.errStyles.faint.Render(text))
}

// Icon renders a status glyph in the color that matches it.
func (p *Printer) Icon(icon string) string {
	switch icon {
	case model.IconOK:
		return p.styles.ok.Render(icon)
	case model.IconWarning, model.IconDuplicate:
		return p.styles.warn.Render(icon)
	case model.IconError:
		return p.styles.fail.Render(icon)
	default:
		return p.styles.faint.Render(icon)
	}
}

// Key styles a normalized class key.
func (p *Printer) Key(s string) string {
	return p.styles.key.Render(s)
}

// Faint styles secondary text.
func (p *Printer) Faint(s string) string {
	return p.styles.faint.Render(s)
}

// DiffLine renders one line of a change preview.
func (p *Printer) DiffLine(op diffmatchpatch.Operation, prefix, text string) string {
	line := prefix + text
	switch op {
	case diffmatchpatch.DiffInsert:
		return p.styles.added.Render(line)
	case diffmatchpatch.DiffDelete:
		return p.styles.removed.Render(line)
	default:
		return line
	}
}

// Highlight renders src in the given chroma lexer ("ini" for kwinrc). On
// a plain profile, or if highlighting fails, src is returned unchanged.
func (p *Printer) Highlight(src, lexer string) string {
	formatter := ""
	switch p.Profile {
	case termenv.TrueColor:
		formatter = "terminal16m"
	case termenv.ANSI256:
		formatter = "terminal256"
	case termenv.ANSI:
		formatter = "terminal16"
	default:
		return src
	}
	var b strings.Builder
	if err := quick.Highlight(&b, src, lexer, formatter, "monokai"); err != nil {
		return src
	}
	return b.String()
}

// Renderer is the lipgloss renderer bound to the printer's profile.
func (p *Printer) Renderer() *lipgloss.Renderer {
	return p.renderer
}
