package main

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/xonecas/selva/buffer"
	"github.com/xonecas/selva/internal/config"
	"github.com/xonecas/selva/position"
	"github.com/xonecas/selva/selection"
)

// styles groups the lipgloss styles derived from the config.
type styles struct {
	Selection lipgloss.Style
	Cursor    lipgloss.Style
	Status    lipgloss.Style
}

type model struct {
	buf  *buffer.Buffer
	path string

	width  int
	height int
	scroll int // first visible 1-based line minus one
	margin int

	styles styles
}

func newModel(buf *buffer.Buffer, cfg *config.Config, path string) model {
	return model{
		buf:    buf,
		path:   path,
		margin: cfg.Editor.ScrollMarginOrDefault(),
		styles: styles{
			Selection: lipgloss.NewStyle().Background(lipgloss.Color(cfg.UI.SelectionColorOrDefault())),
			Cursor: lipgloss.NewStyle().
				Background(lipgloss.Color(cfg.UI.CursorColorOrDefault())).
				Foreground(lipgloss.Color("#282a36")),
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.UI.StatusColorOrDefault())),
		},
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyPressMsg:
		switch key := msg.Keystroke(); key {
		case "esc", "ctrl+c":
			return m, tea.Quit

		case "left":
			m.buf.MoveLeft(1, false)
		case "right":
			m.buf.MoveRight(1, false)
		case "up":
			m.buf.MoveUp(1, false)
		case "down":
			m.buf.MoveDown(1, false)

		case "shift+left":
			m.buf.MoveLeft(1, true)
		case "shift+right":
			m.buf.MoveRight(1, true)
		case "shift+up":
			m.buf.MoveUp(1, true)
		case "shift+down":
			m.buf.MoveDown(1, true)

		case "ctrl+d":
			m.buf.PlaceSelectionUnder()
		case "ctrl+t":
			m.buf.SwapCursor()

		case "enter":
			m.buf.Insert("\n")
		case "tab":
			m.buf.Insert("\t")
		case "backspace", "ctrl+h":
			m.buf.MoveLeft(1, false)
			m.buf.Delete()
		case "delete":
			m.buf.Delete()

		default:
			if msg.Text != "" {
				m.buf.Insert(msg.Text)
			}
		}
		m.clampScroll()
	}
	return m, nil
}

// clampScroll keeps the main cursor visible with the configured margin.
func (m *model) clampScroll() {
	rows := m.contentRows()
	if rows <= 0 {
		return
	}
	line := m.buf.Main().Cursor().Line.Int() - 1 // 0-based
	if line < m.scroll+m.margin {
		m.scroll = line - m.margin
	}
	if line > m.scroll+rows-1-m.margin {
		m.scroll = line - rows + 1 + m.margin
	}
	if max := m.buf.LineCount() - rows; m.scroll > max {
		m.scroll = max
	}
	if m.scroll < 0 {
		m.scroll = 0
	}
}

func (m model) contentRows() int { return m.height - 1 }

func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	var b strings.Builder
	rows := m.contentRows()
	sels := m.buf.Selections()
	for row := 0; row < rows; row++ {
		line := m.scroll + row + 1
		if line <= m.buf.LineCount() {
			b.WriteString(m.renderLine(line, sels))
		}
		b.WriteByte('\n')
	}
	b.WriteString(m.renderStatus(sels))
	return b.String()
}

// renderLine paints one buffer line, overlaying selection backgrounds and
// cursor cells. The newline slot is drawn as a space so end-of-line
// cursors and selections stay visible.
func (m model) renderLine(line int, sels []selection.Selection) string {
	runes := append([]rune(m.buf.Rope().Line(line)), ' ')

	var b strings.Builder
	for col := 1; col <= len(runes) && col <= m.width; col++ {
		cell := string(runes[col-1])
		p := position.Make(line, col)
		switch {
		case m.cursorAt(p, sels):
			b.WriteString(m.styles.Cursor.Render(cell))
		case m.selectedAt(p, sels):
			b.WriteString(m.styles.Selection.Render(cell))
		default:
			b.WriteString(cell)
		}
	}
	return b.String()
}

func (m model) cursorAt(p position.Position, sels []selection.Selection) bool {
	for _, s := range sels {
		if s.Cursor() == p {
			return true
		}
	}
	return false
}

func (m model) selectedAt(p position.Position, sels []selection.Selection) bool {
	for _, s := range sels {
		if !p.Less(s.From) && !s.To.Less(p) {
			return true
		}
	}
	return false
}

func (m model) renderStatus(sels []selection.Selection) string {
	name := m.path
	if name == "" {
		name = "[scratch]"
	}
	main := m.buf.Main()
	cur := main.Cursor()
	left := fmt.Sprintf(" %s — %d sel, main %d:%d %s",
		name, len(sels), cur.Line.Int(), cur.Col.Int(), main.Dir)
	help := "arrows move · shift extends · ^D place under · ^T swap · esc quits "
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(help)
	if gap < 1 {
		return m.styles.Status.Render(left)
	}
	return m.styles.Status.Render(left + strings.Repeat(" ", gap) + help)
}
