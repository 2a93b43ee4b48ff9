package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/atomicstack/logtail-dash/internal/content"
	"github.com/atomicstack/logtail-dash/internal/dash"
	"github.com/atomicstack/logtail-dash/internal/monitor"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	minPanelSize  = 3 // border plus one row or column
	wheelStep     = 3
	tabWidth      = 4
	ellipsis      = "…"
)

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	footer := m.footer()
	area := m.bodyArea(footer)
	return lipgloss.JoinVertical(lipgloss.Left, m.renderPanels(area), footer)
}

func (m *Model) size() (int, int) {
	w, h := m.width, m.height
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}
	return w, h
}

func (m *Model) bodyArea(footer string) dash.Rect {
	w, h := m.size()
	body := h - lipgloss.Height(footer)
	if body < 0 {
		body = 0
	}
	return dash.Rect{Width: w, Height: body}
}

// panelRegions returns the screen rectangle of each monitor's panel, in
// registry order.
func (m *Model) panelRegions() []dash.Rect {
	return dash.Split(m.bodyArea(m.footer()), m.dash.Mode, m.monitors.Len())
}

func (m *Model) renderPanels(area dash.Rect) string {
	if m.monitors.Len() == 0 {
		return styles.Empty.Render(truncateText("no files to watch", area.Width))
	}
	regions := dash.Split(area, m.dash.Mode, m.monitors.Len())
	panels := make([]string, len(regions))
	for i, mon := range m.monitors.Monitors() {
		panels[i] = m.renderPanel(mon, regions[i])
	}
	if m.dash.Mode == dash.Vertical {
		return lipgloss.JoinHorizontal(lipgloss.Top, panels...)
	}
	return lipgloss.JoinVertical(lipgloss.Left, panels...)
}

// panelRows is the number of log lines that fit inside a panel: the region
// minus the border and the title row.
func panelRows(r dash.Rect) int {
	rows := r.Height - 3
	if rows < 0 {
		return 0
	}
	return rows
}

func (m *Model) renderPanel(mon *monitor.Monitor, r dash.Rect) string {
	if r.Width < minPanelSize || r.Height < minPanelSize {
		return lipgloss.NewStyle().Width(r.Width).Height(r.Height).Render("")
	}
	inner := r.Width - 2

	titleStyle, frame := styles.Title, styles.Panel
	if mon.HasFocus {
		titleStyle, frame = styles.FocusedTitle, styles.FocusedPanel
	}
	count := fmt.Sprintf(" [%d/%d]", mon.Content.Len(), mon.Content.Cap())
	name := truncateText(mon.Name, inner-lipgloss.Width(count))
	rows := []string{titleStyle.Render(name) + styles.Count.Render(truncateText(count, inner-lipgloss.Width(name)))}
	rows = append(rows, renderBuffer(mon.Content, panelRows(r), inner, mon.HasFocus)...)

	return frame.Width(inner).Height(r.Height - 2).MaxHeight(r.Height).Render(strings.Join(rows, "\n"))
}

// renderBuffer renders the tail of buf, scrolled back far enough to keep the
// selected line visible.
func renderBuffer(buf *content.Buffer, rows, width int, focused bool) []string {
	if rows <= 0 {
		return nil
	}
	if buf.Len() == 0 {
		return []string{styles.Empty.Render(truncateText("waiting for lines", width))}
	}
	sel, hasSel := buf.Selected()
	start, end := visibleWindow(buf.Len(), rows, sel, hasSel)
	out := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		text := truncateText(strings.ReplaceAll(buf.Line(i), "\t", strings.Repeat(" ", tabWidth)), width)
		switch {
		case hasSel && i == sel && focused:
			out = append(out, styles.FocusedLine.Width(width).Render(text))
		case hasSel && i == sel:
			out = append(out, styles.SelectedLine.Render(text))
		default:
			out = append(out, styles.Line.Render(text))
		}
	}
	return out
}

func visibleWindow(n, rows, sel int, hasSel bool) (int, int) {
	start := n - rows
	if start < 0 {
		start = 0
	}
	if hasSel && sel < start {
		start = sel
	}
	end := start + rows
	if end > n {
		end = n
	}
	return start, end
}

func (m *Model) footer() string {
	w, _ := m.size()
	lines := []string{truncateText(m.statusLine(), w)}
	if m.prompting {
		line := m.prompt.View()
		if idx := m.promptMatch(m.prompt.Value()); idx >= 0 {
			line += styles.Match.Render("  → " + m.monitors.At(idx).Name)
		}
		lines = append(lines, truncateText(line, w))
		lines = append(lines, m.help.View(promptKeys{keys: m.keys}))
	} else {
		lines = append(lines, m.help.View(m.keys))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) statusLine() string {
	focused := "none"
	if mon, ok := m.monitors.Focused(); ok {
		focused = mon.Name
	}
	status := styles.StatusAccent.Render(m.dash.Mode.String()) +
		styles.StatusBar.Render(fmt.Sprintf("  %d files  focus: %s", m.monitors.Len(), focused))
	if info := m.currentInfo(); info != "" {
		status += "  " + styles.Info.Render(info)
	}
	return status
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	m.width = resize.Width
	m.height = resize.Height
	m.help.Width = resize.Width
	m.prompt.Width = resize.Width - lipgloss.Width(m.prompt.Prompt) - 1
	return nil
}

// handleMouseMsg scrolls the panel under the pointer with the wheel and
// focuses it on a left click.
func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	ev, ok := msg.(tea.MouseMsg)
	if !ok || m.prompting {
		return nil
	}
	idx := dash.RegionAt(m.panelRegions(), ev.X, ev.Y)
	if idx < 0 {
		return nil
	}
	switch {
	case ev.Button == tea.MouseButtonWheelUp:
		m.focusIndex(idx, "mouse")
		m.moveSelection(func(b *content.Buffer) bool { return b.PageSelection(-wheelStep) })
	case ev.Button == tea.MouseButtonWheelDown:
		m.focusIndex(idx, "mouse")
		m.moveSelection(func(b *content.Buffer) bool { return b.PageSelection(wheelStep) })
	case ev.Button == tea.MouseButtonLeft && ev.Action == tea.MouseActionPress:
		m.focusIndex(idx, "mouse")
	}
	return nil
}

// truncateText shortens text to width cells, keeping ANSI sequences intact.
func truncateText(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(text) <= width {
		return text
	}
	return ansi.Truncate(text, width, ellipsis)
}
