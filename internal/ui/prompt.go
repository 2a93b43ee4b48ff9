package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/atomicstack/logtail-dash/internal/logging/events"
)

func (m *Model) openPrompt() tea.Cmd {
	if m.monitors.Len() == 0 {
		return nil
	}
	m.prompting = true
	m.prompt.SetValue("")
	events.Prompt.Open()
	return m.prompt.Focus()
}

func (m *Model) closePrompt() {
	m.prompting = false
	m.prompt.Blur()
	m.prompt.SetValue("")
}

func (m *Model) handlePromptKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case msg.Type == tea.KeyCtrlC:
		m.closePrompt()
		m.quitting = true
		return tea.Quit
	case key.Matches(msg, m.keys.Cancel):
		query := m.prompt.Value()
		m.closePrompt()
		events.Prompt.Cancel(query)
		return nil
	case key.Matches(msg, m.keys.Confirm):
		query := m.prompt.Value()
		m.closePrompt()
		idx := m.promptMatch(query)
		if idx < 0 {
			if strings.TrimSpace(query) != "" {
				m.setInfo(fmt.Sprintf("no file matches %q", query))
			}
			return nil
		}
		events.Prompt.Jump(query, m.monitors.At(idx).Key)
		m.focusIndex(idx, "jump")
		return nil
	}
	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return cmd
}

// promptMatch returns the monitor index best matching query, or -1.
func (m *Model) promptMatch(query string) int {
	names := make([]string, m.monitors.Len())
	for i, mon := range m.monitors.Monitors() {
		names[i] = mon.Name
	}
	return bestMatch(names, query)
}

// bestMatch ranks names against query: an exact name or base name wins,
// then a base-name prefix, then a substring, then the closest fuzzy match.
// Ties go to the earlier name. An empty query or no match returns -1.
func bestMatch(names []string, query string) int {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" || len(names) == 0 {
		return -1
	}
	lower := strings.ToLower(trimmed)
	bases := make([]string, len(names))
	for i, name := range names {
		bases[i] = filepath.Base(name)
	}

	for i := range names {
		if strings.EqualFold(names[i], trimmed) || strings.EqualFold(bases[i], trimmed) {
			return i
		}
	}
	for i := range names {
		if strings.HasPrefix(strings.ToLower(bases[i]), lower) {
			return i
		}
	}
	for i := range names {
		if strings.Contains(strings.ToLower(names[i]), lower) {
			return i
		}
	}

	ranks := fuzzy.RankFindNormalizedFold(trimmed, names)
	if len(ranks) == 0 {
		return -1
	}
	best := ranks[0]
	for _, rank := range ranks[1:] {
		if rank.Distance < best.Distance ||
			(rank.Distance == best.Distance && rank.OriginalIndex < best.OriginalIndex) {
			best = rank
		}
	}
	return best.OriginalIndex
}
