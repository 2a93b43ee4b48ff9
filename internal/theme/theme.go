package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles shared across the dashboard.
type Styles struct {
	Panel             *lipgloss.Style
	FocusedPanel      *lipgloss.Style
	Title             *lipgloss.Style
	FocusedTitle      *lipgloss.Style
	Count             *lipgloss.Style
	Line              *lipgloss.Style
	SelectedLine      *lipgloss.Style
	FocusedLine       *lipgloss.Style
	Empty             *lipgloss.Style
	StatusBar         *lipgloss.Style
	StatusAccent      *lipgloss.Style
	Info              *lipgloss.Style
	Prompt            *lipgloss.Style
	PromptPlaceholder *lipgloss.Style
	Match             *lipgloss.Style
}

var defaultStyles = Styles{
	Panel: ptr(
		lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238")),
	),
	FocusedPanel: ptr(
		lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("34")),
	),
	Title: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	FocusedTitle: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	Count: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Line: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	SelectedLine: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true),
	),
	FocusedLine: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("34")).Bold(true),
	),
	Empty: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
	),
	StatusBar: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	StatusAccent: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true),
	),
	Info: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Prompt: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	PromptPlaceholder: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Match: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
