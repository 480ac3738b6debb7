package tui

import "github.com/charmbracelet/lipgloss"

// Styles groups the lipgloss styles used by the table view.
type Styles struct {
	Header  lipgloss.Style
	Total   lipgloss.Style
	Muted   lipgloss.Style
	Info    lipgloss.Style
	Error   lipgloss.Style
	Prompt  lipgloss.Style
	Content lipgloss.Style
	Input   lipgloss.Style
	Focused lipgloss.Style
}

func DefaultStyles() Styles {
	primary := lipgloss.AdaptiveColor{Light: "#1D4ED8", Dark: "#60A5FA"}
	muted := lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	border := lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#374151"}

	input := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1)

	return Styles{
		Header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(primary).Padding(0, 1),
		Total:   lipgloss.NewStyle().Bold(true),
		Muted:   lipgloss.NewStyle().Foreground(muted),
		Info:    lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#047857", Dark: "#34D399"}),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#F87171"}),
		Prompt:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#FBBF24"}),
		Content: lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(border),
		Input:   input,
		Focused: input.BorderForeground(primary),
	}
}
