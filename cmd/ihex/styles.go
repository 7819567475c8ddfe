package main

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title lipgloss.Style
	label lipgloss.Style
	value lipgloss.Style
	ok    lipgloss.Style
	err   lipgloss.Style
}

// ANSI Color reference
// 1	Red
// 2	Green
// 4	Blue
// 6	Cyan
// 8	Bright Black (Gray)

func newStyles() styles {
	return styles{
		title: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(4)),
		label: lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(8)).Width(10),
		value: lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(6)),
		ok:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(2)),
		err:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(1)),
	}
}

// field renders one "label value" line.
func (s styles) field(label, value string) string {
	return s.label.Render(label) + " " + s.value.Render(value) + "\n"
}
