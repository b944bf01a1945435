package ui

import "github.com/charmbracelet/lipgloss"

// TableStyles are the lipgloss styles of the ages table.
type TableStyles struct {
	Header lipgloss.Style
	Person lipgloss.Style
	Age    lipgloss.Style
	Muted  lipgloss.Style
}

// GetTableStyles derives the table styles from the active palette. A plain
// theme yields unstyled renderers that only pad.
func GetTableStyles() TableStyles {
	t := Active()
	if t.Plain {
		return TableStyles{
			Header: lipgloss.NewStyle(),
			Person: lipgloss.NewStyle(),
			Age:    lipgloss.NewStyle(),
			Muted:  lipgloss.NewStyle(),
		}
	}
	p := t.Palette
	return TableStyles{
		Header: lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color(p.Strategy)),
		Person: lipgloss.NewStyle().Foreground(lipgloss.Color(p.Person)),
		Age:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.Age)),
		Muted:  lipgloss.NewStyle().Foreground(lipgloss.Color(p.Muted)),
	}
}
