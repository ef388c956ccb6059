package shared

import (
	"github.com/Guerrilla-Interactive/totonoe/app"
	"github.com/charmbracelet/lipgloss"
)

// CardWidth returns a stable card width for the terminal width, clamped so
// text stays readable on wide terminals and usable on narrow ones.
func CardWidth(termWidth int) int {
	const (
		defaultWidth = 72
		minWidth     = 36
		maxWidth     = 96
	)
	if termWidth <= 0 {
		return defaultWidth
	}
	w := termWidth - 4
	if w < minWidth {
		w = minWidth
	}
	if w > maxWidth {
		w = maxWidth
	}
	return w
}

// Header renders the pill on the left and a muted note on the right.
func Header(pill, note string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, app.PillStyle.Render(pill), "  ", app.HelpStyle.Render(note))
}

// Frame wraps body in the themed card, stacks status and footer below it and
// anchors the result to the bottom of the terminal.
func Frame(m app.Model, body, footer string) string {
	card := app.CardStyle.Width(CardWidth(m.TerminalWidth)).Render(body)
	parts := []string{card}
	if s := Status(m); s != "" {
		parts = append(parts, s)
	}
	parts = append(parts, footer)
	view := lipgloss.JoinVertical(lipgloss.Left, parts...)
	if m.TerminalWidth > 0 && m.TerminalHeight > 0 {
		return lipgloss.Place(m.TerminalWidth, m.TerminalHeight, lipgloss.Left, lipgloss.Bottom, app.DocStyle.Render(view))
	}
	return app.DocStyle.Render(view)
}
