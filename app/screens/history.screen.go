package screens

import (
	"fmt"
	"strings"

	"github.com/Guerrilla-Interactive/totonoe/app"
	"github.com/Guerrilla-Interactive/totonoe/app/history"
	"github.com/Guerrilla-Interactive/totonoe/app/screens/shared"
	tea "github.com/charmbracelet/bubbletea"
)

// UpdateScreenHistory pages through completed sessions.
func UpdateScreenHistory(m app.Model, msg tea.KeyMsg, env *Env) (app.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "esc", "ctrl+o", "b":
		m.SetStatus("", false)
		switch m.HistoryReturn {
		case app.ScreenGuided:
			return EnterGuided(m, env)
		case app.ScreenLab:
			m.CurrentScreen = app.ScreenLab
			focus := m.LabEditor.Focus()
			return m, focus
		default:
			m.CurrentScreen = m.HistoryReturn
			return m, nil
		}

	case "ctrl+x":
		n := env.Flow.HistoryLen()
		if n == 0 {
			return m, nil
		}
		return AskConfirm(m, app.ConfirmClearHistory, fmt.Sprintf("履歴 %d 件をすべて削除する？", n)), nil
	}

	var cmd tea.Cmd
	m.HistoryPaginator, cmd = m.HistoryPaginator.Update(msg)
	return m, cmd
}

// ViewScreenHistory renders one page of history.
func ViewScreenHistory(m app.Model, env *Env) string {
	entries := env.Flow.History()

	var b strings.Builder
	b.WriteString(shared.Header("履歴", fmt.Sprintf("%d / %d 件", len(entries), history.MaxEntries)))
	b.WriteString("\n\n")
	if len(entries) == 0 {
		b.WriteString(app.ChoiceStyle.Render("まだ記録がありません。"))
	} else {
		width := max(shared.CardWidth(m.TerminalWidth)-34, 10)
		start, end := m.HistoryPaginator.GetSliceBounds(len(entries))
		for _, e := range entries[start:end] {
			b.WriteString(app.ChoiceStyle.Render(history.Line(e, width)))
			b.WriteString("\n")
		}
		if m.HistoryPaginator.TotalPages > 1 {
			b.WriteString("\n")
			b.WriteString(m.HistoryPaginator.View())
		}
	}
	return shared.Frame(m, b.String(), shared.Footer("←/→ ページ", "ctrl+x 全削除", "esc 戻る"))
}
