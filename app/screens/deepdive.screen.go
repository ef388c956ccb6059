package screens

import (
	"strings"

	"github.com/Guerrilla-Interactive/totonoe/app"
	"github.com/Guerrilla-Interactive/totonoe/app/screens/shared"
	"github.com/Guerrilla-Interactive/totonoe/app/session"
	tea "github.com/charmbracelet/bubbletea"
)

// UpdateScreenDeepDive handles the follow-up memo input.
func UpdateScreenDeepDive(m app.Model, msg tea.KeyMsg, env *Env) (app.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		m.MemoInput.Blur()
		m.CurrentScreen = app.ScreenBranch
		return m, nil

	case "enter":
		env.Flow.DeepDive(m.MemoInput.Value())
		m.MemoInput.Blur()
		m.SetStatus("メモを追加しました。もう一度ふりかえりましょう。", false)
		return EnterGuided(m, env)
	}

	var cmd tea.Cmd
	m.MemoInput, cmd = m.MemoInput.Update(msg)
	return m, cmd
}

// ViewScreenDeepDive renders the memo prompt.
func ViewScreenDeepDive(m app.Model, env *Env) string {
	var b strings.Builder
	b.WriteString(shared.Header("深掘り", session.DeepDiveTag))
	b.WriteString("\n\n")
	b.WriteString(app.SubtitleStyle.Render("何が引っかかっていますか？"))
	b.WriteString("\n\n")
	b.WriteString(m.MemoInput.View())
	b.WriteString("\n\n")
	if memo, ok := env.Flow.Memo(); ok {
		b.WriteString(app.HelpStyle.Render("いまのメモ: " + strings.TrimPrefix(memo, session.DeepDiveTag)))
		b.WriteString("\n")
		b.WriteString(app.HelpStyle.Render("新しいメモを追加すると置き換えられます。"))
	} else {
		b.WriteString(app.HelpStyle.Render("メモは回答の最後に追加され、プロンプトの【追加メモ】に入ります。"))
	}
	return shared.Frame(m, b.String(), shared.Footer("enter 追加して最初から", "esc 戻る"))
}
