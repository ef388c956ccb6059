package screens

import (
	"strings"

	"github.com/Guerrilla-Interactive/totonoe/app"
	"github.com/Guerrilla-Interactive/totonoe/app/screens/shared"
	tea "github.com/charmbracelet/bubbletea"
)

// UpdateScreenLab handles the Code Lab editor.
func UpdateScreenLab(m app.Model, msg tea.KeyMsg, env *Env) (app.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "ctrl+s":
		if err := env.Flow.ApplyDocument(env.Ctx, m.LabEditor.Value()); err != nil {
			m.SetStatus(rejection(err), true)
			return m, nil
		}
		m.Retheme(env.Flow.Configuration())
		m.LabEditor.Blur()
		var cmd tea.Cmd
		m, cmd = EnterGuided(m, env)
		m.SetStatus("保存しました。ガイドに戻ります。", false)
		return m, cmd

	case "ctrl+r":
		return AskConfirm(m, app.ConfirmLabTemplate, "エディタを初期テンプレートに戻す？（ctrl+s で適用するまで保存されません）"), nil

	case "esc":
		m.SetStatus("", false)
		return LeaveLab(m, env)
	}

	var cmd tea.Cmd
	m.LabEditor, cmd = m.LabEditor.Update(msg)
	return m, cmd
}

// ViewScreenLab renders the configuration editor.
func ViewScreenLab(m app.Model, env *Env) string {
	var b strings.Builder
	b.WriteString(shared.Header("🧪 Code Lab", "JSONを編集 → ctrl+s で適用"))
	b.WriteString("\n\n")
	b.WriteString(m.LabEditor.View())
	b.WriteString("\n\n")
	b.WriteString(app.HelpStyle.Render("例：questions 配列を増やす / ui.accentColor を変える / behavior.animateTransitions を false にする"))
	return shared.Frame(m, b.String(), shared.Footer("ctrl+s 適用", "ctrl+r テンプレート", "esc アプリに戻る", "ctrl+c 終了"))
}
