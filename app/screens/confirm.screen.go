package screens

import (
	"strings"

	"github.com/Guerrilla-Interactive/totonoe/app"
	"github.com/Guerrilla-Interactive/totonoe/app/lab"
	"github.com/Guerrilla-Interactive/totonoe/app/screens/shared"
	tea "github.com/charmbracelet/bubbletea"
)

// UpdateScreenConfirm gates a destructive action behind an explicit yes.
func UpdateScreenConfirm(m app.Model, msg tea.KeyMsg, env *Env) (app.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "y", "Y":
		action := m.ConfirmAction
		m.ConfirmAction = app.ConfirmNone
		return confirmed(m, action, env)

	case "n", "N", "esc":
		m.ConfirmAction = app.ConfirmNone
		m.CurrentScreen = m.ConfirmReturn
		return m, nil
	}
	return m, nil
}

func confirmed(m app.Model, action app.ConfirmAction, env *Env) (app.Model, tea.Cmd) {
	switch action {
	case app.ConfirmResetSession:
		if err := env.Flow.ResetSession(true); err != nil {
			m.SetStatus(err.Error(), true)
		}
		var cmd tea.Cmd
		m, cmd = EnterGuided(m, env)
		m.SetStatus("回答をリセットしました。", false)
		return m, cmd

	case app.ConfirmLabTemplate:
		m.LabEditor.SetValue(lab.DefaultTemplate())
		m.CurrentScreen = app.ScreenLab
		m.SetStatus("初期テンプレートを読み込みました。ctrl+s で適用されます。", false)
		return m, nil

	case app.ConfirmClearHistory:
		env.Flow.ClearHistory(env.Ctx)
		m = EnterHistory(m, env)
		m.SetStatus("履歴を削除しました。", false)
		return m, nil
	}
	m.CurrentScreen = m.ConfirmReturn
	return m, nil
}

// ViewScreenConfirm renders the yes/no question.
func ViewScreenConfirm(m app.Model, env *Env) string {
	var b strings.Builder
	b.WriteString(shared.Header("確認", ""))
	b.WriteString("\n\n")
	b.WriteString(app.SubtitleStyle.Render(m.ConfirmPrompt))
	b.WriteString("\n\n")
	b.WriteString(app.HighlightStyle.Render("[y] はい"))
	b.WriteString("   ")
	b.WriteString(app.ChoiceStyle.Render("[n] いいえ"))
	return shared.Frame(m, b.String(), shared.Footer("y 実行", "n/esc キャンセル"))
}
