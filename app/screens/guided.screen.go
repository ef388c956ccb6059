package screens

import (
	"fmt"
	"strings"

	"github.com/Guerrilla-Interactive/totonoe/app"
	"github.com/Guerrilla-Interactive/totonoe/app/screens/shared"
	tea "github.com/charmbracelet/bubbletea"
)

// UpdateScreenGuided handles input while a question is shown.
func UpdateScreenGuided(m app.Model, msg tea.KeyMsg, env *Env) (app.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "tab", "ctrl+n":
		m.SetStatus("", false)
		if err := env.Flow.Advance(m.AnswerInput.Value()); err != nil {
			m.SetStatus(err.Error(), true)
		}
		return EnterGuided(m, env)

	case "shift+tab", "ctrl+p":
		m.SetStatus("", false)
		if err := env.Flow.Retreat(m.AnswerInput.Value()); err != nil {
			m.SetStatus(err.Error(), true)
		}
		return EnterGuided(m, env)

	case "ctrl+r":
		return AskConfirm(m, app.ConfirmResetSession, "回答をリセットする？"), nil

	case "ctrl+e":
		return EnterLab(m, env)

	case "ctrl+o":
		return EnterHistory(m, env), nil
	}

	var cmd tea.Cmd
	m.AnswerInput, cmd = m.AnswerInput.Update(msg)
	return m, cmd
}

// ViewScreenGuided renders the current question card.
func ViewScreenGuided(m app.Model, env *Env) string {
	cfg := env.Flow.Configuration()
	st := env.Flow.State()
	total := len(cfg.Questions)
	idx := min(st.CurrentIndex, total-1)
	if total == 0 || idx < 0 {
		return shared.Frame(m, app.HelpStyle.Render("質問がありません。"), shared.Footer("ctrl+e Code Lab", "ctrl+c 終了"))
	}

	var b strings.Builder
	b.WriteString(shared.Header("TOTONOE", fmt.Sprintf("%d / %d", idx+1, total)))
	b.WriteString("\n\n")
	if m.Animate {
		b.WriteString(m.Progress.View())
	} else {
		b.WriteString(m.Progress.ViewAs(float64(idx) / float64(total)))
	}
	b.WriteString("\n\n")
	width := shared.CardWidth(m.TerminalWidth) - 6
	b.WriteString(app.SubtitleStyle.Render(shared.WrapText(cfg.Questions[idx], width)))
	b.WriteString("\n\n")
	b.WriteString(m.AnswerInput.View())

	next := "tab 次へ"
	if idx == total-1 {
		next = "tab 結果へ"
	}
	parts := []string{next}
	if idx > 0 {
		parts = append(parts, "shift+tab 戻る")
	}
	parts = append(parts, "ctrl+r リセット", "ctrl+e Code Lab", "ctrl+o 履歴", "ctrl+c 終了")
	return shared.Frame(m, b.String(), shared.Footer(parts...))
}
