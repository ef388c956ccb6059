package screens

import (
	"strings"

	"github.com/Guerrilla-Interactive/totonoe/app"
	"github.com/Guerrilla-Interactive/totonoe/app/screens/shared"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

var branchOptions = []string{
	"もう一度ふりかえる",
	"引っかかりをメモして深掘りする",
	"結果に戻る",
}

// UpdateScreenBranch handles the choice offered after answering No.
func UpdateScreenBranch(m app.Model, msg tea.KeyMsg, env *Env) (app.Model, tea.Cmd) {
	n := len(branchOptions)
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "up", "k":
		m.BranchIndex = (m.BranchIndex + n - 1) % n

	case "down", "j":
		m.BranchIndex = (m.BranchIndex + 1) % n

	case "esc":
		m.CurrentScreen = app.ScreenResult
		return m, nil

	case "enter":
		switch m.BranchIndex {
		case 0:
			env.Flow.LoopAgain()
			m.SetStatus("回答はそのままです。見直してみましょう。", false)
			return EnterGuided(m, env)
		case 1:
			m.MemoInput.Reset()
			m.CurrentScreen = app.ScreenDeepDive
			focus := m.MemoInput.Focus()
			return m, tea.Batch(focus, textinput.Blink)
		default:
			m.CurrentScreen = app.ScreenResult
			return m, nil
		}
	}
	return m, nil
}

// ViewScreenBranch renders the loop-again / deep-dive choice.
func ViewScreenBranch(m app.Model, env *Env) string {
	var b strings.Builder
	b.WriteString(shared.Header("次の一手", ""))
	b.WriteString("\n\n")
	if m.Gentle {
		b.WriteString(app.ChoiceStyle.Render("大丈夫、まだ途中なだけです。どうしますか？"))
	} else {
		b.WriteString(app.ChoiceStyle.Render("どうしますか？"))
	}
	b.WriteString("\n\n")
	for i, opt := range branchOptions {
		if i == m.BranchIndex {
			b.WriteString(app.HighlightStyle.Render("> " + opt))
		} else {
			b.WriteString(app.ChoiceStyle.Render("  " + opt))
		}
		b.WriteString("\n")
	}
	return shared.Frame(m, b.String(), shared.Footer("↑/↓ 選択", "enter 決定", "esc 戻る"))
}
