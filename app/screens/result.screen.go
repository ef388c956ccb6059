package screens

import (
	"fmt"
	"strings"
	"sync"

	"github.com/Guerrilla-Interactive/totonoe/app"
	"github.com/Guerrilla-Interactive/totonoe/app/history"
	"github.com/Guerrilla-Interactive/totonoe/app/screens/shared"
	"github.com/charmbracelet/glamour"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// UpdateScreenResult handles input on the result view.
func UpdateScreenResult(m app.Model, msg tea.KeyMsg, env *Env) (app.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "y":
		if m.Outcome != "" {
			return m, nil
		}
		if _, err := env.Flow.CompleteWithOutcome(env.Ctx, history.Yes); err != nil {
			m.SetStatus(err.Error(), true)
			return m, nil
		}
		m.Outcome = history.Yes
		m.SetStatus("記録しました。おつかれさまでした。", false)
		return m, nil

	case "n":
		if m.Outcome == "" {
			if _, err := env.Flow.CompleteWithOutcome(env.Ctx, history.No); err != nil {
				m.SetStatus(err.Error(), true)
				return m, nil
			}
			m.Outcome = history.No
		}
		m.SetStatus("", false)
		m.BranchIndex = 0
		m.CurrentScreen = app.ScreenBranch
		return m, nil

	case "c":
		return m, copyPrompt(env.Clipboard, env.Flow.Prompt())

	case "shift+tab", "b":
		m.SetStatus("", false)
		if err := env.Flow.Retreat(""); err != nil {
			m.SetStatus(err.Error(), true)
		}
		return EnterGuided(m, env)

	case "ctrl+r", "r":
		return AskConfirm(m, app.ConfirmResetSession, "回答をリセットする？"), nil

	case "ctrl+e", "e":
		return EnterLab(m, env)

	case "ctrl+o", "h":
		return EnterHistory(m, env), nil
	}
	return m, nil
}

// ViewScreenResult renders the summary and the terminal question.
func ViewScreenResult(m app.Model, env *Env) string {
	total := len(env.Flow.Configuration().Questions)
	width := shared.CardWidth(m.TerminalWidth) - 6

	var b strings.Builder
	b.WriteString(shared.Header("結果", fmt.Sprintf("%d / %d", total, total)))
	b.WriteString("\n\n")
	b.WriteString(app.SubtitleStyle.Render("まとめ"))
	b.WriteString("\n")
	if m.Gentle {
		b.WriteString(app.HelpStyle.Render("やさしく整理しました。"))
	} else {
		b.WriteString(app.HelpStyle.Render("整理結果です。"))
	}
	b.WriteString("\n")
	summary := renderMarkdown(env, env.Flow.Markdown(), env.Flow.Summary(), width)
	b.WriteString(shared.TruncateLines(summary, summaryLines(m.TerminalHeight)))
	b.WriteString("\n")

	switch m.Outcome {
	case history.Yes:
		b.WriteString(app.HighlightStyle.Render("整いました。"))
	case history.No:
		b.WriteString(app.ChoiceStyle.Render("まだ整っていません。n で次の一手を選べます。"))
	default:
		b.WriteString(app.HighlightStyle.Render("整った？"))
		b.WriteString("  ")
		b.WriteString(app.ChoiceStyle.Render("[y] はい  [n] いいえ"))
	}
	b.WriteString("\n\n")
	b.WriteString(app.HelpStyle.Render("※コピーされるのは「AIに投げる用のプロンプト」です。"))

	footer := shared.Footer("c プロンプトをコピー", "shift+tab 戻る", "r リセット", "e Code Lab", "h 履歴", "q 終了")
	return shared.Frame(m, b.String(), footer)
}

// resultChrome is the number of lines the result card needs besides the summary.
const resultChrome = 16

// summaryLines is how many summary lines fit the terminal, 0 for no limit.
func summaryLines(termHeight int) int {
	if termHeight <= 0 {
		return 0
	}
	return max(termHeight-resultChrome, 3)
}

var (
	rendererMu    sync.Mutex
	renderers     = map[int]*glamour.TermRenderer{}
	rendererStyle = "dark"
)

// renderMarkdown renders md with glamour at width, falling back to plain
// when the renderer cannot be built or fails.
func renderMarkdown(env *Env, md, plain string, width int) string {
	rendererMu.Lock()
	defer rendererMu.Unlock()

	r, ok := renderers[width]
	if !ok {
		var err error
		r, err = glamour.NewTermRenderer(
			glamour.WithStandardStyle(rendererStyle),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			env.Log.Debug("markdown renderer unavailable", zap.Error(err))
			return shared.WrapText(plain, width)
		}
		renderers[width] = r
	}
	out, err := r.Render(md)
	if err != nil {
		env.Log.Debug("markdown render failed", zap.Error(err))
		return shared.WrapText(plain, width)
	}
	return strings.TrimRight(out, "\n")
}
