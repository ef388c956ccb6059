package screens

import (
	"context"
	"errors"
	"fmt"

	"github.com/Guerrilla-Interactive/totonoe/app"
	"github.com/Guerrilla-Interactive/totonoe/app/export"
	"github.com/Guerrilla-Interactive/totonoe/app/flow"
	"github.com/Guerrilla-Interactive/totonoe/app/lab"
	"github.com/Guerrilla-Interactive/totonoe/app/session"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// Env carries the collaborators every screen works through.
type Env struct {
	Ctx       context.Context
	Flow      *flow.Controller
	Clipboard export.Sink
	Log       *zap.Logger
}

// CopiedMsg reports the outcome of a clipboard copy.
type CopiedMsg struct {
	Err error
}

func copyPrompt(sink export.Sink, text string) tea.Cmd {
	return func() tea.Msg {
		return CopiedMsg{Err: sink.Export(text)}
	}
}

// HandleCopied turns a finished copy into a notification. The session is
// never touched.
func HandleCopied(m app.Model, msg CopiedMsg, env *Env) app.Model {
	if msg.Err != nil {
		env.Log.Warn("clipboard copy failed", zap.Error(msg.Err))
		m.SetStatus("コピーに失敗しました。", true)
		return m
	}
	m.SetStatus("プロンプトをコピーしました！", false)
	return m
}

// Start opens the screen matching the persisted mode.
func Start(m app.Model, env *Env) (app.Model, tea.Cmd) {
	if env.Flow.Mode() == session.LabEdit {
		return EnterLab(m, env)
	}
	return EnterGuided(m, env)
}

// EnterGuided shows the current question with its draft, or the result view
// once every question is answered.
func EnterGuided(m app.Model, env *Env) (app.Model, tea.Cmd) {
	q, ok, err := env.Flow.Current()
	if errors.Is(err, session.ErrNoQuestions) {
		m.SetStatus("質問が空だったため、前回の設定に戻しました。", true)
	}
	if !ok {
		return EnterResult(m, env)
	}
	m.CurrentScreen = app.ScreenGuided
	m.Outcome = ""
	m.LabEditor.Blur()
	m.MemoInput.Blur()
	m.AnswerInput.SetValue(q.Draft)
	m.AnswerInput.CursorEnd()
	focus := m.AnswerInput.Focus()
	bar := setProgress(&m, float64(q.Index)/float64(q.Total))
	return m, tea.Batch(focus, bar)
}

// EnterResult shows the summary of a completed pass.
func EnterResult(m app.Model, env *Env) (app.Model, tea.Cmd) {
	m.CurrentScreen = app.ScreenResult
	m.AnswerInput.Blur()
	bar := setProgress(&m, 1)
	return m, bar
}

// EnterLab opens the Code Lab with the active configuration document.
func EnterLab(m app.Model, env *Env) (app.Model, tea.Cmd) {
	env.Flow.SetMode(env.Ctx, session.LabEdit)
	m.CurrentScreen = app.ScreenLab
	m.AnswerInput.Blur()
	m.LabEditor.SetValue(env.Flow.Configuration().Document())
	focus := m.LabEditor.Focus()
	return m, focus
}

// LeaveLab returns to the guided flow without applying the editor content.
func LeaveLab(m app.Model, env *Env) (app.Model, tea.Cmd) {
	env.Flow.SetMode(env.Ctx, session.GuidedFlow)
	m.LabEditor.Blur()
	return EnterGuided(m, env)
}

// EnterHistory opens the history list, remembering where to return.
func EnterHistory(m app.Model, env *Env) app.Model {
	if m.CurrentScreen != app.ScreenHistory && m.CurrentScreen != app.ScreenConfirm {
		m.HistoryReturn = m.CurrentScreen
	}
	m.CurrentScreen = app.ScreenHistory
	m.AnswerInput.Blur()
	m.LabEditor.Blur()
	m.HistoryPaginator.Page = 0
	m.HistoryPaginator.SetTotalPages(env.Flow.HistoryLen())
	return m
}

// AskConfirm opens the yes/no gate in front of a destructive action.
func AskConfirm(m app.Model, action app.ConfirmAction, prompt string) app.Model {
	m.ConfirmReturn = m.CurrentScreen
	m.ConfirmAction = action
	m.ConfirmPrompt = prompt
	m.CurrentScreen = app.ScreenConfirm
	return m
}

// setProgress moves the bar to percent. With animations off the bar is drawn
// statically from the session state instead.
func setProgress(m *app.Model, percent float64) tea.Cmd {
	if !m.Animate {
		return nil
	}
	return m.Progress.SetPercent(percent)
}

// UpdateWidgets forwards non-key messages (cursor blink, progress frames) to
// the widget that is active on the current screen.
func UpdateWidgets(m app.Model, msg tea.Msg) (app.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg.(type) {
	case progress.FrameMsg:
		var pm tea.Model
		pm, cmd = m.Progress.Update(msg)
		if p, ok := pm.(progress.Model); ok {
			m.Progress = p
		}
		return m, cmd
	}

	switch m.CurrentScreen {
	case app.ScreenGuided:
		m.AnswerInput, cmd = m.AnswerInput.Update(msg)
	case app.ScreenLab:
		m.LabEditor, cmd = m.LabEditor.Update(msg)
	case app.ScreenDeepDive:
		m.MemoInput, cmd = m.MemoInput.Update(msg)
	}
	return m, cmd
}

// rejection explains why a Code Lab document was not applied.
func rejection(err error) string {
	switch {
	case errors.Is(err, lab.ErrMalformedDocument):
		return fmt.Sprintf("JSONの形式が正しくありません。カンマや括弧を確認してください。(%v)", err)
	case errors.Is(err, lab.ErrEmptyQuestionSet):
		return "questions に有効な質問が1つもありません。"
	}
	return err.Error()
}
