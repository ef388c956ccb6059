package app

import (
	"github.com/Guerrilla-Interactive/totonoe/app/history"
	"github.com/Guerrilla-Interactive/totonoe/app/lab"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
)

// Screen indicates which screen is currently shown.
type Screen int

const (
	ScreenGuided Screen = iota
	ScreenResult
	ScreenBranch
	ScreenDeepDive
	ScreenLab
	ScreenConfirm
	ScreenHistory
)

// ConfirmAction is the destructive action waiting on the confirm screen.
type ConfirmAction int

const (
	ConfirmNone ConfirmAction = iota
	ConfirmResetSession
	ConfirmLabTemplate
	ConfirmClearHistory
)

// HistoryPerPage is the number of history rows per page.
const HistoryPerPage = 8

// Model is the primary application state shared by all screens.
type Model struct {
	CurrentScreen  Screen
	TerminalWidth  int
	TerminalHeight int
	Version        string

	AnswerInput      textarea.Model
	LabEditor        textarea.Model
	MemoInput        textinput.Model
	Progress         progress.Model
	HistoryPaginator paginator.Model

	// Animate mirrors behavior.animateTransitions; Gentle mirrors gentleTone.
	Animate bool
	Gentle  bool

	// Outcome is the answer given on the result screen, empty until asked.
	Outcome history.Outcome

	Status        string
	StatusIsError bool

	ConfirmPrompt string
	ConfirmAction ConfirmAction
	ConfirmReturn Screen
	HistoryReturn Screen
	BranchIndex   int
}

var (
	TitleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF"))
	SubtitleStyle  = lipgloss.NewStyle().Bold(true)
	HighlightStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(lab.DefaultUI().AccentColor))
	ChoiceStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))
	DocStyle       = lipgloss.NewStyle().Padding(1, 2)
	HelpStyle      = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("#888888"))
	PillStyle      = lipgloss.NewStyle().Bold(true).Padding(0, 1).Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color(lab.DefaultUI().AccentColor))
	ErrorStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff5f5f"))
	SuccessStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#5fd787"))
	CardStyle      = lipgloss.NewStyle().Padding(1, 2).Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(lab.DefaultUI().AccentColor))
)

// CardBorder picks the card border for a corner radius: small radii render
// square, larger ones rounded.
func CardBorder(radius float64) lipgloss.Border {
	if radius < 12 {
		return lipgloss.NormalBorder()
	}
	return lipgloss.RoundedBorder()
}

// ApplyTheme recolors the accent-dependent styles.
func ApplyTheme(ui lab.UIOptions) {
	accent := lipgloss.Color(ui.AccentColor)
	HighlightStyle = HighlightStyle.Foreground(accent)
	PillStyle = PillStyle.Background(accent)
	CardStyle = CardStyle.Border(CardBorder(ui.CardRadius)).BorderForeground(accent)
}

// NewProgress builds the guided-flow progress bar in the accent color.
func NewProgress(ui lab.UIOptions) progress.Model {
	return progress.New(progress.WithSolidFill(ui.AccentColor), progress.WithoutPercentage())
}

// NewModel builds the initial model for cfg.
func NewModel(version string, cfg lab.Configuration) Model {
	answer := textarea.New()
	answer.Placeholder = "ここに回答…"
	answer.ShowLineNumbers = false
	answer.CharLimit = 0
	answer.SetHeight(6)
	answer.Focus()

	editor := textarea.New()
	editor.ShowLineNumbers = true
	editor.CharLimit = 0
	editor.SetHeight(16)

	memo := textinput.New()
	memo.Placeholder = "引っかかっていること…"
	memo.CharLimit = 500

	pager := paginator.New()
	pager.Type = paginator.Dots
	pager.PerPage = HistoryPerPage
	pager.ActiveDot = lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.UI.AccentColor)).Render("•")
	pager.InactiveDot = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Render("•")

	m := Model{
		CurrentScreen:    ScreenGuided,
		TerminalWidth:    80,
		TerminalHeight:   24,
		Version:          version,
		AnswerInput:      answer,
		LabEditor:        editor,
		MemoInput:        memo,
		HistoryPaginator: pager,
	}
	m.Retheme(cfg)
	return m
}

// Retheme applies cfg's UI options and behavior flags to the model and the
// shared styles.
func (m *Model) Retheme(cfg lab.Configuration) {
	ApplyTheme(cfg.UI)
	width := m.Progress.Width
	m.Progress = NewProgress(cfg.UI)
	if width > 0 {
		m.Progress.Width = width
	}
	m.Animate = cfg.Behavior.AnimateTransitions
	m.Gentle = cfg.Behavior.GentleTone
}

// Resize fits the editors to the terminal width.
func (m *Model) Resize(width, height int) {
	m.TerminalWidth = width
	m.TerminalHeight = height
	inner := max(width-10, 20)
	m.AnswerInput.SetWidth(inner)
	m.LabEditor.SetWidth(inner)
	m.LabEditor.SetHeight(max(height-14, 6))
	m.MemoInput.Width = inner - 2
	m.Progress.Width = min(inner, 60)
}

// SetStatus shows a one-line notification under the current card.
func (m *Model) SetStatus(text string, isError bool) {
	m.Status = text
	m.StatusIsError = isError
}
