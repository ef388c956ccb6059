// Package flow drives a questionnaire session: it owns the active
// configuration, the session state and the history log, and writes them
// through store.Persistence at well-defined points (load, mode change,
// configuration apply, session completion).
package flow

import (
	"context"
	"errors"
	"time"

	"github.com/Guerrilla-Interactive/totonoe/app/format"
	"github.com/Guerrilla-Interactive/totonoe/app/history"
	"github.com/Guerrilla-Interactive/totonoe/app/lab"
	"github.com/Guerrilla-Interactive/totonoe/app/session"
	"github.com/Guerrilla-Interactive/totonoe/app/store"
	"go.uber.org/zap"
)

var (
	// ErrNotConfirmed is returned when a destructive action was not confirmed.
	ErrNotConfirmed = errors.New("action not confirmed")
	// ErrNotComplete is returned when an outcome is recorded before the last question.
	ErrNotComplete = errors.New("questionnaire is not complete")
	// ErrInvalidConfiguration is returned for a configuration the reconciler
	// could not have produced.
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// Controller is the single owner of the questionnaire state. It is not safe
// for concurrent use; every user intent runs to completion before the next.
type Controller struct {
	persist  *store.Persistence
	log      *zap.Logger
	now      func() time.Time
	cfg      lab.Configuration
	lastGood lab.Configuration
	state    session.State
	history  *history.Log
}

// Option customises a Controller.
type Option func(*Controller)

// WithClock overrides the time source used for history entries.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// New loads configuration, mode and history from p and starts a fresh session.
func New(ctx context.Context, p *store.Persistence, log *zap.Logger, opts ...Option) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	c := &Controller{persist: p, log: log, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}

	c.cfg = p.LoadConfiguration(ctx)
	c.lastGood = c.cfg.Clone()
	c.state = session.New(len(c.cfg.Questions))
	c.state.Mode = p.LoadMode(ctx)
	c.history = history.NewLog(p.LoadHistory(ctx))
	return c
}

// Configuration returns a copy of the active configuration.
func (c *Controller) Configuration() lab.Configuration { return c.cfg.Clone() }

// State returns a copy of the session state.
func (c *Controller) State() session.State { return c.state.Clone() }

// History returns the completed sessions, newest first.
func (c *Controller) History() []history.Entry { return c.history.Entries() }

// HistoryLen returns the number of completed sessions.
func (c *Controller) HistoryLen() int { return c.history.Len() }

// LatestEntry returns the most recent completed session.
func (c *Controller) LatestEntry() (history.Entry, bool) { return c.history.Latest() }

// Memo returns the deep-dive memo attached to the current answers, if any.
func (c *Controller) Memo() (string, bool) { return c.state.Memo(len(c.cfg.Questions)) }

// Degraded reports whether persistence fell back to memory.
func (c *Controller) Degraded() bool { return c.persist.Degraded() }

// Mode returns the current top-level mode.
func (c *Controller) Mode() session.Mode { return c.state.Mode }

// SetMode switches between the guided flow and the lab editor.
func (c *Controller) SetMode(ctx context.Context, mode session.Mode) {
	c.state.Mode = mode
	c.persist.SaveMode(ctx, mode)
}

// questionCount guards against an empty question set by reverting to the
// last known-good configuration (or the defaults).
func (c *Controller) questionCount() (int, error) {
	if n := len(c.cfg.Questions); n > 0 {
		return n, nil
	}
	c.log.Error("empty question set, restoring last known-good configuration")
	fallback := c.lastGood
	if len(fallback.Questions) == 0 {
		fallback = lab.Defaults()
	}
	c.cfg = fallback.Clone()
	c.state = session.ApplyQuestionCount(c.state, len(c.cfg.Questions))
	return len(c.cfg.Questions), session.ErrNoQuestions
}

// Question describes what the guided flow should render.
type Question struct {
	Text  string
	Index int
	Total int
	Draft string
}

// Current returns the question at the current index. ok is false once the
// flow is complete and the result should be shown instead.
func (c *Controller) Current() (q Question, ok bool, err error) {
	n, err := c.questionCount()
	c.state = session.Normalize(c.state, n)
	if c.state.Complete(n) {
		return Question{Index: n, Total: n}, false, err
	}
	i := c.state.CurrentIndex
	return Question{Text: c.cfg.Questions[i], Index: i, Total: n, Draft: c.state.Draft(n)}, true, err
}

// Complete reports whether the result view is due.
func (c *Controller) Complete() bool {
	return c.state.Complete(len(c.cfg.Questions))
}

// Advance records text for the current question and moves forward.
func (c *Controller) Advance(text string) error {
	n, err := c.questionCount()
	if err != nil {
		return err
	}
	c.state, err = session.Advance(c.state, n, text)
	return err
}

// Retreat records text for the current question and moves back.
func (c *Controller) Retreat(text string) error {
	n, err := c.questionCount()
	if err != nil {
		return err
	}
	c.state, err = session.Retreat(c.state, n, text)
	return err
}

// ResetSession clears answers, seed and memo after the user confirmed.
func (c *Controller) ResetSession(confirmed bool) error {
	if !confirmed {
		return ErrNotConfirmed
	}
	c.state = session.Reset(c.state, len(c.cfg.Questions))
	return nil
}

// ApplyDocument reconciles a Code Lab submission. On success the new
// configuration is persisted, the session restarts in the guided flow and the
// document's seed is carried over. On rejection nothing changes.
func (c *Controller) ApplyDocument(ctx context.Context, raw string) error {
	doc, err := lab.ReconcileDocument(raw, c.cfg)
	if err != nil {
		c.log.Info("configuration rejected", zap.Error(err))
		return err
	}
	if err := c.applyConfiguration(ctx, doc.Configuration); err != nil {
		return err
	}
	c.state.Seed = doc.Seed
	return nil
}

// applyConfiguration replaces the configuration wholesale, realigns the
// answers to the new question count and returns to the guided flow.
func (c *Controller) applyConfiguration(ctx context.Context, cfg lab.Configuration) error {
	if !cfg.Valid() {
		c.log.Error("refusing unreconciled configuration", zap.Int("questions", len(cfg.Questions)))
		return ErrInvalidConfiguration
	}
	changed := !lab.SameQuestions(c.cfg.Questions, cfg.Questions)
	c.cfg = cfg.Clone()
	c.lastGood = c.cfg.Clone()
	c.persist.SaveConfiguration(ctx, c.cfg)

	c.state = session.ApplyQuestionCount(c.state, len(c.cfg.Questions))
	c.state.Seed = ""
	c.SetMode(ctx, session.GuidedFlow)

	c.log.Info("configuration applied",
		zap.Int("questions", len(c.cfg.Questions)),
		zap.Bool("questionsChanged", changed))
	return nil
}

// CompleteWithOutcome records the terminal confirmation as a history entry.
// The session stays on the result view; after No the caller chooses
// LoopAgain or DeepDive.
func (c *Controller) CompleteWithOutcome(ctx context.Context, outcome history.Outcome) (history.Entry, error) {
	if !c.Complete() {
		return history.Entry{}, ErrNotComplete
	}
	e := history.NewEntry(outcome, c.state.LoopCount, c.cfg.Questions, c.state.Answers, c.now())
	c.history.Append(e)
	c.persist.SaveHistory(ctx, c.history.Entries())
	c.log.Info("session recorded",
		zap.String("id", e.ID),
		zap.String("outcome", string(outcome)),
		zap.Int("loopCount", e.LoopCount))
	return e, nil
}

// LoopAgain rewinds to the first question keeping answers for editing.
func (c *Controller) LoopAgain() {
	c.state = session.LoopAgain(c.state, len(c.cfg.Questions))
}

// DeepDive attaches a follow-up memo and loops.
func (c *Controller) DeepDive(note string) {
	c.state = session.DeepDive(c.state, len(c.cfg.Questions), note)
}

// ClearHistory drops every recorded session.
func (c *Controller) ClearHistory(ctx context.Context) {
	c.history.Clear()
	c.persist.ClearHistory(ctx)
}

// Summary renders the current answers for reading.
func (c *Controller) Summary() string {
	return format.BuildSummary(c.cfg.Questions, c.state.Answers)
}

// Prompt renders the current answers as an assistant prompt.
func (c *Controller) Prompt() string {
	return format.BuildPrompt(c.cfg.Questions, c.state.Answers)
}

// Markdown renders the current answers as markdown.
func (c *Controller) Markdown() string {
	return format.BuildMarkdown(c.cfg.Questions, c.state.Answers)
}
