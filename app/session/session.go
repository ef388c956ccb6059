// Package session holds the in-memory questionnaire state and the pure
// transitions applied to it. Every transition takes the current question
// count and returns a new State; nothing here touches storage.
package session

import (
	"errors"
	"slices"
	"strings"
)

// Mode is the top-level view the user is in.
type Mode string

const (
	GuidedFlow Mode = "GuidedFlow"
	LabEdit    Mode = "LabEdit"
)

// ParseMode accepts the persisted spelling of a mode.
func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case GuidedFlow, LabEdit:
		return Mode(s), true
	}
	return GuidedFlow, false
}

// DeepDiveTag prefixes the memo appended after the last regular answer.
const DeepDiveTag = "【引っかかりメモ】"

// ErrNoQuestions is returned when a transition needs at least one question.
var ErrNoQuestions = errors.New("question set is empty")

// State is the transient session. Answers is aligned to the question count,
// optionally followed by exactly one deep-dive memo. CurrentIndex equal to the
// question count means the flow is complete.
type State struct {
	Mode         Mode
	CurrentIndex int
	Answers      []string
	Seed         string
	LoopCount    int
}

// New returns a fresh guided-flow session for n questions.
func New(n int) State {
	return State{Mode: GuidedFlow, Answers: make([]string, n)}
}

// Clone returns a copy that shares no memory with s.
func (s State) Clone() State {
	s.Answers = slices.Clone(s.Answers)
	return s
}

// Complete reports whether the result view should be shown.
func (s State) Complete(n int) bool {
	return n > 0 && s.CurrentIndex == n
}

// Answer returns the recorded answer at i, or "" when nothing was recorded.
func (s State) Answer(i int) string {
	if i < 0 || i >= len(s.Answers) {
		return ""
	}
	return s.Answers[i]
}

// Draft is the text the answer editor should open with at the current index.
// The seed pre-fills the first question until its answer is first recorded.
func (s State) Draft(n int) string {
	if s.CurrentIndex >= n {
		return ""
	}
	a := s.Answer(s.CurrentIndex)
	if a == "" && s.CurrentIndex == 0 {
		return s.Seed
	}
	return a
}

// Memo returns the deep-dive memo, if one is attached.
func (s State) Memo(n int) (string, bool) {
	if len(s.Answers) != n+1 {
		return "", false
	}
	return s.Answers[n], true
}

// Align truncates or pads answers to exactly n entries.
func Align(answers []string, n int) []string {
	out := make([]string, n)
	copy(out, answers)
	return out
}

// Normalize repairs a state that no longer fits n questions: an index past
// completion restarts the flow, and answers are trimmed to n plus at most one memo.
func Normalize(s State, n int) State {
	s = s.Clone()
	if s.CurrentIndex < 0 || s.CurrentIndex > n {
		s.CurrentIndex = 0
		s.Answers = make([]string, n)
		return s
	}
	switch {
	case len(s.Answers) < n:
		s.Answers = Align(s.Answers, n)
	case len(s.Answers) > n+1:
		s.Answers = s.Answers[:n+1]
	}
	return s
}

// record stores text at the current index when that index names a question.
// Recording the first answer consumes the seed, even when text is empty.
func (s State) record(n int, text string) State {
	if s.CurrentIndex >= n {
		return s
	}
	if len(s.Answers) < n {
		s.Answers = Align(s.Answers, n)
	}
	s.Answers[s.CurrentIndex] = text
	if s.CurrentIndex == 0 {
		s.Seed = ""
	}
	return s
}

// Advance records text and moves forward, saturating at completion.
func Advance(s State, n int, text string) (State, error) {
	if n == 0 {
		return s, ErrNoQuestions
	}
	s = Normalize(s, n).record(n, text)
	if s.CurrentIndex < n {
		s.CurrentIndex++
	}
	return s, nil
}

// Retreat records text and moves back, saturating at the first question.
func Retreat(s State, n int, text string) (State, error) {
	if n == 0 {
		return s, ErrNoQuestions
	}
	s = Normalize(s, n).record(n, text)
	if s.CurrentIndex > 0 {
		s.CurrentIndex--
	}
	return s, nil
}

// Reset restarts the session: first question, n empty answers, no seed and
// no deep-dive memo. The mode is kept.
func Reset(s State, n int) State {
	return State{Mode: s.Mode, Answers: make([]string, n)}
}

// ApplyQuestionCount aligns the session to a replaced question set. Any memo
// is dropped and the guided flow restarts from the first question.
func ApplyQuestionCount(s State, n int) State {
	s = s.Clone()
	s.Answers = Align(s.Answers, n)
	s.CurrentIndex = 0
	s.LoopCount = 0
	return s
}

// LoopAgain rewinds to the first question keeping the answers for editing.
func LoopAgain(s State, n int) State {
	s = Normalize(s, n)
	s.CurrentIndex = 0
	s.LoopCount++
	return s
}

// DeepDive attaches note as the single memo entry after the last answer,
// replacing any earlier memo, and then loops. A blank note only loops.
func DeepDive(s State, n int, note string) State {
	s = Normalize(s, n)
	if note = strings.TrimSpace(note); note != "" {
		s.Answers = append(Align(s.Answers, n), DeepDiveTag+note)
	}
	return LoopAgain(s, n)
}
