// Package history keeps the bounded record of completed sessions.
package history

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// MaxEntries caps the log; the oldest entries are evicted first.
const MaxEntries = 50

// Outcome is the answer given at the terminal confirmation step.
type Outcome string

const (
	Yes Outcome = "yes"
	No  Outcome = "no"
)

// Entry is a snapshot of one completed session.
type Entry struct {
	ID        string    `json:"id" yaml:"id"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Outcome   Outcome   `json:"outcome" yaml:"outcome"`
	LoopCount int       `json:"loopCount" yaml:"loopCount"`
	Answers   []string  `json:"answers" yaml:"answers"`
	Questions []string  `json:"questions,omitempty" yaml:"questions,omitempty"`
}

// NewEntry snapshots answers and questions into a fresh entry.
func NewEntry(outcome Outcome, loopCount int, questions, answers []string, at time.Time) Entry {
	return Entry{
		ID:        uuid.NewString(),
		Timestamp: at.UTC(),
		Outcome:   outcome,
		LoopCount: max(loopCount, 0),
		Answers:   slices.Clone(answers),
		Questions: slices.Clone(questions),
	}
}

// Log is an append-only list ordered newest first.
type Log struct {
	entries []Entry
}

// NewLog wraps previously persisted entries (already newest first).
func NewLog(entries []Entry) *Log {
	l := &Log{entries: slices.Clone(entries)}
	if len(l.entries) > MaxEntries {
		l.entries = l.entries[:MaxEntries]
	}
	return l
}

// Append records e as the newest entry and evicts beyond MaxEntries.
func (l *Log) Append(e Entry) {
	l.entries = slices.Insert(l.entries, 0, e)
	if len(l.entries) > MaxEntries {
		l.entries = l.entries[:MaxEntries]
	}
}

// Entries returns a copy, newest first.
func (l *Log) Entries() []Entry {
	return slices.Clone(l.entries)
}

// Len returns the number of entries.
func (l *Log) Len() int { return len(l.entries) }

// Latest returns the newest entry.
func (l *Log) Latest() (Entry, bool) {
	if len(l.entries) == 0 {
		return Entry{}, false
	}
	return l.entries[0], true
}

// Clear drops every entry.
func (l *Log) Clear() {
	l.entries = nil
}
