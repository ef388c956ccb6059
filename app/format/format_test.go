package format

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildSummaryPairsInOrder(t *testing.T) {
	questions := []string{"Q1?", "Q2?", "Q3?"}
	answers := []string{" first ", "", "third"}

	got := BuildSummary(questions, answers)
	want := "Q1?\nfirst\n\nQ2?\n" + Placeholder + "\n\nQ3?\nthird\n"
	assert.Equal(t, want, got)
	assert.Equal(t, got, BuildSummary(questions, answers))

	prev := -1
	for i, q := range questions {
		at := strings.Index(got, q+"\n")
		assert.Greater(t, at, prev)
		prev = at
		next := got[at+len(q)+1:]
		expected := strings.TrimSpace(answers[i])
		if expected == "" {
			expected = Placeholder
		}
		assert.True(t, strings.HasPrefix(next, expected), "question %d", i)
	}
}

func TestBuildSummaryIgnoresMemo(t *testing.T) {
	got := BuildSummary([]string{"Q?"}, []string{"a", "memo"})
	assert.NotContains(t, got, "memo")
}

func TestBuildSummaryShortAnswers(t *testing.T) {
	got := BuildSummary([]string{"Q1?", "Q2?"}, nil)
	assert.Equal(t, 2, strings.Count(got, Placeholder))
}

func TestBuildPrompt(t *testing.T) {
	questions := []string{"Q1?", "Q2?"}

	plain := BuildPrompt(questions, []string{"a", "b"})
	assert.True(t, strings.HasPrefix(plain, promptPreamble[0]))
	assert.Contains(t, plain, "【回答】\nQ1?\na\n\nQ2?\nb\n")
	assert.NotContains(t, plain, NotesHeading)

	withMemo := BuildPrompt(questions, []string{"a", "b", "【引っかかりメモ】X"})
	assert.True(t, strings.HasSuffix(withMemo, NotesHeading+"\n【引っかかりメモ】X"))
	assert.Equal(t, withMemo, BuildPrompt(questions, []string{"a", "b", "【引っかかりメモ】X"}))
}

func TestBuildMarkdown(t *testing.T) {
	md := BuildMarkdown([]string{"Q?"}, []string{"", "note"})
	assert.Contains(t, md, "### Q?\n\n"+Placeholder)
	assert.Contains(t, md, "> note")
}
