package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdvanceSaturatesAtCompletion(t *testing.T) {
	const n = 3
	s := New(n)
	var err error
	for i, text := range []string{"a", "b", "c", "ignored", "ignored"} {
		s, err = Advance(s, n, text)
		require.NoError(t, err)
		assert.LessOrEqual(t, s.CurrentIndex, n, "step %d", i)
		assert.GreaterOrEqual(t, s.CurrentIndex, 0)
	}
	assert.Equal(t, n, s.CurrentIndex)
	assert.True(t, s.Complete(n))
	assert.Equal(t, []string{"a", "b", "c"}, s.Answers)
}

func TestAdvanceFromLastQuestionCompletes(t *testing.T) {
	s := State{CurrentIndex: 1, Answers: []string{"x", ""}}
	s, err := Advance(s, 2, "y")
	require.NoError(t, err)
	assert.Equal(t, 2, s.CurrentIndex)
	assert.Len(t, s.Answers, 2)
}

func TestRetreatSaturatesAtZero(t *testing.T) {
	s := New(2)
	s, err := Retreat(s, 2, "draft")
	require.NoError(t, err)
	assert.Equal(t, 0, s.CurrentIndex)
	assert.Equal(t, "draft", s.Answers[0])
}

func TestRetreatFromResultKeepsAnswersAligned(t *testing.T) {
	s := State{CurrentIndex: 2, Answers: []string{"a", "b"}}
	s, err := Retreat(s, 2, "stray")
	require.NoError(t, err)
	assert.Equal(t, 1, s.CurrentIndex)
	assert.Equal(t, []string{"a", "b"}, s.Answers)
}

func TestTransitionsRejectEmptyQuestionSet(t *testing.T) {
	_, err := Advance(New(0), 0, "x")
	assert.ErrorIs(t, err, ErrNoQuestions)
	_, err = Retreat(New(0), 0, "x")
	assert.ErrorIs(t, err, ErrNoQuestions)
}

func TestTransitionsDoNotMutateInput(t *testing.T) {
	s := State{Answers: []string{"keep", ""}}
	_, err := Advance(s, 2, "changed")
	require.NoError(t, err)
	assert.Equal(t, "keep", s.Answers[0])
}

func TestResetClearsMemoAndSeed(t *testing.T) {
	s := State{Mode: LabEdit, CurrentIndex: 2, Answers: []string{"a", "b", DeepDiveTag + "m"}, Seed: "seed", LoopCount: 3}
	s = Reset(s, 2)
	assert.Equal(t, State{Mode: LabEdit, Answers: []string{"", ""}}, s)
}

func TestApplyQuestionCount(t *testing.T) {
	testCases := []struct {
		name    string
		answers []string
		n       int
		want    []string
	}{
		{name: "Truncate", answers: []string{"1", "2", "3", "4", "5"}, n: 3, want: []string{"1", "2", "3"}},
		{name: "Pad", answers: []string{"1"}, n: 3, want: []string{"1", "", ""}},
		{name: "Drop memo", answers: []string{"1", "2", DeepDiveTag + "x"}, n: 2, want: []string{"1", "2"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := ApplyQuestionCount(State{CurrentIndex: 2, Answers: tc.answers, LoopCount: 1}, tc.n)
			assert.Equal(t, tc.want, s.Answers)
			assert.Equal(t, 0, s.CurrentIndex)
			assert.Equal(t, 0, s.LoopCount)
		})
	}
}

func TestDeepDiveAppendsSingleMemo(t *testing.T) {
	const n = 2
	s := State{CurrentIndex: n, Answers: []string{"a", "b"}}

	s = DeepDive(s, n, " X ")
	require.Len(t, s.Answers, n+1)
	assert.Equal(t, DeepDiveTag+"X", s.Answers[n])
	assert.Equal(t, 0, s.CurrentIndex)
	assert.Equal(t, 1, s.LoopCount)

	s = DeepDive(s, n, "Y")
	require.Len(t, s.Answers, n+1)
	memo, ok := s.Memo(n)
	assert.True(t, ok)
	assert.Equal(t, DeepDiveTag+"Y", memo)
	assert.Equal(t, 2, s.LoopCount)

	s = DeepDive(s, n, "   ")
	assert.Len(t, s.Answers, n+1)
	assert.Equal(t, 3, s.LoopCount)
}

func TestLoopAgainPreservesAnswers(t *testing.T) {
	s := LoopAgain(State{CurrentIndex: 2, Answers: []string{"a", "b"}}, 2)
	assert.Equal(t, 0, s.CurrentIndex)
	assert.Equal(t, []string{"a", "b"}, s.Answers)
	assert.Equal(t, 1, s.LoopCount)
}

func TestNormalize(t *testing.T) {
	s := Normalize(State{CurrentIndex: 9, Answers: []string{"a"}}, 3)
	assert.Equal(t, 0, s.CurrentIndex)
	assert.Equal(t, []string{"", "", ""}, s.Answers)

	s = Normalize(State{CurrentIndex: 1, Answers: []string{"a", "b", "c", "d"}}, 2)
	assert.Equal(t, []string{"a", "b", "c"}, s.Answers)
}

func TestDraftUsesSeedForFirstQuestion(t *testing.T) {
	s := State{Answers: []string{"", ""}, Seed: "from lab"}
	assert.Equal(t, "from lab", s.Draft(2))

	s.Answers[0] = "typed"
	assert.Equal(t, "typed", s.Draft(2))

	s.CurrentIndex = 1
	assert.Equal(t, "", s.Draft(2))
}

func TestSeedIsConsumedByFirstAnswer(t *testing.T) {
	const n = 2
	s := State{Answers: []string{"", ""}, Seed: "from lab"}

	// The user clears the seeded text, moves on and comes back.
	s, err := Advance(s, n, "")
	require.NoError(t, err)
	assert.Empty(t, s.Seed)
	s, err = Retreat(s, n, "b")
	require.NoError(t, err)
	assert.Equal(t, 0, s.CurrentIndex)
	assert.Equal(t, "", s.Draft(n))

	// Recording a later answer leaves a pending seed alone.
	s = State{CurrentIndex: 1, Answers: []string{"", ""}, Seed: "from lab"}
	s, err = Retreat(s, n, "b")
	require.NoError(t, err)
	assert.Equal(t, "from lab", s.Draft(n))
}

func TestParseMode(t *testing.T) {
	m, ok := ParseMode("LabEdit")
	assert.True(t, ok)
	assert.Equal(t, LabEdit, m)

	m, ok = ParseMode("B")
	assert.False(t, ok)
	assert.Equal(t, GuidedFlow, m)
}
