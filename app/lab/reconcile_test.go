package lab

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func previousConfig() Configuration {
	return Configuration{
		Questions: []string{"old?"},
		UI:        UIOptions{AccentColor: "#112233", CardRadius: 12},
		Behavior:  BehaviorFlags{GentleTone: false, AnimateTransitions: true},
	}
}

func TestReconcileRoundTrip(t *testing.T) {
	configs := []Configuration{
		Defaults(),
		{
			Questions: []string{"A?", "B?", "C?"},
			UI:        UIOptions{AccentColor: "tomato", CardRadius: 8},
			Behavior:  BehaviorFlags{GentleTone: false, AnimateTransitions: false},
		},
		{
			Questions: []string{"only one"},
			UI:        UIOptions{AccentColor: "", CardRadius: 27.5},
			Behavior:  BehaviorFlags{GentleTone: true, AnimateTransitions: false},
		},
	}
	many := make([]string, MaxQuestions)
	for i := range many {
		many[i] = string(rune('a'+i%26)) + "?"
	}
	configs = append(configs, Configuration{Questions: many, UI: DefaultUI(), Behavior: DefaultBehavior()})

	for _, c := range configs {
		require.True(t, c.Valid())
		data, err := json.Marshal(c)
		require.NoError(t, err)

		got, err := Reconcile(string(data), previousConfig())
		require.NoError(t, err)
		if diff := cmp.Diff(c, got); diff != "" {
			t.Errorf("round trip mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestReconcileRejections(t *testing.T) {
	testCases := []struct {
		name string
		raw  string
		want error
	}{
		{name: "Unquoted key", raw: `{questions:}`, want: ErrMalformedDocument},
		{name: "Empty text", raw: ``, want: ErrMalformedDocument},
		{name: "Array document", raw: `["A?"]`, want: ErrMalformedDocument},
		{name: "Null document", raw: `null`, want: ErrMalformedDocument},
		{name: "Trailing garbage", raw: `{"questions":["A?"]} x`, want: ErrMalformedDocument},
		{name: "Blank questions", raw: `{"questions":["   ", ""]}`, want: ErrEmptyQuestionSet},
		{name: "Missing questions", raw: `{"ui":{"cardRadius":10}}`, want: ErrEmptyQuestionSet},
		{name: "Questions not an array", raw: `{"questions":"A?"}`, want: ErrEmptyQuestionSet},
		{name: "Only non-strings", raw: `{"questions":[1, true, null, {}]}`, want: ErrEmptyQuestionSet},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			prev := previousConfig()
			got, err := Reconcile(tc.raw, prev)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.want), "got %v", err)
			assert.Equal(t, prev, got)
		})
	}
}

func TestReconcileClampsRadiusAndKeepsAccent(t *testing.T) {
	prev := previousConfig()
	got, err := Reconcile(`{"questions":["A?","B?"],"ui":{"cardRadius":999}}`, prev)
	require.NoError(t, err)

	assert.Equal(t, []string{"A?", "B?"}, got.Questions)
	assert.Equal(t, float64(MaxCardRadius), got.UI.CardRadius)
	assert.Equal(t, prev.UI.AccentColor, got.UI.AccentColor)
	assert.Equal(t, prev.Behavior, got.Behavior)
}

func TestReconcileFieldFallbacks(t *testing.T) {
	testCases := []struct {
		name     string
		raw      string
		ui       UIOptions
		behavior BehaviorFlags
	}{
		{
			name:     "Radius below range",
			raw:      `{"questions":["A"],"ui":{"cardRadius":-4}}`,
			ui:       UIOptions{AccentColor: "#112233", CardRadius: MinCardRadius},
			behavior: previousConfig().Behavior,
		},
		{
			name:     "Radius numeric string",
			raw:      `{"questions":["A"],"ui":{"cardRadius":" 20 "}}`,
			ui:       UIOptions{AccentColor: "#112233", CardRadius: 20},
			behavior: previousConfig().Behavior,
		},
		{
			name:     "Radius not numeric",
			raw:      `{"questions":["A"],"ui":{"cardRadius":"big","accentColor":42}}`,
			ui:       previousConfig().UI,
			behavior: previousConfig().Behavior,
		},
		{
			name:     "Radius boolean",
			raw:      `{"questions":["A"],"ui":{"cardRadius":true}}`,
			ui:       previousConfig().UI,
			behavior: previousConfig().Behavior,
		},
		{
			name:     "Accent accepted verbatim",
			raw:      `{"questions":["A"],"ui":{"accentColor":"not a color"}}`,
			ui:       UIOptions{AccentColor: "not a color", CardRadius: 12},
			behavior: previousConfig().Behavior,
		},
		{
			name:     "Behavior wrong types",
			raw:      `{"questions":["A"],"behavior":{"gentleTone":"yes","animateTransitions":0}}`,
			ui:       previousConfig().UI,
			behavior: previousConfig().Behavior,
		},
		{
			name:     "Behavior independent fields",
			raw:      `{"questions":["A"],"behavior":{"gentleTone":true}}`,
			ui:       previousConfig().UI,
			behavior: BehaviorFlags{GentleTone: true, AnimateTransitions: true},
		},
		{
			name:     "Legacy keys",
			raw:      `{"questions":["A"],"ui":{"accent":"#000"},"behavior":{"gentle":true,"animate":false}}`,
			ui:       UIOptions{AccentColor: "#000", CardRadius: 12},
			behavior: BehaviorFlags{GentleTone: true, AnimateTransitions: false},
		},
		{
			name:     "Canonical key wins over legacy",
			raw:      `{"questions":["A"],"behavior":{"animateTransitions":"x","animate":false}}`,
			ui:       previousConfig().UI,
			behavior: previousConfig().Behavior,
		},
		{
			name:     "ui not an object",
			raw:      `{"questions":["A"],"ui":[1,2]}`,
			ui:       previousConfig().UI,
			behavior: previousConfig().Behavior,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Reconcile(tc.raw, previousConfig())
			require.NoError(t, err)
			assert.Equal(t, tc.ui, got.UI)
			assert.Equal(t, tc.behavior, got.Behavior)
		})
	}
}

func TestSanitizeQuestions(t *testing.T) {
	raw := `{"questions":["  first  ", 3, "", "second", null, "\t"]}`
	got, err := Reconcile(raw, previousConfig())
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, got.Questions)

	items := make([]any, MaxQuestions+7)
	for i := range items {
		items[i] = string(rune('A' + i%26))
	}
	cleaned := SanitizeQuestions(items)
	require.Len(t, cleaned, MaxQuestions)
	assert.Equal(t, "A", cleaned[0])
	assert.Equal(t, items[MaxQuestions-1], cleaned[MaxQuestions-1])

	assert.Nil(t, SanitizeQuestions("nope"))
	assert.Nil(t, CleanQuestions([]string{" ", ""}))
}

func TestReconcileDocumentSeed(t *testing.T) {
	doc, err := ReconcileDocument(`{"questions":["A"],"seed":"  start here "}`, Defaults())
	require.NoError(t, err)
	assert.Equal(t, "start here", doc.Seed)

	doc, err = ReconcileDocument(`{"questions":["A"],"seed":5}`, Defaults())
	require.NoError(t, err)
	assert.Empty(t, doc.Seed)
}

func TestReconcileDoesNotAliasPrevious(t *testing.T) {
	prev := previousConfig()
	got, err := Reconcile(`{"questions":["A"]}`, prev)
	require.NoError(t, err)
	got.Questions[0] = "mutated"
	assert.Equal(t, []string{"old?"}, prev.Questions)
}

func TestDefaultTemplateReconcilesToDefaults(t *testing.T) {
	got, err := Reconcile(DefaultTemplate(), previousConfig())
	require.NoError(t, err)
	assert.Equal(t, Defaults(), got)
}
