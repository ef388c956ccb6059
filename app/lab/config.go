package lab

import (
	"encoding/json"
	"slices"
)

// Limits enforced on every accepted configuration.
const (
	MaxQuestions  = 50
	MinCardRadius = 8
	MaxCardRadius = 28
)

// UIOptions controls how the questionnaire card is presented.
type UIOptions struct {
	AccentColor string  `json:"accentColor"`
	CardRadius  float64 `json:"cardRadius"`
}

// BehaviorFlags toggles tone and animation.
type BehaviorFlags struct {
	GentleTone         bool `json:"gentleTone"`
	AnimateTransitions bool `json:"animateTransitions"`
}

// Configuration is the document edited in the Code Lab.
type Configuration struct {
	Questions []string      `json:"questions"`
	UI        UIOptions     `json:"ui"`
	Behavior  BehaviorFlags `json:"behavior"`
}

var defaultQuestions = []string{
	"① 状況（事実）：いま何が起きてる？",
	"② 気持ち：どう感じてる？",
	"③ 引っかかり：どこがモヤる？",
	"④ 本当はどうしたい：理想は？",
	"⑤ 次の一歩（小さくてOK）：何からやる？",
}

// DefaultUI returns the UI options used on first run.
func DefaultUI() UIOptions {
	return UIOptions{AccentColor: "#7c5cff", CardRadius: 16}
}

// DefaultBehavior returns the behavior flags used on first run.
func DefaultBehavior() BehaviorFlags {
	return BehaviorFlags{GentleTone: true, AnimateTransitions: true}
}

// Defaults returns the built-in configuration. The returned value owns its slices.
func Defaults() Configuration {
	return Configuration{
		Questions: slices.Clone(defaultQuestions),
		UI:        DefaultUI(),
		Behavior:  DefaultBehavior(),
	}
}

// DefaultTemplate is the fixed document the Code Lab "Reset" restores.
func DefaultTemplate() string {
	return Defaults().Document()
}

// Document renders the configuration as the indented JSON shown in the editor.
func (c Configuration) Document() string {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		// Configuration only holds strings, floats and bools.
		return "{}"
	}
	return string(data)
}

// Clone returns a deep copy.
func (c Configuration) Clone() Configuration {
	c.Questions = slices.Clone(c.Questions)
	return c
}

// Valid reports whether c could have been produced by Reconcile.
func (c Configuration) Valid() bool {
	if len(c.Questions) == 0 || len(c.Questions) > MaxQuestions {
		return false
	}
	if !slices.Equal(CleanQuestions(c.Questions), c.Questions) {
		return false
	}
	return c.UI.CardRadius >= MinCardRadius && c.UI.CardRadius <= MaxCardRadius
}

// SameQuestions reports whether two question lists are identical in order and text.
func SameQuestions(a, b []string) bool {
	return slices.Equal(a, b)
}
