package lab

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrMalformedDocument means the submitted text is not a JSON object.
	ErrMalformedDocument = errors.New("malformed configuration document")
	// ErrEmptyQuestionSet means no usable question survived sanitizing.
	ErrEmptyQuestionSet = errors.New("questions must be an array with at least one non-empty string")
)

// Document is a reconciled Code Lab submission: the configuration plus the
// optional seed text carried into the next guided flow.
type Document struct {
	Configuration
	Seed string
}

// Reconcile validates rawText against the configuration shape and merges the
// accepted fields over previous. On error previous is the configuration to keep.
func Reconcile(rawText string, previous Configuration) (Configuration, error) {
	doc, err := ReconcileDocument(rawText, previous)
	if err != nil {
		return previous, err
	}
	return doc.Configuration, nil
}

// ReconcileDocument is Reconcile plus seed extraction.
func ReconcileDocument(rawText string, previous Configuration) (Document, error) {
	root, err := parseObject(rawText)
	if err != nil {
		return Document{}, err
	}

	questions := SanitizeQuestions(root["questions"])
	if len(questions) == 0 {
		return Document{}, ErrEmptyQuestionSet
	}

	doc := Document{
		Configuration: Configuration{
			Questions: questions,
			UI:        MergeUI(asObject(root["ui"]), previous.UI),
			Behavior:  MergeBehavior(asObject(root["behavior"]), previous.Behavior),
		},
	}
	if seed, ok := root["seed"].(string); ok {
		doc.Seed = strings.TrimSpace(seed)
	}
	return doc, nil
}

func parseObject(rawText string) (map[string]any, error) {
	dec := json.NewDecoder(strings.NewReader(rawText))
	dec.UseNumber()

	var root map[string]any
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	if root == nil {
		return nil, fmt.Errorf("%w: top level must be an object", ErrMalformedDocument)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: unexpected data after the document", ErrMalformedDocument)
	}
	return root, nil
}

func asObject(v any) map[string]any {
	obj, _ := v.(map[string]any)
	return obj
}

// SanitizeQuestions trims every string element, drops empty and non-string
// elements and keeps the first MaxQuestions. Anything but an array yields nil.
func SanitizeQuestions(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			continue
		}
		if s = strings.TrimSpace(s); s == "" {
			continue
		}
		out = append(out, s)
		if len(out) == MaxQuestions {
			break
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// CleanQuestions applies the SanitizeQuestions rules to an already typed list.
func CleanQuestions(questions []string) []string {
	items := make([]any, len(questions))
	for i, q := range questions {
		items[i] = q
	}
	return SanitizeQuestions(items)
}

// MergeUI overlays the recognised ui fields onto previous. Missing or
// mistyped fields keep the previous value; cardRadius is clamped.
func MergeUI(fields map[string]any, previous UIOptions) UIOptions {
	ui := previous
	accent, ok := fields["accentColor"]
	if !ok {
		accent = fields["accent"]
	}
	if s, ok := accent.(string); ok {
		ui.AccentColor = s
	}
	if n, ok := coerceNumber(fields["cardRadius"]); ok {
		ui.CardRadius = ClampRadius(n)
	}
	return ui
}

// MergeBehavior overlays boolean fields onto previous.
func MergeBehavior(fields map[string]any, previous BehaviorFlags) BehaviorFlags {
	b := previous
	if v, ok := lookupBool(fields, "gentleTone", "gentle"); ok {
		b.GentleTone = v
	}
	if v, ok := lookupBool(fields, "animateTransitions", "animate"); ok {
		b.AnimateTransitions = v
	}
	return b
}

// lookupBool reads key, falling back to legacy only when key is absent.
func lookupBool(fields map[string]any, key, legacy string) (bool, bool) {
	v, present := fields[key]
	if !present {
		v = fields[legacy]
	}
	b, ok := v.(bool)
	return b, ok
}

// ClampRadius bounds n to [MinCardRadius, MaxCardRadius].
func ClampRadius(n float64) float64 {
	return math.Min(MaxCardRadius, math.Max(MinCardRadius, n))
}

func coerceNumber(v any) (float64, bool) {
	var (
		n   float64
		err error
	)
	switch x := v.(type) {
	case json.Number:
		n, err = x.Float64()
	case float64:
		n = x
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0, false
		}
		n, err = strconv.ParseFloat(s, 64)
	default:
		return 0, false
	}
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}
