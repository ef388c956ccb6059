// Package format renders a finished answer set for reading and for handing
// to an external assistant. All functions are pure.
package format

import (
	"strings"
)

// Placeholder stands in for a question left unanswered.
const Placeholder = "（未入力）"

// NotesHeading introduces deep-dive memos in the prompt.
const NotesHeading = "【追加メモ】"

var promptPreamble = []string{
	"あなたは優秀な編集者/コーチです。以下の『思考整理の回答』を読み、",
	"1) 要点（3〜7個） 2) 本当の論点 3) 次の一歩（具体・小さく）を提案してください。",
	"出力は日本語で、箇条書き中心で。\n",
	"【回答】",
}

func answerAt(answers []string, i int) string {
	if i < len(answers) {
		if a := strings.TrimSpace(answers[i]); a != "" {
			return a
		}
	}
	return Placeholder
}

func pairs(questions, answers []string) []string {
	lines := make([]string, 0, len(questions))
	for i, q := range questions {
		lines = append(lines, q+"\n"+answerAt(answers, i)+"\n")
	}
	return lines
}

// BuildSummary lists every question followed by its answer or Placeholder.
func BuildSummary(questions, answers []string) string {
	return strings.Join(pairs(questions, answers), "\n")
}

// BuildPrompt wraps the summary pairs in instructions for an assistant and
// appends any answers beyond the question count as additional notes.
func BuildPrompt(questions, answers []string) string {
	lines := append([]string{}, promptPreamble...)
	lines = append(lines, pairs(questions, answers)...)
	if extra := notes(questions, answers); len(extra) > 0 {
		lines = append(lines, NotesHeading)
		lines = append(lines, extra...)
	}
	return strings.Join(lines, "\n")
}

func notes(questions, answers []string) []string {
	if len(answers) <= len(questions) {
		return nil
	}
	var out []string
	for _, a := range answers[len(questions):] {
		if a = strings.TrimSpace(a); a != "" {
			out = append(out, a)
		}
	}
	return out
}

// BuildMarkdown is the summary laid out as markdown for terminal rendering.
func BuildMarkdown(questions, answers []string) string {
	var b strings.Builder
	for i, q := range questions {
		b.WriteString("### ")
		b.WriteString(q)
		b.WriteString("\n\n")
		b.WriteString(answerAt(answers, i))
		b.WriteString("\n\n")
	}
	for _, n := range notes(questions, answers) {
		b.WriteString("> ")
		b.WriteString(n)
		b.WriteString("\n\n")
	}
	return b.String()
}
