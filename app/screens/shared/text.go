package shared

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// WrapText wraps s to the given display width. It breaks at spaces where it
// can, and inside runs without spaces (Japanese text) at the width boundary.
// Existing newlines are preserved.
func WrapText(s string, width int) string {
	if width <= 0 {
		return s
	}
	var out []string
	for _, para := range strings.Split(s, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		line := ""
		for _, w := range words {
			for runewidth.StringWidth(w) > width {
				head := runewidth.Truncate(w, width, "")
				if head == "" {
					_, size := utf8.DecodeRuneInString(w)
					head = w[:size]
				}
				if line != "" {
					out = append(out, line)
					line = ""
				}
				out = append(out, head)
				w = w[len(head):]
			}
			switch {
			case w == "":
			case line == "":
				line = w
			case runewidth.StringWidth(line)+1+runewidth.StringWidth(w) <= width:
				line += " " + w
			default:
				out = append(out, line)
				line = w
			}
		}
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

// TruncateLines keeps s within max lines. When lines are dropped the last
// kept line becomes a "…" marker. max <= 0 disables the limit.
func TruncateLines(s string, max int) string {
	if max <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	if len(lines) <= max {
		return s
	}
	return strings.Join(append(lines[:max-1], "…"), "\n")
}
