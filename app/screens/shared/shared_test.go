package shared

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
)

func TestWrapText(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{"short", "hello world", 20, "hello world"},
		{"breaks at spaces", "one two three", 7, "one two\nthree"},
		{"keeps newlines", "a\n\nb", 10, "a\n\nb"},
		{"zero width", "unchanged text", 0, "unchanged text"},
		{"cjk run", "あいうえおかきくけこ", 6, "あいう\nえおか\nきくけ\nこ"},
		{"narrower than one rune", "あい", 1, "あ\nい"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WrapText(tt.in, tt.width))
		})
	}
}

func TestWrapTextRespectsWidth(t *testing.T) {
	in := "いま頭の中にあることを、思いつくまま全部書き出してください。 mixed with some English words"
	for _, line := range strings.Split(WrapText(in, 20), "\n") {
		assert.LessOrEqual(t, runewidth.StringWidth(line), 20, line)
	}
}

func TestTruncateLines(t *testing.T) {
	assert.Equal(t, "a\n…", TruncateLines("a\nb\nc", 2))
	assert.Equal(t, "…", TruncateLines("a\nb\nc", 1))
	assert.Equal(t, "a\nb\nc", TruncateLines("a\nb\nc", 3))
	assert.Equal(t, "a\nb\nc", TruncateLines("a\nb\nc", 0))
	assert.Equal(t, "a", TruncateLines("a", 5))
}

func TestCardWidthClamps(t *testing.T) {
	assert.Equal(t, 72, CardWidth(0))
	assert.Equal(t, 36, CardWidth(20))
	assert.Equal(t, 76, CardWidth(80))
	assert.Equal(t, 96, CardWidth(300))
}
