package export

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "prompt.txt")
	require.NoError(t, File{Path: path}.Export("プロンプト"))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "プロンプト", string(got))
}

func TestSinkFunc(t *testing.T) {
	var got string
	var s Sink = SinkFunc(func(text string) error {
		got = text
		return errors.New("boom")
	})
	assert.EqualError(t, s.Export("x"), "boom")
	assert.Equal(t, "x", got)
}
