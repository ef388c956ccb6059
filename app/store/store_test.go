package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]Store {
	t.Helper()
	dir := t.TempDir()

	file, err := NewFileStore(filepath.Join(dir, "state.json"))
	require.NoError(t, err)
	sqlite, err := NewSQLite(filepath.Join(dir, "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close() })

	return map[string]Store{
		"file":   file,
		"sqlite": sqlite,
		"memory": NewMemoryStore(),
	}
}

func TestStoreContract(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Get(ctx, KeyMode)
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, s.Put(ctx, KeyMode, []byte(`"LabEdit"`)))
			got, err := s.Get(ctx, KeyMode)
			require.NoError(t, err)
			assert.JSONEq(t, `"LabEdit"`, string(got))

			require.NoError(t, s.Put(ctx, KeyMode, []byte(`"GuidedFlow"`)))
			got, err = s.Get(ctx, KeyMode)
			require.NoError(t, err)
			assert.JSONEq(t, `"GuidedFlow"`, string(got))

			require.NoError(t, s.PutAll(ctx, map[string][]byte{
				KeyQuestions: []byte(`["A?"]`),
				KeyUIOptions: []byte(`{"cardRadius":10}`),
			}))
			got, err = s.Get(ctx, KeyUIOptions)
			require.NoError(t, err)
			assert.JSONEq(t, `{"cardRadius":10}`, string(got))

			require.NoError(t, s.Delete(ctx, KeyMode))
			require.NoError(t, s.Delete(ctx, KeyMode))
			_, err = s.Get(ctx, KeyMode)
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestFileStoreReloads(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "state.json")

	s, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, KeyQuestions, []byte(`["A?"]`)))

	reopened, err := NewFileStore(path)
	require.NoError(t, err)
	got, err := reopened.Get(ctx, KeyQuestions)
	require.NoError(t, err)
	assert.JSONEq(t, `["A?"]`, string(got))
}

func TestFileStoreCorruptFileIsUnavailable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := NewFileStore(path)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestFileStoreRejectsNonJSON(t *testing.T) {
	s, err := NewFileStore(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)
	assert.Error(t, s.Put(context.Background(), KeyMode, []byte("LabEdit")))
	_, err = s.Get(context.Background(), KeyMode)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteStoreReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "totonoe.db")

	s, err := NewSQLite(path)
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, KeyHistory, []byte(`[]`)))
	require.NoError(t, s.Close())

	s, err = NewSQLite(path)
	require.NoError(t, err)
	defer s.Close()
	got, err := s.Get(ctx, KeyHistory)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	for _, backend := range []string{"", BackendFile, BackendSQLite, BackendMemory} {
		s, err := Open(backend, dir)
		require.NoError(t, err, backend)
		require.NoError(t, s.Close())
	}
	_, err := Open("redis", dir)
	assert.Error(t, err)
}

func TestFileStorePutAllFailureKeepsPreviousState(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.json")
	s, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, KeyQuestions, []byte(`["Old?"]`)))

	// A directory where the temp file goes makes the rewrite fail.
	require.NoError(t, os.Mkdir(path+".tmp", 0o750))
	err = s.PutAll(ctx, map[string][]byte{
		KeyQuestions: []byte(`["New?"]`),
		KeyUIOptions: []byte(`{"accentColor":"red"}`),
	})
	assert.ErrorIs(t, err, ErrUnavailable)

	got, err := s.Get(ctx, KeyQuestions)
	require.NoError(t, err)
	assert.JSONEq(t, `["Old?"]`, string(got))
	_, err = s.Get(ctx, KeyUIOptions)
	assert.ErrorIs(t, err, ErrNotFound)

	reopened, err := NewFileStore(path)
	require.NoError(t, err)
	got, err = reopened.Get(ctx, KeyQuestions)
	require.NoError(t, err)
	assert.JSONEq(t, `["Old?"]`, string(got))
}
