package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "todo.db")
	s, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, path
}

func TestOpenEmptyPath(t *testing.T) {
	_, err := Open("")
	assert.ErrorIs(t, err, ErrEmptyPath)
}

func TestGetMissingKey(t *testing.T) {
	s, _ := openTemp(t)

	v, ok, err := s.Get("tasks")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, v)
}

func TestSetOverwrites(t *testing.T) {
	s, _ := openTemp(t)

	require.NoError(t, s.Set("tasks", []byte(`[1]`)))
	require.NoError(t, s.Set("tasks", []byte(`[2]`)))

	v, ok, err := s.Get("tasks")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[2]`, string(v))
}

func TestValuesSurviveReopen(t *testing.T) {
	s, path := openTemp(t)
	require.NoError(t, s.Set("tasks", []byte(`["kept"]`)))
	require.NoError(t, s.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	v, ok, err := reopened.Get("tasks")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `["kept"]`, string(v))
}

func TestMemory(t *testing.T) {
	m := NewMemory()
	_, ok, err := m.Get("k")
	require.NoError(t, err)
	assert.False(t, ok)

	buf := []byte("v1")
	require.NoError(t, m.Set("k", buf))
	buf[0] = 'x'

	v, ok, err := m.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v1", string(v))
	assert.Equal(t, 1, m.Writes)
}

func TestSqliteDSN(t *testing.T) {
	assert.Equal(t, "file::memory:", sqliteDSN("file::memory:"))
	dsn := sqliteDSN("/tmp/todo.db")
	assert.Contains(t, dsn, "file:///tmp/todo.db")
	assert.Contains(t, dsn, "mode=rwc")
}
