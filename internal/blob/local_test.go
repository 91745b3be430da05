package blob

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalWriteRead(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "files")
	s, err := NewLocal(dir)
	require.NoError(t, err)

	ctx := context.Background()

	p, err := s.Write(ctx, []byte("Hello Webstack!\n"))
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(p))

	data, err := s.Read(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, "Hello Webstack!\n", string(data))

	ok, err := s.Exists(ctx, p)
	require.NoError(t, err)
	assert.True(t, ok)

	// Second write into an existing directory
	p2, err := s.Write(ctx, []byte("x"))
	require.NoError(t, err)
	assert.NotEqual(t, p, p2)
}

func TestLocalWriteAtReplaces(t *testing.T) {
	s, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	p := filepath.Join(s.Root(), "thumb_500")

	require.NoError(t, s.WriteAt(ctx, p, []byte("one")))
	require.NoError(t, s.WriteAt(ctx, p, []byte("two")))

	data, err := s.Read(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))

	entries, err := os.ReadDir(s.Root())
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestLocalMissing(t *testing.T) {
	s, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	p := filepath.Join(s.Root(), "nope")

	_, err = s.Read(ctx, p)
	assert.ErrorIs(t, err, ErrNotFound)

	ok, err := s.Exists(ctx, p)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, s.Remove(ctx, p))
}

func TestLocalRemove(t *testing.T) {
	s, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()

	p, err := s.Write(ctx, []byte("bye"))
	require.NoError(t, err)
	require.NoError(t, s.Remove(ctx, p))

	_, err = s.Read(ctx, p)
	assert.ErrorIs(t, err, ErrNotFound)
}
