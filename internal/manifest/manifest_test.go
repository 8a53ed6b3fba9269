package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/leli/internal/foundation/errors"
)

func TestWriteRead_RoundTripPreservesOrder(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "doc")
	paths := []string{"doc/b/z_combined.html", "doc/a_combined.html"}

	target, err := Write(dir, paths)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, FileName), target)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	require.Equal(t, "doc/b/z_combined.html\ndoc/a_combined.html\n", string(data))

	got, err := Read(target)
	require.NoError(t, err)
	require.Equal(t, paths, got)
}

func TestWrite_EmptyList(t *testing.T) {
	target, err := Write(t.TempDir(), nil)
	require.NoError(t, err)

	got, err := Read(target)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestRead_SkipsBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("a.html\n\n  \r\nb.html\r\n"), 0o600))

	got, err := Read(path)
	require.NoError(t, err)
	require.Equal(t, []string{"a.html", "b.html"}, got)
}

func TestRead_Missing(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "nope.txt"))
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryNotFound))
}
