package literate

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/leli/internal/foundation/errors"
)

const demoDoc = "---\noutput_filename: demo\n---\n```python\nprint(\"hi\")\n```\n"

func TestExtractSource_Demo(t *testing.T) {
	ext, err := ExtractSource(strings.NewReader(demoDoc))
	require.NoError(t, err)
	require.Equal(t, "demo", ext.Metadata.OutputFilename)
	require.Len(t, ext.Blobs, 1)
	require.Equal(t, "demo.py", ext.Blobs[0].Name)
	require.Equal(t, "print(\"hi\")\n", string(ext.Blobs[0].Content))
}

func TestExtractSource_Failures(t *testing.T) {
	t.Run("no front matter", func(t *testing.T) {
		_, err := ExtractSource(strings.NewReader("# Title\n```python\nx\n```\n"))
		require.ErrorIs(t, err, ErrFrontMatterNotFound)
		require.True(t, ferrors.HasCategory(err, ferrors.CategoryNotFound))
	})

	t.Run("unterminated front matter", func(t *testing.T) {
		_, err := ExtractSource(strings.NewReader("---\noutput_filename: demo\n"))
		require.ErrorIs(t, err, ErrFrontMatterUnterminated)
	})

	t.Run("missing output_filename", func(t *testing.T) {
		_, err := ExtractSource(strings.NewReader("---\ntitle: x\n---\n"))
		require.ErrorIs(t, err, ErrMetadataDecode)
		require.True(t, ferrors.HasCategory(err, ferrors.CategoryDecode))
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := ExtractSource(strings.NewReader("---\noutput_filename: [x\n---\n"))
		require.ErrorIs(t, err, ErrMetadataDecode)
	})
}

func TestExtractSource_NoRecognizedBlocks(t *testing.T) {
	ext, err := ExtractSource(strings.NewReader("---\noutput_filename: a\n---\n```go\nx\n```\n"))
	require.NoError(t, err)
	require.Empty(t, ext.Blobs)
}

func TestExtractFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "demo.md")
	require.NoError(t, os.WriteFile(path, []byte(demoDoc), 0o600))

	ext, err := ExtractFile(path)
	require.NoError(t, err)
	require.Len(t, ext.Blobs, 1)

	_, err = ExtractFile(filepath.Join(dir, "missing.md"))
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryFileSystem))
	require.True(t, errors.Is(err, os.ErrNotExist))
}
