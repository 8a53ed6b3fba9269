package literate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/leli/internal/frontmatter"
)

func TestAssemble(t *testing.T) {
	meta := frontmatter.Metadata{OutputFilename: "src/main"}
	blobs := Assemble(meta, Blocks{
		Rust:            "fn main() {}\n",
		Python:          "print(1)\n",
		LanguageUnknown: "ignored\n",
	})

	require.Len(t, blobs, 2)
	require.Equal(t, "src/main.py", blobs[0].Name)
	require.Equal(t, Python, blobs[0].Language)
	require.Equal(t, "src/main.rs", blobs[1].Name)
	require.Equal(t, "fn main() {}\n", string(blobs[1].Content))
}

func TestWriteBlobs(t *testing.T) {
	dir := t.TempDir()
	blobs := []Blob{
		{Name: "pkg/demo.py", Content: []byte("one\n")},
		{Name: "demo.rs", Content: []byte("two\n")},
	}

	written, err := WriteBlobs(dir, blobs)
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(dir, "pkg", "demo.py"), filepath.Join(dir, "demo.rs")}, written)

	blobs[0].Content = []byte("replaced\n")
	_, err = WriteBlobs(dir, blobs[:1])
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "pkg", "demo.py"))
	require.NoError(t, err)
	require.Equal(t, "replaced\n", string(data))
}
