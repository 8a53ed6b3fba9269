package render

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/leli/internal/foundation/errors"
	"git.home.luguber.info/inful/leli/internal/manifest"
	"git.home.luguber.info/inful/leli/internal/outcome"
	"git.home.luguber.info/inful/leli/internal/testutil/testutils"
)

const cannedPage = "<html><body><pre class=\"mermaid\"><code>graph TD</code></pre></body></html>"

func TestRenderFile(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out", "a_combined.html")
	r := &StaticRenderer{HTML: []byte(cannedPage)}

	require.NoError(t, RenderFile(t.Context(), r, "a.md", out, "", Script{URL: "https://example.test/m.mjs"}))

	got := testutils.ReadFile(t, out)
	require.Contains(t, got, "<pre class=\"mermaid\">graph TD</pre>\n    <script type=\"module\">")
	require.Contains(t, got, "import mermaid from 'https://example.test/m.mjs';")

	// Rendering again starts from fresh converter output.
	require.NoError(t, RenderFile(t.Context(), r, "a.md", out, "", Script{}))
	require.Equal(t, 1, strings.Count(testutils.ReadFile(t, out), "<script"))
}

func TestRenderFile_ConverterError(t *testing.T) {
	out := filepath.Join(t.TempDir(), "a_combined.html")
	r := &StaticRenderer{Err: ErrConversionFailed}

	err := RenderFile(t.Context(), r, "a.md", out, "", Script{})
	require.ErrorIs(t, err, ErrConversionFailed)
	require.NoFileExists(t, out)
}

func TestRenderFolder(t *testing.T) {
	src := t.TempDir()
	testutils.WriteFiles(t, src, map[string]string{
		"intro.md":          "# Intro\n",
		"guide/setup.md":    "# Setup\n",
		"guide/diagram.png": "png",
		"empty/.keep":       "",
	})
	dst := filepath.Join(t.TempDir(), "doc")
	r := &StaticRenderer{HTML: []byte(cannedPage)}

	res, err := RenderFolder(t.Context(), r, src, dst, FolderOptions{Stylesheet: "style.css"})
	require.NoError(t, err)

	want := []string{
		filepath.Join(dst, "guide", "setup_combined.html"),
		filepath.Join(dst, "intro_combined.html"),
	}
	require.Equal(t, want, res.Report.Outputs())
	require.Equal(t, 2, res.Report.Count(outcome.KindRendered))
	require.DirExists(t, filepath.Join(dst, "empty"))
	require.NoFileExists(t, filepath.Join(dst, "guide", "diagram.png"))

	listed, err := manifest.Read(res.ManifestPath)
	require.NoError(t, err)
	require.Equal(t, want, listed)
}

type failingRenderer struct {
	StaticRenderer
	failOn string
}

func (f *failingRenderer) Render(ctx context.Context, path, css string) ([]byte, error) {
	if filepath.Base(path) == f.failOn {
		return nil, errors.New("converter crashed")
	}
	return f.StaticRenderer.Render(ctx, path, css)
}

func TestRenderFolder_FailuresAreSkipped(t *testing.T) {
	src := t.TempDir()
	testutils.WriteFiles(t, src, map[string]string{
		"a.md": "a",
		"b.md": "b",
		"c.md": "c",
	})
	dst := t.TempDir()
	r := &failingRenderer{StaticRenderer: StaticRenderer{HTML: []byte(cannedPage)}, failOn: "b.md"}

	res, err := RenderFolder(t.Context(), r, src, dst, FolderOptions{})
	require.NoError(t, err)
	require.Len(t, res.Report.Failed(), 1)

	listed, err := manifest.Read(res.ManifestPath)
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(dst, "a_combined.html"), filepath.Join(dst, "c_combined.html")}, listed)
}

func TestRenderFolder_OutputInsideSource(t *testing.T) {
	src := t.TempDir()
	testutils.WriteFiles(t, src, map[string]string{"a.md": "a", "doc/stale.md": "x"})
	dst := filepath.Join(src, "doc")

	res, err := RenderFolder(t.Context(), &StaticRenderer{HTML: []byte(cannedPage)}, src, dst, FolderOptions{})
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(dst, "a_combined.html")}, res.Report.Outputs())
}

func TestRenderFolder_MissingSource(t *testing.T) {
	_, err := RenderFolder(t.Context(), &StaticRenderer{}, filepath.Join(t.TempDir(), "nope"), t.TempDir(), FolderOptions{})
	require.Error(t, err)
}

// removedWorkdir switches into a directory and deletes it, so relative paths
// can no longer be resolved.
func removedWorkdir(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("the working directory cannot be removed on windows")
	}
	gone := filepath.Join(t.TempDir(), "gone")
	require.NoError(t, os.Mkdir(gone, 0o750))
	t.Chdir(gone)
	require.NoError(t, os.Remove(gone))
	if _, err := os.Getwd(); err == nil {
		t.Skip("working directory still resolves after removal")
	}
}

func TestRenderFolder_UnresolvableOutput(t *testing.T) {
	src := t.TempDir()
	testutils.WriteFiles(t, src, map[string]string{"a.md": "# A\n"})
	removedWorkdir(t)

	_, err := RenderFolder(t.Context(), &StaticRenderer{HTML: []byte(cannedPage)}, src, "doc", FolderOptions{})
	require.Error(t, err)
	require.Equal(t, ferrors.CategoryFileSystem, ferrors.GetCategory(err))
}
