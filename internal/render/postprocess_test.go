package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInjectScript(t *testing.T) {
	t.Run("before first body close", func(t *testing.T) {
		out, ok := InjectScript("<html><body><p>x</p></body></html><!-- </body> -->", "<S>")
		require.True(t, ok)
		require.Equal(t, "<html><body><p>x</p><S></body></html><!-- </body> -->", out)
	})

	t.Run("no body close leaves page unchanged", func(t *testing.T) {
		out, ok := InjectScript("<p>fragment</p>", "<S>")
		require.False(t, ok)
		require.Equal(t, "<p>fragment</p>", out)
	})

	t.Run("not idempotent", func(t *testing.T) {
		once, _ := InjectScript("<body></body>", "<S>")
		twice, _ := InjectScript(once, "<S>")
		require.Equal(t, 2, strings.Count(twice, "<S>"))
	})
}

func TestCleanDiagramTags(t *testing.T) {
	in := "<pre class=\"mermaid\"><code>graph TD;\nA--&gt;B\n</code></pre>\n" +
		"<pre class=\"python\"><code>print(1)</code></pre>\n" +
		"<pre class=\"mermaid\"><code>pie</code></pre>"
	want := "<pre class=\"mermaid\">graph TD;\nA--&gt;B\n</pre>\n" +
		"<pre class=\"python\"><code>print(1)</code></pre>\n" +
		"<pre class=\"mermaid\">pie</pre>"
	require.Equal(t, want, CleanDiagramTags(in))
	require.Equal(t, want, CleanDiagramTags(want))
}

func TestScriptSource(t *testing.T) {
	local := filepath.Join(t.TempDir(), "mermaid.min.js")
	require.NoError(t, os.WriteFile(local, []byte("var mermaid = {};"), 0o600))

	require.Equal(t, "var mermaid = {};", Script{LocalPath: local}.Source())
	require.Equal(t, "import mermaid from '"+DefaultScriptURL+"';", Script{LocalPath: local + ".missing"}.Source())
	require.Equal(t, "import mermaid from 'https://example.test/m.mjs';", Script{URL: "https://example.test/m.mjs"}.Source())

	tag := Script{}.Tag()
	require.True(t, strings.HasPrefix(tag, "\n    <script type=\"module\">\n    import mermaid"))
	require.Contains(t, tag, "mermaid.initialize({ startOnLoad: true });\n    </script>")
}

func TestPostProcessFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.html")
	page := "<html><body><pre class=\"mermaid\"><code>graph LR</code></pre></body></html>"
	require.NoError(t, os.WriteFile(path, []byte(page), 0o600))

	require.NoError(t, InjectScriptFile(path, Script{}))
	require.NoError(t, CleanDiagramTagsFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	got := string(data)
	require.Contains(t, got, "<pre class=\"mermaid\">graph LR</pre>")
	require.Less(t, strings.Index(got, "<script type=\"module\">"), strings.Index(got, "</body>"))

	require.Error(t, CleanDiagramTagsFile(filepath.Join(t.TempDir(), "missing.html")))
}
