package render

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"

	ferrors "git.home.luguber.info/inful/leli/internal/foundation/errors"
	"git.home.luguber.info/inful/leli/internal/logfields"
)

// DefaultScriptURL is imported when no local mermaid module is available.
const DefaultScriptURL = "https://cdn.jsdelivr.net/npm/mermaid@10/dist/mermaid.esm.min.mjs"

// Script selects the mermaid code injected into pages.
type Script struct {
	// LocalPath is a mermaid build whose contents are inlined when readable.
	LocalPath string
	// URL is the module imported otherwise; DefaultScriptURL when empty.
	URL string
}

// Source returns the JavaScript placed inside the injected module script.
func (s Script) Source() string {
	if s.LocalPath != "" {
		data, err := os.ReadFile(s.LocalPath)
		if err == nil {
			return string(data)
		}
		if !errors.Is(err, os.ErrNotExist) {
			slog.Warn("Cannot read local diagram script, using remote module", logfields.Path(s.LocalPath), logfields.Error(err))
		}
	}
	url := s.URL
	if url == "" {
		url = DefaultScriptURL
	}
	return fmt.Sprintf("import mermaid from '%s';", url)
}

// Tag wraps the script source and the initialization call.
func (s Script) Tag() string {
	return "\n    <script type=\"module\">\n    " + s.Source() +
		"\n    mermaid.initialize({ startOnLoad: true });\n    </script>\n    "
}

const bodyClose = "</body>"

// InjectScript inserts tag immediately before the first </body>. Documents
// without </body> are returned unchanged with ok false. Repeated calls insert
// repeatedly.
func InjectScript(page, tag string) (string, bool) {
	idx := strings.Index(page, bodyClose)
	if idx < 0 {
		return page, false
	}
	return page[:idx] + tag + page[idx:], true
}

var diagramCode = regexp.MustCompile(`(?s)<pre class="mermaid"><code>(.*?)</code></pre>`)

// CleanDiagramTags removes the <code> wrapper inside every
// <pre class="mermaid"> element.
func CleanDiagramTags(page string) string {
	return diagramCode.ReplaceAllString(page, `<pre class="mermaid">$1</pre>`)
}

// InjectScriptFile applies InjectScript to the file at path in place.
func InjectScriptFile(path string, s Script) error {
	return rewriteFile(path, func(page string) string {
		out, ok := InjectScript(page, s.Tag())
		if !ok {
			slog.Debug("No closing body tag, script not injected", logfields.Path(path))
		}
		return out
	})
}

// CleanDiagramTagsFile applies CleanDiagramTags to the file at path in place.
func CleanDiagramTagsFile(path string) error {
	return rewriteFile(path, CleanDiagramTags)
}

func rewriteFile(path string, transform func(string) string) error {
	info, err := os.Stat(path)
	if err != nil {
		return wrapWrite(err, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return wrapWrite(err, path)
	}
	if err := os.WriteFile(path, []byte(transform(string(data))), info.Mode().Perm()); err != nil {
		return wrapWrite(err, path)
	}
	return nil
}

func wrapWrite(err error, path string) error {
	return ferrors.WrapError(err, ferrors.CategoryFileSystem, ErrWriteDocument.Message()).
		WithContext("path", path).
		Build()
}
