package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/leli/internal/fsutil"
)

// CombinedSuffix names rendered pages: guide.md becomes guide_combined.html.
const CombinedSuffix = "_combined.html"

// CombinedName returns the page file name for the Markdown file at path.
func CombinedName(path string) string {
	return fsutil.Stem(path) + CombinedSuffix
}

// RenderFile converts input to the HTML page out, then injects the diagram
// script and unwraps diagram code tags in place.
func RenderFile(ctx context.Context, r DocumentRenderer, input, out, stylesheet string, script Script) error {
	page, err := r.Render(ctx, input, stylesheet)
	if err != nil {
		return fmt.Errorf("render %s: %w", input, err)
	}
	if err := os.MkdirAll(filepath.Dir(out), 0o750); err != nil {
		return wrapWrite(err, out)
	}
	if err := os.WriteFile(out, page, 0o644); err != nil {
		return wrapWrite(err, out)
	}
	if err := InjectScriptFile(out, script); err != nil {
		return err
	}
	return CleanDiagramTagsFile(out)
}
