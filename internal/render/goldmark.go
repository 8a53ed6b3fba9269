package render

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"git.home.luguber.info/inful/leli/internal/frontmatter"
	"git.home.luguber.info/inful/leli/internal/fsutil"
)

// GoldmarkRenderer converts Markdown in-process. Fenced mermaid blocks are
// emitted as <pre class="mermaid"><code>, the same shape pandoc produces for
// ```{.mermaid} fences.
type GoldmarkRenderer struct {
	md goldmark.Markdown
}

// NewGoldmarkRenderer returns a renderer with GFM enabled and raw HTML kept.
func NewGoldmarkRenderer() *GoldmarkRenderer {
	return &GoldmarkRenderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
		),
	}
}

func (g *GoldmarkRenderer) Name() string { return "goldmark" }

func (g *GoldmarkRenderer) Available(context.Context) error { return nil }

func (g *GoldmarkRenderer) Render(ctx context.Context, markdownPath, stylesheet string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	content, err := os.ReadFile(markdownPath)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", markdownPath, err)
	}
	if _, body, had, splitErr := frontmatter.Split(content); splitErr == nil && had {
		content = body
	}

	var buf bytes.Buffer
	if err := g.md.Convert(content, &buf); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConversionFailed, err)
	}

	doc, err := goquery.NewDocumentFromReader(&buf)
	if err != nil {
		return nil, fmt.Errorf("%w: parse html: %w", ErrConversionFailed, err)
	}
	doc.Find("pre > code.language-mermaid").Each(func(_ int, code *goquery.Selection) {
		code.RemoveAttr("class")
		code.Parent().SetAttr("class", "mermaid")
	})

	title := strings.TrimSpace(doc.Find("h1").First().Text())
	if title == "" {
		title = fsutil.Stem(markdownPath)
	}
	fragment, err := doc.Find("body").Html()
	if err != nil {
		return nil, fmt.Errorf("%w: serialize html: %w", ErrConversionFailed, err)
	}
	return standalonePage(title, stylesheet, fragment), nil
}

func standalonePage(title, stylesheet, body string) []byte {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html lang=\"\">\n<head>\n")
	b.WriteString("  <meta charset=\"utf-8\" />\n")
	b.WriteString("  <meta name=\"generator\" content=\"leli\" />\n")
	b.WriteString("  <meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\" />\n")
	fmt.Fprintf(&b, "  <title>%s</title>\n", html.EscapeString(title))
	if stylesheet != "" {
		fmt.Fprintf(&b, "  <link rel=\"stylesheet\" href=\"%s\" />\n", html.EscapeString(stylesheet))
	}
	b.WriteString("</head>\n<body>\n")
	b.WriteString(body)
	if !strings.HasSuffix(body, "\n") {
		b.WriteByte('\n')
	}
	b.WriteString("</body>\n</html>\n")
	return []byte(b.String())
}
