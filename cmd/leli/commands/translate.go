package commands

import (
	"context"
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/leli/internal/logfields"
	"git.home.luguber.info/inful/leli/internal/render"
)

// TranslateCmd implements the 'translate' command.
type TranslateCmd struct {
	Folder string `short:"d" help:"Folder of Markdown documents" type:"existingdir" required:""`
	Output string `short:"o" help:"Output directory for HTML documents (default doc)"`
	CSS    string `name:"css" help:"Stylesheet linked from each page (default src/css/style.css)"`
	Script string `help:"Local mermaid module inlined into each page"`
	Engine string `help:"Renderer: pandoc or goldmark"`
}

func (t *TranslateCmd) Run(ctx context.Context, g *Global) error {
	cfg := g.Config
	engine, err := resolveEngine(t.Engine, cfg)
	if err != nil {
		return err
	}
	renderer := newRenderer(engine, cfg.Translate.Converter)
	if err := renderer.Available(ctx); err != nil {
		return err
	}

	output := firstNonEmpty(t.Output, cfg.Translate.Output)
	slog.Info("Translating folder", logfields.Path(t.Folder), logfields.Output(output), logfields.Engine(renderer.Name()))

	res, err := render.RenderFolder(ctx, renderer, t.Folder, output, render.FolderOptions{
		Stylesheet: firstNonEmpty(t.CSS, cfg.Translate.Stylesheet),
		Script:     scriptFrom(t.Script, cfg),
		Recorder:   g.Recorder,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(g.Out, "Rendered into %s: %s\n", output, res.Report.Summary())
	if res.ManifestPath != "" {
		fmt.Fprintf(g.Out, "Manifest: %s\n", res.ManifestPath)
	}
	return nil
}
