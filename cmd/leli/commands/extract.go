package commands

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	ferrors "git.home.luguber.info/inful/leli/internal/foundation/errors"
	"git.home.luguber.info/inful/leli/internal/logfields"
	"git.home.luguber.info/inful/leli/internal/metrics"
	"git.home.luguber.info/inful/leli/internal/outcome"
	"git.home.luguber.info/inful/leli/internal/protocol"
	"git.home.luguber.info/inful/leli/internal/render"
	"git.home.luguber.info/inful/leli/internal/walk"
)

// ExtractCmd implements the 'extract' command.
type ExtractCmd struct {
	File      string `short:"f" help:"Markdown file to extract" type:"existingfile" xor:"source"`
	Folder    string `short:"d" help:"Folder to walk recursively" type:"existingdir" xor:"source"`
	Output    string `short:"o" help:"Output directory for extracted code (default .app)"`
	DocOutput string `help:"Also render combined HTML documents into this directory"`
	CSS       string `name:"css" help:"Stylesheet linked from rendered documents"`
	Protocol  string `short:"p" help:"Folder merge protocol applied to the output (AImM)"`
}

func (e *ExtractCmd) Run(ctx context.Context, g *Global) error {
	if e.File == "" && e.Folder == "" {
		return ferrors.ValidationError("one of --file or --folder is required").Build()
	}
	cfg := g.Config
	output := firstNonEmpty(e.Output, cfg.Extract.Output)
	docOutput := firstNonEmpty(e.DocOutput, cfg.Extract.DocOutput)
	proto := firstNonEmpty(e.Protocol, cfg.Extract.Protocol)
	stylesheet := firstNonEmpty(e.CSS, cfg.Translate.Stylesheet)

	opts := []walk.Option{walk.WithRecorder(g.Recorder)}
	var renderer render.DocumentRenderer
	if docOutput != "" {
		renderer = newRenderer(cfg.Translate.Engine, cfg.Translate.Converter)
		if err := renderer.Available(ctx); err != nil {
			return err
		}
		opts = append(opts, walk.WithRenderer(renderer, stylesheet, scriptFrom("", cfg)))
	}
	w := walk.New(opts...)

	var report outcome.Report
	if e.File != "" {
		report.Add(w.ExtractFile(ctx, e.File, output))
		if renderer != nil {
			report.Add(renderSingle(ctx, renderer, e.File, docOutput, stylesheet, scriptFrom("", cfg)))
		}
	} else {
		slog.Info("Extracting folder", logfields.Path(e.Folder), logfields.Output(output))
		folderReport, err := w.ExtractFolder(ctx, e.Folder, output, docOutput)
		report.Merge(folderReport)
		if err != nil {
			return err
		}
	}

	if err := applyProtocol(ctx, g, proto, output); err != nil {
		return err
	}

	fmt.Fprintf(g.Out, "Extracted into %s: %s\n", output, report.Summary())
	return nil
}

func renderSingle(ctx context.Context, r render.DocumentRenderer, path, docOutput, stylesheet string, script render.Script) outcome.Outcome {
	out := filepath.Join(docOutput, render.CombinedName(path))
	if err := render.RenderFile(ctx, r, path, out, stylesheet, script); err != nil {
		slog.Error("Failed to render document", logfields.Path(path), logfields.Error(err))
		return outcome.Outcome{Path: path, Kind: outcome.KindFailed, Err: err}
	}
	slog.Info("Wrote file", logfields.Path(path), logfields.Output(out), logfields.Outcome(string(outcome.KindRendered)))
	return outcome.Outcome{Path: path, Kind: outcome.KindRendered, Outputs: []string{out}}
}

// applyProtocol runs the named folder merge protocol on root. Failures are
// logged; only a canceled context is returned.
func applyProtocol(ctx context.Context, g *Global, name, root string) error {
	if name == "" {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	start := time.Now()
	merged, err := protocol.Apply(name, root)
	g.Recorder.ObserveStageDuration(metrics.StageMerge, time.Since(start))
	if err != nil {
		g.Recorder.IncFileOutcome(metrics.StageMerge, string(outcome.KindFailed))
		slog.Error("Protocol failed", logfields.Protocol(name), logfields.Error(err))
		return nil
	}
	for _, dir := range merged {
		fmt.Fprintf(g.Out, "Merged into %s\n", dir)
	}
	return nil
}
