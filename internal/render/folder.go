package render

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	ferrors "git.home.luguber.info/inful/leli/internal/foundation/errors"
	"git.home.luguber.info/inful/leli/internal/fsutil"
	"git.home.luguber.info/inful/leli/internal/logfields"
	"git.home.luguber.info/inful/leli/internal/manifest"
	"git.home.luguber.info/inful/leli/internal/metrics"
	"git.home.luguber.info/inful/leli/internal/outcome"
)

// FolderOptions configures RenderFolder.
type FolderOptions struct {
	Stylesheet string
	Script     Script
	Recorder   metrics.Recorder
}

// FolderResult is the outcome of a folder translation.
type FolderResult struct {
	Report       outcome.Report
	ManifestPath string
}

// RenderFolder renders every Markdown file below src into the mirrored
// location below dst and writes the manifest of produced pages. Per-file
// failures are logged and recorded; they do not stop the walk and their
// pages are absent from the manifest.
func RenderFolder(ctx context.Context, r DocumentRenderer, src, dst string, opts FolderOptions) (FolderResult, error) {
	rec := metrics.OrNoop(opts.Recorder)
	var res FolderResult

	info, err := os.Stat(src)
	if err != nil || !info.IsDir() {
		return res, ferrors.NotFoundError("source folder not found").
			WithCause(err).
			WithContext("path", src).
			Build()
	}
	absDst, err := filepath.Abs(dst)
	if err != nil {
		return res, ferrors.FileSystemError("resolve output folder").
			WithCause(err).
			WithContext("path", dst).
			Build()
	}

	err = filepath.WalkDir(src, func(path string, d fs.DirEntry, walkErr error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if walkErr != nil {
			slog.Warn("Cannot read entry", logfields.Path(path), logfields.Error(walkErr))
			res.Report.Add(outcome.Outcome{Path: path, Kind: outcome.KindFailed, Err: walkErr})
			return nil
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		if d.IsDir() {
			if abs, _ := filepath.Abs(path); abs == absDst && rel != "." {
				return filepath.SkipDir
			}
			if err := os.MkdirAll(filepath.Join(dst, rel), 0o750); err != nil {
				return fmt.Errorf("mirror %s: %w", rel, err)
			}
			return nil
		}
		if !fsutil.IsMarkdown(path) {
			return nil
		}

		out := filepath.Join(dst, filepath.Dir(rel), CombinedName(path))
		start := time.Now()
		err = RenderFile(ctx, r, path, out, opts.Stylesheet, opts.Script)
		rec.ObserveStageDuration(metrics.StageRender, time.Since(start))
		if err != nil {
			slog.Error("Failed to render document", logfields.Path(path), logfields.Error(err))
			rec.IncFileOutcome(metrics.StageRender, string(outcome.KindFailed))
			res.Report.Add(outcome.Outcome{Path: path, Kind: outcome.KindFailed, Err: err})
			return nil
		}
		slog.Info("Rendered document", logfields.Path(path), logfields.Output(out))
		rec.IncFileOutcome(metrics.StageRender, string(outcome.KindRendered))
		res.Report.Add(outcome.Outcome{Path: path, Kind: outcome.KindRendered, Outputs: []string{out}})
		return nil
	})
	if err != nil {
		return res, err
	}

	res.ManifestPath, err = manifest.Write(dst, res.Report.Outputs())
	if err != nil {
		return res, err
	}
	slog.Info("Wrote manifest", logfields.Path(res.ManifestPath), logfields.Count(len(res.Report.Outputs())))
	return res, nil
}
