// Package walk extracts literate sources from Markdown trees.
package walk

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	ferrors "git.home.luguber.info/inful/leli/internal/foundation/errors"
	"git.home.luguber.info/inful/leli/internal/fsutil"
	"git.home.luguber.info/inful/leli/internal/literate"
	"git.home.luguber.info/inful/leli/internal/logfields"
	"git.home.luguber.info/inful/leli/internal/metrics"
	"git.home.luguber.info/inful/leli/internal/outcome"
	"git.home.luguber.info/inful/leli/internal/render"
)

// Walker extracts code from Markdown files, copies other files and, when a
// renderer is configured, renders each Markdown file into a documentation
// tree next to the code tree.
type Walker struct {
	renderer   render.DocumentRenderer
	stylesheet string
	script     render.Script
	recorder   metrics.Recorder
}

// Option configures a Walker.
type Option func(*Walker)

// WithRenderer enables combined HTML output for Markdown files.
func WithRenderer(r render.DocumentRenderer, stylesheet string, script render.Script) Option {
	return func(w *Walker) {
		w.renderer = r
		w.stylesheet = stylesheet
		w.script = script
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(w *Walker) { w.recorder = r }
}

// New returns a Walker.
func New(opts ...Option) *Walker {
	w := &Walker{recorder: metrics.NoopRecorder{}}
	for _, opt := range opts {
		opt(w)
	}
	w.recorder = metrics.OrNoop(w.recorder)
	return w
}

// ExtractFile extracts the Markdown file at path into codeOut. A document
// without front matter is copied into codeOut unchanged.
func (w *Walker) ExtractFile(ctx context.Context, path, codeOut string) outcome.Outcome {
	if err := ctx.Err(); err != nil {
		return outcome.Outcome{Path: path, Kind: outcome.KindFailed, Err: err}
	}
	start := time.Now()
	defer func() { w.recorder.ObserveStageDuration(metrics.StageExtract, time.Since(start)) }()

	o := w.extract(path, codeOut)
	w.recorder.IncFileOutcome(metrics.StageExtract, string(o.Kind))
	logOutcome(o)
	return o
}

func (w *Walker) extract(path, codeOut string) outcome.Outcome {
	ext, err := literate.ExtractFile(path)
	switch {
	case errors.Is(err, literate.ErrFrontMatterNotFound):
		target := filepath.Join(codeOut, filepath.Base(path))
		if cerr := fsutil.CopyFile(path, target); cerr != nil {
			return failed(path, cerr)
		}
		return outcome.Outcome{Path: path, Kind: outcome.KindCopied, Outputs: []string{target}}
	case err != nil:
		return failed(path, err)
	}

	written, err := literate.WriteBlobs(codeOut, ext.Blobs)
	if err != nil {
		return outcome.Outcome{Path: path, Kind: outcome.KindFailed, Outputs: written, Err: err}
	}
	if len(written) == 0 {
		slog.Debug("No recognized code blocks", logfields.Path(path))
		return outcome.Outcome{Path: path, Kind: outcome.KindSkipped}
	}
	return outcome.Outcome{Path: path, Kind: outcome.KindExtracted, Outputs: written}
}

// ExtractFolder walks src recursively. Directories are mirrored under
// codeOut (and docOut when non-empty), Markdown files are extracted into
// the mirrored directory and all other files copied there byte-for-byte.
// Per-file failures are logged and recorded in the report; only an
// unreadable src or a canceled ctx abort the walk.
func (w *Walker) ExtractFolder(ctx context.Context, src, codeOut, docOut string) (outcome.Report, error) {
	var report outcome.Report
	info, err := os.Stat(src)
	if err != nil || !info.IsDir() {
		return report, ferrors.NotFoundError("source folder not found").
			WithCause(err).
			WithContext("path", src).
			Build()
	}

	skip := make(map[string]bool, 2)
	for _, out := range []string{codeOut, docOut} {
		if out == "" {
			continue
		}
		abs, err := filepath.Abs(out)
		if err != nil {
			return report, ferrors.FileSystemError("resolve output folder").
				WithCause(err).
				WithContext("path", out).
				Build()
		}
		skip[abs] = true
	}

	err = w.walkDir(ctx, src, codeOut, docOut, skip, &report)
	return report, err
}

func (w *Walker) walkDir(ctx context.Context, dir, codeDir, docDir string, skip map[string]bool, report *outcome.Report) error {
	if err := os.MkdirAll(codeDir, 0o750); err != nil {
		return fmt.Errorf("mirror %s: %w", dir, err)
	}
	if docDir != "" {
		if err := os.MkdirAll(docDir, 0o750); err != nil {
			return fmt.Errorf("mirror %s: %w", dir, err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		o := failed(dir, err)
		logOutcome(o)
		report.Add(o)
		return nil
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		path := filepath.Join(dir, entry.Name())
		codePath := filepath.Join(codeDir, entry.Name())

		if entry.IsDir() {
			if abs, _ := filepath.Abs(path); skip[abs] {
				continue
			}
			nextDoc := ""
			if docDir != "" {
				nextDoc = filepath.Join(docDir, entry.Name())
			}
			if err := w.walkDir(ctx, path, codePath, nextDoc, skip, report); err != nil {
				return err
			}
			continue
		}

		if !fsutil.IsMarkdown(entry.Name()) {
			report.Add(w.copy(path, codePath))
			continue
		}

		report.Add(w.ExtractFile(ctx, path, codeDir))
		if docDir != "" && w.renderer != nil {
			report.Add(w.render(ctx, path, filepath.Join(docDir, render.CombinedName(path))))
		}
	}
	return nil
}

func (w *Walker) copy(path, target string) outcome.Outcome {
	o := outcome.Outcome{Path: path, Kind: outcome.KindCopied, Outputs: []string{target}}
	if err := fsutil.CopyFile(path, target); err != nil {
		o = failed(path, ferrors.WrapError(err, ferrors.CategoryFileSystem, "copy file").WithContext("path", path).Build())
	}
	w.recorder.IncFileOutcome(metrics.StageCopy, string(o.Kind))
	logOutcome(o)
	return o
}

func (w *Walker) render(ctx context.Context, path, out string) outcome.Outcome {
	start := time.Now()
	o := outcome.Outcome{Path: path, Kind: outcome.KindRendered, Outputs: []string{out}}
	if err := render.RenderFile(ctx, w.renderer, path, out, w.stylesheet, w.script); err != nil {
		o = failed(path, err)
	}
	w.recorder.ObserveStageDuration(metrics.StageRender, time.Since(start))
	w.recorder.IncFileOutcome(metrics.StageRender, string(o.Kind))
	logOutcome(o)
	return o
}

func failed(path string, err error) outcome.Outcome {
	return outcome.Outcome{Path: path, Kind: outcome.KindFailed, Err: err}
}

func logOutcome(o outcome.Outcome) {
	if o.Kind == outcome.KindFailed {
		slog.Error("Failed to process file", logfields.Path(o.Path), logfields.Error(o.Err))
		return
	}
	for _, out := range o.Outputs {
		slog.Info("Wrote file", logfields.Path(o.Path), logfields.Output(out), logfields.Outcome(string(o.Kind)))
	}
}
