// Package watch keeps an extracted code tree in sync with its Markdown
// sources by re-extracting files as they change.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/leli/internal/config"
	"git.home.luguber.info/inful/leli/internal/frontmatter"
	"git.home.luguber.info/inful/leli/internal/fsutil"
	"git.home.luguber.info/inful/leli/internal/logfields"
	"git.home.luguber.info/inful/leli/internal/outcome"
	"git.home.luguber.info/inful/leli/internal/protocol"
	"git.home.luguber.info/inful/leli/internal/util/sets"
	"git.home.luguber.info/inful/leli/internal/walk"
)

// Watcher mirrors src into out and re-extracts changed files.
type Watcher struct {
	walker   *walk.Walker
	src      string
	out      string
	outAbs   string
	protocol string
	debounce time.Duration
	seen     map[string]string
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithProtocol sets the folder-merge protocol applied to out after each sync.
func WithProtocol(name string) Option {
	return func(w *Watcher) { w.protocol = name }
}

// WithDebounce sets the quiet period before a batch of events is processed.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// New returns a Watcher extracting with walker.
func New(walker *walk.Walker, src, out string, opts ...Option) *Watcher {
	w := &Watcher{
		walker:   walker,
		src:      src,
		out:      out,
		debounce: config.DefaultWatchDebounce,
		seen:     make(map[string]string),
	}
	if abs, err := filepath.Abs(out); err == nil {
		w.outAbs = abs
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Initial extracts the whole tree and records a fingerprint for every
// Markdown file so unchanged files are skipped later.
func (w *Watcher) Initial(ctx context.Context) (outcome.Report, error) {
	report, err := w.walker.ExtractFolder(ctx, w.src, w.out, "")
	if err != nil {
		return report, err
	}
	w.prime()
	w.applyProtocol()
	return report, nil
}

func (w *Watcher) prime() {
	_ = filepath.WalkDir(w.src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if w.insideOutput(path) {
				return filepath.SkipDir
			}
			return nil
		}
		if !fsutil.IsMarkdown(d.Name()) {
			return nil
		}
		if content, err := os.ReadFile(path); err == nil {
			w.seen[path] = frontmatter.Fingerprint(content)
		}
		return nil
	})
}

// Sync brings the given source paths up to date in out. Markdown files whose
// fingerprint has not changed since the last sync are skipped.
func (w *Watcher) Sync(ctx context.Context, paths []string) outcome.Report {
	var report outcome.Report
	changed := false
	for _, path := range paths {
		if ctx.Err() != nil {
			break
		}
		o, ok := w.syncOne(ctx, path)
		if !ok {
			continue
		}
		report.Add(o)
		if o.Kind != outcome.KindSkipped {
			changed = true
		}
	}
	if changed {
		w.applyProtocol()
	}
	return report
}

func (w *Watcher) syncOne(ctx context.Context, path string) (outcome.Outcome, bool) {
	rel, err := filepath.Rel(w.src, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || w.insideOutput(path) {
		return outcome.Outcome{}, false
	}
	info, err := os.Stat(path)
	if err != nil {
		delete(w.seen, path)
		return outcome.Outcome{}, false
	}
	if info.IsDir() {
		return outcome.Outcome{}, false
	}
	dir := filepath.Join(w.out, filepath.Dir(rel))

	if !fsutil.IsMarkdown(path) {
		target := filepath.Join(dir, filepath.Base(path))
		if err := fsutil.CopyFile(path, target); err != nil {
			return outcome.Outcome{Path: path, Kind: outcome.KindFailed, Err: err}, true
		}
		return outcome.Outcome{Path: path, Kind: outcome.KindCopied, Outputs: []string{target}}, true
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return outcome.Outcome{Path: path, Kind: outcome.KindFailed, Err: err}, true
	}
	fp := frontmatter.Fingerprint(content)
	if w.seen[path] == fp {
		slog.Debug("Unchanged, skipping", logfields.Path(path))
		return outcome.Outcome{Path: path, Kind: outcome.KindSkipped}, true
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return outcome.Outcome{Path: path, Kind: outcome.KindFailed, Err: err}, true
	}
	o := w.walker.ExtractFile(ctx, path, dir)
	// A failed file is retried on the next event even if its content is unchanged.
	if o.Kind != outcome.KindFailed {
		w.seen[path] = fp
	}
	return o, true
}

func (w *Watcher) applyProtocol() {
	merged, err := protocol.Apply(w.protocol, w.out)
	if err != nil {
		slog.Error("Protocol failed", logfields.Protocol(w.protocol), logfields.Error(err))
		return
	}
	if len(merged) > 0 {
		slog.Info("Protocol applied", logfields.Protocol(w.protocol), logfields.Count(len(merged)))
	}
}

func (w *Watcher) insideOutput(path string) bool {
	if w.outAbs == "" {
		return false
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	return abs == w.outAbs || strings.HasPrefix(abs, w.outAbs+string(filepath.Separator))
}

// Run performs the initial extraction and then processes filesystem events
// until ctx is canceled. Events are batched until debounce has passed
// without a new one and processed in one sequential pass.
func (w *Watcher) Run(ctx context.Context) error {
	report, err := w.Initial(ctx)
	if err != nil {
		return err
	}
	slog.Info("Initial extraction complete", slog.String("summary", report.Summary()))

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer func() { _ = fsw.Close() }()
	w.addDirsRecursive(fsw, w.src)

	pending := sets.New[string]()
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	slog.Info("Watching for changes", logfields.Path(w.src), logfields.Output(w.out))
	for {
		select {
		case <-ctx.Done():
			slog.Info("Watch stopped")
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !w.handleEvent(fsw, ev) {
				continue
			}
			pending.Add(ev.Name)
			timer.Reset(w.debounce)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Watcher error", logfields.Error(err))
		case <-timer.C:
			paths := sets.Sorted(pending)
			pending = sets.New[string]()
			batch := w.Sync(ctx, paths)
			if len(batch.Outcomes) > 0 {
				slog.Info("Sync complete", logfields.Count(len(paths)), slog.String("summary", batch.Summary()))
			}
		}
	}
}

// handleEvent reports whether ev should be queued for the next sync.
func (w *Watcher) handleEvent(fsw *fsnotify.Watcher, ev fsnotify.Event) bool {
	if shouldIgnore(ev.Name) || w.insideOutput(ev.Name) {
		return false
	}
	if ev.Has(fsnotify.Create) {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			w.addDirsRecursive(fsw, ev.Name)
			return false
		}
	}
	slog.Debug("File change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
	return ev.Has(fsnotify.Create) || ev.Has(fsnotify.Write) || ev.Has(fsnotify.Rename)
}

func (w *Watcher) addDirsRecursive(fsw *fsnotify.Watcher, root string) {
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if w.insideOutput(path) {
			return filepath.SkipDir
		}
		if err := fsw.Add(path); err != nil {
			slog.Warn("Watch add failed", logfields.Path(path), logfields.Error(err))
		}
		return nil
	})
}

// shouldIgnore reports hidden files and editor swap files.
func shouldIgnore(path string) bool {
	base := filepath.Base(path)
	switch {
	case strings.HasPrefix(base, "."):
		return true
	case strings.HasSuffix(base, "~"), strings.HasSuffix(base, ".swp"), strings.HasSuffix(base, ".swx"):
		return true
	case strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#"):
		return true
	}
	return false
}
