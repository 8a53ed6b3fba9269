package commands

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/leli/internal/walk"
	"git.home.luguber.info/inful/leli/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Folder   string `short:"d" help:"Folder to watch" type:"existingdir" required:""`
	Output   string `short:"o" help:"Output directory for extracted code (default .app)"`
	Protocol string `short:"p" help:"Folder merge protocol applied after each sync (AImM)"`
}

func (w *WatchCmd) Run(ctx context.Context, g *Global) error {
	cfg := g.Config
	output := firstNonEmpty(w.Output, cfg.Extract.Output)
	watcher := watch.New(
		walk.New(walk.WithRecorder(g.Recorder)),
		w.Folder,
		output,
		watch.WithProtocol(firstNonEmpty(w.Protocol, cfg.Extract.Protocol)),
		watch.WithDebounce(cfg.Watch.DebounceDuration()),
	)
	fmt.Fprintf(g.Out, "Watching %s (Ctrl+C to stop)\n", w.Folder)
	return watcher.Run(ctx)
}
