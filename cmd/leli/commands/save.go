package commands

import (
	"context"
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/leli/internal/logfields"
	"git.home.luguber.info/inful/leli/internal/manifest"
	"git.home.luguber.info/inful/leli/internal/metrics"
	"git.home.luguber.info/inful/leli/internal/store"
)

// SaveCmd implements the 'save' command.
type SaveCmd struct {
	File string `short:"f" help:"Manifest listing generated HTML files" required:""`
	DB   string `name:"db" help:"SQLite database path (default from DATABASE_URL)"`
}

func (s *SaveCmd) Run(ctx context.Context, g *Global) error {
	dbPath := store.PathFromURL(firstNonEmpty(s.DB, g.Config.Store.DatabaseURL))
	if dbPath == "" {
		return store.ErrNoDatabase
	}

	paths, err := manifest.Read(s.File)
	if err != nil {
		return err
	}

	db, err := store.Open(ctx, dbPath)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			slog.Warn("Failed to close database", logfields.Path(dbPath), logfields.Error(cerr))
		}
	}()

	n, err := db.SaveHTMLPaths(ctx, paths)
	if err != nil {
		g.Recorder.IncFileOutcome(metrics.StageSave, "failed")
		return err
	}
	g.Recorder.AddStoredRows(n)
	slog.Info("Saved HTML paths", logfields.Path(dbPath), logfields.Count(n))
	fmt.Fprintf(g.Out, "Saved %d paths to %s\n", n, dbPath)
	return nil
}
