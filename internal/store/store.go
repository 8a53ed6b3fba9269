// Package store persists generated HTML document paths in SQLite.
package store

import (
	"context"
	"strings"
)

// HTMLRecord is one row of html_metadata.
type HTMLRecord struct {
	ID       int64
	FilePath string
}

// Store records produced HTML documents.
type Store interface {
	// SaveHTMLPaths inserts one row per path in a single transaction and
	// returns the number of rows written. Duplicates are stored again.
	SaveHTMLPaths(ctx context.Context, paths []string) (int, error)
	// HTMLPaths lists all rows in insertion order.
	HTMLPaths(ctx context.Context) ([]HTMLRecord, error)
	Close() error
}

// PathFromURL turns a DATABASE_URL value into a SQLite path, accepting
// "sqlite://path", "sqlite:path" and plain paths.
func PathFromURL(url string) string {
	url = strings.TrimSpace(url)
	for _, prefix := range []string{"sqlite://", "sqlite:"} {
		if rest, ok := strings.CutPrefix(url, prefix); ok {
			return rest
		}
	}
	return url
}
