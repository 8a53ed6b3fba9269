package store

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"

	ferrors "git.home.luguber.info/inful/leli/internal/foundation/errors"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// insertBatch bounds the rows per INSERT statement.
const insertBatch = 500

const tableHTMLMetadata = "html_metadata"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
	sq sq.StatementBuilderType
}

var _ Store = (*SQLiteStore)(nil)

// Open opens (creating if needed) the SQLite database at dbPath and applies
// pending migrations. Use ":memory:" for a private in-memory database.
func Open(ctx context.Context, dbPath string) (*SQLiteStore, error) {
	if dbPath == "" {
		return nil, ErrNoDatabase
	}
	if dbPath != ":memory:" && !strings.HasPrefix(dbPath, "file:") {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
			return nil, wrapOpen(err, dbPath)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, wrapOpen(err, dbPath)
	}
	// One connection keeps ":memory:" databases shared and writes serialized.
	db.SetMaxOpenConns(1)

	if err := applyMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, wrapOpen(err, dbPath)
	}
	return &SQLiteStore{db: db, sq: sq.StatementBuilder}, nil
}

func wrapOpen(err error, dbPath string) error {
	return ferrors.WrapError(err, ferrors.CategoryStore, ErrOpen.Message()).
		Fatal().
		WithContext("path", dbPath).
		Build()
}

func applyMigrations(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		applied_at TEXT NOT NULL
	)`); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	entries, err := fs.ReadDir(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			files = append(files, e.Name())
		}
	}
	slices.Sort(files)

	for _, name := range files {
		var n int
		err := db.QueryRowContext(ctx, `SELECT 1 FROM schema_migrations WHERE name = ?`, name).Scan(&n)
		if err == nil {
			continue
		}
		if err != sql.ErrNoRows {
			return fmt.Errorf("check migration %s: %w", name, err)
		}
		body, err := migrationsFS.ReadFile(path.Join("migrations", name))
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		err = withTx(ctx, db, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, string(body)); err != nil {
				return fmt.Errorf("apply migration %s: %w", name, err)
			}
			_, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations(name, applied_at) VALUES (?, ?)`,
				name, time.Now().UTC().Format(time.RFC3339))
			return err
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func withTx(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (s *SQLiteStore) SaveHTMLPaths(ctx context.Context, paths []string) (int, error) {
	if len(paths) == 0 {
		return 0, nil
	}
	err := withTx(ctx, s.db, func(tx *sql.Tx) error {
		for chunk := range slices.Chunk(paths, insertBatch) {
			q := s.sq.Insert(tableHTMLMetadata).Columns("file_path")
			for _, p := range chunk {
				q = q.Values(p)
			}
			query, args, err := q.ToSql()
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, ferrors.WrapError(err, ferrors.CategoryStore, ErrInsert.Message()).
			WithContext("rows", len(paths)).
			Build()
	}
	return len(paths), nil
}

func (s *SQLiteStore) HTMLPaths(ctx context.Context) ([]HTMLRecord, error) {
	query, args, err := s.sq.Select("id", "file_path").From(tableHTMLMetadata).OrderBy("id").ToSql()
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryStore, ErrQuery.Message()).Build()
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryStore, ErrQuery.Message()).Build()
	}
	defer func() { _ = rows.Close() }()

	var out []HTMLRecord
	for rows.Next() {
		var r HTMLRecord
		if err := rows.Scan(&r.ID, &r.FilePath); err != nil {
			return nil, ferrors.WrapError(err, ferrors.CategoryStore, ErrQuery.Message()).Build()
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryStore, ErrQuery.Message()).Build()
	}
	return out, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
