package store

import ferrors "git.home.luguber.info/inful/leli/internal/foundation/errors"

var (
	// ErrNoDatabase is returned when neither --db nor DATABASE_URL is set.
	ErrNoDatabase = ferrors.ConfigError("no database configured (set --db or DATABASE_URL)").Build()
	// ErrOpen wraps failures opening or migrating the database.
	ErrOpen = ferrors.StoreError("open database failed").Fatal().Build()
	// ErrInsert wraps failures writing rows.
	ErrInsert = ferrors.StoreError("insert html metadata failed").Build()
	// ErrQuery wraps failures reading rows.
	ErrQuery = ferrors.StoreError("query html metadata failed").Build()
)
