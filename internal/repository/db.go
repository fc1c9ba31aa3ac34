package repository

import (
	"context"
	"database/sql"
	"log/slog"

	_ "modernc.org/sqlite"

	"github.com/pcormier/po-intake/internal/common"
)

const schema = `
CREATE TABLE IF NOT EXISTS catalog_entries (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	version    TEXT NOT NULL,
	kind       TEXT NOT NULL,
	canonical  TEXT NOT NULL,
	aliases    TEXT NOT NULL DEFAULT '[]',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_catalog_version_kind ON catalog_entries(version, kind);

CREATE TABLE IF NOT EXISTS baselines (
	file_hash  TEXT PRIMARY KEY,
	filename   TEXT NOT NULL DEFAULT '',
	signature  TEXT NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`

// Open opens (or creates) the embedded database and applies the schema.
// Use ":memory:" for throwaway runs and tests.
func Open(ctx context.Context, path string, logger *slog.Logger) (*sql.DB, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, common.WrapError(err, "open database")
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, common.WrapError(err, "apply schema")
	}
	logger.Info("repository.db.opened", "path", path)
	return db, nil
}
