package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"

	"github.com/pcormier/po-intake/internal/catalog"
	"github.com/pcormier/po-intake/internal/common"
)

// CatalogRepository persists versioned reference-catalogue entries.
type CatalogRepository interface {
	SaveEntries(ctx context.Context, version string, entries []catalog.Entry) error
	LoadVersion(ctx context.Context, version string) (*catalog.Catalog, error)
	LatestVersion(ctx context.Context) (string, error)
}

type catalogRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewCatalogRepository(db *sql.DB, logger *slog.Logger) CatalogRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &catalogRepository{db: db, logger: logger}
}

// SaveEntries replaces all entries of one catalogue version atomically.
func (r *catalogRepository) SaveEntries(ctx context.Context, version string, entries []catalog.Entry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return common.WrapError(err, "begin tx")
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM catalog_entries WHERE version = ?`, version); err != nil {
		return common.WrapError(err, "clear version")
	}
	for _, e := range entries {
		aliases, err := json.Marshal(e.Aliases)
		if err != nil {
			return common.WrapError(err, "encode aliases")
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO catalog_entries (version, kind, canonical, aliases) VALUES (?, ?, ?, ?)`,
			version, string(e.Kind), e.Canonical, string(aliases),
		); err != nil {
			return common.WrapError(err, "insert entry")
		}
	}
	if err := tx.Commit(); err != nil {
		return common.WrapError(err, "commit")
	}
	r.logger.Info("repository.catalog.saved", "version", version, "entries", len(entries))
	return nil
}

// LoadVersion builds the in-memory catalogue for one version.
func (r *catalogRepository) LoadVersion(ctx context.Context, version string) (*catalog.Catalog, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT kind, canonical, aliases FROM catalog_entries WHERE version = ? ORDER BY id`, version)
	if err != nil {
		return nil, common.WrapError(err, "query entries")
	}
	defer rows.Close()

	var entries []catalog.Entry
	for rows.Next() {
		var kind, canonical, aliasesJSON string
		if err := rows.Scan(&kind, &canonical, &aliasesJSON); err != nil {
			return nil, common.WrapError(err, "scan entry")
		}
		var aliases []string
		if err := json.Unmarshal([]byte(aliasesJSON), &aliases); err != nil {
			return nil, common.WrapError(err, "decode aliases")
		}
		entries = append(entries, catalog.Entry{
			Kind:      catalog.Kind(kind),
			Canonical: canonical,
			Aliases:   aliases,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, common.WrapError(err, "iterate entries")
	}
	if len(entries) == 0 {
		return nil, common.NewAppError("CATALOG_EMPTY", "no entries for version "+version, common.ErrNotFound)
	}
	return catalog.New(version, entries), nil
}

// LatestVersion returns the most recently written catalogue version.
func (r *catalogRepository) LatestVersion(ctx context.Context) (string, error) {
	var version string
	err := r.db.QueryRowContext(ctx,
		`SELECT version FROM catalog_entries ORDER BY created_at DESC, id DESC LIMIT 1`).Scan(&version)
	if err == sql.ErrNoRows {
		return "", common.NewAppError("CATALOG_EMPTY", "no catalogue loaded", common.ErrNotFound)
	}
	if err != nil {
		return "", common.WrapError(err, "query latest version")
	}
	return version, nil
}
