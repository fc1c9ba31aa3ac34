package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"

	"github.com/pcormier/po-intake/internal/common"
	"github.com/pcormier/po-intake/internal/signature"
)

// BaselineRepository maps a file content hash to its previously recorded
// parse signature. The core defines only the signature shape and the diff;
// this is the storage behind the regression check.
type BaselineRepository interface {
	Get(ctx context.Context, fileHash string) (*signature.ParseSignature, error)
	Put(ctx context.Context, sig signature.ParseSignature) error
}

type baselineRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewBaselineRepository(db *sql.DB, logger *slog.Logger) BaselineRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &baselineRepository{db: db, logger: logger}
}

func (r *baselineRepository) Get(ctx context.Context, fileHash string) (*signature.ParseSignature, error) {
	var payload string
	err := r.db.QueryRowContext(ctx,
		`SELECT signature FROM baselines WHERE file_hash = ?`, fileHash).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, common.NewAppError("BASELINE_MISSING", "no baseline for hash "+fileHash, common.ErrNotFound)
	}
	if err != nil {
		return nil, common.WrapError(err, "query baseline")
	}
	var sig signature.ParseSignature
	if err := json.Unmarshal([]byte(payload), &sig); err != nil {
		return nil, common.WrapError(err, "decode baseline")
	}
	return &sig, nil
}

func (r *baselineRepository) Put(ctx context.Context, sig signature.ParseSignature) error {
	payload, err := json.Marshal(sig)
	if err != nil {
		return common.WrapError(err, "encode signature")
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO baselines (file_hash, filename, signature)
		VALUES (?, ?, ?)
		ON CONFLICT(file_hash) DO UPDATE SET
			filename = excluded.filename,
			signature = excluded.signature,
			updated_at = CURRENT_TIMESTAMP`,
		sig.FileHash, sig.Filename, string(payload))
	if err != nil {
		return common.WrapError(err, "upsert baseline")
	}
	r.logger.Info("repository.baseline.saved", "file_hash", sig.FileHash, "docs", len(sig.Docs))
	return nil
}
