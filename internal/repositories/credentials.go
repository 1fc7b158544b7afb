package repositories

import (
	"context"
	"database/sql"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/WingTeck/golub-banka/internal/logger"
	"github.com/WingTeck/golub-banka/internal/models"
)

// CredentialsReadRepository reads owner login credentials.
type CredentialsReadRepository struct {
	db *sqlx.DB
}

func NewCredentialsReadRepository(db *sqlx.DB) *CredentialsReadRepository {
	return &CredentialsReadRepository{db: db}
}

// GetByOwner returns the credentials for an owner key, or nil when the owner
// is not registered.
func (r *CredentialsReadRepository) GetByOwner(ctx context.Context, owner string) (*models.CredentialsDB, error) {
	const query = `
		SELECT owner, password_hash, created_at, updated_at
		FROM credentials
		WHERE owner = $1
		LIMIT 1
	`

	var creds models.CredentialsDB
	err := r.db.GetContext(ctx, &creds, query, owner)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{owner},
		"error", err,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &creds, nil
}

// CredentialsWriteRepository stores owner login credentials.
type CredentialsWriteRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewCredentialsWriteRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *CredentialsWriteRepository {
	return &CredentialsWriteRepository{db: db, txGetter: txGetter}
}

// Save inserts or replaces the credentials for an owner. The hash is produced
// by the caller; plain-text passwords never reach this layer.
func (r *CredentialsWriteRepository) Save(ctx context.Context, owner, passwordHash string) error {
	query := `
		INSERT INTO credentials (owner, password_hash, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		ON CONFLICT (owner) DO UPDATE
		SET password_hash = EXCLUDED.password_hash,
		    updated_at = NOW()
	`
	args := []any{owner, passwordHash}

	var executor sqlx.ExtContext = r.db
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			executor = tx
		}
	}

	res, err := executor.ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{owner},
		"result", rowsAffected,
		"error", err,
	)

	return err
}
