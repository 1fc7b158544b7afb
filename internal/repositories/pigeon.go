package repositories

import (
	"context"
	"database/sql"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/WingTeck/golub-banka/internal/logger"
	"github.com/WingTeck/golub-banka/internal/models"
)

// PigeonWriteRepository persists pigeon accounts, transactions, and the id
// sequence counter. Writes happen after the in-memory ledger has committed,
// never inside its critical section.
type PigeonWriteRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewPigeonWriteRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *PigeonWriteRepository {
	return &PigeonWriteRepository{db: db, txGetter: txGetter}
}

func (r *PigeonWriteRepository) executor(ctx context.Context) sqlx.ExtContext {
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			return tx
		}
	}
	return r.db
}

// SaveAccount performs an UPSERT: inserts the account row or overwrites its
// balance with the committed in-memory value.
func (r *PigeonWriteRepository) SaveAccount(ctx context.Context, p models.Pigeon) error {
	query := `
		INSERT INTO pigeons (pigeon_id, owner, name, card_number, balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		ON CONFLICT (pigeon_id)
		DO UPDATE SET balance = EXCLUDED.balance, updated_at = NOW()
	`
	args := []any{p.ID, p.Owner, p.Name, p.CardNumber, p.Balance}

	_, err := r.executor(ctx).ExecContext(ctx, query, args...)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"error", err,
	)

	return err
}

// SaveTransaction appends one history entry for an account.
func (r *PigeonWriteRepository) SaveTransaction(ctx context.Context, accountID string, t models.Transaction) error {
	query := `
		INSERT INTO pigeon_transactions (pigeon_id, timestamp, type, amount, counterparty, balance_after)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	args := []any{accountID, t.Timestamp, string(t.Type), t.Amount, t.Counterparty, t.BalanceAfter}

	_, err := r.executor(ctx).ExecContext(ctx, query, args...)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"error", err,
	)

	return err
}

// SaveSequence stores the directory's id/card sequence counter so restarts
// continue the sequence without colliding with existing ids.
func (r *PigeonWriteRepository) SaveSequence(ctx context.Context, seq int64) error {
	query := `
		INSERT INTO ledger_state (id, next_sequence)
		VALUES (1, $1)
		ON CONFLICT (id)
		DO UPDATE SET next_sequence = EXCLUDED.next_sequence
	`
	args := []any{seq}

	_, err := r.executor(ctx).ExecContext(ctx, query, args...)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"error", err,
	)

	return err
}

// PigeonReadRepository loads persisted ledger state, used to restore the
// in-memory directory at startup.
type PigeonReadRepository struct {
	db *sqlx.DB
}

func NewPigeonReadRepository(db *sqlx.DB) *PigeonReadRepository {
	return &PigeonReadRepository{db: db}
}

// LoadAccounts returns every persisted account with its retained history, in
// creation (sequence) order. Card numbers are fixed-width, so ordering by them
// matches allocation order at any id width.
func (r *PigeonReadRepository) LoadAccounts(ctx context.Context) ([]models.Pigeon, error) {
	const accountsQuery = `
		SELECT pigeon_id, owner, name, card_number, balance, created_at, updated_at
		FROM pigeons
		ORDER BY card_number
	`

	var rows []models.PigeonDB
	if err := r.db.SelectContext(ctx, &rows, accountsQuery); err != nil {
		logger.Log.Errorw("failed to load accounts", "error", err)
		return nil, err
	}

	const txQuery = `
		SELECT pigeon_id, timestamp, type, amount, counterparty, balance_after
		FROM pigeon_transactions
		ORDER BY pigeon_id, timestamp
	`

	var txRows []models.TransactionDB
	if err := r.db.SelectContext(ctx, &txRows, txQuery); err != nil {
		logger.Log.Errorw("failed to load transactions", "error", err)
		return nil, err
	}

	historyByAccount := make(map[string][]models.Transaction)
	for _, row := range txRows {
		historyByAccount[row.PigeonID] = append(historyByAccount[row.PigeonID], models.Transaction{
			Timestamp:    row.Timestamp,
			Type:         models.TransactionType(row.Type),
			Amount:       row.Amount,
			Counterparty: row.Counterparty,
			BalanceAfter: row.BalanceAfter,
		})
	}

	accounts := make([]models.Pigeon, 0, len(rows))
	for _, row := range rows {
		history := historyByAccount[row.PigeonID]
		// The ledger retains only the most recent entries.
		if len(history) > 10 {
			history = history[len(history)-10:]
		}
		accounts = append(accounts, models.Pigeon{
			ID:           row.PigeonID,
			Owner:        row.Owner,
			Name:         row.Name,
			CardNumber:   row.CardNumber,
			Balance:      row.Balance,
			Transactions: history,
		})
	}

	logger.Log.Infow("loaded persisted accounts", "accounts", len(accounts))
	return accounts, nil
}

// LoadSequence returns the persisted sequence counter, or zero when the state
// row does not exist yet.
func (r *PigeonReadRepository) LoadSequence(ctx context.Context) (int64, error) {
	const query = `SELECT next_sequence FROM ledger_state WHERE id = 1`

	var seq int64
	err := r.db.GetContext(ctx, &seq, query)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		logger.Log.Errorw("failed to load sequence", "error", err)
		return 0, err
	}
	return seq, nil
}
