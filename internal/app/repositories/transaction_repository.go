package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/meritoapp/merito/internal/app/models"
	"github.com/meritoapp/merito/internal/db"
	"github.com/meritoapp/merito/internal/pkg/apperrors"
	"github.com/meritoapp/merito/internal/pkg/logger"
)

// rowQueryer is satisfied by both *pgxpool.Pool and pgx.Tx, letting balance
// reads run either standalone or inside a transaction.
type rowQueryer interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// balanceQuery derives a user's balance from the ledger. There is no stored
// balance column; sum(received) - sum(sent) is the single source of truth.
const balanceQuery = `
SELECT COALESCE(SUM(CASE WHEN to_user_id = $1 THEN amount ELSE 0 END), 0)
     - COALESCE(SUM(CASE WHEN from_user_id = $1 THEN amount ELSE 0 END), 0)
FROM transactions
WHERE to_user_id = $1 OR from_user_id = $1`

// TransactionRepository handles the append-only coin ledger
type TransactionRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository(db *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetBalance computes a user's current coin balance
func (r *TransactionRepository) GetBalance(ctx context.Context, userID int64) (int64, error) {
	return r.balanceOf(ctx, r.db, userID)
}

func (r *TransactionRepository) balanceOf(ctx context.Context, q rowQueryer, userID int64) (int64, error) {
	var balance int64
	if err := q.QueryRow(ctx, balanceQuery, userID).Scan(&balance); err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error computing balance")
		return 0, fmt.Errorf("error computing balance: %w", err)
	}
	return balance, nil
}

// LockUserTx takes a row lock on the user, serializing concurrent spends of
// the same account for the rest of the transaction.
func (r *TransactionRepository) LockUserTx(ctx context.Context, tx pgx.Tx, userID int64) error {
	var id int64
	err := tx.QueryRow(ctx, "SELECT id FROM users WHERE id = $1 FOR UPDATE", userID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("error locking user row: %w", err)
	}
	return nil
}

// BalanceTx computes a balance inside an open transaction. Combined with
// LockUserTx it gives a stable read for spend checks.
func (r *TransactionRepository) BalanceTx(ctx context.Context, tx pgx.Tx, userID int64) (int64, error) {
	return r.balanceOf(ctx, tx, userID)
}

// InsertTx appends a ledger row inside an open transaction, filling in the
// generated ID and timestamp.
func (r *TransactionRepository) InsertTx(ctx context.Context, tx pgx.Tx, txn *models.Transaction) error {
	sql, args, err := r.sb.Insert("transactions").
		Columns("from_user_id", "to_user_id", "amount", "reason", "transaction_type").
		Values(txn.FromUserID, txn.ToUserID, txn.Amount, txn.Reason, txn.Kind).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert transaction query: %w", err)
	}

	if err := tx.QueryRow(ctx, sql, args...).Scan(&txn.ID, &txn.CreatedAt); err != nil {
		return fmt.Errorf("error inserting transaction: %w", err)
	}
	return nil
}

// Transfer moves coins between two users atomically. The sender's row is
// locked and the balance re-checked inside the transaction, so two
// concurrent transfers can never overspend the account.
func (r *TransactionRepository) Transfer(ctx context.Context, fromUserID, toUserID, amount int64, reason string) (*models.Transaction, error) {
	txn := &models.Transaction{
		FromUserID: &fromUserID,
		ToUserID:   toUserID,
		Amount:     amount,
		Reason:     &reason,
		Kind:       models.TransactionTransfer,
	}

	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if err := r.LockUserTx(ctx, tx, fromUserID); err != nil {
			return err
		}
		balance, err := r.BalanceTx(ctx, tx, fromUserID)
		if err != nil {
			return err
		}
		if balance < amount {
			return apperrors.ErrInsufficientBalance
		}
		return r.InsertTx(ctx, tx, txn)
	})
	if err != nil {
		return nil, err
	}
	return txn, nil
}

// CreateSemesterCredits appends one system credit per recipient in a single
// transaction. System credits have no sender.
func (r *TransactionRepository) CreateSemesterCredits(ctx context.Context, toUserIDs []int64, amount int64, reason string) ([]*models.Transaction, error) {
	transactions := make([]*models.Transaction, 0, len(toUserIDs))

	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		for _, userID := range toUserIDs {
			txn := &models.Transaction{
				ToUserID: userID,
				Amount:   amount,
				Reason:   &reason,
				Kind:     models.TransactionSemesterCredit,
			}
			if err := r.InsertTx(ctx, tx, txn); err != nil {
				return err
			}
			transactions = append(transactions, txn)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return transactions, nil
}

func (r *TransactionRepository) selectTransactions() squirrel.SelectBuilder {
	return r.sb.Select(
		"t.id", "t.from_user_id", "t.to_user_id", "t.amount", "t.reason",
		"t.transaction_type", "t.created_at", "fu.email", "tu.email",
	).
		From("transactions t").
		LeftJoin("users fu ON fu.id = t.from_user_id").
		Join("users tu ON tu.id = t.to_user_id")
}

func scanTransactionRow(row pgx.Row) (*models.Transaction, error) {
	txn := &models.Transaction{}
	err := row.Scan(
		&txn.ID, &txn.FromUserID, &txn.ToUserID, &txn.Amount, &txn.Reason,
		&txn.Kind, &txn.CreatedAt, &txn.FromEmail, &txn.ToEmail,
	)
	if err != nil {
		return nil, err
	}
	return txn, nil
}

// ListByUser retrieves every ledger row the user participates in, newest
// first, with counterparty emails annotated.
func (r *TransactionRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Transaction, error) {
	sql, args, err := r.selectTransactions().
		Where(squirrel.Or{
			squirrel.Eq{"t.from_user_id": userID},
			squirrel.Eq{"t.to_user_id": userID},
		}).
		OrderBy("t.created_at DESC", "t.id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list transactions query: %w", err)
	}
	return r.queryTransactions(ctx, sql, args)
}

// ListTransfersBySender retrieves the grants a professor has made, newest
// first.
func (r *TransactionRepository) ListTransfersBySender(ctx context.Context, fromUserID int64) ([]*models.Transaction, error) {
	sql, args, err := r.selectTransactions().
		Where(squirrel.Eq{
			"t.from_user_id":     fromUserID,
			"t.transaction_type": models.TransactionTransfer,
		}).
		OrderBy("t.created_at DESC", "t.id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list transfers query: %w", err)
	}
	return r.queryTransactions(ctx, sql, args)
}

func (r *TransactionRepository) queryTransactions(ctx context.Context, sql string, args []interface{}) ([]*models.Transaction, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error querying transactions")
		return nil, fmt.Errorf("error querying transactions: %w", err)
	}
	defer rows.Close()

	transactions := []*models.Transaction{}
	for rows.Next() {
		txn, err := scanTransactionRow(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning transaction row: %w", err)
		}
		transactions = append(transactions, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}
	return transactions, nil
}
