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
	"github.com/meritoapp/merito/internal/pkg/dberrors"
	"github.com/meritoapp/merito/internal/pkg/logger"
)

// RedemptionRepository handles redemption coupons and their backing ledger
// rows
type RedemptionRepository struct {
	db           *pgxpool.Pool
	transactions *TransactionRepository
	sb           squirrel.StatementBuilderType
}

// NewRedemptionRepository creates a new RedemptionRepository
func NewRedemptionRepository(pool *pgxpool.Pool, transactions *TransactionRepository) *RedemptionRepository {
	return &RedemptionRepository{
		db:           pool,
		transactions: transactions,
		sb:           squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Redeem performs a redemption atomically: it locks the student's account,
// re-checks balance and pending duplicates under the lock, appends the debit
// to the ledger and creates the coupon row. Any failure rolls everything
// back. A unique violation on the coupon code maps to
// apperrors.ErrCouponCodeCollision so the caller can retry with a fresh code.
func (r *RedemptionRepository) Redeem(ctx context.Context, studentUserID, studentID, companyUserID int64, adv *models.Advantage, code string) (*models.Redemption, *models.Transaction, error) {
	reason := "Redemption: " + adv.Title
	txn := &models.Transaction{
		FromUserID: &studentUserID,
		ToUserID:   companyUserID,
		Amount:     adv.CostCoins,
		Reason:     &reason,
		Kind:       models.TransactionRedemption,
	}
	redemption := &models.Redemption{
		StudentID:   studentID,
		AdvantageID: adv.ID,
		Code:        code,
		Status:      models.RedemptionPending,
	}

	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if err := r.transactions.LockUserTx(ctx, tx, studentUserID); err != nil {
			return err
		}

		balance, err := r.transactions.BalanceTx(ctx, tx, studentUserID)
		if err != nil {
			return err
		}
		if balance < adv.CostCoins {
			return apperrors.ErrInsufficientBalance
		}

		pending, err := r.hasPendingTx(ctx, tx, studentID, adv.ID)
		if err != nil {
			return err
		}
		if pending {
			return apperrors.ErrDuplicateRedemption
		}

		if err := r.transactions.InsertTx(ctx, tx, txn); err != nil {
			return err
		}
		redemption.TransactionID = txn.ID

		sql, args, err := r.sb.Insert("redemptions").
			Columns("student_id", "advantage_id", "transaction_id", "redemption_code", "status").
			Values(redemption.StudentID, redemption.AdvantageID, redemption.TransactionID, redemption.Code, redemption.Status).
			Suffix("RETURNING id, created_at").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build create redemption query: %w", err)
		}

		if err := tx.QueryRow(ctx, sql, args...).Scan(&redemption.ID, &redemption.CreatedAt); err != nil {
			if dberrors.IsUniqueViolationOn(err, "redemptions_redemption_code_key") {
				return apperrors.ErrCouponCodeCollision
			}
			return fmt.Errorf("error creating redemption: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return redemption, txn, nil
}

func (r *RedemptionRepository) hasPendingTx(ctx context.Context, tx pgx.Tx, studentID, advantageID int64) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("redemptions").
		Where(squirrel.Eq{
			"student_id":   studentID,
			"advantage_id": advantageID,
			"status":       models.RedemptionPending,
		}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build pending redemption query: %w", err)
	}

	var one int
	err = tx.QueryRow(ctx, sql, args...).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("error checking pending redemption: %w", err)
	}
	return true, nil
}

// HasPending reports whether the student already holds an unconsumed coupon
// for the advantage. Used as a pre-check before the transactional recheck.
func (r *RedemptionRepository) HasPending(ctx context.Context, studentID, advantageID int64) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("redemptions").
		Where(squirrel.Eq{
			"student_id":   studentID,
			"advantage_id": advantageID,
			"status":       models.RedemptionPending,
		}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build pending redemption query: %w", err)
	}

	var one int
	err = r.db.QueryRow(ctx, sql, args...).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("error checking pending redemption: %w", err)
	}
	return true, nil
}

const redemptionSelectColumns = "r.id, r.student_id, r.advantage_id, r.transaction_id, r.redemption_code, r.status, r.created_at, " +
	"a.id, a.company_id, a.title, a.description, a.image_url, a.cost_coins, a.is_active, a.created_at, c.name"

func scanRedemptionRow(row pgx.Row) (*models.Redemption, error) {
	red := &models.Redemption{Advantage: &models.Advantage{}}
	adv := red.Advantage
	err := row.Scan(
		&red.ID, &red.StudentID, &red.AdvantageID, &red.TransactionID, &red.Code, &red.Status, &red.CreatedAt,
		&adv.ID, &adv.CompanyID, &adv.Title, &adv.Description, &adv.ImageURL,
		&adv.CostCoins, &adv.IsActive, &adv.CreatedAt, &adv.CompanyName,
	)
	if err != nil {
		return nil, err
	}
	return red, nil
}

func (r *RedemptionRepository) selectRedemptions() squirrel.SelectBuilder {
	return r.sb.Select(redemptionSelectColumns).
		From("redemptions r").
		Join("advantages a ON a.id = r.advantage_id").
		Join("companies c ON c.id = a.company_id")
}

// GetByID retrieves a redemption with its advantage and company context
func (r *RedemptionRepository) GetByID(ctx context.Context, id int64) (*models.Redemption, error) {
	sql, args, err := r.selectRedemptions().
		Where(squirrel.Eq{"r.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get redemption query: %w", err)
	}

	red, err := scanRedemptionRow(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRedemptionNotFound
		}
		logger.Error().Err(err).Int64("redemptionID", id).Msg("Error scanning redemption row")
		return nil, fmt.Errorf("error getting redemption by ID: %w", err)
	}
	return red, nil
}

// ListByStudentID retrieves a student's redemptions, newest first
func (r *RedemptionRepository) ListByStudentID(ctx context.Context, studentID int64) ([]*models.Redemption, error) {
	sql, args, err := r.selectRedemptions().
		Where(squirrel.Eq{"r.student_id": studentID}).
		OrderBy("r.created_at DESC", "r.id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list redemptions query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error querying redemptions")
		return nil, fmt.Errorf("error querying redemptions: %w", err)
	}
	defer rows.Close()

	redemptions := []*models.Redemption{}
	for rows.Next() {
		red, err := scanRedemptionRow(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning redemption row: %w", err)
		}
		redemptions = append(redemptions, red)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating redemption rows: %w", err)
	}
	return redemptions, nil
}

// UpdateStatus moves a pending redemption to a terminal status. Terminal
// redemptions are immutable; updating one reports not found.
func (r *RedemptionRepository) UpdateStatus(ctx context.Context, id int64, status models.RedemptionStatus) error {
	sql, args, err := r.sb.Update("redemptions").
		Set("status", status).
		Where(squirrel.Eq{"id": id, "status": models.RedemptionPending}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update redemption status query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("redemptionID", id).Msg("Error executing update redemption status query")
		return fmt.Errorf("error updating redemption status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrRedemptionNotFound
	}
	return nil
}
