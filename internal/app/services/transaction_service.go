package services

import (
	"context"
	"strings"
	"time"

	"github.com/meritoapp/merito/internal/app/models"
	"github.com/meritoapp/merito/internal/app/models/dto"
	"github.com/meritoapp/merito/internal/pkg/apperrors"
	"github.com/meritoapp/merito/internal/pkg/email"
	"github.com/meritoapp/merito/internal/pkg/logger"
)

// TransactionService defines the interface for ledger operations
type TransactionService interface {
	SendCoins(ctx context.Context, fromUserID int64, req *dto.SendCoinsRequest) (*models.Transaction, error)
	GetBalance(ctx context.Context, userID int64) (int64, error)
	GetMyTransactions(ctx context.Context, userID int64) ([]*models.Transaction, error)
	GetStudentsWithRedemptions(ctx context.Context, professorUserID int64) ([]*dto.StudentWithRedemptions, error)
	IssueSemesterCredits(ctx context.Context, amount int64, reason string) ([]*models.Transaction, error)
}

type transactionServiceImpl struct {
	users                UserStore
	students             StudentStore
	professors           ProfessorStore
	ledger               LedgerStore
	redemptions          RedemptionStore
	mailer               email.Mailer
	semesterCreditAmount int64
}

// NewTransactionService creates a new transaction service instance
func NewTransactionService(users UserStore, students StudentStore, professors ProfessorStore, ledger LedgerStore, redemptions RedemptionStore, mailer email.Mailer, semesterCreditAmount int64) TransactionService {
	return &transactionServiceImpl{
		users:                users,
		students:             students,
		professors:           professors,
		ledger:               ledger,
		redemptions:          redemptions,
		mailer:               mailer,
		semesterCreditAmount: semesterCreditAmount,
	}
}

// SendCoins grants coins from a professor to a student. The recipient is
// addressed by email and must be an active student account. The balance check
// happens atomically inside the ledger transfer.
func (s *transactionServiceImpl) SendCoins(ctx context.Context, fromUserID int64, req *dto.SendCoinsRequest) (*models.Transaction, error) {
	if req.Amount <= 0 {
		return nil, apperrors.NewValidationError("amount must be greater than zero")
	}
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return nil, apperrors.NewValidationError("reason cannot be empty")
	}

	recipient, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.ToEmail)))
	if err != nil {
		return nil, apperrors.ErrUserNotFound
	}
	if recipient.Role != models.RoleStudent {
		return nil, apperrors.NewValidationError("coins can only be sent to students")
	}
	if !recipient.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}
	if recipient.ID == fromUserID {
		return nil, apperrors.NewValidationError("cannot send coins to yourself")
	}

	txn, err := s.ledger.Transfer(ctx, fromUserID, recipient.ID, req.Amount, reason)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int64("transactionID", txn.ID).
		Int64("from", fromUserID).
		Int64("to", recipient.ID).
		Int64("amount", req.Amount).
		Msg("Coins transferred")

	s.notifyTransfer(ctx, fromUserID, recipient.Email, req.Amount, reason)
	return txn, nil
}

// notifyTransfer sends the recipient a notification. Failures are logged and
// never surface to the caller.
func (s *transactionServiceImpl) notifyTransfer(ctx context.Context, fromUserID int64, toEmail string, amount int64, reason string) {
	sender, err := s.users.GetByID(ctx, fromUserID)
	fromEmail := "a professor"
	if err == nil {
		fromEmail = sender.Email
	}

	body := email.TransferText(amount, fromEmail, reason)
	if err := s.mailer.Send(toEmail, email.TransferSubject, body, ""); err != nil {
		logger.Warn().Err(err).Str("to", toEmail).Msg("Failed to send transfer notification")
	}
}

// GetBalance returns the ledger-derived balance of a user
func (s *transactionServiceImpl) GetBalance(ctx context.Context, userID int64) (int64, error) {
	return s.ledger.GetBalance(ctx, userID)
}

// GetMyTransactions lists the caller's ledger history
func (s *transactionServiceImpl) GetMyTransactions(ctx context.Context, userID int64) ([]*models.Transaction, error) {
	return s.ledger.ListByUser(ctx, userID)
}

// GetStudentsWithRedemptions builds the professor roll-up: every student the
// professor granted coins to, with those grants and the student's redemption
// history.
func (s *transactionServiceImpl) GetStudentsWithRedemptions(ctx context.Context, professorUserID int64) ([]*dto.StudentWithRedemptions, error) {
	transfers, err := s.ledger.ListTransfersBySender(ctx, professorUserID)
	if err != nil {
		return nil, err
	}

	grouped := map[int64][]*models.Transaction{}
	order := []int64{}
	for _, txn := range transfers {
		if _, seen := grouped[txn.ToUserID]; !seen {
			order = append(order, txn.ToUserID)
		}
		grouped[txn.ToUserID] = append(grouped[txn.ToUserID], txn)
	}

	result := make([]*dto.StudentWithRedemptions, 0, len(order))
	for _, userID := range order {
		student, err := s.students.GetByUserID(ctx, userID)
		if err != nil {
			// The recipient may have been deleted since the grant
			logger.Warn().Err(err).Int64("userID", userID).Msg("Skipping grant recipient without student profile")
			continue
		}

		redemptions, err := s.redemptions.ListByStudentID(ctx, student.ID)
		if err != nil {
			return nil, err
		}

		entry := &dto.StudentWithRedemptions{
			Student: dto.StudentSummary{
				ID:    student.ID,
				Name:  student.Name,
				Email: student.User.Email,
			},
		}
		if student.Course != nil {
			entry.Student.Course = *student.Course
		}
		if student.Institution != nil {
			entry.Student.InstitutionName = student.Institution.Name
		}

		for _, txn := range grouped[userID] {
			reason := ""
			if txn.Reason != nil {
				reason = *txn.Reason
			}
			entry.Transactions = append(entry.Transactions, dto.TransactionSummary{
				ID:        txn.ID,
				Amount:    txn.Amount,
				Reason:    reason,
				CreatedAt: txn.CreatedAt.Format(time.RFC3339),
			})
			entry.TotalReceived += txn.Amount
		}

		for _, red := range redemptions {
			entry.Redemptions = append(entry.Redemptions, redemptionDetail(red))
		}

		result = append(result, entry)
	}
	return result, nil
}

// IssueSemesterCredits grants every active professor the semester allowance.
// A non-positive amount falls back to the configured default.
func (s *transactionServiceImpl) IssueSemesterCredits(ctx context.Context, amount int64, reason string) ([]*models.Transaction, error) {
	if amount <= 0 {
		amount = s.semesterCreditAmount
	}
	if reason == "" {
		reason = "Semester credit"
	}

	userIDs, err := s.professors.ListActiveUserIDs(ctx)
	if err != nil {
		return nil, err
	}
	if len(userIDs) == 0 {
		return []*models.Transaction{}, nil
	}

	transactions, err := s.ledger.CreateSemesterCredits(ctx, userIDs, amount, reason)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int("professors", len(userIDs)).
		Int64("amount", amount).
		Msg("Semester credits issued")
	return transactions, nil
}

func redemptionDetail(red *models.Redemption) dto.RedemptionDetail {
	detail := dto.RedemptionDetail{
		ID:        red.ID,
		Code:      red.Code,
		Status:    string(red.Status),
		CreatedAt: red.CreatedAt.Format(time.RFC3339),
	}
	if red.Advantage != nil {
		detail.Advantage = &dto.AdvantageSummary{
			ID:        red.Advantage.ID,
			Title:     red.Advantage.Title,
			CostCoins: red.Advantage.CostCoins,
		}
		detail.Company = &dto.CompanySummary{
			ID:   red.Advantage.CompanyID,
			Name: red.Advantage.CompanyName,
		}
	}
	return detail
}
