package services

import (
	"context"
	"errors"
	"time"

	"github.com/meritoapp/merito/internal/app/models"
	"github.com/meritoapp/merito/internal/app/models/dto"
	"github.com/meritoapp/merito/internal/pkg/apperrors"
	"github.com/meritoapp/merito/internal/pkg/coupon"
	"github.com/meritoapp/merito/internal/pkg/email"
	"github.com/meritoapp/merito/internal/pkg/logger"
)

// couponRetries is how many fresh codes are tried when an insert hits a
// coupon code collision.
const couponRetries = 3

// RedemptionService defines the interface for redemption operations
type RedemptionService interface {
	RedeemAdvantage(ctx context.Context, studentUserID, advantageID int64) (*models.Redemption, *models.Transaction, error)
	GetMyRedemptions(ctx context.Context, studentUserID int64) ([]dto.RedemptionDetail, error)
	UpdateRedemptionStatus(ctx context.Context, companyUserID, redemptionID int64, status models.RedemptionStatus) (*models.Redemption, error)
}

type redemptionServiceImpl struct {
	students    StudentStore
	companies   CompanyStore
	advantages  AdvantageStore
	redemptions RedemptionStore
	mailer      email.Mailer
}

// NewRedemptionService creates a new redemption service instance
func NewRedemptionService(students StudentStore, companies CompanyStore, advantages AdvantageStore, redemptions RedemptionStore, mailer email.Mailer) RedemptionService {
	return &redemptionServiceImpl{
		students:    students,
		companies:   companies,
		advantages:  advantages,
		redemptions: redemptions,
		mailer:      mailer,
	}
}

// RedeemAdvantage exchanges coins for a coupon. The debit and the coupon row
// are created in one database transaction; the balance and duplicate checks
// are re-run under a row lock inside it. Coupon code collisions are retried
// with fresh codes.
func (s *redemptionServiceImpl) RedeemAdvantage(ctx context.Context, studentUserID, advantageID int64) (*models.Redemption, *models.Transaction, error) {
	student, err := s.students.GetByUserID(ctx, studentUserID)
	if err != nil {
		return nil, nil, err
	}

	adv, err := s.advantages.GetByID(ctx, advantageID)
	if err != nil {
		return nil, nil, err
	}
	if !adv.IsActive {
		return nil, nil, apperrors.ErrAdvantageInactive
	}

	company, err := s.companies.GetByID(ctx, adv.CompanyID)
	if err != nil {
		return nil, nil, err
	}
	if !company.IsActive {
		return nil, nil, apperrors.ErrAdvantageInactive
	}

	// Friendly pre-check; the authoritative check runs inside the redeem
	// transaction.
	pending, err := s.redemptions.HasPending(ctx, student.ID, adv.ID)
	if err != nil {
		return nil, nil, err
	}
	if pending {
		return nil, nil, apperrors.ErrDuplicateRedemption
	}

	var redemption *models.Redemption
	var txn *models.Transaction
	for attempt := 0; attempt < couponRetries; attempt++ {
		code, err := coupon.Generate()
		if err != nil {
			return nil, nil, err
		}

		redemption, txn, err = s.redemptions.Redeem(ctx, studentUserID, student.ID, company.UserID, adv, code)
		if err == nil {
			break
		}
		if errors.Is(err, apperrors.ErrCouponCodeCollision) {
			logger.Warn().Str("code", code).Int("attempt", attempt+1).Msg("Coupon code collision, retrying")
			continue
		}
		return nil, nil, err
	}
	if redemption == nil {
		return nil, nil, apperrors.ErrCouponCodeCollision
	}

	logger.Info().
		Int64("redemptionID", redemption.ID).
		Int64("studentID", student.ID).
		Int64("advantageID", adv.ID).
		Str("code", redemption.Code).
		Msg("Advantage redeemed")

	s.notifyRedemption(student, company, adv, redemption)
	return redemption, txn, nil
}

// notifyRedemption mails the coupon to the student and the company contact.
// Failures are logged and never surface to the caller.
func (s *redemptionServiceImpl) notifyRedemption(student *models.Student, company *models.Company, adv *models.Advantage, red *models.Redemption) {
	data := email.CouponEmailData{
		RedemptionCode: red.Code,
		AdvantageTitle: adv.Title,
		CompanyName:    company.Name,
		CostCoins:      adv.CostCoins,
		StudentName:    student.Name,
		CreatedAt:      red.CreatedAt,
	}

	if student.User != nil {
		subject := email.CouponSubject(true)
		if err := s.mailer.Send(student.User.Email, subject, email.CouponText(data, true), email.CouponHTML(data, true)); err != nil {
			logger.Warn().Err(err).Str("to", student.User.Email).Msg("Failed to send coupon to student")
		}
	}

	companyEmail := ""
	if company.Email != nil && *company.Email != "" {
		companyEmail = *company.Email
	} else if company.User != nil {
		companyEmail = company.User.Email
	}
	if companyEmail != "" {
		subject := email.CouponSubject(false)
		if err := s.mailer.Send(companyEmail, subject, email.CouponText(data, false), email.CouponHTML(data, false)); err != nil {
			logger.Warn().Err(err).Str("to", companyEmail).Msg("Failed to send coupon to company")
		}
	}
}

// GetMyRedemptions lists the caller's redemption history
func (s *redemptionServiceImpl) GetMyRedemptions(ctx context.Context, studentUserID int64) ([]dto.RedemptionDetail, error) {
	student, err := s.students.GetByUserID(ctx, studentUserID)
	if err != nil {
		return nil, err
	}

	redemptions, err := s.redemptions.ListByStudentID(ctx, student.ID)
	if err != nil {
		return nil, err
	}

	details := make([]dto.RedemptionDetail, 0, len(redemptions))
	for _, red := range redemptions {
		details = append(details, redemptionDetail(red))
	}
	return details, nil
}

// UpdateRedemptionStatus settles a pending coupon. Only the company that owns
// the redeemed advantage may settle it, and settled coupons are immutable.
func (s *redemptionServiceImpl) UpdateRedemptionStatus(ctx context.Context, companyUserID, redemptionID int64, status models.RedemptionStatus) (*models.Redemption, error) {
	if !status.Valid() || status == models.RedemptionPending {
		return nil, apperrors.NewValidationError("status must be completed or cancelled")
	}

	company, err := s.companies.GetByUserID(ctx, companyUserID)
	if err != nil {
		return nil, err
	}

	red, err := s.redemptions.GetByID(ctx, redemptionID)
	if err != nil {
		return nil, err
	}
	if red.Advantage == nil || red.Advantage.CompanyID != company.ID {
		return nil, apperrors.NewForbiddenError("redemption belongs to another company")
	}
	if red.Status != models.RedemptionPending {
		return nil, apperrors.NewValidationError("redemption is already settled")
	}

	if err := s.redemptions.UpdateStatus(ctx, redemptionID, status); err != nil {
		return nil, err
	}

	logger.Info().
		Int64("redemptionID", redemptionID).
		Str("status", string(status)).
		Time("at", time.Now()).
		Msg("Redemption settled")
	return s.redemptions.GetByID(ctx, redemptionID)
}
