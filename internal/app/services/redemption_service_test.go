package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meritoapp/merito/internal/app/models"
	"github.com/meritoapp/merito/internal/pkg/apperrors"
)

type redemptionFixture struct {
	students    *fakeStudentStore
	companies   *fakeCompanyStore
	advantages  *fakeAdvantageStore
	redemptions *fakeRedemptionStore
	ledger      *fakeLedger
	mailer      *fakeMailer
	svc         RedemptionService
}

// newRedemptionFixture wires a student (user 2, balance given), an active
// company (user 7) and an active 30-coin advantage.
func newRedemptionFixture(studentBalance int64) *redemptionFixture {
	studentUser := &models.User{ID: 2, Email: "ana@uni.edu", Role: models.RoleStudent, IsActive: true}
	companyUser := &models.User{ID: 7, Email: "owner@coffee.com", Role: models.RoleCompany, IsActive: true}

	f := &redemptionFixture{
		students: newFakeStudentStore(&models.Student{ID: 1, UserID: 2, Name: "Ana", User: studentUser}),
		companies: newFakeCompanyStore(&models.Company{
			ID: 3, UserID: 7, Name: "Campus Coffee", IsActive: true, User: companyUser,
		}),
		advantages: newFakeAdvantageStore(&models.Advantage{
			ID: 4, CompanyID: 3, Title: "Free espresso", Description: "One free espresso",
			CostCoins: 30, IsActive: true, CompanyName: "Campus Coffee",
		}),
		ledger: newFakeLedger(map[int64]int64{2: studentBalance}),
		mailer: &fakeMailer{},
	}
	f.redemptions = newFakeRedemptionStore(f.ledger)
	f.svc = NewRedemptionService(f.students, f.companies, f.advantages, f.redemptions, f.mailer)
	return f
}

func TestRedemptionService_RedeemAdvantage_Success(t *testing.T) {
	f := newRedemptionFixture(100)

	red, txn, err := f.svc.RedeemAdvantage(context.Background(), 2, 4)
	require.NoError(t, err)
	require.NotNil(t, red)
	require.NotNil(t, txn)

	assert.Equal(t, int64(1), red.StudentID)
	assert.Equal(t, int64(4), red.AdvantageID)
	assert.Equal(t, models.RedemptionPending, red.Status)
	assert.True(t, strings.HasPrefix(red.Code, "RDM-"), "coupon code %q", red.Code)

	assert.Equal(t, models.TransactionRedemption, txn.Kind)
	assert.Equal(t, int64(30), txn.Amount)
	require.NotNil(t, txn.FromUserID)
	assert.Equal(t, int64(2), *txn.FromUserID)
	assert.Equal(t, int64(7), txn.ToUserID, "debit goes to the company account")

	assert.Equal(t, int64(70), f.ledger.balances[2])
	assert.Equal(t, int64(30), f.ledger.balances[7])

	require.Len(t, f.mailer.sent, 2, "coupon is mailed to student and company")
	assert.Equal(t, "ana@uni.edu", f.mailer.sent[0].To)
	assert.Equal(t, "owner@coffee.com", f.mailer.sent[1].To)
}

func TestRedemptionService_RedeemAdvantage_PrefersCompanyContactEmail(t *testing.T) {
	f := newRedemptionFixture(100)
	f.companies.companies[3].Email = strPtr("contact@coffee.com")

	_, _, err := f.svc.RedeemAdvantage(context.Background(), 2, 4)
	require.NoError(t, err)
	require.Len(t, f.mailer.sent, 2)
	assert.Equal(t, "contact@coffee.com", f.mailer.sent[1].To)
}

func TestRedemptionService_RedeemAdvantage_MailFailureDoesNotFail(t *testing.T) {
	f := newRedemptionFixture(100)
	f.mailer.err = assert.AnError

	red, _, err := f.svc.RedeemAdvantage(context.Background(), 2, 4)
	require.NoError(t, err)
	assert.NotNil(t, red)
}

func TestRedemptionService_RedeemAdvantage_InsufficientBalance(t *testing.T) {
	f := newRedemptionFixture(10)

	_, _, err := f.svc.RedeemAdvantage(context.Background(), 2, 4)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientBalance)
	assert.Empty(t, f.ledger.transactions)
	assert.Empty(t, f.mailer.sent)
}

func TestRedemptionService_RedeemAdvantage_InactiveAdvantage(t *testing.T) {
	f := newRedemptionFixture(100)
	f.advantages.advantages[4].IsActive = false

	_, _, err := f.svc.RedeemAdvantage(context.Background(), 2, 4)
	assert.ErrorIs(t, err, apperrors.ErrAdvantageInactive)
}

func TestRedemptionService_RedeemAdvantage_InactiveCompany(t *testing.T) {
	f := newRedemptionFixture(100)
	f.companies.companies[3].IsActive = false

	_, _, err := f.svc.RedeemAdvantage(context.Background(), 2, 4)
	assert.ErrorIs(t, err, apperrors.ErrAdvantageInactive)
}

func TestRedemptionService_RedeemAdvantage_DuplicatePending(t *testing.T) {
	f := newRedemptionFixture(100)

	_, _, err := f.svc.RedeemAdvantage(context.Background(), 2, 4)
	require.NoError(t, err)

	_, _, err = f.svc.RedeemAdvantage(context.Background(), 2, 4)
	assert.ErrorIs(t, err, apperrors.ErrDuplicateRedemption)
	assert.Len(t, f.ledger.transactions, 1, "second attempt must not debit again")
}

func TestRedemptionService_RedeemAdvantage_RedeemableAgainAfterSettlement(t *testing.T) {
	f := newRedemptionFixture(100)

	red, _, err := f.svc.RedeemAdvantage(context.Background(), 2, 4)
	require.NoError(t, err)

	_, err = f.svc.UpdateRedemptionStatus(context.Background(), 7, red.ID, models.RedemptionCompleted)
	require.NoError(t, err)

	_, _, err = f.svc.RedeemAdvantage(context.Background(), 2, 4)
	require.NoError(t, err, "only pending redemptions block a repeat")
	assert.Equal(t, int64(40), f.ledger.balances[2])
}

func TestRedemptionService_RedeemAdvantage_RetriesCouponCollision(t *testing.T) {
	f := newRedemptionFixture(100)
	f.redemptions.redeemErrs = []error{apperrors.ErrCouponCodeCollision, apperrors.ErrCouponCodeCollision}

	red, _, err := f.svc.RedeemAdvantage(context.Background(), 2, 4)
	require.NoError(t, err, "two collisions still leave one retry")
	assert.NotNil(t, red)
}

func TestRedemptionService_RedeemAdvantage_GivesUpAfterRepeatedCollisions(t *testing.T) {
	f := newRedemptionFixture(100)
	f.redemptions.redeemErrs = []error{
		apperrors.ErrCouponCodeCollision,
		apperrors.ErrCouponCodeCollision,
		apperrors.ErrCouponCodeCollision,
	}

	_, _, err := f.svc.RedeemAdvantage(context.Background(), 2, 4)
	assert.ErrorIs(t, err, apperrors.ErrCouponCodeCollision)
	assert.Empty(t, f.ledger.transactions)
}

func TestRedemptionService_GetMyRedemptions(t *testing.T) {
	f := newRedemptionFixture(100)

	red, _, err := f.svc.RedeemAdvantage(context.Background(), 2, 4)
	require.NoError(t, err)

	details, err := f.svc.GetMyRedemptions(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, red.Code, details[0].Code)
	assert.Equal(t, "pending", details[0].Status)
	require.NotNil(t, details[0].Advantage)
	assert.Equal(t, "Free espresso", details[0].Advantage.Title)
	require.NotNil(t, details[0].Company)
	assert.Equal(t, "Campus Coffee", details[0].Company.Name)
}

func TestRedemptionService_UpdateRedemptionStatus(t *testing.T) {
	f := newRedemptionFixture(100)

	red, _, err := f.svc.RedeemAdvantage(context.Background(), 2, 4)
	require.NoError(t, err)

	updated, err := f.svc.UpdateRedemptionStatus(context.Background(), 7, red.ID, models.RedemptionCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.RedemptionCompleted, updated.Status)

	// Settled coupons are immutable.
	_, err = f.svc.UpdateRedemptionStatus(context.Background(), 7, red.ID, models.RedemptionCancelled)
	assert.Error(t, err)
}

func TestRedemptionService_UpdateRedemptionStatus_Validation(t *testing.T) {
	f := newRedemptionFixture(100)

	_, err := f.svc.UpdateRedemptionStatus(context.Background(), 7, 1, models.RedemptionPending)
	assert.Error(t, err, "cannot move a redemption back to pending")

	_, err = f.svc.UpdateRedemptionStatus(context.Background(), 7, 1, models.RedemptionStatus("done"))
	assert.Error(t, err, "unknown status rejected")
}

func TestRedemptionService_UpdateRedemptionStatus_WrongCompany(t *testing.T) {
	f := newRedemptionFixture(100)
	otherUser := &models.User{ID: 9, Email: "other@shop.com", Role: models.RoleCompany, IsActive: true}
	f.companies.companies[5] = &models.Company{ID: 5, UserID: 9, Name: "Other Shop", IsActive: true, User: otherUser}

	red, _, err := f.svc.RedeemAdvantage(context.Background(), 2, 4)
	require.NoError(t, err)

	_, err = f.svc.UpdateRedemptionStatus(context.Background(), 9, red.ID, models.RedemptionCompleted)
	assert.Error(t, err)

	current, getErr := f.redemptions.GetByID(context.Background(), red.ID)
	require.NoError(t, getErr)
	assert.Equal(t, models.RedemptionPending, current.Status, "status unchanged for foreign company")
}
