package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meritoapp/merito/internal/app/models"
	"github.com/meritoapp/merito/internal/app/models/dto"
	"github.com/meritoapp/merito/internal/pkg/apperrors"
)

func int64Ptr(v int64) *int64 { return &v }

func newAdvantageTestService() (AdvantageService, *fakeAdvantageStore, *fakeCompanyStore) {
	companies := newFakeCompanyStore(
		&models.Company{ID: 3, UserID: 7, Name: "Campus Coffee", IsActive: true},
		&models.Company{ID: 5, UserID: 9, Name: "Book Nook", IsActive: true},
	)
	advantages := newFakeAdvantageStore()
	return NewAdvantageService(advantages, companies), advantages, companies
}

func TestAdvantageService_CreateAdvantage(t *testing.T) {
	svc, _, _ := newAdvantageTestService()

	adv, err := svc.CreateAdvantage(context.Background(), 7, &dto.CreateAdvantageRequest{
		Title:       "  Free espresso ",
		Description: "One free espresso per visit",
		CostCoins:   30,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), adv.CompanyID)
	assert.Equal(t, "Free espresso", adv.Title, "title is trimmed")
	assert.Equal(t, "Campus Coffee", adv.CompanyName)
	assert.True(t, adv.IsActive, "new advantages start active")
}

func TestAdvantageService_CreateAdvantage_Validation(t *testing.T) {
	svc, _, _ := newAdvantageTestService()

	cases := []struct {
		name string
		req  dto.CreateAdvantageRequest
	}{
		{"empty title", dto.CreateAdvantageRequest{Title: " ", Description: "d", CostCoins: 10}},
		{"empty description", dto.CreateAdvantageRequest{Title: "t", Description: "", CostCoins: 10}},
		{"zero cost", dto.CreateAdvantageRequest{Title: "t", Description: "d", CostCoins: 0}},
		{"negative cost", dto.CreateAdvantageRequest{Title: "t", Description: "d", CostCoins: -5}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateAdvantage(context.Background(), 7, &tc.req)
			assert.Error(t, err)
		})
	}
}

func TestAdvantageService_GetActiveAdvantages(t *testing.T) {
	svc, advantages, _ := newAdvantageTestService()
	advantages.advantages[1] = &models.Advantage{ID: 1, CompanyID: 3, Title: "Active", IsActive: true}
	advantages.advantages[2] = &models.Advantage{ID: 2, CompanyID: 3, Title: "Hidden", IsActive: false}

	active, err := svc.GetActiveAdvantages(context.Background())
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Active", active[0].Title)
}

func TestAdvantageService_GetMyAdvantages_IncludesInactive(t *testing.T) {
	svc, advantages, _ := newAdvantageTestService()
	advantages.advantages[1] = &models.Advantage{ID: 1, CompanyID: 3, Title: "Mine", IsActive: true}
	advantages.advantages[2] = &models.Advantage{ID: 2, CompanyID: 3, Title: "Mine hidden", IsActive: false}
	advantages.advantages[3] = &models.Advantage{ID: 3, CompanyID: 5, Title: "Theirs", IsActive: true}

	mine, err := svc.GetMyAdvantages(context.Background(), 7)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}

func TestAdvantageService_UpdateAdvantage_PartialFields(t *testing.T) {
	svc, advantages, _ := newAdvantageTestService()
	advantages.advantages[1] = &models.Advantage{
		ID: 1, CompanyID: 3, Title: "Old title", Description: "Old description", CostCoins: 30, IsActive: true,
	}

	updated, err := svc.UpdateAdvantage(context.Background(), 7, 1, &dto.UpdateAdvantageRequest{
		CostCoins: int64Ptr(45),
	})
	require.NoError(t, err)
	assert.Equal(t, "Old title", updated.Title, "omitted fields stay untouched")
	assert.Equal(t, int64(45), updated.CostCoins)
}

func TestAdvantageService_UpdateAdvantage_RejectsEmptyTitle(t *testing.T) {
	svc, advantages, _ := newAdvantageTestService()
	advantages.advantages[1] = &models.Advantage{
		ID: 1, CompanyID: 3, Title: "Old title", Description: "d", CostCoins: 30, IsActive: true,
	}

	_, err := svc.UpdateAdvantage(context.Background(), 7, 1, &dto.UpdateAdvantageRequest{
		Title: strPtr("  "),
	})
	assert.Error(t, err)
	assert.Equal(t, "Old title", advantages.advantages[1].Title)
}

func TestAdvantageService_OwnershipChecks(t *testing.T) {
	svc, advantages, _ := newAdvantageTestService()
	advantages.advantages[1] = &models.Advantage{
		ID: 1, CompanyID: 3, Title: "Espresso", Description: "d", CostCoins: 30, IsActive: true,
	}

	// User 9 owns company 5, not company 3.
	_, err := svc.UpdateAdvantage(context.Background(), 9, 1, &dto.UpdateAdvantageRequest{CostCoins: int64Ptr(99)})
	assert.Error(t, err)

	err = svc.SetAdvantageActive(context.Background(), 9, 1, false)
	assert.Error(t, err)
	assert.True(t, advantages.advantages[1].IsActive)

	err = svc.DeleteAdvantage(context.Background(), 9, 1)
	assert.Error(t, err)
	assert.Contains(t, advantages.advantages, int64(1))

	// The owner can do all of it.
	require.NoError(t, svc.SetAdvantageActive(context.Background(), 7, 1, false))
	assert.False(t, advantages.advantages[1].IsActive)
	require.NoError(t, svc.DeleteAdvantage(context.Background(), 7, 1))
	assert.NotContains(t, advantages.advantages, int64(1))
}

func TestAdvantageService_ToggleTwiceRestoresListing(t *testing.T) {
	svc, advantages, _ := newAdvantageTestService()
	advantages.advantages[1] = &models.Advantage{
		ID: 1, CompanyID: 3, Title: "Espresso", Description: "d", CostCoins: 30, IsActive: true,
	}

	require.NoError(t, svc.SetAdvantageActive(context.Background(), 7, 1, false))
	active, err := svc.GetActiveAdvantages(context.Background())
	require.NoError(t, err)
	assert.Empty(t, active, "deactivated advantage leaves the catalog")

	require.NoError(t, svc.SetAdvantageActive(context.Background(), 7, 1, true))
	active, err = svc.GetActiveAdvantages(context.Background())
	require.NoError(t, err)
	assert.Len(t, active, 1, "toggling twice restores the original state")
}

func TestAdvantageService_CreateAdvantageDemo(t *testing.T) {
	svc, _, _ := newAdvantageTestService()

	adv, err := svc.CreateAdvantageDemo(context.Background(), &dto.CreateAdvantageDemoRequest{
		CreateAdvantageRequest: dto.CreateAdvantageRequest{
			Title: "Demo deal", Description: "d", CostCoins: 10,
		},
		CompanyID: int64Ptr(5),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), adv.CompanyID)
	assert.Equal(t, "Book Nook", adv.CompanyName)
}

func TestAdvantageService_CreateAdvantageDemo_FallsBackToFirstCompany(t *testing.T) {
	svc, _, _ := newAdvantageTestService()

	adv, err := svc.CreateAdvantageDemo(context.Background(), &dto.CreateAdvantageDemoRequest{
		CreateAdvantageRequest: dto.CreateAdvantageRequest{
			Title: "Demo deal", Description: "d", CostCoins: 10,
		},
	})
	require.NoError(t, err)
	assert.NotZero(t, adv.CompanyID)
}

func TestAdvantageService_SetAdvantageActiveDemo_SkipsOwnership(t *testing.T) {
	svc, advantages, _ := newAdvantageTestService()
	advantages.advantages[1] = &models.Advantage{
		ID: 1, CompanyID: 3, Title: "Espresso", Description: "d", CostCoins: 30, IsActive: true,
	}

	require.NoError(t, svc.SetAdvantageActiveDemo(context.Background(), 1, false))
	assert.False(t, advantages.advantages[1].IsActive)

	err := svc.SetAdvantageActiveDemo(context.Background(), 99, true)
	assert.ErrorIs(t, err, apperrors.ErrAdvantageNotFound)
}

func TestAdvantageService_CreateAdvantageDemo_NoCompanies(t *testing.T) {
	svc := NewAdvantageService(newFakeAdvantageStore(), newFakeCompanyStore())

	_, err := svc.CreateAdvantageDemo(context.Background(), &dto.CreateAdvantageDemoRequest{
		CreateAdvantageRequest: dto.CreateAdvantageRequest{
			Title: "Demo deal", Description: "d", CostCoins: 10,
		},
	})
	assert.ErrorIs(t, err, apperrors.ErrCompanyNotFound)
}
