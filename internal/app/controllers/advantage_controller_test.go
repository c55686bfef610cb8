package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/meritoapp/merito/internal/app/models"
	"github.com/meritoapp/merito/internal/app/models/dto"
	"github.com/meritoapp/merito/internal/middleware"
	"github.com/meritoapp/merito/internal/pkg/apperrors"
)

// stubAdvantageService returns canned values; only the methods a test case
// exercises need to be configured.
type stubAdvantageService struct {
	advantage  *models.Advantage
	advantages []*models.Advantage
	err        error
}

func (s *stubAdvantageService) CreateAdvantage(context.Context, int64, *dto.CreateAdvantageRequest) (*models.Advantage, error) {
	return s.advantage, s.err
}

func (s *stubAdvantageService) GetAdvantageByID(context.Context, int64) (*models.Advantage, error) {
	return s.advantage, s.err
}

func (s *stubAdvantageService) GetActiveAdvantages(context.Context) ([]*models.Advantage, error) {
	return s.advantages, s.err
}

func (s *stubAdvantageService) GetMyAdvantages(context.Context, int64) ([]*models.Advantage, error) {
	return s.advantages, s.err
}

func (s *stubAdvantageService) UpdateAdvantage(context.Context, int64, int64, *dto.UpdateAdvantageRequest) (*models.Advantage, error) {
	return s.advantage, s.err
}

func (s *stubAdvantageService) SetAdvantageActive(context.Context, int64, int64, bool) error {
	return s.err
}

func (s *stubAdvantageService) DeleteAdvantage(context.Context, int64, int64) error {
	return s.err
}

func (s *stubAdvantageService) CreateAdvantageDemo(context.Context, *dto.CreateAdvantageDemoRequest) (*models.Advantage, error) {
	return s.advantage, s.err
}

func (s *stubAdvantageService) UpdateAdvantageDemo(context.Context, int64, *dto.UpdateAdvantageRequest) (*models.Advantage, error) {
	return s.advantage, s.err
}

func (s *stubAdvantageService) SetAdvantageActiveDemo(context.Context, int64, bool) error {
	return s.err
}

func (s *stubAdvantageService) DeleteAdvantageDemo(context.Context, int64) error {
	return s.err
}

type stubRedemptionService struct {
	redemption *models.Redemption
	txn        *models.Transaction
	details    []dto.RedemptionDetail
	err        error
}

func (s *stubRedemptionService) RedeemAdvantage(context.Context, int64, int64) (*models.Redemption, *models.Transaction, error) {
	return s.redemption, s.txn, s.err
}

func (s *stubRedemptionService) GetMyRedemptions(context.Context, int64) ([]dto.RedemptionDetail, error) {
	return s.details, s.err
}

func (s *stubRedemptionService) UpdateRedemptionStatus(context.Context, int64, int64, models.RedemptionStatus) (*models.Redemption, error) {
	return s.redemption, s.err
}

// asUser injects the identity the auth middleware would have set.
func asUser(userID int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserID, userID)
		c.Next()
	}
}

func advantageTestRouter(adv *stubAdvantageService, red *stubRedemptionService, userID int64) *gin.Engine {
	gin.SetMode(gin.TestMode)
	ctrl := NewAdvantageController(adv, red)

	router := gin.New()
	group := router.Group("/")
	if userID > 0 {
		group.Use(asUser(userID))
	}
	group.GET("/advantages", ctrl.GetActiveAdvantages)
	group.GET("/advantages/:id", ctrl.GetAdvantageByID)
	group.POST("/advantages", ctrl.CreateAdvantage)
	group.PATCH("/advantages/demo/:id/toggle-active", ctrl.ToggleAdvantageActiveDemo)
	group.POST("/advantages/:id/redeem", ctrl.RedeemAdvantage)
	group.PUT("/redemptions/:id/status", ctrl.UpdateRedemptionStatus)
	return router
}

func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAdvantageController_GetActiveAdvantages(t *testing.T) {
	adv := &stubAdvantageService{advantages: []*models.Advantage{
		{ID: 1, Title: "Free espresso", CostCoins: 30, IsActive: true},
	}}
	router := advantageTestRouter(adv, &stubRedemptionService{}, 0)

	rec := doJSON(router, http.MethodGet, "/advantages", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":true`)
	assert.Contains(t, rec.Body.String(), "Free espresso")
}

func TestAdvantageController_GetAdvantageByID_BadParam(t *testing.T) {
	router := advantageTestRouter(&stubAdvantageService{}, &stubRedemptionService{}, 0)

	rec := doJSON(router, http.MethodGet, "/advantages/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VAL_001")
}

func TestAdvantageController_GetAdvantageByID_NotFound(t *testing.T) {
	router := advantageTestRouter(&stubAdvantageService{err: apperrors.ErrAdvantageNotFound}, &stubRedemptionService{}, 0)

	rec := doJSON(router, http.MethodGet, "/advantages/99", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "RES_001")
}

func TestAdvantageController_CreateAdvantage_RequiresAuth(t *testing.T) {
	router := advantageTestRouter(&stubAdvantageService{}, &stubRedemptionService{}, 0)

	rec := doJSON(router, http.MethodPost, "/advantages", `{"title":"t","description":"d","costCoins":10}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdvantageController_CreateAdvantage(t *testing.T) {
	adv := &stubAdvantageService{advantage: &models.Advantage{ID: 1, Title: "Free espresso", CostCoins: 30}}
	router := advantageTestRouter(adv, &stubRedemptionService{}, 7)

	rec := doJSON(router, http.MethodPost, "/advantages", `{"title":"Free espresso","description":"d","costCoins":30}`)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(router, http.MethodPost, "/advantages", `{"description":"missing title"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdvantageController_RedeemAdvantage(t *testing.T) {
	reason := "Redemption: Free espresso"
	from := int64(2)
	red := &stubRedemptionService{
		redemption: &models.Redemption{
			ID: 5, StudentID: 1, AdvantageID: 4, Code: "RDM-SF3K2A-7Q1Z",
			Status: models.RedemptionPending, CreatedAt: time.Now(),
		},
		txn: &models.Transaction{
			ID: 9, FromUserID: &from, ToUserID: 7, Amount: 30, Reason: &reason,
			Kind: models.TransactionRedemption, CreatedAt: time.Now(),
		},
	}
	router := advantageTestRouter(&stubAdvantageService{}, red, 2)

	rec := doJSON(router, http.MethodPost, "/advantages/4/redeem", "")
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "RDM-SF3K2A-7Q1Z")
	assert.Contains(t, rec.Body.String(), `"status":"pending"`)
}

func TestAdvantageController_RedeemAdvantage_InsufficientBalance(t *testing.T) {
	red := &stubRedemptionService{err: apperrors.ErrInsufficientBalance}
	router := advantageTestRouter(&stubAdvantageService{}, red, 2)

	rec := doJSON(router, http.MethodPost, "/advantages/4/redeem", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "LED_001")
}

func TestAdvantageController_ToggleAdvantageActiveDemo(t *testing.T) {
	adv := &stubAdvantageService{advantage: &models.Advantage{ID: 1, Title: "Free espresso", IsActive: true}}
	router := advantageTestRouter(adv, &stubRedemptionService{}, 0)

	rec := doJSON(router, http.MethodPatch, "/advantages/demo/1/toggle-active", "")
	assert.Equal(t, http.StatusOK, rec.Code, "no authentication required")
	assert.Contains(t, rec.Body.String(), `"isActive":false`)
}

func TestAdvantageController_ToggleAdvantageActiveDemo_NotFound(t *testing.T) {
	router := advantageTestRouter(&stubAdvantageService{err: apperrors.ErrAdvantageNotFound}, &stubRedemptionService{}, 0)

	rec := doJSON(router, http.MethodPatch, "/advantages/demo/99/toggle-active", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdvantageController_UpdateRedemptionStatus_Validation(t *testing.T) {
	router := advantageTestRouter(&stubAdvantageService{}, &stubRedemptionService{}, 7)

	rec := doJSON(router, http.MethodPut, "/redemptions/5/status", `{"status":"pending"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "binding allows only completed or cancelled")
}
