package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meritoapp/merito/internal/app/models/dto"
	"github.com/meritoapp/merito/internal/pkg/apperrors"
)

func handleError(t *testing.T, err error) (int, *dto.ErrorResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	HandleAPIError(c, err)

	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.Error)
	assert.False(t, body.Success)
	return rec.Code, &body
}

func TestHandleAPIError_StatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   dto.ErrorCode
	}{
		{"insufficient balance", apperrors.ErrInsufficientBalance, http.StatusBadRequest, dto.ErrorCodeInsufficientBalance},
		{"duplicate redemption", apperrors.ErrDuplicateRedemption, http.StatusBadRequest, dto.ErrorCodeDuplicateRedemption},
		{"inactive advantage", apperrors.ErrAdvantageInactive, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{"invalid credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials},
		{"expired token", apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken},
		{"disabled account", apperrors.ErrAccountDisabled, http.StatusForbidden, dto.ErrorCodeAccountDisabled},
		{"student not found", apperrors.ErrStudentNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"advantage not found", apperrors.ErrAdvantageNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"email taken", apperrors.ErrEmailAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
		{"cpf taken", apperrors.ErrCPFAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
		{"ledger history blocks delete", apperrors.ErrUserHasLedgerHistory, http.StatusConflict, dto.ErrorCodeLedgerHistoryExists},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, dto.ErrorCodeInternalServer},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := handleError(t, tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.code, body.Error.Code)
		})
	}
}

func TestHandleAPIError_CustomMessage(t *testing.T) {
	status, body := handleError(t, apperrors.NewValidationError("amount must be greater than zero"))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "amount must be greater than zero", body.Error.Message)

	status, body = handleError(t, apperrors.NewForbiddenError("advantage belongs to another company"))
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "advantage belongs to another company", body.Error.Message)
}

func TestHandleAPIError_DefaultHidesInternalDetails(t *testing.T) {
	_, body := handleError(t, errors.New("pq: connection refused"))
	assert.Equal(t, "Internal server error", body.Error.Message)
}
