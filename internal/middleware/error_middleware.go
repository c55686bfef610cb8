package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/meritoapp/merito/internal/app/models/dto"
	"github.com/meritoapp/merito/internal/pkg/apperrors"
)

// HandleAPIError maps service errors onto HTTP responses. Controllers call it
// for every error path so the status mapping lives in one place.
func HandleAPIError(c *gin.Context, err error) {
	var custom *apperrors.CustomError
	message := ""
	if errors.As(err, &custom) {
		message = custom.Message
	}

	respond := func(status int, code dto.ErrorCode, fallback string) {
		if message == "" {
			message = fallback
		}
		c.JSON(status, dto.NewErrorResponse(dto.NewErrorDetail(code, message)))
	}

	switch {
	// Validation and ledger business rules
	case errors.Is(err, apperrors.ErrValidationFailed):
		respond(http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed")
	case errors.Is(err, apperrors.ErrInsufficientBalance):
		respond(http.StatusBadRequest, dto.ErrorCodeInsufficientBalance, "Insufficient coin balance")
	case errors.Is(err, apperrors.ErrDuplicateRedemption):
		respond(http.StatusBadRequest, dto.ErrorCodeDuplicateRedemption, "Advantage already redeemed")
	case errors.Is(err, apperrors.ErrAdvantageInactive):
		respond(http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Advantage is not available")

	// Authentication
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respond(http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials")
	case errors.Is(err, apperrors.ErrTokenExpired):
		respond(http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired")
	case errors.Is(err, apperrors.ErrTokenInvalid):
		respond(http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token")
	case errors.Is(err, apperrors.ErrTokenNotFound):
		respond(http.StatusUnauthorized, dto.ErrorCodeTokenNotFound, "Token not found")
	case errors.Is(err, apperrors.ErrAccountDisabled):
		respond(http.StatusForbidden, dto.ErrorCodeAccountDisabled, "Account is disabled")

	// Authorization
	case errors.Is(err, apperrors.ErrPermissionDenied):
		respond(http.StatusForbidden, dto.ErrorCodeForbidden, "Permission denied")

	// Missing resources
	case errors.Is(err, apperrors.ErrStudentNotFound),
		errors.Is(err, apperrors.ErrProfessorNotFound),
		errors.Is(err, apperrors.ErrCompanyNotFound),
		errors.Is(err, apperrors.ErrInstitutionNotFound),
		errors.Is(err, apperrors.ErrAdvantageNotFound),
		errors.Is(err, apperrors.ErrRedemptionNotFound),
		errors.Is(err, apperrors.ErrTransactionNotFound),
		errors.Is(err, apperrors.ErrUserNotFound),
		errors.Is(err, apperrors.ErrResourceNotFound):
		respond(http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found")

	// Uniqueness conflicts
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		respond(http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Email already registered")
	case errors.Is(err, apperrors.ErrCPFAlreadyExists):
		respond(http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "CPF already registered")
	case errors.Is(err, apperrors.ErrCNPJAlreadyExists):
		respond(http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "CNPJ already registered")
	case errors.Is(err, apperrors.ErrUserHasLedgerHistory):
		respond(http.StatusConflict, dto.ErrorCodeLedgerHistoryExists, "User has transaction history and cannot be deleted")

	default:
		message = ""
		respond(http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error")
	}
}
