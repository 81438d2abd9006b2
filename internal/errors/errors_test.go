package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	testCases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"name taken", ErrNameTaken, http.StatusConflict, "NAME_TAKEN"},
		{"invalid credentials", ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{"user not found", ErrUserNotFound, http.StatusNotFound, "USER_NOT_FOUND"},
		{"prize not found", ErrPrizeNotFound, http.StatusNotFound, "PRIZE_NOT_FOUND"},
		{"insufficient balance", ErrInsufficientBalance, http.StatusBadRequest, "INSUFFICIENT_BALANCE"},
		{"already drawn", ErrAlreadyDrawn, http.StatusConflict, "ALREADY_DRAWN"},
		{"no tickets sold", ErrNoTicketsSold, http.StatusConflict, "NO_TICKETS_SOLD"},
		{"winner account missing", ErrWinnerAccountMissing, http.StatusConflict, "WINNER_ACCOUNT_MISSING"},
		{"invalid quantity", ErrInvalidQuantity, http.StatusBadRequest, "INVALID_QUANTITY"},
		{"invalid amount", ErrInvalidAmount, http.StatusBadRequest, "INVALID_AMOUNT"},
		{"wrapped sentinel", fmt.Errorf("buy tickets: %w", ErrInsufficientBalance), http.StatusBadRequest, "INSUFFICIENT_BALANCE"},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tc.err)
			assert.Equal(t, tc.wantStatus, httpErr.StatusCode)
			assert.Equal(t, tc.wantCode, httpErr.Code)
		})
	}
}

func TestMapErrorToHTTP_FieldErrors(t *testing.T) {
	err := FieldErrors{
		"name":     "Prize name cannot be empty.",
		"password": "Password must be at least 4 characters long.",
	}

	httpErr := MapErrorToHTTP(err)
	assert.Equal(t, http.StatusBadRequest, httpErr.StatusCode)
	assert.Equal(t, "VALIDATION_FAILED", httpErr.Code)
	assert.Equal(t, map[string]string(err), httpErr.Fields)

	resp := httpErr.ToErrorResponse()
	assert.Equal(t, "VALIDATION_FAILED", resp.Code)
	assert.Len(t, resp.Fields, 2)
}

func TestMapErrorToHTTP_InsufficientStock(t *testing.T) {
	stockErr := &InsufficientStockError{Requested: 3, Remaining: 1}

	httpErr := MapErrorToHTTP(fmt.Errorf("buy tickets: %w", stockErr))
	assert.Equal(t, http.StatusConflict, httpErr.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", httpErr.Code)
	assert.Equal(t, "cannot buy 3 tickets, only 1 ticket remaining for this prize", httpErr.Message)
}

func TestFieldErrors_ErrorIsStableAndSorted(t *testing.T) {
	err := FieldErrors{
		"password": "too short",
		"name":     "too short",
	}
	assert.Equal(t, "validation failed: name: too short; password: too short", err.Error())
}
