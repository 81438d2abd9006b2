package errors

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

var (
	// ErrUserNotFound is returned when a user cannot be resolved.
	ErrUserNotFound = errors.New("user not found")
	// ErrNameTaken is returned when registering an already used name.
	ErrNameTaken = errors.New("this username is already taken")
	// ErrInvalidCredentials is returned on any login failure. It deliberately
	// does not distinguish a missing user from a wrong password.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrPrizeNotFound is returned when a prize id is unknown.
	ErrPrizeNotFound = errors.New("prize not found")
	// ErrInsufficientBalance is returned when a debit exceeds the balance.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrAlreadyDrawn is returned when a prize already has a winner.
	ErrAlreadyDrawn = errors.New("winner already drawn for this prize")
	// ErrNoTicketsSold is returned when drawing a prize with no tickets.
	ErrNoTicketsSold = errors.New("no tickets sold for this prize")
	// ErrWinnerAccountMissing is returned when the selected ticket's owner
	// no longer resolves to a user.
	ErrWinnerAccountMissing = errors.New("winning user's account could not be found")
	// ErrInvalidQuantity is returned for a non-positive ticket quantity.
	ErrInvalidQuantity = errors.New("invalid ticket quantity")
	// ErrInvalidAmount is returned for a negative credit amount.
	ErrInvalidAmount = errors.New("invalid amount")
)

// InsufficientStockError reports a purchase that would exceed a prize's
// ticket cap, carrying the exact remaining count.
type InsufficientStockError struct {
	Requested int
	Remaining int
}

func (e *InsufficientStockError) Error() string {
	unit := "tickets"
	if e.Remaining == 1 {
		unit = "ticket"
	}
	return fmt.Sprintf("cannot buy %d tickets, only %d %s remaining for this prize", e.Requested, e.Remaining, unit)
}

// FieldErrors is a validation error tagged by input field, so a UI can show
// per-field messages. All violations are collected before returning.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(e))
	for _, f := range fields {
		parts = append(parts, f+": "+e[f])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Code   string            `json:"code"`
	Fields map[string]string `json:"fields,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
	Fields     map[string]string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error:  e.Message,
		Code:   e.Code,
		Fields: e.Fields,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	var fieldErrs FieldErrors
	if errors.As(err, &fieldErrs) {
		httpErr := NewHTTPError(http.StatusBadRequest, fieldErrs.Error(), "VALIDATION_FAILED")
		httpErr.Fields = fieldErrs
		return httpErr
	}
	var stockErr *InsufficientStockError
	if errors.As(err, &stockErr) {
		return NewHTTPError(http.StatusConflict, stockErr.Error(), "INSUFFICIENT_STOCK")
	}

	switch {
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrNameTaken):
		return NewHTTPError(http.StatusConflict, err.Error(), "NAME_TAKEN")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrPrizeNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "PRIZE_NOT_FOUND")
	case errors.Is(err, ErrInsufficientBalance):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INSUFFICIENT_BALANCE")
	case errors.Is(err, ErrAlreadyDrawn):
		return NewHTTPError(http.StatusConflict, err.Error(), "ALREADY_DRAWN")
	case errors.Is(err, ErrNoTicketsSold):
		return NewHTTPError(http.StatusConflict, err.Error(), "NO_TICKETS_SOLD")
	case errors.Is(err, ErrWinnerAccountMissing):
		return NewHTTPError(http.StatusConflict, err.Error(), "WINNER_ACCOUNT_MISSING")
	case errors.Is(err, ErrInvalidQuantity):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_QUANTITY")
	case errors.Is(err, ErrInvalidAmount):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_AMOUNT")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
