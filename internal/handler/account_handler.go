package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"tombola/internal/errors"
	"tombola/internal/model"
	"tombola/internal/service"
)

// AccountHandler handles balance and dashboard endpoints.
type AccountHandler struct {
	accountService service.AccountService
	ledger         service.LedgerService
}

// NewAccountHandler creates a new account handler.
func NewAccountHandler(accountService service.AccountService, ledger service.LedgerService) *AccountHandler {
	return &AccountHandler{accountService: accountService, ledger: ledger}
}

// BalanceResponse represents a balance response.
type BalanceResponse struct {
	UserID  string `json:"user_id"`
	Balance string `json:"balance"`
}

// TopUpRequest represents a balance top-up.
type TopUpRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// DashboardResponse bundles everything the user dashboard shows.
type DashboardResponse struct {
	Tickets   []model.Ticket `json:"tickets"`
	PrizesWon []model.Prize  `json:"prizes_won"`
}

// GetBalance godoc
// @Summary Get the current user's balance
// @Tags account
// @Produce json
// @Security BearerAuth
// @Success 200 {object} BalanceResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /account/balance [get]
func (h *AccountHandler) GetBalance(c echo.Context) error {
	claims, err := sessionClaims(c)
	if err != nil {
		return err
	}

	balance, err := h.accountService.Balance(c.Request().Context(), claims.UserID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, BalanceResponse{
		UserID:  claims.UserID,
		Balance: balance.String(),
	})
}

// TopUp godoc
// @Summary Credit the current user's balance
// @Tags account
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body TopUpRequest true "Amount"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /account/topup [post]
func (h *AccountHandler) TopUp(c echo.Context) error {
	claims, err := sessionClaims(c)
	if err != nil {
		return err
	}

	var req TopUpRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	user, err := h.accountService.Credit(c.Request().Context(), claims.UserID, req.Amount)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, user)
}

// Dashboard godoc
// @Summary Get the current user's tickets and won prizes
// @Tags account
// @Produce json
// @Security BearerAuth
// @Success 200 {object} DashboardResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /dashboard [get]
func (h *AccountHandler) Dashboard(c echo.Context) error {
	claims, err := sessionClaims(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	tickets, err := h.ledger.TicketsFor(ctx, claims.UserID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	won, err := h.ledger.PrizesWonBy(ctx, claims.UserID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, DashboardResponse{
		Tickets:   tickets,
		PrizesWon: won,
	})
}
