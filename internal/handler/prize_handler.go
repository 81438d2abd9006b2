package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"tombola/internal/errors"
	"tombola/internal/model"
	"tombola/internal/service"
)

// PrizeHandler handles the prize catalog, purchases and draws.
type PrizeHandler struct {
	ledger service.LedgerService
	// drawDelay is an optional cosmetic pause before the draw runs, so a
	// client can show a "drawing..." state. Zero disables it.
	drawDelay time.Duration
}

// NewPrizeHandler creates a new prize handler.
func NewPrizeHandler(ledger service.LedgerService, drawDelay time.Duration) *PrizeHandler {
	return &PrizeHandler{ledger: ledger, drawDelay: drawDelay}
}

// AddPrizeRequest represents the admin form for a new prize.
type AddPrizeRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	TicketPrice decimal.Decimal `json:"ticket_price"`
	MaxTickets  int             `json:"max_tickets"`
}

// BuyTicketsRequest represents a ticket purchase.
type BuyTicketsRequest struct {
	Quantity int `json:"quantity" validate:"required"`
}

// DrawResponse returns the updated prize and the winner snapshot.
type DrawResponse struct {
	Prize  *model.Prize      `json:"prize"`
	Winner *model.WinnerInfo `json:"winner"`
}

// ListPrizes godoc
// @Summary List the prize catalog with ticket tallies
// @Tags prizes
// @Produce json
// @Security BearerAuth
// @Success 200 {array} service.PrizeListing
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /prizes [get]
func (h *PrizeHandler) ListPrizes(c echo.Context) error {
	listings, err := h.ledger.ListPrizes(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, listings)
}

// AddPrize godoc
// @Summary Add a new prize (admin)
// @Tags prizes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AddPrizeRequest true "Prize data"
// @Success 201 {object} model.Prize
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /prizes [post]
func (h *PrizeHandler) AddPrize(c echo.Context) error {
	var req AddPrizeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	prize, err := h.ledger.AddPrize(c.Request().Context(), service.AddPrizeInput{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		TicketPrice: req.TicketPrice,
		MaxTickets:  req.MaxTickets,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, prize)
}

// UpdatePrize godoc
// @Summary Replace a prize wholesale (admin)
// @Tags prizes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Prize ID"
// @Param request body model.Prize true "Updated prize"
// @Success 200 {object} model.Prize
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /prizes/{id} [put]
func (h *PrizeHandler) UpdatePrize(c echo.Context) error {
	var prize model.Prize
	if err := c.Bind(&prize); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	prize.ID = c.Param("id")

	updated, err := h.ledger.UpdatePrize(c.Request().Context(), &prize)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, updated)
}

// BuyTickets godoc
// @Summary Buy tickets for a prize
// @Tags prizes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Prize ID"
// @Param request body BuyTicketsRequest true "Quantity"
// @Success 201 {array} model.Ticket
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /prizes/{id}/tickets [post]
func (h *PrizeHandler) BuyTickets(c echo.Context) error {
	claims, err := sessionClaims(c)
	if err != nil {
		return err
	}

	var req BuyTicketsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tickets, err := h.ledger.BuyTickets(c.Request().Context(), claims.UserID, c.Param("id"), req.Quantity)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, tickets)
}

// DrawWinner godoc
// @Summary Draw the winner for a prize (admin)
// @Tags prizes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Prize ID"
// @Success 200 {object} DrawResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /prizes/{id}/draw [post]
func (h *PrizeHandler) DrawWinner(c echo.Context) error {
	if h.drawDelay > 0 {
		time.Sleep(h.drawDelay)
	}

	prize, winner, err := h.ledger.DrawWinner(c.Request().Context(), c.Param("id"))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, DrawResponse{
		Prize:  prize,
		Winner: winner,
	})
}
