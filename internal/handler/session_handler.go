package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"tombola/internal/model"
	"tombola/internal/service"
)

// SessionHandler exposes the startup bootstrap and view navigation.
type SessionHandler struct {
	authService service.AuthService
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(authService service.AuthService) *SessionHandler {
	return &SessionHandler{authService: authService}
}

// SessionResponse represents the restored session state.
type SessionResponse struct {
	User *model.User `json:"user"`
	View model.View  `json:"view"`
}

// NavigateRequest asks to switch to another view.
type NavigateRequest struct {
	View model.View `json:"view" validate:"required"`
}

// GetSession godoc
// @Summary Restore the current session
// @Description Returns the persisted session snapshot and the view derived
// @Description from it. A missing or expired snapshot yields the logged-out
// @Description view, never an error.
// @Tags session
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SessionResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /session [get]
func (h *SessionHandler) GetSession(c echo.Context) error {
	claims, err := sessionClaims(c)
	if err != nil {
		return err
	}

	user, err := h.authService.RestoreSession(c.Request().Context(), claims.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to restore session")
	}

	return c.JSON(http.StatusOK, SessionResponse{
		User: user,
		View: model.ViewForUser(user),
	})
}

// Navigate godoc
// @Summary Validate a view transition
// @Tags session
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body NavigateRequest true "Target view"
// @Success 200 {object} SessionResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /session/view [post]
func (h *SessionHandler) Navigate(c echo.Context) error {
	claims, err := sessionClaims(c)
	if err != nil {
		return err
	}

	var req NavigateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.RestoreSession(c.Request().Context(), claims.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to restore session")
	}
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "no active session")
	}

	if !model.CanNavigate(user, req.View) {
		return echo.NewHTTPError(http.StatusForbidden, "view not available")
	}

	return c.JSON(http.StatusOK, SessionResponse{
		User: user,
		View: req.View,
	})
}
