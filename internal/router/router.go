package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"tombola/internal/auth"
	"tombola/internal/config"
	"tombola/internal/handler"
	"tombola/internal/model"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	sessionHandler *handler.SessionHandler,
	prizeHandler *handler.PrizeHandler,
	accountHandler *handler.AccountHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	}))

	secured.POST("/auth/logout", authHandler.Logout)
	secured.GET("/session", sessionHandler.GetSession)
	secured.POST("/session/view", sessionHandler.Navigate)

	secured.GET("/prizes", prizeHandler.ListPrizes)
	secured.POST("/prizes/:id/tickets", prizeHandler.BuyTickets)

	secured.GET("/dashboard", accountHandler.Dashboard)
	secured.GET("/account/balance", accountHandler.GetBalance)
	secured.POST("/account/topup", accountHandler.TopUp)

	// Admin routes (require the admin role)
	admin := secured.Group("", AdminOnly)
	admin.POST("/prizes", prizeHandler.AddPrize)
	admin.PUT("/prizes/:id", prizeHandler.UpdatePrize)
	admin.POST("/prizes/:id/draw", prizeHandler.DrawWinner)
}

// AdminOnly rejects requests whose session token does not carry the admin
// role.
func AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := c.Get("user").(*jwt.Token)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}
		claims, ok := token.Claims.(*auth.Claims)
		if !ok || claims.Role != model.RoleAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "admin role required")
		}
		return next(c)
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
