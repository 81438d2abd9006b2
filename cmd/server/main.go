package main

import (
	"context"
	"log"
	"net/http"

	_ "tombola/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"tombola/internal/auth"
	"tombola/internal/cache"
	"tombola/internal/config"
	"tombola/internal/handler"
	"tombola/internal/repository"
	"tombola/internal/router"
	"tombola/internal/service"
	"tombola/internal/store"
)

// @title Tombola Raffle API
// @version 1.0
// @description Browser raffle demo backend: registration, play-money ticket purchases and admin winner draws.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := store.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}
	gateway, err := store.NewGorm(gormDB)
	if err != nil {
		log.Fatalf("blob store init: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gateway)
	prizeRepo := repository.NewPrizeRepository(gateway)
	ticketRepo := repository.NewTicketRepository(gateway)

	// Loading the catalog once at startup seeds it when the stored blob is
	// missing or corrupt.
	if prizes, err := prizeRepo.List(context.Background()); err != nil {
		log.Fatalf("prize catalog bootstrap: %v", err)
	} else {
		log.Printf("prize catalog ready with %d prizes", len(prizes))
	}

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.SessionTTL)
	sessions := auth.NewSessionStore(cacheClient, cfg.SessionTTL)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, sessions)
	accountService := service.NewAccountService(userRepo, sessions)
	ledgerService := service.NewLedgerService(prizeRepo, ticketRepo, userRepo, accountService)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	sessionHandler := handler.NewSessionHandler(authService)
	prizeHandler := handler.NewPrizeHandler(ledgerService, cfg.DrawDelay)
	accountHandler := handler.NewAccountHandler(accountService, ledgerService)

	// Register routes
	router.Register(
		e,
		cfg,
		authHandler,
		sessionHandler,
		prizeHandler,
		accountHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
