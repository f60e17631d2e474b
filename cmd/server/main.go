package main

import (
	"log"
	"net/http"
	"os"

	_ "bankcore/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"bankcore/internal/auth"
	"bankcore/internal/cache"
	"bankcore/internal/config"
	"bankcore/internal/db"
	"bankcore/internal/handler"
	"bankcore/internal/model"
	"bankcore/internal/repository"
	"bankcore/internal/router"
	"bankcore/internal/service"
)

// @title Bank Ledger API
// @version 1.0
// @description Minimal banking backend with bearer-token auth and an append-only ledger.
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the token from /login.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.LedgerEntry{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.LedgerEntry{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	ledgerRepo := repository.NewLedgerRepository(gormDB)

	// Token registry lives for the process lifetime; tokens die with it.
	tokenRegistry := auth.NewTokenRegistry()

	// Initialize services
	authService := service.NewAuthService(userRepo, tokenRegistry, cacheClient)
	ledgerService := service.NewLedgerService(ledgerRepo)
	userService := service.NewUserService(userRepo, cacheClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, tokenRegistry)
	ledgerHandler := handler.NewLedgerHandler(ledgerService)
	userHandler := handler.NewUserHandler(userService)

	// Register routes
	router.Register(e, authHandler, ledgerHandler, userHandler)

	if cfg.SwaggerHost != "" {
		log.Printf("Swagger documentation available at: %s/swagger/index.html", cfg.SwaggerHost)
	} else {
		log.Printf("Swagger documentation available at: http://localhost:%s/swagger/index.html", cfg.ServerPort)
	}

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
