package main

import (
	"log"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"kitchensaver/docs"

	"kitchensaver/internal/auth"
	"kitchensaver/internal/cache"
	"kitchensaver/internal/config"
	"kitchensaver/internal/db"
	"kitchensaver/internal/handler"
	"kitchensaver/internal/model"
	"kitchensaver/internal/repository"
	"kitchensaver/internal/router"
	"kitchensaver/internal/service"
	"kitchensaver/internal/storage"
)

// @title Kitchen Saver API
// @version 1.0
// @description Kitchen remodeling job tracker with JWT authentication and role-based access.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

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
			&model.Job{},
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
		&model.Job{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	jobRepo := repository.NewJobRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.TokenExpiry)

	// Initialize services
	userService := service.NewUserService(userRepo, jwtService, cacheClient)
	jobService := service.NewJobService(jobRepo, userRepo)
	fileStore := storage.NewLocalStore(cfg.UploadDir)

	// Initialize handlers
	userHandler := handler.NewUserHandler(userService)
	jobHandler := handler.NewJobHandler(jobService)
	fileHandler := handler.NewFileHandler(fileStore)

	// Register routes
	router.Register(
		e,
		cfg,
		jwtService,
		userHandler,
		jobHandler,
		fileHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
