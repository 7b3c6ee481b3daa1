package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/technotes/notes-system/internal/api/handler"
	"github.com/technotes/notes-system/internal/api/middleware"
	"github.com/technotes/notes-system/internal/core/domain"
	"github.com/technotes/notes-system/internal/core/ports"
	"github.com/technotes/notes-system/internal/core/service"
	"github.com/technotes/notes-system/internal/infrastructure/config"
	mongodb "github.com/technotes/notes-system/internal/infrastructure/db/mongo"
	redisdb "github.com/technotes/notes-system/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// rdb may be nil; the note-list cache is then disabled. When cfg.JWTSecret is
// set the resource routes require a valid token: /users is restricted to
// Manager/Admin, /notes to any authenticated role.
func NewRouter(db *mongo.Database, rdb *goredis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("technotes"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	noteRepo := mongodb.NewNoteRepository(db)

	var cache ports.NoteListCache
	if rdb != nil {
		cache = redisdb.NewNoteListCache(rdb, cfg.Redis.CacheTTL)
	}

	userService := service.NewUserService(userRepo, noteRepo, cache, log)
	noteService := service.NewNoteService(noteRepo, userRepo, cache, log)
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)

	userHandler := handler.NewUserHandler(userService)
	noteHandler := handler.NewNoteHandler(noteService)
	authHandler := handler.NewAuthHandler(authService)

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)

	// --- Resource routes ---
	users := e.Group("/users")
	notes := e.Group("/notes")
	if cfg.JWTSecret != "" {
		auth := middleware.Auth(cfg.JWTSecret)
		users.Use(auth, middleware.RBAC(domain.RoleManager, domain.RoleAdmin))
		notes.Use(auth)
	}

	users.GET("", userHandler.List)
	users.POST("", userHandler.Create)
	users.PATCH("", userHandler.Update)
	users.DELETE("", userHandler.Delete)

	notes.GET("", noteHandler.List)
	notes.POST("", noteHandler.Create)
	notes.PATCH("", noteHandler.Update)
	notes.DELETE("", noteHandler.Delete)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
