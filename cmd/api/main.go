package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	_ "github.com/johnquangdev/lecture-notes/docs"
	"github.com/johnquangdev/lecture-notes/internal/adapter/handler"
	"github.com/johnquangdev/lecture-notes/internal/bootstrap"
	"github.com/johnquangdev/lecture-notes/pkg/config"
	"github.com/johnquangdev/lecture-notes/pkg/jwt"
	"github.com/johnquangdev/lecture-notes/pkg/logger"
	pkgvalidator "github.com/johnquangdev/lecture-notes/pkg/validator"
)

// @title           Lecture Notes API
// @version         1.0
// @description     Turns lecture recordings into structured study notes

// @contact.name   API Support

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zapLogger, err := logger.New(cfg.Server.Environment, cfg.Logging.Level)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	e.HideBanner = true
	e.HidePort = false

	e.Use(middleware.RequestID())
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${id} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit(fmt.Sprintf("%dM", cfg.Media.MaxFileSizeMB+1)))

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  cfg.Server.AllowedOrigins,
		AllowMethods:  []string{http.MethodGet, http.MethodPost},
		AllowHeaders:  []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		ExposeHeaders: []string{echo.HeaderContentDisposition, echo.HeaderXRequestID},
	}))

	zapLogger.Info("🔧 Initializing dependencies...")

	ctx := context.Background()
	app, err := bootstrap.Build(ctx, cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to initialize pipeline", zap.Error(err))
	}
	defer app.Close()

	var archiver handler.Archiver
	if app.Archive != nil {
		archiver = app.Archive
	}

	notesHandler := handler.NewNotes(app.Orchestrator, app.Fetcher, app.Validator, archiver, handler.NotesConfig{
		UploadDir:       cfg.Media.UploadDir,
		TempDir:         cfg.Media.TempDir,
		DefaultLanguage: cfg.Summary.DefaultLanguage,
	}, zapLogger)

	var jwtManager *jwt.Manager
	if cfg.Auth.JWTSecret != "" {
		zapLogger.Info("🔑 Bearer token auth enabled on /v1")
		jwtManager = jwt.NewManager(cfg.Auth.JWTSecret)
	} else {
		zapLogger.Warn("⚠️  API_JWT_SECRET not set, /v1 is open")
	}

	zapLogger.Info("🛣️  Setting up routes...")
	router := handler.NewRouter(cfg, notesHandler, jwtManager)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		zapLogger.Info("🚀 Starting server",
			zap.String("addr", addr),
			zap.String("environment", cfg.Server.Environment),
		)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	zapLogger.Info("🛑 Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("❌ Server forced to shutdown", zap.Error(err))
		return
	}

	zapLogger.Info("✅ Server stopped gracefully")
}
