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

	pkgvalidator "github.com/studybuddy-team/study-buddy/pkg/validator"

	_ "github.com/studybuddy-team/study-buddy/docs"
	"github.com/studybuddy-team/study-buddy/internal/adapter/handler"
	"github.com/studybuddy-team/study-buddy/internal/adapter/repository"
	"github.com/studybuddy-team/study-buddy/internal/infrastructure/cache"
	"github.com/studybuddy-team/study-buddy/internal/infrastructure/database"
	"github.com/studybuddy-team/study-buddy/internal/scheduler"
	"github.com/studybuddy-team/study-buddy/internal/usecase/analysis"
	pkgai "github.com/studybuddy-team/study-buddy/pkg/ai"
	"github.com/studybuddy-team/study-buddy/pkg/config"
)

// @title           Study Buddy API
// @version         1.0
// @description     YouTube study aid: transcript analysis, AI summaries, quizzes and flashcards

// @host      localhost:8000
// @BasePath  /

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	// Initialize dependencies
	log.Println("🔧 Initializing dependencies...")

	logger, err := zap.NewProduction()
	if cfg.Server.Environment != "production" {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	// Run migrations only when explicitly enabled in config.
	// Production deployments should manage schema via sql-migrate.
	if cfg.Database.AutoMigrate {
		if cfg.Server.Environment == "production" {
			log.Fatalf("AutoMigrate is enabled in production. Disable DB_AUTO_MIGRATE or manage schema with sql-migrate.")
		}
		log.Println("🔄 Running migrations (development only) ...")
		if err := database.AutoMigrate(db); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	} else {
		log.Println("🔄 Skipping migrations; use sql-migrate for schema migrations in CI/CD/production")
	}

	// Initialize cache store: Redis when enabled, in-memory otherwise
	var store cache.Store
	var memStore *cache.MemoryStore
	if cfg.Redis.Enabled {
		log.Println("📦 Connecting to Redis...")
		redisStore, err := cache.NewRedisStore(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		store = redisStore
	} else {
		log.Println("📦 Redis disabled, using in-memory cache")
		memStore = cache.NewMemoryStore()
		store = memStore
	}
	defer store.Close()
	analysisCache := cache.NewAnalysisCache(store)

	// Initialize repositories
	log.Println("⚙️  Initializing repositories...")
	analysisRepo := repository.NewAnalysisRepository(db)
	jobRepo := repository.NewJobRepository(db)

	// Initialize AI clients
	log.Println("🤖 Initializing AI components...")
	geminiClient, err := pkgai.NewGeminiClient(context.Background(), &cfg.Gemini)
	if err != nil {
		log.Fatalf("Failed to initialize Gemini client: %v", err)
	}
	defer geminiClient.Close()
	youtubeClient := pkgai.NewYouTubeClient(&cfg.YouTube)

	// Initialize analysis service and worker pool
	log.Println("🚀 Initializing analysis service...")
	analysisService := analysis.NewService(analysisRepo, jobRepo, geminiClient, youtubeClient, analysisCache, cfg, logger)
	analysisService.StartWorkerPool(cfg.Analysis.WorkerCount)
	defer analysisService.StopWorkerPool()

	// Initialize maintenance scheduler
	if cfg.Scheduler.Enabled {
		log.Println("📋 Initializing maintenance scheduler...")
		var purger scheduler.Purger
		if memStore != nil {
			purger = memStore
		}
		sched, err := scheduler.New(analysisService, jobRepo, purger, cfg, logger)
		if err != nil {
			log.Fatalf("Failed to initialize scheduler: %v", err)
		}
		sched.Start()
		defer sched.Stop()
	}

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	analysisHandler := handler.NewAnalysisHandler(analysisService, logger)
	studyHandler := handler.NewStudyHandler(analysisService, logger)

	router := handler.NewRouter(cfg, analysisHandler, studyHandler)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
