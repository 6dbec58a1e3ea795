package main

import (
	"aifitness/planner/internal/api"
	"aifitness/planner/internal/config"
	"aifitness/planner/internal/logger"
	"aifitness/planner/internal/repository"
	"aifitness/planner/internal/repository/cache"
	"aifitness/planner/internal/repository/memory"
	"aifitness/planner/internal/repository/mongo"
	"aifitness/planner/internal/service"
	"aifitness/planner/internal/storage"
	"aifitness/planner/internal/textgen"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/sync/errgroup"
)

// @title AI Fitness Planner API
// @version 1.0
// @description Generates diet and workout plans with a language model and answers questions about them.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal().Err(err).Msg("Could not load config")
	}
	logger.Setup(cfg.Log)
	log.Info().Str("driver", cfg.Database.Driver).Str("llmProvider", cfg.LLM.Provider).Msg("Configuration loaded")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("jwt.secret (JWT_SECRET) must be set")
	}

	// --- Repositories ---
	var (
		userRepo repository.UserRepository
		planRepo repository.PlanRepository
		chatRepo repository.ChatRepository
	)
	switch cfg.Database.Driver {
	case "memory":
		log.Warn().Msg("Using in-memory storage; data is lost on restart")
		userRepo = memory.NewUserRepository()
		planRepo = memory.NewPlanRepository()
		chatRepo = memory.NewChatRepository()
	case "mongo":
		dbClient, err := mongo.ConnectDB(cfg.Database.URI)
		if err != nil {
			log.Fatal().Err(err).Msg("Could not connect to MongoDB")
		}
		defer func() {
			log.Info().Msg("Disconnecting MongoDB...")
			if err := mongo.DisconnectDB(dbClient); err != nil {
				log.Error().Err(err).Msg("Failed to disconnect MongoDB")
			}
		}()
		appDB := dbClient.Database(cfg.Database.Name)
		log.Info().Str("database", cfg.Database.Name).Msg("Database connection established")

		if err := ensureIndexes(appDB); err != nil {
			log.Fatal().Err(err).Msg("Could not ensure database indexes")
		}

		userRepo = mongo.NewMongoUserRepository(appDB)
		planRepo = mongo.NewMongoPlanRepository(appDB)
		chatRepo = mongo.NewMongoChatRepository(appDB)
	default:
		log.Fatal().Str("driver", cfg.Database.Driver).Msg("Unknown database driver")
	}

	if cfg.Cache.PlanSize > 0 {
		cached, err := cache.NewPlanRepository(planRepo, cfg.Cache.PlanSize)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create plan cache")
		}
		planRepo = cached
	}

	// --- Storage (optional) ---
	var fileStorage storage.FileStorage
	if cfg.S3.Enabled {
		fileStorage, err = storage.NewS3Storage(context.Background(), cfg.S3)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize S3 storage")
		}
	} else {
		log.Info().Msg("S3 disabled; plan export is unavailable")
	}

	// --- Text generation ---
	generator, err := textgen.New(context.Background(), cfg.LLM)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize text generator")
	}

	// --- Services ---
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	planService := service.NewPlanService(planRepo, chatRepo, generator, fileStorage)
	chatService := service.NewChatService(planService, chatRepo, generator)

	// --- HTTP ---
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), api.RequestLogger())
	api.SetupRoutes(router, authService, planService, chatService)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info().Str("address", cfg.Server.Address).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("ListenAndServe error")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exiting")
}

// ensureIndexes creates every collection's indexes concurrently. Duplicate
// registrations are only rejected once the unique email index exists.
func ensureIndexes(db *mongodriver.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	for name, build := range mongo.IndexBuilders(db) {
		g.Go(func() error {
			if err := build(gctx); err != nil {
				log.Error().Err(err).Str("collection", name).Msg("Failed to create indexes")
				return err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	log.Info().Msg("Database indexes ensured")
	return nil
}
