package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"alcyxob/fitness-planner/internal/ai"
	"alcyxob/fitness-planner/internal/api"
	"alcyxob/fitness-planner/internal/config"
	"alcyxob/fitness-planner/internal/logging"
	"alcyxob/fitness-planner/internal/planner"
	"alcyxob/fitness-planner/internal/repository/mongo"
	"alcyxob/fitness-planner/internal/service"
	"alcyxob/fitness-planner/internal/storage"
	"alcyxob/fitness-planner/internal/templates"

	"github.com/gin-gonic/gin"
)

func main() {
	log.Println("Starting Fitness Planner Server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	logger := logging.New(cfg.Log)
	log.Println("Configuration loaded.")

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatalf("FATAL: Could not connect to MongoDB: %v", err)
	}
	defer func() {
		log.Println("Disconnecting MongoDB...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.Println("Database connection established.")

	// --- Ensure Indexes ---
	log.Println("Ensuring database indexes...")
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		names, err := mongo.EnsureWeeklyPlanIndexes(ctx, appDB)
		if err != nil {
			log.Printf("ERROR: Failed to create weekly plan indexes: %v", err)
			return
		}
		log.Printf("Index creation process completed: %v", names)
	}()

	// --- Initialize Plan Archive ---
	log.Println("Initializing plan archive...")
	var archive storage.PlanArchive
	archive, err = storage.NewPlanArchive(context.Background(), cfg.S3, logger)
	switch {
	case errors.Is(err, storage.ErrArchiveDisabled):
		log.Println("Plan archive disabled; exports are unavailable.")
		archive = nil
	case err != nil:
		log.Fatalf("FATAL: Failed to initialize S3 plan archive: %v", err)
	}

	// --- Initialize Plan Engine ---
	log.Println("Loading plan templates...")
	library, err := templates.Default()
	if err != nil {
		log.Fatalf("FATAL: Could not load plan templates: %v", err)
	}

	var enricher planner.Enricher
	completer, err := ai.NewCompleter(cfg.AI, logger)
	var cfgErr *ai.ConfigurationError
	switch {
	case errors.As(err, &cfgErr):
		log.Printf("AI enrichment disabled: %v", err)
	case err != nil:
		log.Fatalf("FATAL: Could not configure AI provider: %v", err)
	default:
		enricher = ai.NewAdapter(completer,
			ai.WithRules(cfg.Rules),
			ai.WithMaxTokens(cfg.AI.MaxTokens),
			ai.WithTemperature(cfg.AI.Temperature),
		)
		log.Printf("AI enrichment enabled with model %s", completer.Model())
	}

	engine := planner.NewEngine(library, enricher,
		planner.WithRules(cfg.Rules),
		planner.WithLogger(logger),
	)

	// --- Initialize Repositories & Services ---
	log.Println("Initializing services...")
	planRepo := mongo.NewMongoWeeklyPlanRepository(appDB)
	planService := service.NewPlanService(engine, planRepo, archive, cfg.S3.PresignExpiry, logger)

	// --- Initialize Gin Engine ---
	router := gin.Default()

	log.Println("Setting up API routes...")
	api.SetupRoutes(router, cfg.JWT.Secret, planService, logger)

	// --- Start HTTP Server ---
	// Generation can wait on several AI attempts, so writes get a long deadline.
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Printf("ERROR: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
