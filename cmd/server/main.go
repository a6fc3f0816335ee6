package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"redline/internal/config"
	"redline/internal/handler"
	"redline/internal/middleware"
	"redline/internal/repository/postgres"
	"redline/internal/review/openai"
	"redline/internal/review/prompt"
	"redline/internal/seed"
	"redline/internal/service"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected")

	tables := postgres.NewTableNames(cfg.TablePrefix)

	// Ensure schema and seed documents exist before serving
	if err := postgres.EnsureSchema(ctx, pool, tables, cfg.TablePrefix); err != nil {
		log.Fatalf("Failed to ensure schema: %v", err)
	}

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	versionRepo := postgres.NewVersionRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	if err := seed.EnsureDocuments(ctx, versionRepo, logger); err != nil {
		log.Fatalf("Failed to seed documents: %v", err)
	}

	// Create services
	docService := service.NewDocumentService(versionRepo, txManager, logger)

	// Setup review generation provider
	promptCfg, err := prompt.Load()
	if err != nil {
		log.Fatalf("Failed to load review prompt: %v", err)
	}
	generator, err := openai.New(openai.ClientConfig{
		APIKey:           cfg.OpenAIAPIKey,
		Model:            cfg.OpenAIModel,
		SystemPrompt:     promptCfg.SystemPrompt,
		ErrorProbability: cfg.ErrorProbability,
	}, logger)
	if err != nil {
		log.Fatalf("Failed to setup review provider: %v", err)
	}

	// Create handlers
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	docHandler := handler.NewDocumentHandler(docService, logger)
	reviewHandler := handler.NewReviewHandler(generator, originPatterns(corsOrigins), logger)

	logger.Info("services initialized", "provider", generator.Name())

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", docHandler.HealthCheck)

	// Document routes
	mux.HandleFunc("GET /document/{document_id}", docHandler.GetDocument)
	mux.HandleFunc("GET /document/{document_id}/versions", docHandler.ListVersions)
	mux.HandleFunc("POST /document/{document_id}/version", docHandler.CreateVersion)
	mux.HandleFunc("PUT /document/{document_id}/version/{version}", docHandler.UpdateVersion)
	mux.HandleFunc("POST /save/{document_id}", docHandler.Save)

	// Review streaming channel
	mux.HandleFunc("GET /review", reviewHandler.HandleWS)

	// Build middleware chain
	var root http.Handler = mux
	root = middleware.Recovery(logger)(root)

	// CORS - must be outermost to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
	})
	root = corsHandler.Handler(root)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // Disabled to allow long-lived review streams
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// originPatterns derives websocket origin host patterns from CORS origins,
// so the HTTP and websocket layers agree on who may connect.
func originPatterns(origins []string) []string {
	patterns := make([]string, 0, len(origins))
	for _, origin := range origins {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		if origin == "*" {
			return []string{"*"}
		}
		if u, err := url.Parse(origin); err == nil && u.Host != "" {
			patterns = append(patterns, u.Host)
			continue
		}
		patterns = append(patterns, origin)
	}
	return patterns
}
