// TalentScout - Candidate Screening Assistant Server
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/talentscout/intake/internal/ai"
	"github.com/talentscout/intake/internal/api"
	"github.com/talentscout/intake/internal/chatlog"
	"github.com/talentscout/intake/internal/chatws"
	"github.com/talentscout/intake/internal/config"
	"github.com/talentscout/intake/internal/engine"
	"github.com/talentscout/intake/internal/geo"
	"github.com/talentscout/intake/internal/middleware"
	"github.com/talentscout/intake/internal/session"
	"github.com/talentscout/intake/internal/store"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting server", "port", cfg.Port, "dev", cfg.IsDevelopment())

	// Initialize dependencies.
	repo, err := store.NewSQLite(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if closeErr := repo.Close(); closeErr != nil {
			slog.Error("Failed to close repository", "error", closeErr)
		}
	}()

	if err := repo.Ping(context.Background()); err != nil {
		slog.Error("Database health check failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database connected")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Question source: Gemini when a key is configured, otherwise the
	// built-in static question bank.
	var source ai.QuestionSource
	if cfg.Gemini.APIKey != "" {
		gem, err := ai.NewGemini(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			slog.Error("Failed to initialize Gemini client", "error", err)
			os.Exit(1)
		}
		source = gem
		slog.Info("Question generation via Gemini", "model", cfg.Gemini.Model)
	} else {
		source = ai.NewStaticSource()
		slog.Info("GEMINI_API_KEY not set, using static question bank")
	}

	chatLog, err := chatlog.New(chatlog.Config{
		Enabled:   cfg.ChatLog.Enabled,
		Dir:       cfg.ChatLog.Dir,
		QueueSize: cfg.ChatLog.QueueSize,
	}, logger)
	if err != nil {
		slog.Error("Failed to initialize chat logger", "error", err)
		os.Exit(1)
	}
	defer func() {
		if closeErr := chatLog.Close(); closeErr != nil {
			slog.Error("Failed to close chat logger", "error", closeErr)
		}
	}()

	// Initialize services.
	sessions := session.NewManager()
	eng := engine.New(sessions, geo.NewStaticLookup(), source, repo, logger)

	// Initialize handlers.
	apiHandler := api.NewHandler(eng, repo, chatLog)
	wsHandler := chatws.NewHandler(eng, chatLog, cfg.FrontendURL, cfg.IsDevelopment())

	// Setup router.
	r := chi.NewRouter()

	// Global middleware.
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))
	r.Use(middleware.CORS([]string{"*"}))

	apiHandler.RegisterRoutes(r)

	// WebSocket endpoint.
	r.Get("/ws/chat", wsHandler.ServeHTTP)

	// Create server.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 0, // WebSocket chat sessions outlive any fixed write deadline
		IdleTimeout:  120 * time.Second,
	}

	// Start TTL worker.
	session.StartTTLWorker(ctx, sessions, cfg.SessionTTL)
	slog.Info("TTL worker started", "session_ttl", cfg.SessionTTL)

	// Start server.
	go func() {
		slog.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal.
	<-ctx.Done()
	stop()

	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server stopped successfully")
}
