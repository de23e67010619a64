// Package main is the entry point for the recipe API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
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
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"

	"github.com/dezz1er/foodgram-project-react/internal/auth"
	"github.com/dezz1er/foodgram-project-react/internal/config"
	"github.com/dezz1er/foodgram-project-react/internal/handler"
	"github.com/dezz1er/foodgram-project-react/internal/imagestore"
	"github.com/dezz1er/foodgram-project-react/internal/middleware"
	"github.com/dezz1er/foodgram-project-react/internal/repo"
	"github.com/dezz1er/foodgram-project-react/internal/service"
	"github.com/dezz1er/foodgram-project-react/migrations"
)

// maxBodySize caps request bodies at 4 MiB; base64 recipe images are the
// largest payloads the API accepts.
const maxBodySize = 4 << 20

func main() {
	// --- Config -----------------------------------------------------------
	// .env is optional; real deployments set variables in the environment.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// JSON handler writes machine-readable output suitable for log aggregators.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Database ---------------------------------------------------------
	// pgxpool manages a pool of Postgres connections.
	// New() does not open connections immediately — the first query does.
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Verify the DB is reachable before accepting traffic.
	if err := pool.Ping(context.Background()); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("database connection established")

	if err := runMigrations(context.Background(), pool); err != nil {
		slog.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}

	// --- Dependencies -----------------------------------------------------
	images, err := imagestore.New(cfg.MediaDir, cfg.MediaBaseURL)
	if err != nil {
		slog.Error("failed to initialize image store", "error", err)
		os.Exit(1)
	}
	tokens := auth.NewTokenManager(cfg.TokenSecret, cfg.TokenTTL)

	userRepo := repo.NewUserRepo(pool)
	ingredientRepo := repo.NewIngredientRepo(pool)
	tagRepo := repo.NewTagRepo(pool)
	recipeRepo := repo.NewRecipeRepo(pool)
	relationRepo := repo.NewRelationRepo(pool)
	subscriptionRepo := repo.NewSubscriptionRepo(pool)

	server := handler.NewServer(
		service.NewUserService(userRepo, tokens),
		service.NewRecipeService(recipeRepo, tagRepo, ingredientRepo),
		service.NewTagService(tagRepo),
		service.NewIngredientService(ingredientRepo),
		service.NewRelationService(relationRepo, recipeRepo),
		service.NewSubscriptionService(subscriptionRepo, userRepo, recipeRepo),
		service.NewShoppingListService(relationRepo),
		images,
	)

	// --- Router -----------------------------------------------------------
	// Middleware order: RequestID → RealIP → Logger → Recoverer → CORS → body cap.
	// RequestID generates a unique trace ID per request.
	// RealIP sets r.RemoteAddr from X-Forwarded-For / X-Real-IP (safe behind a proxy).
	// SlogLogger writes one structured JSON log line per request.
	// Recoverer catches panics and returns HTTP 500 instead of crashing.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(maxBodySize))

	r.Mount("/", server.Routes(middleware.NewAuthenticator(tokens)))

	// Stored recipe images are served straight off disk.
	fileServer := http.StripPrefix(cfg.MediaBaseURL+"/", http.FileServer(http.Dir(images.Dir())))
	r.Get(cfg.MediaBaseURL+"/*", fileServer.ServeHTTP)

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// runMigrations applies all embedded goose migrations through a database/sql
// connection borrowed from the pool.
func runMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return err
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return err
	}
	if len(results) > 0 {
		slog.Info("migrations applied", "count", len(results))
	}
	return nil
}
