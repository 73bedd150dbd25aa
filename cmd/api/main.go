package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"bookshelf/internal/book"
	"bookshelf/internal/config"
	"bookshelf/internal/httpx"
	"bookshelf/internal/platform/completion"
	"bookshelf/internal/platform/websearch"
	"bookshelf/internal/recommend"
	"bookshelf/internal/session"
	"bookshelf/internal/stats"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("load configuration")
	}

	// One pool for the whole process, built once at startup and passed
	// down. Startup is the only place a store failure is fatal.
	dbPool := mustOpenDB(cfg.Database.DSN, logger)
	defer dbPool.Close()

	bookStore := book.NewPostgresStore(dbPool, cfg.Database.QueryTimeout)
	bookService := book.NewService(bookStore)
	statsEngine := stats.NewEngine(bookStore)

	completionClient := completion.NewClient(
		cfg.Completion.BaseURL, cfg.Completion.APIKey, cfg.Completion.Model,
		cfg.Completion.RequestsPerSecond, cfg.Completion.Timeout)
	searchClient := websearch.NewClient(
		cfg.Websearch.BaseURL, cfg.Websearch.APIKey,
		cfg.Websearch.RequestsPerSecond, cfg.Websearch.Timeout)

	sessions := session.NewManager()
	builder := recommend.NewBuilder()
	orchestrator := recommend.NewOrchestrator(completionClient, searchClient, cfg.Websearch.MaxLinks, logger)

	bookHandler := book.NewHTTPHandler(bookService, sessions, logger)
	statsHandler := stats.NewHTTPHandler(statsEngine, logger)
	recommendHandler := recommend.NewHTTPHandler(orchestrator, builder, sessions, logger)

	router := http.NewServeMux()

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := dbPool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.HandleFunc("POST /books", bookHandler.Create)
	router.HandleFunc("DELETE /books", bookHandler.RemoveByTerm)
	router.HandleFunc("DELETE /books/{id}", bookHandler.RemoveByID)
	router.HandleFunc("GET /books", bookHandler.List)
	router.HandleFunc("GET /books/search", bookHandler.Search)

	router.HandleFunc("GET /stats", statsHandler.Get)
	router.HandleFunc("GET /stats/decades", statsHandler.Decades)

	router.HandleFunc("POST /summaries", recommendHandler.Summarize)
	router.HandleFunc("POST /recommendations", recommendHandler.Recommend)
	router.HandleFunc("GET /session/banners", recommendHandler.Banners)

	handler := httpx.Chain(router,
		httpx.RequestIDMiddleware,
		httpx.SessionIDMiddleware,
		httpx.AccessLogMiddleware(logger),
		httpx.RecoveryMiddleware(logger),
	)

	httpServer := &http.Server{
		Addr:        cfg.Addr,
		Handler:     handler,
		ReadTimeout: 5 * time.Second,
		// Generous write timeout: the summary and recommendation flows
		// block on the completion service.
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info().Str("addr", cfg.Addr).Msg("starting server")
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal().Err(err).Msg("server error")
	}
}

func mustOpenDB(dsn string, logger zerolog.Logger) *pgxpool.Pool {
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create db pool")
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		logger.Fatal().Err(err).Msg("cannot ping database")
	}
	logger.Info().Msg("database connection OK")
	return pool
}
