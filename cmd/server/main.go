// Package main is the entry point for the sheetdesk server binary.
// It serves the HTML workbook UI at the root and the JSON API under /v1.
// The workbook file is opened fresh on every request, so the server can
// start before the file exists.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	_ "github.com/mattn/go-sqlite3"

	"sheetdesk/internal/api"
	"sheetdesk/internal/app"
	"sheetdesk/internal/config"
	internaldb "sheetdesk/internal/db"
	"sheetdesk/internal/middleware"
	"sheetdesk/internal/ui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file (if present)
	if err := config.LoadDotEnv(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not load .env: %v\n", err)
	}

	cfg, err := config.LoadFromEnv()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)
	for _, warning := range cfg.Warnings {
		logger.Warn(warning)
	}

	if _, err := os.Stat(cfg.WorkbookPath); err != nil {
		logger.Warn("workbook file not found at startup, pages will show guidance until it exists",
			"path", cfg.WorkbookPath)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	// Open the activity log with hardened connection settings.
	// writeDB: single-connection pool for serialized inserts (WAL + txlock=immediate).
	// readDB:  4-connection pool for concurrent feed reads (WAL, no txlock).
	writeDB, readDB, err := internaldb.OpenSQLitePair(cfg.ActivityDBPath, 4)
	if err != nil {
		return fmt.Errorf("open activity log: %w", err)
	}
	defer writeDB.Close()
	defer readDB.Close()

	// Run migrations on the write pool (DDL requires write access)
	if err := internaldb.RunMigrations(writeDB); err != nil {
		return fmt.Errorf("migrate activity log: %w", err)
	}

	a := app.New(app.Deps{Cfg: cfg, WriteDB: writeDB, ReadDB: readDB, Logger: logger})

	uiHandler := ui.NewHandler(a.Services.Sheets, a.Services.Activity, cfg.IsProduction())
	apiHandler := api.NewHandler(a.Services.Sheets, a.Services.Activity)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RateLimiter(middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		Burst:             cfg.RateLimitBurst,
	}))

	// Public endpoints
	r.Get("/openapi.json", apiHandler.OpenAPISpec)
	r.Get("/docs", apiHandler.Docs)

	// JSON API under /v1. CORS applies here only; the HTML UI is same-origin
	// and protected by the CSRF middleware instead.
	r.Route("/v1", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.CORSAllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
			MaxAge:         300,
		}))
		api.MountRoutes(r, apiHandler)
	})

	// HTML UI at the root
	ui.MountRoutes(r, uiHandler)

	srv := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown
	go func() {
		<-ctx.Done()
		logger.Info("shutting down server")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("sheetdesk listening", "addr", cfg.ListenAddr, "workbook", cfg.WorkbookPath)
	fmt.Printf("Try: curl http://%s/v1/sheets\n", curlHostForListenAddr(cfg.ListenAddr))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}

// curlHostForListenAddr converts a listen address into a host suitable for a
// copy-pasteable curl example. Wildcard and empty hosts become localhost.
func curlHostForListenAddr(listenAddr string) string {
	addr := strings.TrimSpace(listenAddr)
	if addr == "" {
		return "localhost:8080"
	}
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	switch strings.TrimSpace(host) {
	case "", "0.0.0.0", "::":
		return "localhost:" + port
	}
	if strings.Contains(host, ":") {
		// IPv6 literals need brackets back after SplitHostPort strips them.
		return "[" + host + "]:" + port
	}
	return host + ":" + port
}
