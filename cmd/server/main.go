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

	"connectrpc.com/connect"
	connectcors "connectrpc.com/cors"
	"github.com/rs/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/shoppinglist/internal/auth"
	"github.com/mmynk/shoppinglist/internal/config"
	"github.com/mmynk/shoppinglist/internal/engine"
	"github.com/mmynk/shoppinglist/internal/metrics"
	"github.com/mmynk/shoppinglist/internal/middleware"
	"github.com/mmynk/shoppinglist/internal/service"
	"github.com/mmynk/shoppinglist/internal/storage/sqlite"
	"github.com/mmynk/shoppinglist/pkg/api"
	"github.com/mmynk/shoppinglist/pkg/logging"
)

func main() {
	cfg, err := config.Parse(os.Args[1:])
	if err != nil {
		logging.Setup("info")
		slog.Error("Invalid configuration", "error", err)
		os.Exit(2)
	}
	logging.Setup(cfg.LogLevel)

	if err := run(cfg); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	m := metrics.New()
	eng, err := engine.New(ctx, store, engine.WithRecorder(m))
	if err != nil {
		return err
	}

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	resolver := auth.NewResolver(store)

	// Logging runs inside auth so it can see the caller.
	interceptors := connect.WithInterceptors(
		middleware.MetricsInterceptor(m),
		middleware.RequireAuth(jwtManager, api.AccountServicePublicProcedures...),
		middleware.LoggingInterceptor(),
	)

	mux := http.NewServeMux()
	mux.Handle(api.NewAccountServiceHandler(service.NewAccountService(eng, resolver, jwtManager), interceptors))
	mux.Handle(api.NewCatalogServiceHandler(service.NewCatalogService(eng, resolver), interceptors))
	mux.Handle(api.NewListServiceHandler(service.NewListService(eng, resolver), interceptors))
	mux.Handle(api.NewLedgerServiceHandler(service.NewLedgerService(eng, resolver), interceptors))
	mux.Handle(cfg.MetricsPath, m.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	handler := loggingMiddleware(withCORS(cfg.CORSOrigins, mux))

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	server := &http.Server{
		Addr:              cfg.Listen,
		Handler:           h2c.NewHandler(handler, &http2.Server{}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		slog.Info("Connect server starting", "address", cfg.Listen, "metrics", cfg.MetricsPath)
		errc <- server.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		slog.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}

// loggingMiddleware logs all incoming requests
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Debug("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// withCORS wraps h in an rs/cors handler that allows the Connect protocol's
// methods and headers, plus Authorization, from allowedOrigins.
func withCORS(allowedOrigins []string, h http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: connectcors.AllowedMethods(),
		AllowedHeaders: append(connectcors.AllowedHeaders(), "Authorization"),
		ExposedHeaders: connectcors.ExposedHeaders(),
	}).Handler(h)
}
