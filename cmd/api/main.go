// Package main is the entry point for the trip site API server.
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
	"google.golang.org/api/option"

	"github.com/utch-club/tripsite-api/internal/config"
	"github.com/utch-club/tripsite-api/internal/google"
	"github.com/utch-club/tripsite-api/internal/handler"
	"github.com/utch-club/tripsite-api/internal/middleware"
	"github.com/utch-club/tripsite-api/internal/officer"
	"github.com/utch-club/tripsite-api/internal/repo"
	"github.com/utch-club/tripsite-api/internal/service"
	"github.com/utch-club/tripsite-api/internal/sync"
)

// maxBodySize caps incoming request bodies; the largest legitimate payload
// is a full trip form with notes.
const maxBodySize = 64 << 10

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// log/slog with a JSON handler; machine-readable output suitable for
	// log aggregators.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Google clients ---------------------------------------------------
	// One token source feeds both APIs; it caches the bearer token until
	// expiry.
	ctx := context.Background()
	tokens, err := google.NewTokenSource(ctx, cfg.ServiceAccountEmail, cfg.PrivateKeyPEM, google.DefaultTokenURL)
	if err != nil {
		slog.Error("failed to initialize token source", "error", err)
		os.Exit(1)
	}
	sheets, err := google.NewSheetsClient(ctx, cfg.SheetID, option.WithTokenSource(tokens))
	if err != nil {
		slog.Error("failed to initialize sheets client", "error", err)
		os.Exit(1)
	}
	calendar, err := google.NewCalendarClient(ctx, cfg.CalendarID, option.WithTokenSource(tokens))
	if err != nil {
		slog.Error("failed to initialize calendar client", "error", err)
		os.Exit(1)
	}

	// --- Repos and services -----------------------------------------------
	trips := repo.NewTripRepo(sheets)
	requests := repo.NewRequestRepo(sheets)
	settings := repo.NewSettingsRepo(sheets)
	suggestions := repo.NewSuggestionRepo(sheets)
	rsvps := repo.NewRsvpRepo(sheets)

	reconciler := sync.NewReconciler(trips, calendar, cfg.Timezone, cfg.SiteBaseURL, time.Now)
	runner := sync.NewRunner(reconciler, logger, 2*time.Minute)

	tripService := service.NewTripService(trips, calendar, runner, cfg.Timezone)
	requestService := service.NewRequestService(trips, requests)
	settingsService := service.NewSettingsService(settings)
	suggestionService := service.NewSuggestionService(suggestions)
	rsvpService := service.NewRsvpService(rsvps)
	gate := officer.NewGate(cfg.OfficerPasscode, time.Now)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger →
	// Recoverer → CORS → body cap. RealIP must run before the handlers so
	// the officer gate keys its lockout on the real client address.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(maxBodySize))

	srv := handler.NewServer(
		tripService, requestService, settingsService,
		suggestionService, rsvpService, gate, runner,
	)
	r.Mount("/", srv.Routes())

	// --- Background sync --------------------------------------------------
	syncCtx, cancelSync := context.WithCancel(context.Background())
	go runner.RunPeriodic(syncCtx, cfg.SyncInterval)

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")
	cancelSync()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}

	// Let scheduled reconciles drain so a trip saved right before shutdown
	// still reaches the calendar.
	runner.Wait()
	slog.Info("server stopped")
}
