package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/aliaksandr-aliakseyeu/bananay-calc/internal/adapters/distance"
	"github.com/aliaksandr-aliakseyeu/bananay-calc/internal/adapters/repositories"
	"github.com/aliaksandr-aliakseyeu/bananay-calc/internal/api"
	"github.com/aliaksandr-aliakseyeu/bananay-calc/internal/config"
	"github.com/aliaksandr-aliakseyeu/bananay-calc/internal/platform/db"
	"github.com/aliaksandr-aliakseyeu/bananay-calc/internal/platform/obs"
	"github.com/aliaksandr-aliakseyeu/bananay-calc/internal/services"
)

// main is the application composition root.
// It wires concrete adapters (Postgres, route providers) behind ports and
// starts the HTTP server.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		logrus.Info("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("load configuration")
	}

	log := obs.InitLogger(cfg.LogLevel)

	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	pool, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("connect to database")
	}
	defer pool.Close()

	provider, method := distance.FromConfig(cfg.Routing, log)
	resolver := services.NewResolver(provider, method, cfg.Routing.FallbackCoefficient, log)

	tariffs := repositories.NewSQLTariffRepository(pool)
	calc := services.NewCalculator(
		tariffs,
		repositories.NewSQLCenterRepository(pool),
		repositories.NewSQLGeometryRepository(pool),
		resolver,
		log,
	)

	router := api.NewRouter(calc, repositories.NewSQLRegionRepository(pool), tariffs, log)

	// WriteTimeout leaves room for the external routing calls a calculation
	// can make before falling back.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.WithField("addr", srv.Addr).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
}
