package main

import (
	"context"
	"database/sql"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/aliaksandr-aliakseyeu/bananay-calc/internal/adapters/repositories"
	"github.com/aliaksandr-aliakseyeu/bananay-calc/internal/config"
	"github.com/aliaksandr-aliakseyeu/bananay-calc/internal/platform/db"
	"github.com/aliaksandr-aliakseyeu/bananay-calc/internal/platform/obs"
)

// dbtool creates the schema and loads seed data. Seed files that do not
// exist are skipped, so partial data sets are fine for local runs.
func main() {
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

	ctx := context.Background()

	pool, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("connect to database")
	}
	defer pool.Close()

	log.Info("initializing database schema")
	if err := repositories.InitSchema(ctx, pool); err != nil {
		log.WithError(err).Fatal("schema initialization failed")
	}
	log.Info("schema ready")

	seed(ctx, log, pool, "regions", config.Get("REGIONS_SEED_PATH", "data/seeds/regions.json"), repositories.SeedRegions)
	seed(ctx, log, pool, "distribution centers", config.Get("CENTERS_SEED_PATH", "data/seeds/distribution_centers.json"), repositories.SeedDistributionCenters)
	seed(ctx, log, pool, "delivery points", config.Get("POINTS_SEED_PATH", "data/seeds/delivery_points.json"), repositories.SeedDeliveryPoints)

	sectorsPath := config.Get("SECTORS_GEOJSON_PATH", "data/seeds/sectors.geojson")
	regionID, err := strconv.Atoi(config.Get("SECTORS_REGION_ID", "1"))
	if err != nil {
		log.WithError(err).Fatal("parse SECTORS_REGION_ID")
	}
	seed(ctx, log, pool, "sectors", sectorsPath, func(ctx context.Context, db *sql.DB, path string) (int, error) {
		return repositories.ImportSectors(ctx, db, path, regionID)
	})
}

func seed(
	ctx context.Context,
	log *logrus.Logger,
	pool *sql.DB,
	name, path string,
	fn func(context.Context, *sql.DB, string) (int, error),
) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.WithFields(logrus.Fields{"seed": name, "path": path}).Info("seed file not found, skipping")
		return
	}

	rows, err := fn(ctx, pool, path)
	if err != nil {
		log.WithField("seed", name).WithError(err).Fatal("seeding failed")
	}
	log.WithFields(logrus.Fields{"seed": name, "rows": rows}).Info("seeding complete")
}
