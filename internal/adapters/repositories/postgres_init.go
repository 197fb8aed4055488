package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the Postgres database schema.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createCountriesQuery := `
	CREATE TABLE IF NOT EXISTS countries (
		id serial PRIMARY KEY,
		name text NOT NULL UNIQUE,
		code text NOT NULL
	);
	`

	createRegionsQuery := `
	CREATE TABLE IF NOT EXISTS regions (
		id serial PRIMARY KEY,
		country_id integer NOT NULL REFERENCES countries(id),
		name text NOT NULL,
		type text
	);
	`

	createRegionPricingQuery := `
	CREATE TABLE IF NOT EXISTS region_pricing (
		id serial PRIMARY KEY,
		region_id integer NOT NULL UNIQUE REFERENCES regions(id),
		driver_hourly_rate numeric(10,2) NOT NULL,
		planned_work_hours numeric(10,2) NOT NULL,
		fuel_price_per_liter numeric(10,2) NOT NULL,
		fuel_consumption_per_100km numeric(10,2) NOT NULL,
		depreciation_coefficient numeric(10,4) NOT NULL,
		warehouse_processing_per_kg numeric(10,2) NOT NULL,
		service_fee_per_kg numeric(10,2) NOT NULL,
		delivery_point_cost numeric(10,2) NOT NULL,
		standard_trip_weight numeric(10,2) NOT NULL,
		standard_box_length integer NOT NULL,
		standard_box_width integer NOT NULL,
		standard_box_height integer NOT NULL,
		standard_box_max_weight numeric(10,2) NOT NULL,
		min_points_for_discount integer NOT NULL,
		discount_step_points integer NOT NULL,
		initial_discount_percent numeric(5,2) NOT NULL,
		discount_step_percent numeric(5,2) NOT NULL
	);
	`

	createDistributionCentersQuery := `
	CREATE TABLE IF NOT EXISTS distribution_centers (
		id serial PRIMARY KEY,
		region_id integer NOT NULL REFERENCES regions(id),
		name text NOT NULL,
		latitude double precision NOT NULL,
		longitude double precision NOT NULL,
		address text,
		is_active boolean NOT NULL DEFAULT true
	);
	`

	createSectorsQuery := `
	CREATE TABLE IF NOT EXISTS geo_sectors (
		id serial PRIMARY KEY,
		region_id integer NOT NULL REFERENCES regions(id),
		name text,
		description text,
		boundary jsonb NOT NULL
	);
	`

	createSettlementsQuery := `
	CREATE TABLE IF NOT EXISTS geo_settlements (
		id serial PRIMARY KEY,
		region_id integer NOT NULL REFERENCES regions(id),
		name text NOT NULL
	);
	`

	createDeliveryPointsQuery := `
	CREATE TABLE IF NOT EXISTS geo_delivery_points (
		id serial PRIMARY KEY,
		settlement_id integer REFERENCES geo_settlements(id),
		name text NOT NULL,
		latitude double precision NOT NULL,
		longitude double precision NOT NULL,
		is_active boolean NOT NULL DEFAULT true
	);
	`

	statements := []string{
		createCountriesQuery,
		createRegionsQuery,
		createRegionPricingQuery,
		createDistributionCentersQuery,
		createSectorsQuery,
		createSettlementsQuery,
		createDeliveryPointsQuery,
		`CREATE INDEX IF NOT EXISTS idx_regions_country_id ON regions(country_id);`,
		`CREATE INDEX IF NOT EXISTS idx_region_pricing_region_id ON region_pricing(region_id);`,
		`CREATE INDEX IF NOT EXISTS idx_distribution_centers_region_id ON distribution_centers(region_id);`,
		`CREATE INDEX IF NOT EXISTS idx_distribution_centers_is_active ON distribution_centers(is_active);`,
		`CREATE INDEX IF NOT EXISTS idx_geo_sectors_region_id ON geo_sectors(region_id);`,
		`CREATE INDEX IF NOT EXISTS idx_geo_settlements_region_id ON geo_settlements(region_id);`,
		`CREATE INDEX IF NOT EXISTS idx_geo_delivery_points_settlement_id ON geo_delivery_points(settlement_id);`,
		`CREATE INDEX IF NOT EXISTS idx_geo_delivery_points_is_active ON geo_delivery_points(is_active);`,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
