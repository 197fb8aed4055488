package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/shopspring/decimal"
)

type CountrySeed struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

type RegionSeed struct {
	ID        int    `json:"id"`
	CountryID int    `json:"country_id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
}

type SettlementSeed struct {
	ID       int    `json:"id"`
	RegionID int    `json:"region_id"`
	Name     string `json:"name"`
}

type PricingSeed struct {
	RegionID                 int             `json:"region_id"`
	DriverHourlyRate         decimal.Decimal `json:"driver_hourly_rate"`
	PlannedWorkHours         decimal.Decimal `json:"planned_work_hours"`
	FuelPricePerLiter        decimal.Decimal `json:"fuel_price_per_liter"`
	FuelConsumptionPer100KM  decimal.Decimal `json:"fuel_consumption_per_100km"`
	DepreciationCoefficient  decimal.Decimal `json:"depreciation_coefficient"`
	WarehouseProcessingPerKG decimal.Decimal `json:"warehouse_processing_per_kg"`
	ServiceFeePerKG          decimal.Decimal `json:"service_fee_per_kg"`
	DeliveryPointCost        decimal.Decimal `json:"delivery_point_cost"`
	StandardTripWeightKG     decimal.Decimal `json:"standard_trip_weight"`
	BoxLengthCM              int             `json:"standard_box_length"`
	BoxWidthCM               int             `json:"standard_box_width"`
	BoxHeightCM              int             `json:"standard_box_height"`
	BoxMaxWeightKG           decimal.Decimal `json:"standard_box_max_weight"`
	MinPointsForDiscount     int             `json:"min_points_for_discount"`
	DiscountStepPoints       int             `json:"discount_step_points"`
	InitialDiscountPercent   decimal.Decimal `json:"initial_discount_percent"`
	DiscountStepPercent      decimal.Decimal `json:"discount_step_percent"`
}

// validate enforces the same bounds the pricing PATCH endpoint accepts.
// discount_step_points in particular must stay positive: the discount
// ladder divides by it.
func (p PricingSeed) validate() error {
	positive := []struct {
		name  string
		value decimal.Decimal
	}{
		{"driver_hourly_rate", p.DriverHourlyRate},
		{"planned_work_hours", p.PlannedWorkHours},
		{"fuel_price_per_liter", p.FuelPricePerLiter},
		{"fuel_consumption_per_100km", p.FuelConsumptionPer100KM},
		{"depreciation_coefficient", p.DepreciationCoefficient},
		{"delivery_point_cost", p.DeliveryPointCost},
		{"standard_trip_weight", p.StandardTripWeightKG},
		{"standard_box_max_weight", p.BoxMaxWeightKG},
	}
	for _, f := range positive {
		if !f.value.IsPositive() {
			return fmt.Errorf("%s must be positive", f.name)
		}
	}

	if p.WarehouseProcessingPerKG.IsNegative() {
		return errors.New("warehouse_processing_per_kg cannot be negative")
	}
	if p.ServiceFeePerKG.IsNegative() {
		return errors.New("service_fee_per_kg cannot be negative")
	}

	if p.BoxLengthCM <= 0 || p.BoxWidthCM <= 0 || p.BoxHeightCM <= 0 {
		return errors.New("standard box dimensions must be positive")
	}
	if p.MinPointsForDiscount <= 0 {
		return errors.New("min_points_for_discount must be positive")
	}
	if p.DiscountStepPoints <= 0 {
		return errors.New("discount_step_points must be positive")
	}

	hundred := decimal.NewFromInt(100)
	if p.InitialDiscountPercent.IsNegative() || p.InitialDiscountPercent.GreaterThan(hundred) {
		return errors.New("initial_discount_percent must be between 0 and 100")
	}
	if p.DiscountStepPercent.IsNegative() || p.DiscountStepPercent.GreaterThan(hundred) {
		return errors.New("discount_step_percent must be between 0 and 100")
	}

	return nil
}

// Combined reference-data seed file: countries, regions, settlements and
// per-region pricing.
type RegionsSeed struct {
	Countries   []CountrySeed    `json:"countries"`
	Regions     []RegionSeed     `json:"regions"`
	Settlements []SettlementSeed `json:"settlements"`
	Pricing     []PricingSeed    `json:"pricing"`
}

// Populate countries, regions, settlements and pricing from a JSON file.
// Upserts keyed by id (pricing by region_id) keep reruns idempotent.
// Returns the number of rows written.
func SeedRegions(ctx context.Context, db *sql.DB, jsonPath string) (int, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return 0, fmt.Errorf("seed regions: read %q: %w", jsonPath, err)
	}

	var data RegionsSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return 0, fmt.Errorf("seed regions: parse json: %w", err)
	}

	for i, c := range data.Countries {
		if c.ID <= 0 {
			return 0, fmt.Errorf("seed regions: invalid country id at index %d: %d", i+1, c.ID)
		}
		if strings.TrimSpace(c.Name) == "" {
			return 0, fmt.Errorf("seed regions: country name at index %d: name cannot be empty", i+1)
		}
	}
	for i, r := range data.Regions {
		if r.ID <= 0 || r.CountryID <= 0 {
			return 0, fmt.Errorf("seed regions: invalid region ids at index %d: id=%d country_id=%d", i+1, r.ID, r.CountryID)
		}
		if strings.TrimSpace(r.Name) == "" {
			return 0, fmt.Errorf("seed regions: region name at index %d: name cannot be empty", i+1)
		}
	}
	for i, s := range data.Settlements {
		if s.ID <= 0 || s.RegionID <= 0 {
			return 0, fmt.Errorf("seed regions: invalid settlement ids at index %d: id=%d region_id=%d", i+1, s.ID, s.RegionID)
		}
		if strings.TrimSpace(s.Name) == "" {
			return 0, fmt.Errorf("seed regions: settlement name at index %d: name cannot be empty", i+1)
		}
	}
	for i, p := range data.Pricing {
		if p.RegionID <= 0 {
			return 0, fmt.Errorf("seed regions: invalid pricing region_id at index %d: %d", i+1, p.RegionID)
		}
		if err := p.validate(); err != nil {
			return 0, fmt.Errorf("seed regions: invalid pricing at index %d: %w", i+1, err)
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("seed regions: begin tx: %w", err)
	}
	defer tx.Rollback()

	written := 0

	countryQuery := `
	INSERT INTO countries (id, name, code)
	VALUES ($1, $2, $3)
	ON CONFLICT (id) DO UPDATE
	SET name = EXCLUDED.name, code = EXCLUDED.code;
	`
	for _, c := range data.Countries {
		if _, err := tx.ExecContext(ctx, countryQuery, c.ID, c.Name, c.Code); err != nil {
			return 0, fmt.Errorf("seed regions: upsert country id=%d: %w", c.ID, err)
		}
		written++
	}

	regionQuery := `
	INSERT INTO regions (id, country_id, name, type)
	VALUES ($1, $2, $3, NULLIF($4, ''))
	ON CONFLICT (id) DO UPDATE
	SET country_id = EXCLUDED.country_id, name = EXCLUDED.name, type = EXCLUDED.type;
	`
	for _, r := range data.Regions {
		if _, err := tx.ExecContext(ctx, regionQuery, r.ID, r.CountryID, r.Name, r.Type); err != nil {
			return 0, fmt.Errorf("seed regions: upsert region id=%d: %w", r.ID, err)
		}
		written++
	}

	settlementQuery := `
	INSERT INTO geo_settlements (id, region_id, name)
	VALUES ($1, $2, $3)
	ON CONFLICT (id) DO UPDATE
	SET region_id = EXCLUDED.region_id, name = EXCLUDED.name;
	`
	for _, s := range data.Settlements {
		if _, err := tx.ExecContext(ctx, settlementQuery, s.ID, s.RegionID, s.Name); err != nil {
			return 0, fmt.Errorf("seed regions: upsert settlement id=%d: %w", s.ID, err)
		}
		written++
	}

	pricingQuery := `
	INSERT INTO region_pricing (
		region_id,
		driver_hourly_rate,
		planned_work_hours,
		fuel_price_per_liter,
		fuel_consumption_per_100km,
		depreciation_coefficient,
		warehouse_processing_per_kg,
		service_fee_per_kg,
		delivery_point_cost,
		standard_trip_weight,
		standard_box_length,
		standard_box_width,
		standard_box_height,
		standard_box_max_weight,
		min_points_for_discount,
		discount_step_points,
		initial_discount_percent,
		discount_step_percent
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	ON CONFLICT (region_id) DO UPDATE
	SET driver_hourly_rate = EXCLUDED.driver_hourly_rate,
		planned_work_hours = EXCLUDED.planned_work_hours,
		fuel_price_per_liter = EXCLUDED.fuel_price_per_liter,
		fuel_consumption_per_100km = EXCLUDED.fuel_consumption_per_100km,
		depreciation_coefficient = EXCLUDED.depreciation_coefficient,
		warehouse_processing_per_kg = EXCLUDED.warehouse_processing_per_kg,
		service_fee_per_kg = EXCLUDED.service_fee_per_kg,
		delivery_point_cost = EXCLUDED.delivery_point_cost,
		standard_trip_weight = EXCLUDED.standard_trip_weight,
		standard_box_length = EXCLUDED.standard_box_length,
		standard_box_width = EXCLUDED.standard_box_width,
		standard_box_height = EXCLUDED.standard_box_height,
		standard_box_max_weight = EXCLUDED.standard_box_max_weight,
		min_points_for_discount = EXCLUDED.min_points_for_discount,
		discount_step_points = EXCLUDED.discount_step_points,
		initial_discount_percent = EXCLUDED.initial_discount_percent,
		discount_step_percent = EXCLUDED.discount_step_percent;
	`
	for _, p := range data.Pricing {
		_, err := tx.ExecContext(ctx, pricingQuery,
			p.RegionID,
			p.DriverHourlyRate,
			p.PlannedWorkHours,
			p.FuelPricePerLiter,
			p.FuelConsumptionPer100KM,
			p.DepreciationCoefficient,
			p.WarehouseProcessingPerKG,
			p.ServiceFeePerKG,
			p.DeliveryPointCost,
			p.StandardTripWeightKG,
			p.BoxLengthCM,
			p.BoxWidthCM,
			p.BoxHeightCM,
			p.BoxMaxWeightKG,
			p.MinPointsForDiscount,
			p.DiscountStepPoints,
			p.InitialDiscountPercent,
			p.DiscountStepPercent,
		)
		if err != nil {
			return 0, fmt.Errorf("seed regions: upsert pricing region_id=%d: %w", p.RegionID, err)
		}
		written++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("seed regions: commit tx: %w", err)
	}

	return written, nil
}

type DistributionCenterSeed struct {
	ID        int     `json:"id"`
	RegionID  int     `json:"region_id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address"`
	IsActive  *bool   `json:"is_active"`
}

// Populate distribution centers from a JSON file. Returns the number of
// rows written.
func SeedDistributionCenters(ctx context.Context, db *sql.DB, jsonPath string) (int, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return 0, fmt.Errorf("seed distribution centers: read %q: %w", jsonPath, err)
	}

	var data []DistributionCenterSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return 0, fmt.Errorf("seed distribution centers: parse json: %w", err)
	}

	for i, dc := range data {
		if dc.ID <= 0 || dc.RegionID <= 0 {
			return 0, fmt.Errorf("seed distribution centers: invalid ids at index %d: id=%d region_id=%d", i+1, dc.ID, dc.RegionID)
		}
		if strings.TrimSpace(dc.Name) == "" {
			return 0, fmt.Errorf("seed distribution centers: center name at index %d: name cannot be empty", i+1)
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("seed distribution centers: begin tx: %w", err)
	}
	defer tx.Rollback()

	query := `
	INSERT INTO distribution_centers (id, region_id, name, latitude, longitude, address, is_active)
	VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7)
	ON CONFLICT (id) DO UPDATE
	SET region_id = EXCLUDED.region_id,
		name = EXCLUDED.name,
		latitude = EXCLUDED.latitude,
		longitude = EXCLUDED.longitude,
		address = EXCLUDED.address,
		is_active = EXCLUDED.is_active;
	`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("seed distribution centers: prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, dc := range data {
		active := true
		if dc.IsActive != nil {
			active = *dc.IsActive
		}
		if _, err := stmt.ExecContext(ctx, dc.ID, dc.RegionID, dc.Name, dc.Latitude, dc.Longitude, dc.Address, active); err != nil {
			return 0, fmt.Errorf("seed distribution centers: upsert id=%d: %w", dc.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("seed distribution centers: commit tx: %w", err)
	}

	return len(data), nil
}

type DeliveryPointSeed struct {
	ID           int     `json:"id"`
	SettlementID *int    `json:"settlement_id"`
	Name         string  `json:"name"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	IsActive     *bool   `json:"is_active"`
}

// Populate delivery points from a JSON file. Returns the number of rows
// written.
func SeedDeliveryPoints(ctx context.Context, db *sql.DB, jsonPath string) (int, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return 0, fmt.Errorf("seed delivery points: read %q: %w", jsonPath, err)
	}

	var data []DeliveryPointSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return 0, fmt.Errorf("seed delivery points: parse json: %w", err)
	}

	for i, p := range data {
		if p.ID <= 0 {
			return 0, fmt.Errorf("seed delivery points: invalid id at index %d: %d", i+1, p.ID)
		}
		if strings.TrimSpace(p.Name) == "" {
			return 0, fmt.Errorf("seed delivery points: point name at index %d: name cannot be empty", i+1)
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("seed delivery points: begin tx: %w", err)
	}
	defer tx.Rollback()

	query := `
	INSERT INTO geo_delivery_points (id, settlement_id, name, latitude, longitude, is_active)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (id) DO UPDATE
	SET settlement_id = EXCLUDED.settlement_id,
		name = EXCLUDED.name,
		latitude = EXCLUDED.latitude,
		longitude = EXCLUDED.longitude,
		is_active = EXCLUDED.is_active;
	`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("seed delivery points: prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, p := range data {
		active := true
		if p.IsActive != nil {
			active = *p.IsActive
		}
		if _, err := stmt.ExecContext(ctx, p.ID, p.SettlementID, p.Name, p.Latitude, p.Longitude, active); err != nil {
			return 0, fmt.Errorf("seed delivery points: upsert id=%d: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("seed delivery points: commit tx: %w", err)
	}

	return len(data), nil
}

// Import sector polygons for one region from a GeoJSON FeatureCollection.
// The region's existing sectors are replaced wholesale, which keeps reruns
// idempotent without a natural key. Features that are not polygons are
// skipped. Returns the number of sectors written.
func ImportSectors(ctx context.Context, db *sql.DB, geojsonPath string, regionID int) (int, error) {
	bytes, err := os.ReadFile(geojsonPath)
	if err != nil {
		return 0, fmt.Errorf("import sectors: read %q: %w", geojsonPath, err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(bytes)
	if err != nil {
		return 0, fmt.Errorf("import sectors: parse geojson: %w", err)
	}

	var regionName string
	err = db.QueryRowContext(ctx, `SELECT name FROM regions WHERE id = $1;`, regionID).Scan(&regionName)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("import sectors: region %d not found", regionID)
	}
	if err != nil {
		return 0, fmt.Errorf("import sectors: query region %d: %w", regionID, err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("import sectors: begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM geo_sectors WHERE region_id = $1;`, regionID); err != nil {
		return 0, fmt.Errorf("import sectors: delete old sectors: %w", err)
	}

	query := `
	INSERT INTO geo_sectors (region_id, name, description, boundary)
	VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), $4);
	`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("import sectors: prepare insert: %w", err)
	}
	defer stmt.Close()

	imported := 0
	for i, feature := range fc.Features {
		switch feature.Geometry.(type) {
		case orb.Polygon, orb.MultiPolygon:
		default:
			continue
		}

		boundary, err := geojson.NewGeometry(feature.Geometry).MarshalJSON()
		if err != nil {
			return 0, fmt.Errorf("import sectors: encode boundary of feature #%d: %w", i+1, err)
		}

		name := feature.Properties.MustString("name", "")
		description := feature.Properties.MustString("description", "")

		if _, err := stmt.ExecContext(ctx, regionID, name, description, string(boundary)); err != nil {
			return 0, fmt.Errorf("import sectors: insert feature #%d: %w", i+1, err)
		}
		imported++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("import sectors: commit tx: %w", err)
	}

	return imported, nil
}
