package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/aliaksandr-aliakseyeu/bananay-calc/internal/domain"
	"github.com/aliaksandr-aliakseyeu/bananay-calc/internal/ports"
)

// Postgres-backed implementation of the TariffRepository port.
type SQLTariffRepository struct{ DB *sql.DB }

func NewSQLTariffRepository(db *sql.DB) *SQLTariffRepository {
	return &SQLTariffRepository{DB: db}
}

// Column order matches scanTariff.
const tariffColumns = `
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
		discount_step_percent`

func scanTariff(row *sql.Row) (*domain.RegionTariff, error) {
	var t domain.RegionTariff
	err := row.Scan(
		&t.RegionID,
		&t.DriverHourlyRate,
		&t.PlannedWorkHours,
		&t.FuelPricePerLiter,
		&t.FuelConsumptionPer100KM,
		&t.DepreciationCoefficient,
		&t.WarehouseProcessingPerKG,
		&t.ServiceFeePerKG,
		&t.DeliveryPointCost,
		&t.StandardTripWeightKG,
		&t.BoxLengthCM,
		&t.BoxWidthCM,
		&t.BoxHeightCM,
		&t.BoxMaxWeightKG,
		&t.MinPointsForDiscount,
		&t.DiscountStepPoints,
		&t.InitialDiscountPercent,
		&t.DiscountStepPercent,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// queryTariff reads one region's pricing row; (nil, nil) when none exists.
// Shared with the region detail query.
func queryTariff(ctx context.Context, db *sql.DB, regionID int) (*domain.RegionTariff, error) {
	query := `
	SELECT` + tariffColumns + `
	FROM region_pricing
	WHERE region_id = $1;
	`
	tariff, err := scanTariff(db.QueryRowContext(ctx, query, regionID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return tariff, nil
}

// Retrieve the tariff configured for a region; (nil, nil) when absent.
func (s *SQLTariffRepository) GetTariff(ctx context.Context, regionID int) (*domain.RegionTariff, error) {
	tariff, err := queryTariff(ctx, s.DB, regionID)
	if err != nil {
		return nil, fmt.Errorf("get tariff: query region_pricing: %w", err)
	}
	return tariff, nil
}

// Apply a partial tariff update in a single UPDATE and return the updated
// row; (nil, nil) when the region has no pricing configured. An empty patch
// degrades to a plain read.
func (s *SQLTariffRepository) UpdateTariff(ctx context.Context, regionID int, patch ports.TariffPatch) (*domain.RegionTariff, error) {
	set := make([]string, 0, 17)
	args := make([]any, 0, 18)

	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.DriverHourlyRate != nil {
		add("driver_hourly_rate", *patch.DriverHourlyRate)
	}
	if patch.PlannedWorkHours != nil {
		add("planned_work_hours", *patch.PlannedWorkHours)
	}
	if patch.FuelPricePerLiter != nil {
		add("fuel_price_per_liter", *patch.FuelPricePerLiter)
	}
	if patch.FuelConsumptionPer100KM != nil {
		add("fuel_consumption_per_100km", *patch.FuelConsumptionPer100KM)
	}
	if patch.DepreciationCoefficient != nil {
		add("depreciation_coefficient", *patch.DepreciationCoefficient)
	}
	if patch.WarehouseProcessingPerKG != nil {
		add("warehouse_processing_per_kg", *patch.WarehouseProcessingPerKG)
	}
	if patch.ServiceFeePerKG != nil {
		add("service_fee_per_kg", *patch.ServiceFeePerKG)
	}
	if patch.DeliveryPointCost != nil {
		add("delivery_point_cost", *patch.DeliveryPointCost)
	}
	if patch.StandardTripWeightKG != nil {
		add("standard_trip_weight", *patch.StandardTripWeightKG)
	}
	if patch.BoxLengthCM != nil {
		add("standard_box_length", *patch.BoxLengthCM)
	}
	if patch.BoxWidthCM != nil {
		add("standard_box_width", *patch.BoxWidthCM)
	}
	if patch.BoxHeightCM != nil {
		add("standard_box_height", *patch.BoxHeightCM)
	}
	if patch.BoxMaxWeightKG != nil {
		add("standard_box_max_weight", *patch.BoxMaxWeightKG)
	}
	if patch.MinPointsForDiscount != nil {
		add("min_points_for_discount", *patch.MinPointsForDiscount)
	}
	if patch.DiscountStepPoints != nil {
		add("discount_step_points", *patch.DiscountStepPoints)
	}
	if patch.InitialDiscountPercent != nil {
		add("initial_discount_percent", *patch.InitialDiscountPercent)
	}
	if patch.DiscountStepPercent != nil {
		add("discount_step_percent", *patch.DiscountStepPercent)
	}

	if len(set) == 0 {
		return s.GetTariff(ctx, regionID)
	}

	args = append(args, regionID)
	query := fmt.Sprintf(`
	UPDATE region_pricing
	SET %s
	WHERE region_id = $%d
	RETURNING`+tariffColumns+`;
	`, strings.Join(set, ", "), len(args))

	tariff, err := scanTariff(s.DB.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update tariff: update region_pricing: %w", err)
	}
	return tariff, nil
}
