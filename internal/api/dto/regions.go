package dto

import (
	"github.com/shopspring/decimal"

	"github.com/aliaksandr-aliakseyeu/bananay-calc/internal/domain"
	"github.com/aliaksandr-aliakseyeu/bananay-calc/internal/ports"
)

type CountryResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

type RegionSummaryResponse struct {
	ID      int             `json:"id"`
	Name    string          `json:"name"`
	Type    string          `json:"type,omitempty"`
	Country CountryResponse `json:"country"`
}

type DistributionCenterBrief struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Address  string `json:"address,omitempty"`
	IsActive bool   `json:"is_active"`
}

type StandardBoxInfo struct {
	Length    int             `json:"length"`
	Width     int             `json:"width"`
	Height    int             `json:"height"`
	MaxWeight decimal.Decimal `json:"max_weight"`
}

type DiscountInfo struct {
	MinPoints      int             `json:"min_points"`
	StepPoints     int             `json:"step_points"`
	InitialPercent decimal.Decimal `json:"initial_percent"`
	StepPercent    decimal.Decimal `json:"step_percent"`
}

type RegionPricingResponse struct {
	DriverHourlyRate         decimal.Decimal `json:"driver_hourly_rate"`
	PlannedWorkHours         decimal.Decimal `json:"planned_work_hours"`
	FuelPricePerLiter        decimal.Decimal `json:"fuel_price_per_liter"`
	FuelConsumptionPer100KM  decimal.Decimal `json:"fuel_consumption_per_100km"`
	DepreciationCoefficient  decimal.Decimal `json:"depreciation_coefficient"`
	WarehouseProcessingPerKG decimal.Decimal `json:"warehouse_processing_per_kg"`
	ServiceFeePerKG          decimal.Decimal `json:"service_fee_per_kg"`
	DeliveryPointCost        decimal.Decimal `json:"delivery_point_cost"`
	StandardTripWeight       decimal.Decimal `json:"standard_trip_weight"`
	StandardBox              StandardBoxInfo `json:"standard_box"`
	Discount                 DiscountInfo    `json:"discount"`
}

// NewRegionPricingResponse flattens a tariff into the nested wire shape.
func NewRegionPricingResponse(t *domain.RegionTariff) RegionPricingResponse {
	return RegionPricingResponse{
		DriverHourlyRate:         t.DriverHourlyRate,
		PlannedWorkHours:         t.PlannedWorkHours,
		FuelPricePerLiter:        t.FuelPricePerLiter,
		FuelConsumptionPer100KM:  t.FuelConsumptionPer100KM,
		DepreciationCoefficient:  t.DepreciationCoefficient,
		WarehouseProcessingPerKG: t.WarehouseProcessingPerKG,
		ServiceFeePerKG:          t.ServiceFeePerKG,
		DeliveryPointCost:        t.DeliveryPointCost,
		StandardTripWeight:       t.StandardTripWeightKG,
		StandardBox: StandardBoxInfo{
			Length:    t.BoxLengthCM,
			Width:     t.BoxWidthCM,
			Height:    t.BoxHeightCM,
			MaxWeight: t.BoxMaxWeightKG,
		},
		Discount: DiscountInfo{
			MinPoints:      t.MinPointsForDiscount,
			StepPoints:     t.DiscountStepPoints,
			InitialPercent: t.InitialDiscountPercent,
			StepPercent:    t.DiscountStepPercent,
		},
	}
}

type RegionStatsResponse struct {
	DistributionCentersCount int `json:"distribution_centers_count"`
	SectorsCount             int `json:"sectors_count"`
	SettlementsCount         int `json:"settlements_count"`
}

type RegionDetailResponse struct {
	ID                  int                       `json:"id"`
	Name                string                    `json:"name"`
	Type                string                    `json:"type,omitempty"`
	Country             CountryResponse           `json:"country"`
	DistributionCenters []DistributionCenterBrief `json:"distribution_centers"`
	Pricing             *RegionPricingResponse    `json:"pricing"`
	Stats               RegionStatsResponse       `json:"stats"`
}

type StandardBoxUpdate struct {
	Length    *int             `json:"length" validate:"omitempty,gt=0"`
	Width     *int             `json:"width" validate:"omitempty,gt=0"`
	Height    *int             `json:"height" validate:"omitempty,gt=0"`
	MaxWeight *decimal.Decimal `json:"max_weight" validate:"omitempty,gt=0"`
}

type DiscountUpdate struct {
	MinPoints      *int             `json:"min_points" validate:"omitempty,gt=0"`
	StepPoints     *int             `json:"step_points" validate:"omitempty,gt=0"`
	InitialPercent *decimal.Decimal `json:"initial_percent" validate:"omitempty,gte=0,lte=100"`
	StepPercent    *decimal.Decimal `json:"step_percent" validate:"omitempty,gte=0,lte=100"`
}

// Partial tariff update; absent fields stay unchanged.
type RegionPricingUpdateRequest struct {
	DriverHourlyRate         *decimal.Decimal   `json:"driver_hourly_rate" validate:"omitempty,gt=0"`
	PlannedWorkHours         *decimal.Decimal   `json:"planned_work_hours" validate:"omitempty,gt=0"`
	FuelPricePerLiter        *decimal.Decimal   `json:"fuel_price_per_liter" validate:"omitempty,gt=0"`
	FuelConsumptionPer100KM  *decimal.Decimal   `json:"fuel_consumption_per_100km" validate:"omitempty,gt=0"`
	DepreciationCoefficient  *decimal.Decimal   `json:"depreciation_coefficient" validate:"omitempty,gt=0"`
	WarehouseProcessingPerKG *decimal.Decimal   `json:"warehouse_processing_per_kg" validate:"omitempty,gte=0"`
	ServiceFeePerKG          *decimal.Decimal   `json:"service_fee_per_kg" validate:"omitempty,gte=0"`
	DeliveryPointCost        *decimal.Decimal   `json:"delivery_point_cost" validate:"omitempty,gt=0"`
	StandardTripWeight       *decimal.Decimal   `json:"standard_trip_weight" validate:"omitempty,gt=0"`
	StandardBox              *StandardBoxUpdate `json:"standard_box"`
	Discount                 *DiscountUpdate    `json:"discount"`
}

// Patch translates the request into repository field updates.
func (r RegionPricingUpdateRequest) Patch() ports.TariffPatch {
	patch := ports.TariffPatch{
		DriverHourlyRate:         r.DriverHourlyRate,
		PlannedWorkHours:         r.PlannedWorkHours,
		FuelPricePerLiter:        r.FuelPricePerLiter,
		FuelConsumptionPer100KM:  r.FuelConsumptionPer100KM,
		DepreciationCoefficient:  r.DepreciationCoefficient,
		WarehouseProcessingPerKG: r.WarehouseProcessingPerKG,
		ServiceFeePerKG:          r.ServiceFeePerKG,
		DeliveryPointCost:        r.DeliveryPointCost,
		StandardTripWeightKG:     r.StandardTripWeight,
	}

	if r.StandardBox != nil {
		patch.BoxLengthCM = r.StandardBox.Length
		patch.BoxWidthCM = r.StandardBox.Width
		patch.BoxHeightCM = r.StandardBox.Height
		patch.BoxMaxWeightKG = r.StandardBox.MaxWeight
	}
	if r.Discount != nil {
		patch.MinPointsForDiscount = r.Discount.MinPoints
		patch.DiscountStepPoints = r.Discount.StepPoints
		patch.InitialDiscountPercent = r.Discount.InitialPercent
		patch.DiscountStepPercent = r.Discount.StepPercent
	}

	return patch
}
