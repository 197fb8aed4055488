package domain

import "github.com/shopspring/decimal"

// Per-region pricing configuration driving every cost calculation.
// Monetary amounts and rates are exact decimals; box dimensions and discount
// thresholds are whole numbers. A region has at most one tariff.
type RegionTariff struct {
	RegionID int

	DriverHourlyRate         decimal.Decimal
	PlannedWorkHours         decimal.Decimal
	FuelPricePerLiter        decimal.Decimal
	FuelConsumptionPer100KM  decimal.Decimal
	DepreciationCoefficient  decimal.Decimal
	WarehouseProcessingPerKG decimal.Decimal
	ServiceFeePerKG          decimal.Decimal
	DeliveryPointCost        decimal.Decimal
	StandardTripWeightKG     decimal.Decimal

	BoxLengthCM    int
	BoxWidthCM     int
	BoxHeightCM    int
	BoxMaxWeightKG decimal.Decimal

	MinPointsForDiscount   int
	DiscountStepPoints     int
	InitialDiscountPercent decimal.Decimal
	DiscountStepPercent    decimal.Decimal
}
