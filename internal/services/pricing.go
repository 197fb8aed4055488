package services

import (
	"github.com/shopspring/decimal"

	"github.com/aliaksandr-aliakseyeu/bananay-calc/internal/domain"
)

var (
	one     = decimal.NewFromInt(1)
	two     = decimal.NewFromInt(2)
	hundred = decimal.NewFromInt(100)
)

// Itemized cost of one standard trip for a region.
// Fields hold unrounded intermediates; rounding to 2 decimals happens at
// reporting boundaries so downstream math keeps full precision.
type CostBreakdown struct {
	DriverCost       decimal.Decimal
	CompanyRevenue   decimal.Decimal
	FuelCost         decimal.Decimal
	TransportCost    decimal.Decimal
	WarehouseCost    decimal.Decimal
	DeliveryCost     decimal.Decimal
	TotalTripCost    decimal.Decimal
	NumStandardBoxes decimal.Decimal
	StandardBoxCost  decimal.Decimal
}

// CalculateTripCost prices one standard trip: fixed crew and warehouse
// components, fuel for a round trip over the routed distance, and the
// per-sector delivery component with its volume discount.
func CalculateTripCost(tariff *domain.RegionTariff, distanceKM float64, numPoints, numSectors int) CostBreakdown {
	driverCost := tariff.PlannedWorkHours.Mul(tariff.DriverHourlyRate)
	companyRevenue := tariff.ServiceFeePerKG.Mul(tariff.StandardTripWeightKG)

	roundTripKM := decimal.NewFromFloat(distanceKM).Mul(two)
	fuelLiters := tariff.FuelConsumptionPer100KM.Div(hundred).Mul(roundTripKM)
	fuelCost := fuelLiters.Mul(tariff.FuelPricePerLiter)
	transportCost := fuelCost.Mul(tariff.DepreciationCoefficient)

	warehouseCost := tariff.WarehouseProcessingPerKG.Mul(tariff.StandardTripWeightKG)

	deliveryCost := deliveryComponent(tariff, numPoints, numSectors)

	totalTripCost := driverCost.
		Add(companyRevenue).
		Add(transportCost).
		Add(warehouseCost).
		Add(deliveryCost)

	numStandardBoxes := tariff.StandardTripWeightKG.Div(tariff.BoxMaxWeightKG)
	standardBoxCost := totalTripCost.Div(numStandardBoxes)

	return CostBreakdown{
		DriverCost:       driverCost,
		CompanyRevenue:   companyRevenue,
		FuelCost:         fuelCost,
		TransportCost:    transportCost,
		WarehouseCost:    warehouseCost,
		DeliveryCost:     deliveryCost,
		TotalTripCost:    totalTripCost,
		NumStandardBoxes: numStandardBoxes,
		StandardBoxCost:  standardBoxCost,
	}
}

// Below the discount threshold the delivery component is flat per sector.
// Above it, each full step of extra points raises the discount percent,
// capped at 100 so the component never goes negative.
func deliveryComponent(tariff *domain.RegionTariff, numPoints, numSectors int) decimal.Decimal {
	baseCost := decimal.NewFromInt(int64(numSectors)).
		Mul(tariff.DeliveryPointCost).
		Mul(decimal.NewFromInt(int64(tariff.MinPointsForDiscount)))

	if numPoints < tariff.MinPointsForDiscount {
		return baseCost
	}

	steps := (numPoints - tariff.MinPointsForDiscount) / tariff.DiscountStepPoints
	percent := tariff.InitialDiscountPercent.
		Add(decimal.NewFromInt(int64(steps)).Mul(tariff.DiscountStepPercent))
	if percent.GreaterThan(hundred) {
		percent = hundred
	}

	return baseCost.Mul(one.Sub(percent.Div(hundred)))
}

// FinalizeCosts converts a standard-box delivery cost into customer prices:
// the per-item price rounded half-up to 2 decimals, and the supplier-box
// price derived from that rounded per-item price.
func FinalizeCosts(standardBoxCost decimal.Decimal, itemsInStandardBox, itemsPerSupplierBox int) (costPerItem, costPerSupplierBox decimal.Decimal) {
	costPerItem = standardBoxCost.DivRound(decimal.NewFromInt(int64(itemsInStandardBox)), 2)
	costPerSupplierBox = costPerItem.Mul(decimal.NewFromInt(int64(itemsPerSupplierBox))).Round(2)
	return costPerItem, costPerSupplierBox
}
