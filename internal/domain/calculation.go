package domain

import "github.com/shopspring/decimal"

// Distance methods reported in calculation results.
const (
	MethodOpenRoute = "openroute_api"
	MethodYandex    = "yandex_api"
	MethodFallback  = "fallback_coefficient"
)

// Result of a delivery cost calculation.
// Point counters are populated in by-points mode only; an estimate reports
// costs and distance without them.
type Calculation struct {
	ItemsInStandardBox int
	CostPerItem        decimal.Decimal
	CostPerSupplierBox decimal.Decimal

	DeliveryPointsUsed    int
	DeliveryPointsIgnored int
	SectorsCount          int

	DistanceToDCKM decimal.Decimal
	NearestDCName  string
	DistanceMethod string
}
