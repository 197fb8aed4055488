package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/aliaksandr-aliakseyeu/bananay-calc/internal/domain"
)

// Port: a boundary for reading per-region pricing.
type TariffReader interface {
	// Retrieve the tariff for a region; (nil, nil) when none is configured.
	GetTariff(ctx context.Context, regionID int) (*domain.RegionTariff, error)
}

// Extension of TariffReader for the pricing management surface.
type TariffRepository interface {
	TariffReader
	// Apply a partial update and return the updated tariff.
	// (nil, nil) when the region has no pricing row.
	UpdateTariff(ctx context.Context, regionID int, patch TariffPatch) (*domain.RegionTariff, error)
}

// Optional tariff changes; nil fields stay unchanged.
type TariffPatch struct {
	DriverHourlyRate         *decimal.Decimal
	PlannedWorkHours         *decimal.Decimal
	FuelPricePerLiter        *decimal.Decimal
	FuelConsumptionPer100KM  *decimal.Decimal
	DepreciationCoefficient  *decimal.Decimal
	WarehouseProcessingPerKG *decimal.Decimal
	ServiceFeePerKG          *decimal.Decimal
	DeliveryPointCost        *decimal.Decimal
	StandardTripWeightKG     *decimal.Decimal

	BoxLengthCM    *int
	BoxWidthCM     *int
	BoxHeightCM    *int
	BoxMaxWeightKG *decimal.Decimal

	MinPointsForDiscount   *int
	DiscountStepPoints     *int
	InitialDiscountPercent *decimal.Decimal
	DiscountStepPercent    *decimal.Decimal
}

// Port: a boundary for retrieving DistributionCenter entities.
type CenterRepository interface {
	// Retrieve all active distribution centers.
	ListActive(ctx context.Context) ([]domain.DistributionCenter, error)
}

// One delivery point together with one sector containing it. A point inside
// overlapping sectors yields one pair per sector.
type PointSector struct {
	PointID  int
	SectorID int
}

// Port: a boundary for sector membership checks.
type GeometryRepository interface {
	// Resolve which of the given active delivery points fall inside the
	// region's sectors.
	ResolvePoints(ctx context.Context, regionID int, pointIDs []int) ([]PointSector, error)
	// Count sectors configured for a region.
	CountSectors(ctx context.Context, regionID int) (int, error)
}

type RegionSummary struct {
	Region  domain.Region
	Country domain.Country
}

type RegionStats struct {
	DistributionCenters int
	Sectors             int
	Settlements         int
}

// Region with everything the detail endpoint reports. Pricing is nil when
// the region has no tariff configured.
type RegionDetail struct {
	Region  domain.Region
	Country domain.Country
	Centers []domain.DistributionCenter
	Pricing *domain.RegionTariff
	Stats   RegionStats
}

// Port: a boundary for region reference data.
type RegionRepository interface {
	// List regions with their countries, optionally filtered by country.
	ListRegions(ctx context.Context, countryID *int) ([]RegionSummary, error)
	// Retrieve one region with centers, pricing and stats; (nil, nil) when absent.
	GetRegion(ctx context.Context, regionID int) (*RegionDetail, error)
}
