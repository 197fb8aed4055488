package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/aliaksandr-aliakseyeu/bananay-calc/internal/domain"
	"github.com/aliaksandr-aliakseyeu/bananay-calc/internal/platform/obs"
	"github.com/aliaksandr-aliakseyeu/bananay-calc/internal/ports"
)

// Calculator orchestrates delivery cost calculations over region tariffs,
// sector geometry and distribution centers. Repositories are read-only from
// its perspective; every calculation re-reads the tariff.
type Calculator struct {
	tariffs  ports.TariffReader
	centers  ports.CenterRepository
	geometry ports.GeometryRepository
	resolver *Resolver
	log      *logrus.Logger
}

func NewCalculator(
	tariffs ports.TariffReader,
	centers ports.CenterRepository,
	geometry ports.GeometryRepository,
	resolver *Resolver,
	log *logrus.Logger,
) *Calculator {
	return &Calculator{
		tariffs:  tariffs,
		centers:  centers,
		geometry: geometry,
		resolver: resolver,
		log:      log,
	}
}

// Input for a calculation against concrete delivery points.
type ByPointsRequest struct {
	RegionID         int
	Supplier         domain.Coordinates
	Product          domain.ProductSpec
	DeliveryPointIDs []int
}

// Input for an estimate. A nil NumSectors means "all sectors in the region".
type EstimateRequest struct {
	RegionID   int
	Supplier   domain.Coordinates
	Product    domain.ProductSpec
	NumPoints  int
	NumSectors *int
}

// CalculateByPoints prices a delivery across the given delivery points.
// Points outside the region's sectors (or inactive, or unknown) are ignored;
// at least one point must remain or the calculation fails.
func (c *Calculator) CalculateByPoints(ctx context.Context, req ByPointsRequest) (_ *domain.Calculation, err error) {
	defer obs.Time(ctx, "calculator.by_points")(&err)

	tariff, err := c.getTariff(ctx, req.RegionID)
	if err != nil {
		return nil, err
	}

	matches, err := c.geometry.ResolvePoints(ctx, req.RegionID, req.DeliveryPointIDs)
	if err != nil {
		return nil, fmt.Errorf("calculate by points: resolve delivery points: %w", err)
	}

	pointIDs := make(map[int]struct{})
	sectorIDs := make(map[int]struct{})
	for _, m := range matches {
		pointIDs[m.PointID] = struct{}{}
		sectorIDs[m.SectorID] = struct{}{}
	}

	numPoints := len(pointIDs)
	numSectors := len(sectorIDs)
	numIgnored := len(req.DeliveryPointIDs) - numPoints

	c.log.WithFields(logrus.Fields{
		"region_id": req.RegionID,
		"valid":     numPoints,
		"matches":   len(matches),
		"ignored":   numIgnored,
		"sectors":   numSectors,
	}).Info("delivery points resolved")

	if numPoints == 0 {
		return nil, validationErrorf("no valid delivery points provided")
	}

	selected, err := c.selectCenter(ctx, req.Supplier)
	if err != nil {
		return nil, err
	}

	result, err := c.price(tariff, req.Product, selected, numPoints, numSectors)
	if err != nil {
		return nil, err
	}

	result.DeliveryPointsUsed = numPoints
	result.DeliveryPointsIgnored = numIgnored
	result.SectorsCount = numSectors

	return result, nil
}

// CalculateEstimate prices a delivery from caller-supplied point and sector
// counts instead of concrete delivery points.
func (c *Calculator) CalculateEstimate(ctx context.Context, req EstimateRequest) (_ *domain.Calculation, err error) {
	defer obs.Time(ctx, "calculator.estimate")(&err)

	tariff, err := c.getTariff(ctx, req.RegionID)
	if err != nil {
		return nil, err
	}

	var numSectors int
	if req.NumSectors != nil {
		numSectors = *req.NumSectors
	} else {
		numSectors, err = c.geometry.CountSectors(ctx, req.RegionID)
		if err != nil {
			return nil, fmt.Errorf("calculate estimate: count sectors: %w", err)
		}
		c.log.WithFields(logrus.Fields{
			"region_id": req.RegionID,
			"sectors":   numSectors,
		}).Info("using all sectors for region")
	}

	selected, err := c.selectCenter(ctx, req.Supplier)
	if err != nil {
		return nil, err
	}

	return c.price(tariff, req.Product, selected, req.NumPoints, numSectors)
}

func (c *Calculator) getTariff(ctx context.Context, regionID int) (*domain.RegionTariff, error) {
	tariff, err := c.tariffs.GetTariff(ctx, regionID)
	if err != nil {
		return nil, fmt.Errorf("get tariff for region %d: %w", regionID, err)
	}
	if tariff == nil {
		return nil, validationErrorf("pricing not configured for region %d", regionID)
	}
	return tariff, nil
}

func (c *Calculator) selectCenter(ctx context.Context, supplier domain.Coordinates) (*SelectedCenter, error) {
	centers, err := c.centers.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list distribution centers: %w", err)
	}

	selected := SelectNearestCenter(ctx, c.resolver, supplier, centers)
	if selected == nil {
		return nil, validationErrorf("no distribution centers found")
	}

	c.log.WithFields(logrus.Fields{
		"dc":          selected.Center.Name,
		"distance_km": fmt.Sprintf("%.2f", selected.DistanceKM),
		"method":      selected.Method,
	}).Info("selected nearest distribution center")

	return selected, nil
}

func (c *Calculator) price(
	tariff *domain.RegionTariff,
	product domain.ProductSpec,
	selected *SelectedCenter,
	numPoints, numSectors int,
) (*domain.Calculation, error) {
	fitting := FitProduct(tariff, product)

	c.log.WithFields(logrus.Fields{
		"by_dimensions": fitting.ItemsByDimensions,
		"by_weight":     fitting.ItemsByWeight,
		"final":         fitting.ItemsInStandardBox,
	}).Info("product fitting")

	if fitting.ItemsInStandardBox == 0 {
		return nil, validationErrorf("product does not fit in standard box")
	}

	costs := CalculateTripCost(tariff, selected.DistanceKM, numPoints, numSectors)
	costPerItem, costPerSupplierBox := FinalizeCosts(costs.StandardBoxCost, fitting.ItemsInStandardBox, product.ItemsPerSupplierBox)

	return &domain.Calculation{
		ItemsInStandardBox: fitting.ItemsInStandardBox,
		CostPerItem:        costPerItem,
		CostPerSupplierBox: costPerSupplierBox,
		DistanceToDCKM:     decimal.NewFromFloat(selected.DistanceKM).Round(2),
		NearestDCName:      selected.Center.Name,
		DistanceMethod:     selected.Method,
	}, nil
}
