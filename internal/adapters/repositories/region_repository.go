package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aliaksandr-aliakseyeu/bananay-calc/internal/domain"
	"github.com/aliaksandr-aliakseyeu/bananay-calc/internal/ports"
)

// Postgres-backed implementation of the RegionRepository port.
type SQLRegionRepository struct{ DB *sql.DB }

func NewSQLRegionRepository(db *sql.DB) *SQLRegionRepository {
	return &SQLRegionRepository{DB: db}
}

// List regions with their countries, ordered by region name. A non-nil
// countryID narrows the list to one country.
func (s *SQLRegionRepository) ListRegions(ctx context.Context, countryID *int) ([]ports.RegionSummary, error) {
	query := `
	SELECT
		r.id,
		r.country_id,
		r.name,
		COALESCE(r.type, ''),
		c.id,
		c.name,
		c.code
	FROM regions r
	JOIN countries c ON c.id = r.country_id
	WHERE $1::int IS NULL OR r.country_id = $1
	ORDER BY r.name;
	`
	rows, err := s.DB.QueryContext(ctx, query, countryID)
	if err != nil {
		return nil, fmt.Errorf("list regions: query: %w", err)
	}
	defer rows.Close()

	regions := make([]ports.RegionSummary, 0, 16)
	for rows.Next() {
		var r ports.RegionSummary
		err := rows.Scan(
			&r.Region.ID,
			&r.Region.CountryID,
			&r.Region.Name,
			&r.Region.Type,
			&r.Country.ID,
			&r.Country.Name,
			&r.Country.Code,
		)
		if err != nil {
			return nil, fmt.Errorf("list regions: scan row: %w", err)
		}
		regions = append(regions, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list regions: row iteration: %w", err)
	}

	return regions, nil
}

// Retrieve one region with its country, distribution centers, pricing and
// stats; (nil, nil) when the region does not exist. Stats count all related
// rows via scalar subqueries, one round-trip.
func (s *SQLRegionRepository) GetRegion(ctx context.Context, regionID int) (*ports.RegionDetail, error) {
	query := `
	SELECT
		r.id,
		r.country_id,
		r.name,
		COALESCE(r.type, ''),
		c.id,
		c.name,
		c.code,
		(SELECT COUNT(*) FROM distribution_centers dc WHERE dc.region_id = r.id),
		(SELECT COUNT(*) FROM geo_sectors gs WHERE gs.region_id = r.id),
		(SELECT COUNT(*) FROM geo_settlements st WHERE st.region_id = r.id)
	FROM regions r
	JOIN countries c ON c.id = r.country_id
	WHERE r.id = $1;
	`
	var detail ports.RegionDetail
	err := s.DB.QueryRowContext(ctx, query, regionID).Scan(
		&detail.Region.ID,
		&detail.Region.CountryID,
		&detail.Region.Name,
		&detail.Region.Type,
		&detail.Country.ID,
		&detail.Country.Name,
		&detail.Country.Code,
		&detail.Stats.DistributionCenters,
		&detail.Stats.Sectors,
		&detail.Stats.Settlements,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get region: scan row: %w", err)
	}

	detail.Centers, err = s.regionCenters(ctx, regionID)
	if err != nil {
		return nil, err
	}

	detail.Pricing, err = queryTariff(ctx, s.DB, regionID)
	if err != nil {
		return nil, fmt.Errorf("get region: query region_pricing: %w", err)
	}

	return &detail, nil
}

// All centers of the region, active or not; the detail endpoint reports both.
func (s *SQLRegionRepository) regionCenters(ctx context.Context, regionID int) ([]domain.DistributionCenter, error) {
	query := `
	SELECT
		id,
		region_id,
		name,
		latitude,
		longitude,
		COALESCE(address, ''),
		is_active
	FROM distribution_centers
	WHERE region_id = $1
	ORDER BY id;
	`
	rows, err := s.DB.QueryContext(ctx, query, regionID)
	if err != nil {
		return nil, fmt.Errorf("get region: query distribution_centers: %w", err)
	}
	defer rows.Close()

	centers := make([]domain.DistributionCenter, 0, 8)
	for rows.Next() {
		var dc domain.DistributionCenter
		err := rows.Scan(&dc.ID, &dc.RegionID, &dc.Name, &dc.Location.Lat, &dc.Location.Lon, &dc.Address, &dc.IsActive)
		if err != nil {
			return nil, fmt.Errorf("get region: scan center row: %w", err)
		}
		centers = append(centers, dc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get region: center row iteration: %w", err)
	}

	return centers, nil
}
