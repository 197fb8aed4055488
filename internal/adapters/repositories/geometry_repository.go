package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/aliaksandr-aliakseyeu/bananay-calc/internal/domain"
	"github.com/aliaksandr-aliakseyeu/bananay-calc/internal/ports"
)

// Postgres-backed implementation of the GeometryRepository port. Sector
// boundaries are stored as GeoJSON jsonb; containment runs in-process.
type SQLGeometryRepository struct{ DB *sql.DB }

func NewSQLGeometryRepository(db *sql.DB) *SQLGeometryRepository {
	return &SQLGeometryRepository{DB: db}
}

// Resolve which of the given active delivery points fall inside the region's
// sectors. A point inside several sectors yields one pair per sector.
func (s *SQLGeometryRepository) ResolvePoints(ctx context.Context, regionID int, pointIDs []int) ([]ports.PointSector, error) {
	if len(pointIDs) == 0 {
		return nil, nil
	}

	sectors, err := s.regionSectors(ctx, regionID)
	if err != nil {
		return nil, err
	}
	if len(sectors) == 0 {
		return nil, nil
	}

	query := `
	SELECT
		id,
		latitude,
		longitude
	FROM geo_delivery_points
	WHERE is_active AND id = ANY($1::int4[]);
	`
	rows, err := s.DB.QueryContext(ctx, query, pointIDs)
	if err != nil {
		return nil, fmt.Errorf("resolve points: query geo_delivery_points: %w", err)
	}
	defer rows.Close()

	matches := make([]ports.PointSector, 0, len(pointIDs))
	for rows.Next() {
		var (
			id  int
			loc domain.Coordinates
		)
		if err := rows.Scan(&id, &loc.Lat, &loc.Lon); err != nil {
			return nil, fmt.Errorf("resolve points: scan row: %w", err)
		}

		for _, sector := range sectors {
			if sector.Contains(loc) {
				matches = append(matches, ports.PointSector{PointID: id, SectorID: sector.ID})
			}
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("resolve points: row iteration: %w", err)
	}

	return matches, nil
}

// Count sectors configured for a region.
func (s *SQLGeometryRepository) CountSectors(ctx context.Context, regionID int) (int, error) {
	query := `
	SELECT COUNT(*)
	FROM geo_sectors
	WHERE region_id = $1;
	`
	var n int
	if err := s.DB.QueryRowContext(ctx, query, regionID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count sectors: query geo_sectors: %w", err)
	}
	return n, nil
}

func (s *SQLGeometryRepository) regionSectors(ctx context.Context, regionID int) ([]domain.Sector, error) {
	query := `
	SELECT
		id,
		region_id,
		COALESCE(name, ''),
		COALESCE(description, ''),
		boundary
	FROM geo_sectors
	WHERE region_id = $1
	ORDER BY id;
	`
	rows, err := s.DB.QueryContext(ctx, query, regionID)
	if err != nil {
		return nil, fmt.Errorf("load sectors: query geo_sectors: %w", err)
	}
	defer rows.Close()

	sectors := make([]domain.Sector, 0, 16)
	for rows.Next() {
		var (
			sector domain.Sector
			raw    []byte
		)
		if err := rows.Scan(&sector.ID, &sector.RegionID, &sector.Name, &sector.Description, &raw); err != nil {
			return nil, fmt.Errorf("load sectors: scan row: %w", err)
		}

		boundary, err := decodeBoundary(raw)
		if err != nil {
			return nil, fmt.Errorf("load sectors: sector %d: %w", sector.ID, err)
		}
		sector.Boundary = boundary

		sectors = append(sectors, sector)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load sectors: row iteration: %w", err)
	}

	return sectors, nil
}

// decodeBoundary parses a GeoJSON geometry into a multipolygon. Plain
// polygons are wrapped; anything else is a data error.
func decodeBoundary(raw []byte) (orb.MultiPolygon, error) {
	geom, err := geojson.UnmarshalGeometry(raw)
	if err != nil {
		return nil, fmt.Errorf("parse boundary: %w", err)
	}

	switch g := geom.Geometry().(type) {
	case orb.Polygon:
		return orb.MultiPolygon{g}, nil
	case orb.MultiPolygon:
		return g, nil
	default:
		return nil, fmt.Errorf("parse boundary: unsupported geometry %q", geom.Type)
	}
}
