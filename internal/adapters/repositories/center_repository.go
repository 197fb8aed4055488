package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aliaksandr-aliakseyeu/bananay-calc/internal/domain"
)

// Postgres-backed implementation of the CenterRepository port.
type SQLCenterRepository struct{ DB *sql.DB }

func NewSQLCenterRepository(db *sql.DB) *SQLCenterRepository {
	return &SQLCenterRepository{DB: db}
}

// Return all active distribution centers.
func (s *SQLCenterRepository) ListActive(ctx context.Context) ([]domain.DistributionCenter, error) {
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
	WHERE is_active
	ORDER BY id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list distribution centers: query: %w", err)
	}
	defer rows.Close()

	centers := make([]domain.DistributionCenter, 0, 16)
	for rows.Next() {
		var dc domain.DistributionCenter
		err := rows.Scan(&dc.ID, &dc.RegionID, &dc.Name, &dc.Location.Lat, &dc.Location.Lon, &dc.Address, &dc.IsActive)
		if err != nil {
			return nil, fmt.Errorf("list distribution centers: scan row: %w", err)
		}
		centers = append(centers, dc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list distribution centers: row iteration: %w", err)
	}

	return centers, nil
}
