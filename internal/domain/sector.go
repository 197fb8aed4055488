package domain

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// A polygonal delivery zone inside a region. The number of distinct sectors
// covered by an order drives the per-sector component of delivery pricing.
type Sector struct {
	ID          int
	RegionID    int
	Name        string
	Description string
	Boundary    orb.MultiPolygon
}

// Report whether a point lies inside the sector boundary.
func (s Sector) Contains(c Coordinates) bool {
	return planar.MultiPolygonContains(s.Boundary, orb.Point{c.Lon, c.Lat})
}
