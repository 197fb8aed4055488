package ports

import (
	"context"

	"github.com/aliaksandr-aliakseyeu/bananay-calc/internal/domain"
)

// Contract for retrieving road distance between two coordinates.
type RouteProvider interface {
	// Return driving distance in meters between two points.
	Route(ctx context.Context, from, to domain.Coordinates) (float64, error)
}
