package distance

import (
	"context"
	"fmt"

	"github.com/aliaksandr-aliakseyeu/bananay-calc/internal/domain"
)

// StaticPair fixes the road distance between two points.
type StaticPair struct {
	From, To domain.Coordinates
	Meters   float64
}

// StaticProvider serves fixed distances for tests and offline runs.
// Unknown pairs fail, which also makes it a handy always-failing provider
// when constructed with no pairs.
type StaticProvider struct {
	m map[string]float64
}

func NewStaticProvider(pairs []StaticPair) *StaticProvider {
	m := make(map[string]float64, len(pairs))
	for _, p := range pairs {
		m[p.From.LonLat()+"|"+p.To.LonLat()] = p.Meters
	}
	return &StaticProvider{m: m}
}

func (p *StaticProvider) Route(ctx context.Context, from, to domain.Coordinates) (float64, error) {
	meters, ok := p.m[from.LonLat()+"|"+to.LonLat()]
	if !ok {
		return 0, fmt.Errorf("no static route %s -> %s", from.LonLat(), to.LonLat())
	}

	return meters, nil
}
