package services

import (
	"context"
	"slices"
	"sync"

	"github.com/aliaksandr-aliakseyeu/bananay-calc/internal/domain"
)

// A distribution center together with the routed distance to it.
type SelectedCenter struct {
	Center     domain.DistributionCenter
	DistanceKM float64
	Method     string
}

// Upper bound on provider calls per selection.
const routedCandidates = 3

type rankedCenter struct {
	center   domain.DistributionCenter
	straight float64
}

// SelectNearestCenter picks the distribution center closest to the supplier
// by routed distance.
//
// Candidates are first narrowed to the top 3 by straight-line distance, then
// the routed distance is resolved for those concurrently and the minimum
// wins. The globally nearest center by straight line can lose to a top-3
// candidate with a shorter road route. Returns nil when centers is empty.
func SelectNearestCenter(
	ctx context.Context,
	resolver *Resolver,
	supplier domain.Coordinates,
	centers []domain.DistributionCenter,
) *SelectedCenter {
	if len(centers) == 0 {
		return nil
	}

	ranked := make([]rankedCenter, 0, len(centers))
	for _, dc := range centers {
		ranked = append(ranked, rankedCenter{center: dc, straight: domain.Haversine(supplier, dc.Location)})
	}

	// Tie-breaker by id keeps the candidate set deterministic.
	slices.SortFunc(ranked, func(a, b rankedCenter) int {
		if a.straight < b.straight {
			return -1
		}
		if a.straight > b.straight {
			return 1
		}
		return a.center.ID - b.center.ID
	})

	if len(ranked) > routedCandidates {
		ranked = ranked[:routedCandidates]
	}

	routed := make([]SelectedCenter, len(ranked))
	var wg sync.WaitGroup

	for i, rc := range ranked {
		wg.Add(1)
		go func(i int, dc domain.DistributionCenter) {
			defer wg.Done()
			km, method := resolver.Resolve(ctx, supplier, dc.Location)
			routed[i] = SelectedCenter{Center: dc, DistanceKM: km, Method: method}
		}(i, rc.center)
	}
	wg.Wait()

	best := routed[0]
	for _, c := range routed[1:] {
		if c.DistanceKM < best.DistanceKM {
			best = c
		}
	}

	return &best
}
