package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/aliaksandr-aliakseyeu/bananay-calc/internal/domain"
	"github.com/aliaksandr-aliakseyeu/bananay-calc/internal/ports"
)

// Resolver produces the driving distance between two points.
//
// It wraps an optional external route provider with a straight-line
// estimate: when no provider is configured, or the provider call fails,
// the haversine distance scaled by a road coefficient is used instead.
// A calculation therefore always gets a distance; degradation costs at
// most one provider timeout.
type Resolver struct {
	provider    ports.RouteProvider
	method      string
	coefficient float64
	log         *logrus.Logger
}

// NewResolver builds a resolver around provider. A nil provider means
// fallback-only routing; method is the tag reported on provider successes.
func NewResolver(provider ports.RouteProvider, method string, coefficient float64, log *logrus.Logger) *Resolver {
	return &Resolver{
		provider:    provider,
		method:      method,
		coefficient: coefficient,
		log:         log,
	}
}

// Resolve returns the distance in kilometers from one point to another and
// the method that produced it. It never fails; a single provider attempt is
// made and any error degrades to the fallback estimate.
func (r *Resolver) Resolve(ctx context.Context, from, to domain.Coordinates) (float64, string) {
	if r.provider != nil {
		meters, err := r.provider.Route(ctx, from, to)
		if err == nil {
			return meters / 1000, r.method
		}

		r.log.WithFields(logrus.Fields{
			"from": from.LonLat(),
			"to":   to.LonLat(),
		}).WithError(err).Warn("route provider failed, using fallback")
	}

	return domain.Haversine(from, to) * r.coefficient, domain.MethodFallback
}
