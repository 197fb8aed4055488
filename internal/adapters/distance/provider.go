package distance

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/aliaksandr-aliakseyeu/bananay-calc/internal/config"
	"github.com/aliaksandr-aliakseyeu/bananay-calc/internal/domain"
	"github.com/aliaksandr-aliakseyeu/bananay-calc/internal/ports"
)

// FromConfig builds the configured external route provider and the method
// tag reported on its successes. It returns a nil provider (fallback-only
// routing) when the provider name is "fallback" or unknown, or when the
// selected provider has no API key.
func FromConfig(cfg config.Routing, log *logrus.Logger) (ports.RouteProvider, string) {
	switch strings.ToLower(cfg.Provider) {
	case "openroute":
		p, err := NewOpenRouteProvider(cfg.OpenRouteAPIKey, cfg.OpenRouteAPIURL, cfg.OpenRouteTimeout)
		if err != nil {
			log.WithError(err).Warn("openrouteservice not configured, using fallback")
			return nil, ""
		}
		return p, domain.MethodOpenRoute

	case "yandex":
		p, err := NewYandexProvider(cfg.YandexAPIKey, cfg.YandexAPIURL, cfg.YandexTimeout)
		if err != nil {
			log.WithError(err).Warn("yandex router not configured, using fallback")
			return nil, ""
		}
		return p, domain.MethodYandex

	case "fallback":
		return nil, ""

	default:
		log.WithField("provider", cfg.Provider).Warn("unknown routing provider, using fallback")
		return nil, ""
	}
}
