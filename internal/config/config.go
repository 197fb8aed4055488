package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Runtime configuration resolved from environment variables.
// Entrypoints load .env via godotenv before calling Load.
type Config struct {
	DatabaseURL string
	Port        string
	LogLevel    string
	Routing     Routing
}

// External route provider settings. Provider selects the strategy:
// "openroute", "yandex" or "fallback" (straight-line estimate only).
type Routing struct {
	Provider            string
	OpenRouteAPIKey     string
	OpenRouteAPIURL     string
	OpenRouteTimeout    time.Duration
	YandexAPIKey        string
	YandexAPIURL        string
	YandexTimeout       time.Duration
	FallbackCoefficient float64
}

// Get returns the value of an environment variable, or fallback when unset.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Port:        Get("PORT", "8080"),
		LogLevel:    Get("LOG_LEVEL", "info"),
		Routing: Routing{
			Provider:        Get("ROUTING_PROVIDER", "openroute"),
			OpenRouteAPIKey: os.Getenv("OPENROUTESERVICE_API_KEY"),
			OpenRouteAPIURL: Get("OPENROUTESERVICE_API_URL", "https://api.openrouteservice.org/v2/directions/driving-car"),
			YandexAPIKey:    os.Getenv("YANDEX_API_KEY"),
			YandexAPIURL:    Get("YANDEX_ROUTER_API_URL", "https://api.routing.yandex.net/v2/route"),
		},
	}

	var err error
	if cfg.Routing.OpenRouteTimeout, err = seconds("OPENROUTESERVICE_TIMEOUT", 5); err != nil {
		return nil, err
	}
	if cfg.Routing.YandexTimeout, err = seconds("YANDEX_API_TIMEOUT", 5); err != nil {
		return nil, err
	}

	raw := Get("DISTANCE_FALLBACK_COEFFICIENT", "1.3")
	cfg.Routing.FallbackCoefficient, err = strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("load config: parse DISTANCE_FALLBACK_COEFFICIENT %q: %w", raw, err)
	}

	return cfg, nil
}

func seconds(key string, fallback int) (time.Duration, error) {
	raw := Get(key, strconv.Itoa(fallback))
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("load config: parse %s %q: %w", key, raw, err)
	}
	return time.Duration(n) * time.Second, nil
}
