package api

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/aliaksandr-aliakseyeu/bananay-calc/internal/api/handlers"
	"github.com/aliaksandr-aliakseyeu/bananay-calc/internal/ports"
	"github.com/aliaksandr-aliakseyeu/bananay-calc/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(
	calc *services.Calculator,
	regions ports.RegionRepository,
	tariffs ports.TariffRepository,
	log *logrus.Logger,
) http.Handler {
	mux := http.NewServeMux()

	calcHandler := &handlers.CalculatorHandler{Calc: calc, Log: log}
	regionHandler := &handlers.RegionHandler{
		Regions: regions,
		Tariffs: tariffs,
		Log:     log,
	}

	mux.HandleFunc("/health", handlers.Health)

	mux.HandleFunc("POST /api/v1/calculator/delivery-cost", calcHandler.ByPoints)
	mux.HandleFunc("POST /api/v1/calculator/delivery-cost/estimate", calcHandler.Estimate)

	mux.HandleFunc("GET /api/v1/regions", regionHandler.List)
	mux.HandleFunc("GET /api/v1/regions/{id}", regionHandler.Get)
	mux.HandleFunc("GET /api/v1/regions/{id}/pricing", regionHandler.GetPricing)
	mux.HandleFunc("PATCH /api/v1/regions/{id}/pricing", regionHandler.UpdatePricing)

	return requestIDMiddleware(loggingMiddleware(log, mux))
}
