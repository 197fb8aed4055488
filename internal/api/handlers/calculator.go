package handlers

import (
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/aliaksandr-aliakseyeu/bananay-calc/internal/api/dto"
	"github.com/aliaksandr-aliakseyeu/bananay-calc/internal/domain"
	"github.com/aliaksandr-aliakseyeu/bananay-calc/internal/services"
)

// CalculatorHandler exposes the delivery cost calculation endpoints.
type CalculatorHandler struct {
	Calc *services.Calculator
	Log  *logrus.Logger
}

// ByPoints prices a delivery across concrete delivery points.
func (h *CalculatorHandler) ByPoints(w http.ResponseWriter, r *http.Request) {
	var req dto.CalculateByPointsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, r, http.StatusBadRequest, validationMessage(err))
		return
	}

	calc, err := h.Calc.CalculateByPoints(r.Context(), services.ByPointsRequest{
		RegionID:         req.RegionID,
		Supplier:         supplierCoordinates(req.SupplierLocation),
		Product:          productSpec(req.Product),
		DeliveryPointIDs: req.DeliveryPointIDs,
	})
	if err != nil {
		h.writeCalcError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.CalculateByPointsResponse{
		ItemsInStandardBox:    calc.ItemsInStandardBox,
		CostPerItem:           calc.CostPerItem,
		CostPerSupplierBox:    calc.CostPerSupplierBox,
		DeliveryPointsUsed:    calc.DeliveryPointsUsed,
		DeliveryPointsIgnored: calc.DeliveryPointsIgnored,
		SectorsCount:          calc.SectorsCount,
		DistanceToDCKM:        calc.DistanceToDCKM,
		NearestDCName:         calc.NearestDCName,
	})
}

// Estimate prices a delivery from expected point and sector counts instead
// of concrete delivery points.
func (h *CalculatorHandler) Estimate(w http.ResponseWriter, r *http.Request) {
	var req dto.CalculateEstimateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, r, http.StatusBadRequest, validationMessage(err))
		return
	}

	calc, err := h.Calc.CalculateEstimate(r.Context(), services.EstimateRequest{
		RegionID:   req.RegionID,
		Supplier:   supplierCoordinates(req.SupplierLocation),
		Product:    productSpec(req.Product),
		NumPoints:  req.Delivery.NumPoints,
		NumSectors: req.Delivery.NumSectors,
	})
	if err != nil {
		h.writeCalcError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.CalculateEstimateResponse{
		ItemsInStandardBox: calc.ItemsInStandardBox,
		CostPerItem:        calc.CostPerItem,
		CostPerSupplierBox: calc.CostPerSupplierBox,
		DistanceToDCKM:     calc.DistanceToDCKM,
		NearestDCName:      calc.NearestDCName,
	})
}

// Calculation failures caused by the request map to 400 with the reason;
// anything else is a 500 and the reason stays in the log.
func (h *CalculatorHandler) writeCalcError(w http.ResponseWriter, r *http.Request, err error) {
	var vErr *services.ValidationError
	if errors.As(err, &vErr) {
		h.Log.WithField("path", r.URL.Path).Warn(vErr.Msg)
		writeError(w, r, http.StatusBadRequest, vErr.Msg)
		return
	}

	h.Log.WithField("path", r.URL.Path).WithError(err).Error("calculation failed")
	writeError(w, r, http.StatusInternalServerError, "internal server error")
}

func supplierCoordinates(loc *dto.SupplierLocation) domain.Coordinates {
	return domain.Coordinates{Lat: *loc.Latitude, Lon: *loc.Longitude}
}

func productSpec(p *dto.ProductParams) domain.ProductSpec {
	return domain.ProductSpec{
		LengthCM:            p.LengthCM,
		WidthCM:             p.WidthCM,
		HeightCM:            p.HeightCM,
		WeightKG:            p.WeightKG,
		ItemsPerSupplierBox: p.ItemsPerBox,
	}
}
