package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/aliaksandr-aliakseyeu/bananay-calc/internal/api/dto"
	"github.com/aliaksandr-aliakseyeu/bananay-calc/internal/domain"
	"github.com/aliaksandr-aliakseyeu/bananay-calc/internal/ports"
)

// RegionHandler exposes region reference data and pricing management.
type RegionHandler struct {
	Regions ports.RegionRepository
	Tariffs ports.TariffRepository
	Log     *logrus.Logger
}

// List returns all regions with their countries, optionally filtered by the
// country_id query parameter.
func (h *RegionHandler) List(w http.ResponseWriter, r *http.Request) {
	var countryID *int
	if raw := r.URL.Query().Get("country_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "country_id must be an integer")
			return
		}
		countryID = &id
	}

	regions, err := h.Regions.ListRegions(r.Context(), countryID)
	if err != nil {
		h.Log.WithError(err).Error("list regions failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := make([]dto.RegionSummaryResponse, 0, len(regions))
	for _, reg := range regions {
		res = append(res, dto.RegionSummaryResponse{
			ID:      reg.Region.ID,
			Name:    reg.Region.Name,
			Type:    reg.Region.Type,
			Country: countryResponse(reg.Country),
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Get returns one region with its distribution centers, pricing and stats.
func (h *RegionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	detail, err := h.Regions.GetRegion(r.Context(), id)
	if err != nil {
		h.Log.WithField("region_id", id).WithError(err).Error("get region failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	if detail == nil {
		writeError(w, r, http.StatusNotFound, fmt.Sprintf("region with id %d not found", id))
		return
	}

	centers := make([]dto.DistributionCenterBrief, 0, len(detail.Centers))
	for _, c := range detail.Centers {
		centers = append(centers, dto.DistributionCenterBrief{
			ID:       c.ID,
			Name:     c.Name,
			Address:  c.Address,
			IsActive: c.IsActive,
		})
	}

	res := dto.RegionDetailResponse{
		ID:                  detail.Region.ID,
		Name:                detail.Region.Name,
		Type:                detail.Region.Type,
		Country:             countryResponse(detail.Country),
		DistributionCenters: centers,
		Stats: dto.RegionStatsResponse{
			DistributionCentersCount: detail.Stats.DistributionCenters,
			SectorsCount:             detail.Stats.Sectors,
			SettlementsCount:         detail.Stats.Settlements,
		},
	}
	if detail.Pricing != nil {
		pricing := dto.NewRegionPricingResponse(detail.Pricing)
		res.Pricing = &pricing
	}

	writeJSON(w, r, http.StatusOK, res)
}

// GetPricing returns the tariff configured for a region.
func (h *RegionHandler) GetPricing(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	tariff, found, ok := h.loadPricing(w, r, id)
	if !ok {
		return
	}
	if !found {
		writeError(w, r, http.StatusNotFound, fmt.Sprintf("pricing not configured for region %d", id))
		return
	}

	writeJSON(w, r, http.StatusOK, tariff)
}

// UpdatePricing applies a partial tariff update and returns the result.
func (h *RegionHandler) UpdatePricing(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req dto.RegionPricingUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, r, http.StatusBadRequest, validationMessage(err))
		return
	}

	// Confirm the region exists first so a missing region and missing
	// pricing produce distinct errors.
	if _, found, ok := h.loadPricing(w, r, id); !ok {
		return
	} else if !found {
		writeError(w, r, http.StatusNotFound, fmt.Sprintf("pricing not configured for region %d", id))
		return
	}

	updated, err := h.Tariffs.UpdateTariff(r.Context(), id, req.Patch())
	if err != nil {
		h.Log.WithField("region_id", id).WithError(err).Error("update pricing failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	if updated == nil {
		writeError(w, r, http.StatusNotFound, fmt.Sprintf("pricing not configured for region %d", id))
		return
	}

	h.Log.WithField("region_id", id).Info("region pricing updated")
	writeJSON(w, r, http.StatusOK, dto.NewRegionPricingResponse(updated))
}

// loadPricing resolves a region's pricing, writing the region-level 404 or
// 500 itself. It reports (pricing, pricing found, continue handling).
func (h *RegionHandler) loadPricing(w http.ResponseWriter, r *http.Request, id int) (dto.RegionPricingResponse, bool, bool) {
	var zero dto.RegionPricingResponse

	detail, err := h.Regions.GetRegion(r.Context(), id)
	if err != nil {
		h.Log.WithField("region_id", id).WithError(err).Error("get region failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return zero, false, false
	}
	if detail == nil {
		writeError(w, r, http.StatusNotFound, fmt.Sprintf("region with id %d not found", id))
		return zero, false, false
	}
	if detail.Pricing == nil {
		return zero, false, true
	}

	return dto.NewRegionPricingResponse(detail.Pricing), true, true
}

func countryResponse(c domain.Country) dto.CountryResponse {
	return dto.CountryResponse{ID: c.ID, Name: c.Name, Code: c.Code}
}
