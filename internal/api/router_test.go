package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/aliaksandr-aliakseyeu/bananay-calc/internal/domain"
	"github.com/aliaksandr-aliakseyeu/bananay-calc/internal/ports"
	"github.com/aliaksandr-aliakseyeu/bananay-calc/internal/services"
)

type fakeTariffs struct {
	tariff  *domain.RegionTariff
	updated *ports.TariffPatch
}

func (f *fakeTariffs) GetTariff(ctx context.Context, regionID int) (*domain.RegionTariff, error) {
	return f.tariff, nil
}

func (f *fakeTariffs) UpdateTariff(ctx context.Context, regionID int, patch ports.TariffPatch) (*domain.RegionTariff, error) {
	if f.tariff == nil {
		return nil, nil
	}
	f.updated = &patch

	t := *f.tariff
	if patch.DriverHourlyRate != nil {
		t.DriverHourlyRate = *patch.DriverHourlyRate
	}
	if patch.BoxLengthCM != nil {
		t.BoxLengthCM = *patch.BoxLengthCM
	}
	return &t, nil
}

type fakeCenters struct {
	centers []domain.DistributionCenter
}

func (f fakeCenters) ListActive(ctx context.Context) ([]domain.DistributionCenter, error) {
	return f.centers, nil
}

type fakeGeometry struct {
	matches []ports.PointSector
	sectors int
}

func (f fakeGeometry) ResolvePoints(ctx context.Context, regionID int, pointIDs []int) ([]ports.PointSector, error) {
	return f.matches, nil
}

func (f fakeGeometry) CountSectors(ctx context.Context, regionID int) (int, error) {
	return f.sectors, nil
}

type fakeRegions struct {
	list   []ports.RegionSummary
	detail *ports.RegionDetail
}

func (f fakeRegions) ListRegions(ctx context.Context, countryID *int) ([]ports.RegionSummary, error) {
	return f.list, nil
}

func (f fakeRegions) GetRegion(ctx context.Context, regionID int) (*ports.RegionDetail, error) {
	return f.detail, nil
}

func testTariff() *domain.RegionTariff {
	d := decimal.RequireFromString
	return &domain.RegionTariff{
		RegionID:                 1,
		DriverHourlyRate:         d("500"),
		PlannedWorkHours:         d("8"),
		FuelPricePerLiter:        d("55"),
		FuelConsumptionPer100KM:  d("12"),
		DepreciationCoefficient:  d("0.15"),
		WarehouseProcessingPerKG: d("5"),
		ServiceFeePerKG:          d("10"),
		DeliveryPointCost:        d("150"),
		StandardTripWeightKG:     d("5000"),
		BoxLengthCM:              60,
		BoxWidthCM:               40,
		BoxHeightCM:              40,
		BoxMaxWeightKG:           d("30"),
		MinPointsForDiscount:     100,
		DiscountStepPoints:       50,
		InitialDiscountPercent:   d("5"),
		DiscountStepPercent:      d("5"),
	}
}

func testRouter(tariffs *fakeTariffs, regions fakeRegions, geometry fakeGeometry) http.Handler {
	log := logrus.New()
	log.SetOutput(io.Discard)

	centers := fakeCenters{centers: []domain.DistributionCenter{
		{ID: 1, Name: "dc-main", Location: domain.Coordinates{Lat: 43.65, Lon: 39.78}, IsActive: true},
	}}

	resolver := services.NewResolver(nil, "", 1.3, log)
	calc := services.NewCalculator(tariffs, centers, geometry, resolver, log)

	return NewRouter(calc, regions, tariffs, log)
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var m map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&m); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
	return m
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	msg, ok := decodeBody(t, rec)["error"].(string)
	if !ok {
		t.Fatalf("response has no error field: %s", rec.Body.String())
	}
	return msg
}

func TestHealthEndpoint(t *testing.T) {
	h := testRouter(&fakeTariffs{}, fakeRegions{}, fakeGeometry{})

	rec := doRequest(t, h, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := decodeBody(t, rec)["status"]; got != "ok" {
		t.Errorf("status field = %v, want ok", got)
	}

	rec = doRequest(t, h, http.MethodPost, "/health", "")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("POST status = %d, want 405", rec.Code)
	}
	if allow := rec.Header().Get("Allow"); allow != http.MethodGet {
		t.Errorf("Allow = %q, want GET", allow)
	}
}

const byPointsBody = `{
	"region_id": 1,
	"supplier_location": {"latitude": 43.60, "longitude": 39.73},
	"product": {"length_cm": 20, "width_cm": 10, "height_cm": 10, "weight_kg": 1, "items_per_box": 15},
	"delivery_point_ids": [9001, 9002, 9003]
}`

func TestCalculateByPoints(t *testing.T) {
	h := testRouter(
		&fakeTariffs{tariff: testTariff()},
		fakeRegions{},
		fakeGeometry{matches: []ports.PointSector{{PointID: 9001, SectorID: 1}, {PointID: 9002, SectorID: 1}}},
	)

	rec := doRequest(t, h, http.MethodPost, "/api/v1/calculator/delivery-cost", byPointsBody)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header not set")
	}

	res := decodeBody(t, rec)
	if got := res["items_in_standard_box"]; got != float64(30) {
		t.Errorf("items_in_standard_box = %v, want 30", got)
	}
	if got := res["delivery_points_used"]; got != float64(2) {
		t.Errorf("delivery_points_used = %v, want 2", got)
	}
	if got := res["delivery_points_ignored"]; got != float64(1) {
		t.Errorf("delivery_points_ignored = %v, want 1", got)
	}
	if got := res["sectors_count"]; got != float64(1) {
		t.Errorf("sectors_count = %v, want 1", got)
	}
	if got := res["nearest_dc_name"]; got != "dc-main" {
		t.Errorf("nearest_dc_name = %v, want dc-main", got)
	}
	if cost, ok := res["cost_per_item"].(float64); !ok || cost <= 0 {
		t.Errorf("cost_per_item = %v, want positive number", res["cost_per_item"])
	}
}

func TestCalculateByPointsBadRequests(t *testing.T) {
	h := testRouter(
		&fakeTariffs{tariff: testTariff()},
		fakeRegions{},
		fakeGeometry{matches: []ports.PointSector{{PointID: 9001, SectorID: 1}}},
	)

	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "missing region id",
			body: `{
				"supplier_location": {"latitude": 43.60, "longitude": 39.73},
				"product": {"length_cm": 20, "width_cm": 10, "height_cm": 10, "weight_kg": 1, "items_per_box": 15},
				"delivery_point_ids": [9001]
			}`,
			want: "region_id is required",
		},
		{
			name: "latitude out of range",
			body: `{
				"region_id": 1,
				"supplier_location": {"latitude": 95, "longitude": 39.73},
				"product": {"length_cm": 20, "width_cm": 10, "height_cm": 10, "weight_kg": 1, "items_per_box": 15},
				"delivery_point_ids": [9001]
			}`,
			want: "latitude must be at most 90",
		},
		{
			name: "empty delivery point list",
			body: `{
				"region_id": 1,
				"supplier_location": {"latitude": 43.60, "longitude": 39.73},
				"product": {"length_cm": 20, "width_cm": 10, "height_cm": 10, "weight_kg": 1, "items_per_box": 15},
				"delivery_point_ids": []
			}`,
			want: "delivery_point_ids must have at least 1 entries",
		},
		{
			name: "unknown field",
			body: `{"region_id": 1, "bogus": true}`,
			want: "invalid json body",
		},
		{
			name: "trailing object",
			body: byPointsBody + `{}`,
			want: "body must contain only one JSON object",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, h, http.MethodPost, "/api/v1/calculator/delivery-cost", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			if got := errorMessage(t, rec); got != tt.want {
				t.Errorf("error = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCalculateByPointsNoPricing(t *testing.T) {
	h := testRouter(&fakeTariffs{}, fakeRegions{}, fakeGeometry{})

	rec := doRequest(t, h, http.MethodPost, "/api/v1/calculator/delivery-cost", byPointsBody)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if got := errorMessage(t, rec); got != "pricing not configured for region 1" {
		t.Errorf("error = %q", got)
	}
}

func TestCalculateEstimate(t *testing.T) {
	h := testRouter(&fakeTariffs{tariff: testTariff()}, fakeRegions{}, fakeGeometry{sectors: 3})

	body := `{
		"region_id": 1,
		"supplier_location": {"latitude": 43.60, "longitude": 39.73},
		"product": {"length_cm": 20, "width_cm": 10, "height_cm": 10, "weight_kg": 1, "items_per_box": 15},
		"delivery": {"num_points": 100}
	}`

	rec := doRequest(t, h, http.MethodPost, "/api/v1/calculator/delivery-cost/estimate", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	res := decodeBody(t, rec)
	if got := res["items_in_standard_box"]; got != float64(30) {
		t.Errorf("items_in_standard_box = %v, want 30", got)
	}
	if _, ok := res["delivery_points_used"]; ok {
		t.Error("estimate response must not report delivery point counters")
	}

	rec = doRequest(t, h, http.MethodPost, "/api/v1/calculator/delivery-cost/estimate", `{
		"region_id": 1,
		"supplier_location": {"latitude": 43.60, "longitude": 39.73},
		"product": {"length_cm": 20, "width_cm": 10, "height_cm": 10, "weight_kg": 1, "items_per_box": 15},
		"delivery": {"num_points": 0}
	}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("zero num_points status = %d, want 400", rec.Code)
	}
	if got := errorMessage(t, rec); got != "num_points is required" {
		t.Errorf("error = %q", got)
	}
}

func TestListRegions(t *testing.T) {
	regions := fakeRegions{list: []ports.RegionSummary{
		{
			Region:  domain.Region{ID: 1, CountryID: 1, Name: "Краснодарский край", Type: "край"},
			Country: domain.Country{ID: 1, Name: "Россия", Code: "RU"},
		},
	}}
	h := testRouter(&fakeTariffs{}, regions, fakeGeometry{})

	rec := doRequest(t, h, http.MethodGet, "/api/v1/regions", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var list []map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("len = %d, want 1", len(list))
	}
	if got := list[0]["name"]; got != "Краснодарский край" {
		t.Errorf("name = %v", got)
	}
	country, ok := list[0]["country"].(map[string]any)
	if !ok || country["code"] != "RU" {
		t.Errorf("country = %v, want code RU", list[0]["country"])
	}

	rec = doRequest(t, h, http.MethodGet, "/api/v1/regions?country_id=abc", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad filter status = %d, want 400", rec.Code)
	}
	if got := errorMessage(t, rec); got != "country_id must be an integer" {
		t.Errorf("error = %q", got)
	}
}

func TestGetRegion(t *testing.T) {
	detail := &ports.RegionDetail{
		Region:  domain.Region{ID: 7, CountryID: 1, Name: "Краснодарский край", Type: "край"},
		Country: domain.Country{ID: 1, Name: "Россия", Code: "RU"},
		Centers: []domain.DistributionCenter{
			{ID: 1, Name: "dc-main", Address: "ул. Энергетиков 1Б", IsActive: true},
			{ID: 2, Name: "dc-old", IsActive: false},
		},
		Pricing: testTariff(),
		Stats:   ports.RegionStats{DistributionCenters: 2, Sectors: 12, Settlements: 3},
	}
	h := testRouter(&fakeTariffs{}, fakeRegions{detail: detail}, fakeGeometry{})

	rec := doRequest(t, h, http.MethodGet, "/api/v1/regions/7", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	res := decodeBody(t, rec)
	centers, ok := res["distribution_centers"].([]any)
	if !ok || len(centers) != 2 {
		t.Fatalf("distribution_centers = %v, want 2 entries", res["distribution_centers"])
	}
	stats, ok := res["stats"].(map[string]any)
	if !ok || stats["sectors_count"] != float64(12) {
		t.Errorf("stats = %v, want sectors_count 12", res["stats"])
	}
	pricing, ok := res["pricing"].(map[string]any)
	if !ok {
		t.Fatalf("pricing = %v, want object", res["pricing"])
	}
	box, ok := pricing["standard_box"].(map[string]any)
	if !ok || box["length"] != float64(60) {
		t.Errorf("standard_box = %v, want length 60", pricing["standard_box"])
	}
}

func TestGetRegionNotFound(t *testing.T) {
	h := testRouter(&fakeTariffs{}, fakeRegions{}, fakeGeometry{})

	rec := doRequest(t, h, http.MethodGet, "/api/v1/regions/99", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if got := errorMessage(t, rec); got != "region with id 99 not found" {
		t.Errorf("error = %q", got)
	}

	rec = doRequest(t, h, http.MethodGet, "/api/v1/regions/abc", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad id status = %d, want 400", rec.Code)
	}
	if got := errorMessage(t, rec); got != "id must be a positive integer" {
		t.Errorf("error = %q", got)
	}
}

func TestRegionPricing(t *testing.T) {
	bare := &ports.RegionDetail{
		Region:  domain.Region{ID: 7, CountryID: 1, Name: "Краснодарский край"},
		Country: domain.Country{ID: 1, Name: "Россия", Code: "RU"},
	}
	h := testRouter(&fakeTariffs{}, fakeRegions{detail: bare}, fakeGeometry{})

	rec := doRequest(t, h, http.MethodGet, "/api/v1/regions/7/pricing", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if got := errorMessage(t, rec); got != "pricing not configured for region 7" {
		t.Errorf("error = %q", got)
	}

	priced := &ports.RegionDetail{
		Region:  bare.Region,
		Country: bare.Country,
		Pricing: testTariff(),
	}
	tariffs := &fakeTariffs{tariff: testTariff()}
	h = testRouter(tariffs, fakeRegions{detail: priced}, fakeGeometry{})

	rec = doRequest(t, h, http.MethodGet, "/api/v1/regions/7/pricing", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := decodeBody(t, rec)["driver_hourly_rate"]; got != float64(500) {
		t.Errorf("driver_hourly_rate = %v, want 500", got)
	}

	rec = doRequest(t, h, http.MethodPatch, "/api/v1/regions/7/pricing", `{"driver_hourly_rate": 650}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("patch status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if got := decodeBody(t, rec)["driver_hourly_rate"]; got != float64(650) {
		t.Errorf("driver_hourly_rate = %v, want 650", got)
	}
	if tariffs.updated == nil || tariffs.updated.DriverHourlyRate == nil {
		t.Error("update was not applied to the repository")
	}

	rec = doRequest(t, h, http.MethodPatch, "/api/v1/regions/7/pricing", `{"standard_box": {"length": 65}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("nested patch status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	box, ok := decodeBody(t, rec)["standard_box"].(map[string]any)
	if !ok || box["length"] != float64(65) {
		t.Errorf("standard_box = %v, want length 65", box)
	}
	if tariffs.updated == nil || tariffs.updated.BoxLengthCM == nil {
		t.Error("nested update was not applied to the repository")
	}

	rec = doRequest(t, h, http.MethodPatch, "/api/v1/regions/7/pricing", `{"driver_hourly_rate": -1}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("negative rate status = %d, want 400", rec.Code)
	}
	if got := errorMessage(t, rec); got != "driver_hourly_rate must be greater than 0" {
		t.Errorf("error = %q", got)
	}

	rec = doRequest(t, h, http.MethodPatch, "/api/v1/regions/7/pricing", `{"standard_box": {"length": -5}}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("negative box length status = %d, want 400", rec.Code)
	}
	if got := errorMessage(t, rec); got != "length must be greater than 0" {
		t.Errorf("error = %q", got)
	}
}
