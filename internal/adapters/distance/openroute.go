package distance

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/aliaksandr-aliakseyeu/bananay-calc/internal/domain"
	"github.com/aliaksandr-aliakseyeu/bananay-calc/internal/platform/obs"
)

// OpenRouteProvider retrieves driving distances from the OpenRouteService
// directions API. The provider is safe for concurrent use.
type OpenRouteProvider struct {
	session *http.Client
	apiKey  string
	baseURL string
}

func NewOpenRouteProvider(apiKey, baseURL string, timeout time.Duration) (*OpenRouteProvider, error) {
	if apiKey == "" {
		return nil, errors.New("openrouteservice api key is empty")
	}

	return &OpenRouteProvider{
		session: &http.Client{Timeout: timeout},
		apiKey:  apiKey,
		baseURL: baseURL,
	}, nil
}

// Distance is a pointer so a summary without the field is distinguishable
// from a genuine zero-meter route.
type orsDirectionsResponse struct {
	Features []struct {
		Properties struct {
			Summary struct {
				Distance *float64 `json:"distance"`
			} `json:"summary"`
		} `json:"properties"`
	} `json:"features"`
}

// Route returns the driving distance in meters between two points.
func (p *OpenRouteProvider) Route(ctx context.Context, from, to domain.Coordinates) (_ float64, err error) {
	defer obs.Time(ctx, "openroute.route")(&err)

	req, err := newRequest(ctx, p.baseURL)
	if err != nil {
		return 0, fmt.Errorf("openroute route: %w", err)
	}

	q := req.URL.Query()
	q.Set("api_key", p.apiKey)
	q.Set("start", from.LonLat())
	q.Set("end", to.LonLat())
	req.URL.RawQuery = q.Encode()

	var decoded orsDirectionsResponse
	if err := do(p.session, req, &decoded); err != nil {
		return 0, fmt.Errorf("openroute route: %w", err)
	}

	if len(decoded.Features) == 0 {
		return 0, errors.New("openroute route: response has no features")
	}

	distance := decoded.Features[0].Properties.Summary.Distance
	if distance == nil {
		return 0, errors.New("openroute route: response has no distance")
	}

	return *distance, nil
}
