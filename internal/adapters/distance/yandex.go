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

// YandexProvider retrieves driving distances from the Yandex Router API.
// The provider is safe for concurrent use.
type YandexProvider struct {
	session *http.Client
	apiKey  string
	baseURL string
}

func NewYandexProvider(apiKey, baseURL string, timeout time.Duration) (*YandexProvider, error) {
	if apiKey == "" {
		return nil, errors.New("yandex api key is empty")
	}

	return &YandexProvider{
		session: &http.Client{Timeout: timeout},
		apiKey:  apiKey,
		baseURL: baseURL,
	}, nil
}

// Distance is a pointer so a route without the field is distinguishable
// from a genuine zero-meter route.
type yandexRouteResponse struct {
	Route *struct {
		Distance *float64 `json:"distance"`
	} `json:"route"`
}

// Route returns the driving distance in meters between two points.
func (p *YandexProvider) Route(ctx context.Context, from, to domain.Coordinates) (_ float64, err error) {
	defer obs.Time(ctx, "yandex.route")(&err)

	req, err := newRequest(ctx, p.baseURL)
	if err != nil {
		return 0, fmt.Errorf("yandex route: %w", err)
	}

	q := req.URL.Query()
	q.Set("apikey", p.apiKey)
	q.Set("waypoints", from.LonLat()+"|"+to.LonLat())
	q.Set("mode", "driving")
	req.URL.RawQuery = q.Encode()

	var decoded yandexRouteResponse
	if err := do(p.session, req, &decoded); err != nil {
		return 0, fmt.Errorf("yandex route: %w", err)
	}

	if decoded.Route == nil {
		return 0, errors.New("yandex route: response has no route")
	}
	if decoded.Route.Distance == nil {
		return 0, errors.New("yandex route: response has no distance")
	}

	return *decoded.Route.Distance, nil
}
