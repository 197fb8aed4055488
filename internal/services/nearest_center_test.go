package services

import (
	"context"
	"testing"

	"github.com/aliaksandr-aliakseyeu/bananay-calc/internal/adapters/distance"
	"github.com/aliaksandr-aliakseyeu/bananay-calc/internal/domain"
)

func TestSelectNearestCenterPrefersRoutedDistance(t *testing.T) {
	supplier := domain.Coordinates{Lat: 43.60, Lon: 39.73}
	centers := []domain.DistributionCenter{
		{ID: 1, Name: "dc-a", Location: domain.Coordinates{Lat: 43.61, Lon: 39.73}},
		{ID: 2, Name: "dc-b", Location: domain.Coordinates{Lat: 43.63, Lon: 39.73}},
		{ID: 3, Name: "dc-c", Location: domain.Coordinates{Lat: 43.65, Lon: 39.73}},
		{ID: 4, Name: "dc-d", Location: domain.Coordinates{Lat: 43.70, Lon: 39.73}},
		{ID: 5, Name: "dc-e", Location: domain.Coordinates{Lat: 43.80, Lon: 39.73}},
	}

	// dc-d would win on routed distance but sits outside the top 3 by
	// straight line, so it must never be routed at all.
	provider := distance.NewStaticProvider([]distance.StaticPair{
		{From: supplier, To: centers[0].Location, Meters: 20000},
		{From: supplier, To: centers[1].Location, Meters: 18000},
		{From: supplier, To: centers[2].Location, Meters: 12000},
		{From: supplier, To: centers[3].Location, Meters: 1000},
	})
	resolver := NewResolver(provider, domain.MethodOpenRoute, 1.3, testLogger())

	selected := SelectNearestCenter(context.Background(), resolver, supplier, centers)
	if selected == nil {
		t.Fatal("expected a selected center, got nil")
	}
	if selected.Center.Name != "dc-c" {
		t.Errorf("center = %q, want %q", selected.Center.Name, "dc-c")
	}
	if selected.DistanceKM != 12 {
		t.Errorf("distance = %v, want 12", selected.DistanceKM)
	}
	if selected.Method != domain.MethodOpenRoute {
		t.Errorf("method = %q, want %q", selected.Method, domain.MethodOpenRoute)
	}
}

func TestSelectNearestCenterFallbackRouting(t *testing.T) {
	supplier := domain.Coordinates{Lat: 43.60, Lon: 39.73}
	centers := []domain.DistributionCenter{
		{ID: 2, Name: "far", Location: domain.Coordinates{Lat: 43.70, Lon: 39.73}},
		{ID: 1, Name: "near", Location: domain.Coordinates{Lat: 43.61, Lon: 39.73}},
	}

	resolver := NewResolver(nil, "", 1.3, testLogger())

	selected := SelectNearestCenter(context.Background(), resolver, supplier, centers)
	if selected == nil {
		t.Fatal("expected a selected center, got nil")
	}
	if selected.Center.Name != "near" {
		t.Errorf("center = %q, want %q", selected.Center.Name, "near")
	}
	if selected.Method != domain.MethodFallback {
		t.Errorf("method = %q, want %q", selected.Method, domain.MethodFallback)
	}

	want := domain.Haversine(supplier, centers[1].Location) * 1.3
	if selected.DistanceKM != want {
		t.Errorf("distance = %v, want %v", selected.DistanceKM, want)
	}
}

func TestSelectNearestCenterEmpty(t *testing.T) {
	resolver := NewResolver(nil, "", 1.3, testLogger())

	if selected := SelectNearestCenter(context.Background(), resolver, domain.Coordinates{}, nil); selected != nil {
		t.Fatalf("expected nil for empty centers, got %+v", selected)
	}
}
