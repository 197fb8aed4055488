package domain

import (
	"math"
	"testing"
)

func TestHaversineIdenticalPoints(t *testing.T) {
	p := Coordinates{Lat: 43.5855, Lon: 39.7231}

	if d := Haversine(p, p); d != 0 {
		t.Fatalf("distance between identical points = %v, want 0", d)
	}
}

func TestHaversineSymmetry(t *testing.T) {
	a := Coordinates{Lat: 43.5855, Lon: 39.7231}
	b := Coordinates{Lat: 43.4286, Lon: 39.9226}

	ab := Haversine(a, b)
	ba := Haversine(b, a)

	if ab < 0 || ba < 0 {
		t.Fatalf("distance must never be negative: ab=%v ba=%v", ab, ba)
	}
	if math.Abs(ab-ba) > 1e-9 {
		t.Fatalf("haversine not symmetric: ab=%v ba=%v", ab, ba)
	}
}

func TestHaversineKnownDistance(t *testing.T) {
	// Moscow to Saint Petersburg is roughly 634 km by great circle.
	moscow := Coordinates{Lat: 55.7558, Lon: 37.6173}
	spb := Coordinates{Lat: 59.9343, Lon: 30.3351}

	d := Haversine(moscow, spb)
	if d < 625 || d > 645 {
		t.Fatalf("Moscow-SPb distance = %v km, want about 634", d)
	}
}

func TestLonLatFormat(t *testing.T) {
	c := Coordinates{Lat: 43.5855, Lon: 39.7231}

	if got := c.LonLat(); got != "39.7231,43.5855" {
		t.Fatalf("LonLat() = %q, want %q", got, "39.7231,43.5855")
	}
}
