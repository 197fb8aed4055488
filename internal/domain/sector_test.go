package domain

import (
	"testing"

	"github.com/paulmach/orb"
)

func TestSectorContains(t *testing.T) {
	// Unit square from (0,0) to (10,10) in lon/lat space.
	sector := Sector{
		ID:       1,
		RegionID: 1,
		Name:     "test sector",
		Boundary: orb.MultiPolygon{
			{
				{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}},
			},
		},
	}

	cases := []struct {
		name  string
		point Coordinates
		want  bool
	}{
		{"center", Coordinates{Lat: 5, Lon: 5}, true},
		{"outside east", Coordinates{Lat: 5, Lon: 15}, false},
		{"outside north", Coordinates{Lat: 15, Lon: 5}, false},
		{"far away", Coordinates{Lat: -40, Lon: 120}, false},
	}

	for _, tc := range cases {
		if got := sector.Contains(tc.point); got != tc.want {
			t.Errorf("%s: Contains(%v) = %v, want %v", tc.name, tc.point, got, tc.want)
		}
	}
}

func TestSectorContainsSecondPolygon(t *testing.T) {
	// Two disjoint squares; membership in either counts.
	sector := Sector{
		Boundary: orb.MultiPolygon{
			{{{0, 0}, {2, 0}, {2, 2}, {0, 2}, {0, 0}}},
			{{{20, 20}, {22, 20}, {22, 22}, {20, 22}, {20, 20}}},
		},
	}

	if !sector.Contains(Coordinates{Lat: 21, Lon: 21}) {
		t.Fatalf("point inside second polygon not detected")
	}
	if sector.Contains(Coordinates{Lat: 10, Lon: 10}) {
		t.Fatalf("point between polygons reported as inside")
	}
}
