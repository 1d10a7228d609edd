package geo

import (
	"math"
	"testing"
)

func TestHaversineKm_KnownDistances(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		wantKm                 float64
		tolerance              float64
	}{
		{"delhi to mumbai", 28.6139, 77.2090, 19.0760, 72.8777, 1150, 20},
		{"delhi to gurgaon", 28.6139, 77.2090, 28.4595, 77.0266, 25, 3},
		{"varanasi to prayagraj", 25.3176, 82.9739, 25.4358, 81.8463, 114, 5},
	}
	for _, tc := range tests {
		got := HaversineKm(tc.lat1, tc.lon1, tc.lat2, tc.lon2)
		if math.Abs(got-tc.wantKm) > tc.tolerance {
			t.Errorf("%s: got %.1f km, want %.1f +/- %.1f", tc.name, got, tc.wantKm, tc.tolerance)
		}
	}
}

func TestHaversineKm_ZeroDistance(t *testing.T) {
	if got := HaversineKm(28.6139, 77.2090, 28.6139, 77.2090); got != 0 {
		t.Errorf("expected 0, got %f", got)
	}
}

func TestHaversineKm_Symmetric(t *testing.T) {
	ab := HaversineKm(28.6139, 77.2090, 19.0760, 72.8777)
	ba := HaversineKm(19.0760, 72.8777, 28.6139, 77.2090)
	if math.Abs(ab-ba) > 1e-9 {
		t.Errorf("distance not symmetric: %f vs %f", ab, ba)
	}
}

func TestDistance(t *testing.T) {
	a := Point{Lat: 28.6139, Lon: 77.2090}
	b := Point{Lat: 19.0760, Lon: 72.8777}
	if Distance(a, b) != HaversineKm(a.Lat, a.Lon, b.Lat, b.Lon) {
		t.Error("Distance must match HaversineKm")
	}
}

func TestValidateCoordinates(t *testing.T) {
	tests := []struct {
		lat, lon float64
		want     bool
	}{
		{28.6139, 77.2090, true},
		{0, 0, true},
		{90, 180, true},
		{-90, -180, true},
		{90.001, 0, false},
		{-90.001, 0, false},
		{0, 180.001, false},
		{0, -180.001, false},
	}
	for _, tc := range tests {
		if got := ValidateCoordinates(tc.lat, tc.lon); got != tc.want {
			t.Errorf("ValidateCoordinates(%f, %f) = %v, want %v", tc.lat, tc.lon, got, tc.want)
		}
	}
}
