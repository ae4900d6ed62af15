package predict

import (
	"math"
	"reflect"
	"testing"
	"time"

	"backend-routewise/internal/directions"
	"backend-routewise/internal/shared/geo"
)

var (
	bengaluru = geo.Coordinate{Lat: 12.9716, Lng: 77.5946}
	chennai   = geo.Coordinate{Lat: 13.0827, Lng: 80.2707}
)

func TestBuildFeaturesMinimal(t *testing.T) {
	candidate := directions.RouteCandidate{StepCount: 10}
	f := BuildFeatures(bengaluru, chennai, candidate, time.Now(), 0, VariantMinimal)

	if f.Variant != VariantMinimal || len(f.Vector) != 2 {
		t.Fatalf("unexpected features: %+v", f)
	}
	if math.Abs(f.Vector[0]-284.4) > 0.5 {
		t.Fatalf("expected ~284.4 km equirectangular distance, got %v", f.Vector[0])
	}
	if f.Vector[1] != 10 {
		t.Fatalf("expected step count 10, got %v", f.Vector[1])
	}
}

func TestBuildFeaturesExtendedOrder(t *testing.T) {
	candidate := directions.RouteCandidate{
		DistanceMeters: 346000,
		TrafficRatio:   1.4,
		StepCount:      12,
	}
	// Wednesday 2025-03-12, 09:30 local: peak hour, not weekend.
	departure := time.Date(2025, 3, 12, 9, 30, 0, 0, time.UTC)

	f := BuildFeatures(bengaluru, chennai, candidate, departure, 2, VariantExtended)
	if f.Variant != VariantExtended || len(f.Vector) != 13 {
		t.Fatalf("unexpected features: %+v", f)
	}

	v := f.Vector
	if v[0] != bengaluru.Lat || v[1] != bengaluru.Lng || v[2] != chennai.Lat || v[3] != chennai.Lng {
		t.Fatalf("endpoint features out of order: %v", v[:4])
	}
	if v[4] != 1.4 {
		t.Fatalf("expected traffic ratio at index 4, got %v", v[4])
	}
	if v[5] != 9 {
		t.Fatalf("expected departure hour 9, got %v", v[5])
	}
	if v[6] != 1 {
		t.Fatalf("expected peak hour flag set")
	}
	if v[7] != 0 {
		t.Fatalf("expected weekend flag unset for Wednesday")
	}
	if v[8] != 346.0 {
		t.Fatalf("expected distance 346 km, got %v", v[8])
	}
	greatCircle := geo.HaversineKm(bengaluru.Lat, bengaluru.Lng, chennai.Lat, chennai.Lng)
	if math.Abs(v[9]-greatCircle) > 1e-9 {
		t.Fatalf("expected great-circle distance at index 9")
	}
	wantRatio := 346000 / (greatCircle * 1000)
	if math.Abs(v[10]-wantRatio) > 1e-9 {
		t.Fatalf("expected road/straight ratio %v, got %v", wantRatio, v[10])
	}
	if v[11] != 2 {
		t.Fatalf("expected city index 2, got %v", v[11])
	}
	if v[12] != 1 {
		t.Fatalf("expected heavy traffic flag for ratio 1.4")
	}
	if len(f.DataQuality) != 0 {
		t.Fatalf("unexpected data-quality notes: %v", f.DataQuality)
	}
}

func TestBuildFeaturesIdempotent(t *testing.T) {
	candidate := directions.RouteCandidate{DistanceMeters: 346000, TrafficRatio: 1.2, StepCount: 8}
	departure := time.Date(2025, 3, 15, 18, 0, 0, 0, time.UTC)

	a := BuildFeatures(bengaluru, chennai, candidate, departure, 1, VariantExtended)
	b := BuildFeatures(bengaluru, chennai, candidate, departure, 1, VariantExtended)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("feature builder not deterministic: %v vs %v", a, b)
	}
}

func TestBuildFeaturesCoincidentEndpoints(t *testing.T) {
	candidate := directions.RouteCandidate{DistanceMeters: 500, TrafficRatio: 1.0}
	f := BuildFeatures(bengaluru, bengaluru, candidate, time.Now(), 0, VariantExtended)
	if f.Vector[10] != 1.0 {
		t.Fatalf("expected sentinel ratio 1.0 for coincident endpoints, got %v", f.Vector[10])
	}
}

func TestBuildFeaturesShortRoadDistanceFlagged(t *testing.T) {
	// 1 km reported road distance over a ~290 km great-circle gap.
	candidate := directions.RouteCandidate{DistanceMeters: 1000, TrafficRatio: 1.0}
	f := BuildFeatures(bengaluru, chennai, candidate, time.Now(), 0, VariantExtended)
	if len(f.DataQuality) == 0 {
		t.Fatalf("expected data-quality note for impossible road distance")
	}
	if f.Vector[10] >= 1 {
		t.Fatalf("ratio should reflect the reported data, got %v", f.Vector[10])
	}
}

func TestIsPeakHour(t *testing.T) {
	cases := map[int]bool{
		7: false, 8: true, 11: true, 12: false,
		16: false, 17: true, 20: true, 21: false,
	}
	for hour, want := range cases {
		if got := isPeakHour(hour); got != want {
			t.Fatalf("isPeakHour(%d) = %v, want %v", hour, got, want)
		}
	}
}

func TestIsWeekend(t *testing.T) {
	cases := map[time.Weekday]bool{
		time.Monday:   false,
		time.Friday:   false,
		time.Saturday: true,
		time.Sunday:   true,
	}
	for day, want := range cases {
		if got := isWeekend(day); got != want {
			t.Fatalf("isWeekend(%v) = %v, want %v", day, got, want)
		}
	}
}
