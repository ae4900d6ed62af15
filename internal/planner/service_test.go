package planner

import (
	"context"
	"errors"
	"testing"
	"time"

	"backend-routewise/internal/directions"
	"backend-routewise/internal/geocode"
	"backend-routewise/internal/predict"
	"backend-routewise/internal/shared/geo"
)

type fakeGeocoder struct {
	coords map[string]geo.Coordinate
	err    error
}

func (f *fakeGeocoder) Resolve(_ context.Context, placeText, _ string) (geo.Coordinate, error) {
	if f.err != nil {
		return geo.Coordinate{}, f.err
	}
	coord, ok := f.coords[placeText]
	if !ok {
		return geo.Coordinate{}, geocode.ErrResolution
	}
	return coord, nil
}

type fakeProvider struct {
	routes []directions.RouteCandidate
	err    error
}

func (f *fakeProvider) FetchRoutes(context.Context, geo.Coordinate, geo.Coordinate, time.Time, bool) ([]directions.RouteCandidate, error) {
	return f.routes, f.err
}

func minimalEstimator() Estimator {
	return predict.NewEstimator(predict.Artifacts{
		Linear: &predict.LinearModel{Weights: []float64{1, 0.5}, Intercept: 5},
	})
}

func testGeocoder() *fakeGeocoder {
	return &fakeGeocoder{coords: map[string]geo.Coordinate{
		"Majestic": {Lat: 12.9766, Lng: 77.5713},
		"Chennai":  {Lat: 13.0827, Lng: 80.2707},
	}}
}

func TestPlanOrdersByTrafficDuration(t *testing.T) {
	provider := &fakeProvider{routes: []directions.RouteCandidate{
		{Summary: "slow", NominalDurationSeconds: 3600, TrafficDurationSeconds: 5400, TrafficRatio: 1.5, DistanceMeters: 60000, StepCount: 10},
		{Summary: "fast", NominalDurationSeconds: 3600, TrafficDurationSeconds: 3900, TrafficRatio: 1.0833, DistanceMeters: 55000, StepCount: 8},
	}}

	svc := NewService(testGeocoder(), provider, minimalEstimator())
	plan, err := svc.Plan(context.Background(), PlanRequest{
		Start:       "Majestic",
		Destination: "Chennai",
		City:        "Bengaluru",
		Departure:   time.Date(2025, 3, 12, 14, 30, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if len(plan.Routes) != 2 {
		t.Fatalf("expected 2 routes, got %d", len(plan.Routes))
	}
	if plan.Routes[0].Summary != "fast" || plan.Routes[1].Summary != "slow" {
		t.Fatalf("expected traffic-duration ordering, got %q then %q", plan.Routes[0].Summary, plan.Routes[1].Summary)
	}
	if plan.Routes[0].TrafficLevel != TrafficLight {
		t.Fatalf("expected Light for ratio 1.0833, got %q", plan.Routes[0].TrafficLevel)
	}
	if plan.Routes[1].TrafficLevel != TrafficHeavy {
		t.Fatalf("expected Heavy for ratio 1.5, got %q", plan.Routes[1].TrafficLevel)
	}
	if plan.Routes[1].DurationLabel != "1 hr 30 min" {
		t.Fatalf("unexpected duration label %q", plan.Routes[1].DurationLabel)
	}
	if plan.Routes[1].ETA != "4:00 PM" {
		t.Fatalf("unexpected ETA %q", plan.Routes[1].ETA)
	}
	if plan.Routes[0].PredictedMinutes <= 0 {
		t.Fatalf("expected positive predicted minutes")
	}
}

func TestPlanResolutionFailure(t *testing.T) {
	svc := NewService(&fakeGeocoder{err: geocode.ErrResolution}, &fakeProvider{}, minimalEstimator())
	_, err := svc.Plan(context.Background(), PlanRequest{Start: "x", Destination: "y"})
	if !errors.Is(err, geocode.ErrResolution) {
		t.Fatalf("expected resolution failure, got %v", err)
	}
}

func TestPlanNoRoutes(t *testing.T) {
	svc := NewService(testGeocoder(), &fakeProvider{err: directions.ErrNoRoutes}, minimalEstimator())
	_, err := svc.Plan(context.Background(), PlanRequest{Start: "Majestic", Destination: "Chennai"})
	if !errors.Is(err, directions.ErrNoRoutes) {
		t.Fatalf("expected ErrNoRoutes, got %v", err)
	}
}

func TestPlanModelUnavailable(t *testing.T) {
	svc := NewService(testGeocoder(), &fakeProvider{}, predict.NewEstimator(predict.Artifacts{}))
	_, err := svc.Plan(context.Background(), PlanRequest{Start: "Majestic", Destination: "Chennai"})
	if !errors.Is(err, predict.ErrModelUnavailable) {
		t.Fatalf("expected ErrModelUnavailable, got %v", err)
	}
}

func TestPlanDefaultsDepartureToNow(t *testing.T) {
	provider := &fakeProvider{routes: []directions.RouteCandidate{
		{Summary: "only", NominalDurationSeconds: 600, TrafficDurationSeconds: 600, TrafficRatio: 1.0, StepCount: 3},
	}}
	svc := NewService(testGeocoder(), provider, minimalEstimator())

	fixed := time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	plan, err := svc.Plan(context.Background(), PlanRequest{Start: "Majestic", Destination: "Chennai"})
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if !plan.Departure.Equal(fixed) {
		t.Fatalf("expected departure defaulted to now, got %v", plan.Departure)
	}
}
