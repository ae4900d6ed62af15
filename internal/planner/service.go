package planner

import (
	"context"
	"fmt"
	"log"
	"math"
	"sort"
	"strings"
	"time"

	"backend-routewise/internal/directions"
	"backend-routewise/internal/predict"
	"backend-routewise/internal/shared/geo"
)

// Geocoder resolves free-text places to coordinates.
type Geocoder interface {
	Resolve(ctx context.Context, placeText, cityHint string) (geo.Coordinate, error)
}

// RouteProvider fetches driving alternatives between two coordinates.
type RouteProvider interface {
	FetchRoutes(ctx context.Context, origin, destination geo.Coordinate, departure time.Time, allowAlternatives bool) ([]directions.RouteCandidate, error)
}

// Estimator scores a feature vector in minutes.
type Estimator interface {
	Estimate(f predict.Features) (float64, error)
	Supports(v predict.Variant) bool
}

// cityIndexes matches the index encoding the extended model was trained
// with. Unknown cities fall back to index 0.
var cityIndexes = map[string]int{
	"bengaluru": 0,
	"chennai":   1,
	"delhi":     2,
	"hyderabad": 3,
	"mumbai":    4,
}

type Service struct {
	geocoder  Geocoder
	provider  RouteProvider
	estimator Estimator
	now       func() time.Time
}

func NewService(geocoder Geocoder, provider RouteProvider, estimator Estimator) *Service {
	return &Service{
		geocoder:  geocoder,
		provider:  provider,
		estimator: estimator,
		now:       time.Now,
	}
}

type PlanRequest struct {
	Start        string
	Destination  string
	City         string
	Departure    time.Time
	Variant      predict.Variant
	Alternatives bool
}

type DisplayRoute struct {
	Summary          string           `json:"summary"`
	Polyline         []geo.Coordinate `json:"polyline"`
	DistanceKm       float64          `json:"distance_km"`
	TrafficRatio     float64          `json:"traffic_ratio"`
	TrafficLevel     TrafficLevel     `json:"traffic_level"`
	DurationSeconds  int              `json:"duration_seconds"`
	DurationLabel    string           `json:"duration_label"`
	PredictedMinutes float64          `json:"predicted_minutes"`
	PredictedLabel   string           `json:"predicted_label"`
	ETA              string           `json:"eta"`
}

type Plan struct {
	Origin      geo.Coordinate `json:"origin"`
	Destination geo.Coordinate `json:"destination"`
	Departure   time.Time      `json:"departure"`
	Routes      []DisplayRoute `json:"routes"`
}

// Plan runs the full pipeline: resolve both endpoints, fetch alternatives,
// score each with the requested variant's model, then classify and format.
// Routes are ordered by traffic-aware duration, stable so provider order
// breaks ties.
func (s *Service) Plan(ctx context.Context, req PlanRequest) (Plan, error) {
	variant := req.Variant
	if variant == "" {
		variant = predict.VariantMinimal
	}
	if !s.estimator.Supports(variant) {
		return Plan{}, fmt.Errorf("variant %q: %w", variant, predict.ErrModelUnavailable)
	}

	departure := req.Departure
	if departure.IsZero() {
		departure = s.now()
	}

	origin, err := s.geocoder.Resolve(ctx, req.Start, req.City)
	if err != nil {
		return Plan{}, fmt.Errorf("resolve start: %w", err)
	}
	destination, err := s.geocoder.Resolve(ctx, req.Destination, req.City)
	if err != nil {
		return Plan{}, fmt.Errorf("resolve destination: %w", err)
	}

	candidates, err := s.provider.FetchRoutes(ctx, origin, destination, departure, req.Alternatives)
	if err != nil {
		return Plan{}, err
	}

	cityIndex := cityIndexes[strings.ToLower(req.City)]

	routes := make([]DisplayRoute, 0, len(candidates))
	for _, candidate := range candidates {
		features := predict.BuildFeatures(origin, destination, candidate, departure, cityIndex, variant)
		for _, note := range features.DataQuality {
			log.Printf("route %q data quality: %s", candidate.Summary, note)
		}

		minutes, err := s.estimator.Estimate(features)
		if err != nil {
			return Plan{}, err
		}

		routes = append(routes, DisplayRoute{
			Summary:          candidate.Summary,
			Polyline:         candidate.Polyline,
			DistanceKm:       float64(candidate.DistanceMeters) / 1000,
			TrafficRatio:     candidate.TrafficRatio,
			TrafficLevel:     ClassifyTraffic(candidate.TrafficRatio),
			DurationSeconds:  candidate.TrafficDurationSeconds,
			DurationLabel:    FormatDuration(candidate.TrafficDurationSeconds),
			PredictedMinutes: minutes,
			PredictedLabel:   FormatDuration(int(math.Round(minutes)) * 60),
			ETA:              FormatETA(departure, candidate.TrafficDurationSeconds),
		})
	}

	sort.SliceStable(routes, func(i, j int) bool {
		return routes[i].DurationSeconds < routes[j].DurationSeconds
	})

	return Plan{
		Origin:      origin,
		Destination: destination,
		Departure:   departure,
		Routes:      routes,
	}, nil
}
