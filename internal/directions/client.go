package directions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"backend-routewise/internal/shared/geo"
)

const (
	fetchTimeout = 15 * time.Second

	// Departure times in the past are replaced with now plus this lead.
	pastDepartureLead = 5 * time.Minute
)

var (
	// ErrProvider covers upstream non-OK statuses and transport failures.
	ErrProvider = errors.New("directions provider failed")
	// ErrNoRoutes means the provider answered but had no alternatives.
	ErrNoRoutes = errors.New("no routes found")
)

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	now     func() time.Time
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: fetchTimeout},
		now:     time.Now,
	}
}

// FetchRoutes requests driving directions and returns the alternatives in
// provider order. A departure time earlier than now is replaced with
// now + 5 minutes before the request is made. Never retries and never
// returns partial results.
func (c *Client) FetchRoutes(ctx context.Context, origin, destination geo.Coordinate, departure time.Time, allowAlternatives bool) ([]RouteCandidate, error) {
	departure = c.clampDeparture(departure)

	params := url.Values{}
	params.Set("origin", formatCoordinate(origin))
	params.Set("destination", formatCoordinate(destination))
	params.Set("mode", "driving")
	params.Set("departure_time", strconv.FormatInt(departure.Unix(), 10))
	params.Set("key", c.apiKey)
	if allowAlternatives {
		params.Set("alternatives", "true")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/directions/json?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProvider, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProvider, err)
	}
	defer resp.Body.Close()

	var body directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProvider, err)
	}

	switch body.Status {
	case "OK":
	case "ZERO_RESULTS":
		return nil, ErrNoRoutes
	default:
		return nil, fmt.Errorf("%w: status %s %s", ErrProvider, body.Status, body.ErrorMessage)
	}
	if len(body.Routes) == 0 {
		return nil, ErrNoRoutes
	}

	candidates := make([]RouteCandidate, 0, len(body.Routes))
	for _, r := range body.Routes {
		candidates = append(candidates, toCandidate(r))
	}
	return candidates, nil
}

func (c *Client) clampDeparture(departure time.Time) time.Time {
	now := c.now()
	if departure.Before(now) {
		return now.Add(pastDepartureLead)
	}
	return departure
}

func toCandidate(r route) RouteCandidate {
	candidate := RouteCandidate{
		Polyline: geo.DecodePolyline(r.OverviewPolyline.Points),
		Summary:  r.Summary,
	}
	if len(r.Legs) == 0 {
		candidate.TrafficRatio = 1.0
		return candidate
	}

	first := r.Legs[0]
	candidate.DistanceMeters = first.Distance.Value
	candidate.NominalDurationSeconds = first.Duration.Value
	candidate.TrafficDurationSeconds = first.DurationInTraffic.Value
	if candidate.TrafficDurationSeconds == 0 {
		candidate.TrafficDurationSeconds = candidate.NominalDurationSeconds
	}
	candidate.StepCount = len(first.Steps)

	candidate.TrafficRatio = 1.0
	if candidate.NominalDurationSeconds > 0 {
		candidate.TrafficRatio = float64(candidate.TrafficDurationSeconds) / float64(candidate.NominalDurationSeconds)
	}
	return candidate
}

func formatCoordinate(c geo.Coordinate) string {
	return fmt.Sprintf("%f,%f", c.Lat, c.Lng)
}
