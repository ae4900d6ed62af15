package directions

import "backend-routewise/internal/shared/geo"

// RouteCandidate is one driving alternative between two coordinates.
// Built once from the provider response and not mutated afterwards.
type RouteCandidate struct {
	Polyline               []geo.Coordinate `json:"polyline"`
	DistanceMeters         int              `json:"distance_meters"`
	NominalDurationSeconds int              `json:"nominal_duration_seconds"`
	TrafficDurationSeconds int              `json:"traffic_duration_seconds"`
	TrafficRatio           float64          `json:"traffic_ratio"`
	StepCount              int              `json:"step_count"`
	Summary                string           `json:"summary"`
}

type directionsResponse struct {
	Status       string  `json:"status"`
	ErrorMessage string  `json:"error_message,omitempty"`
	Routes       []route `json:"routes"`
}

type route struct {
	Summary          string   `json:"summary"`
	Legs             []leg    `json:"legs"`
	OverviewPolyline polyline `json:"overview_polyline"`
}

type leg struct {
	Distance          value  `json:"distance"`
	Duration          value  `json:"duration"`
	DurationInTraffic value  `json:"duration_in_traffic"`
	Steps             []step `json:"steps"`
}

type step struct {
	HTMLInstructions string `json:"html_instructions"`
	Distance         value  `json:"distance"`
	Duration         value  `json:"duration"`
}

type polyline struct {
	Points string `json:"points"`
}

type value struct {
	Text  string `json:"text"`
	Value int    `json:"value"`
}
