package history

import "time"

// Observation is one historical traffic sample for a city, the raw
// material behind the hourly chart.
type Observation struct {
	ID              string    `json:"id"`
	City            string    `json:"city"`
	ObservedAt      time.Time `json:"observed_at"`
	HourOfDay       int       `json:"hour_of_day"`
	DayOfWeek       int       `json:"day_of_week"` // Monday-first: Saturday=5, Sunday=6
	TrafficLevel    string    `json:"traffic_level"`
	DurationMinutes float64   `json:"duration_minutes"`
	CreatedAt       time.Time `json:"created_at"`
}

// HourlyStat aggregates a city's observations for one hour of day.
type HourlyStat struct {
	Hour               int     `json:"hour"`
	AvgDurationMinutes float64 `json:"avg_duration_minutes"`
	DominantLevel      string  `json:"dominant_level"`
	SampleCount        int     `json:"sample_count"`
}
