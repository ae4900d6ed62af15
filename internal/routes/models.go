package routes

import "time"

// SavedRoute is a denormalized snapshot of a planned trip, append-only
// per user. It is not re-derivable from a route candidate.
type SavedRoute struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	StartLabel    string    `json:"start_label"`
	EndLabel      string    `json:"end_label"`
	TravelDate    string    `json:"travel_date"`
	DurationLabel string    `json:"duration_label"`
	CreatedAt     time.Time `json:"created_at"`
}

type planRequestBody struct {
	Start         string `json:"start"`
	Destination   string `json:"destination"`
	City          string `json:"city"`
	DepartureTime string `json:"departure_time"`
	Variant       string `json:"variant"`
	Alternatives  *bool  `json:"alternatives"`
}

type saveRouteBody struct {
	StartLabel    string `json:"start_label"`
	EndLabel      string `json:"end_label"`
	TravelDate    string `json:"travel_date"`
	DurationLabel string `json:"duration_label"`
}
