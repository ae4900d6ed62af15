package planner

import (
	"fmt"
	"time"
)

type TrafficLevel string

const (
	TrafficHeavy    TrafficLevel = "Heavy"
	TrafficModerate TrafficLevel = "Moderate"
	TrafficLight    TrafficLevel = "Light"
)

// ClassifyTraffic maps a traffic ratio to a level. Boundaries: exactly 1.1
// is Light, exactly 1.3 is Moderate.
func ClassifyTraffic(ratio float64) TrafficLevel {
	switch {
	case ratio > 1.3:
		return TrafficHeavy
	case ratio > 1.1:
		return TrafficModerate
	default:
		return TrafficLight
	}
}

// FormatDuration renders a duration in whole minutes, truncating sub-minute
// remainders: "H hr M min" when an hour or more, "M min" otherwise.
func FormatDuration(seconds int) string {
	minutes := seconds / 60
	hours := minutes / 60
	if hours > 0 {
		return fmt.Sprintf("%d hr %d min", hours, minutes%60)
	}
	return fmt.Sprintf("%d min", minutes)
}

// FormatETA renders arrival time on a 12-hour clock.
func FormatETA(departure time.Time, trafficSeconds int) string {
	return departure.Add(time.Duration(trafficSeconds) * time.Second).Format("3:04 PM")
}
