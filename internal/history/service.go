package history

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"backend-routewise/internal/db"
	"backend-routewise/internal/stream"

	"github.com/google/uuid"
)

var validLevels = map[string]struct{}{
	"Light":    {},
	"Moderate": {},
	"Heavy":    {},
}

type Service struct {
	db  db.Querier
	hub *stream.Hub
}

func NewService(db db.Querier, hub *stream.Hub) *Service {
	return &Service{db: db, hub: hub}
}

// RecordObservation stores a sample and pushes a snapshot to the city's
// live subscribers. Hour and weekday are derived from the observation
// timestamp, Monday-first.
func (s *Service) RecordObservation(ctx context.Context, input Observation) (Observation, error) {
	if input.City == "" {
		return Observation{}, errors.New("city required")
	}
	if _, ok := validLevels[input.TrafficLevel]; !ok {
		return Observation{}, errors.New("traffic_level must be Light, Moderate or Heavy")
	}
	if input.DurationMinutes < 0 {
		return Observation{}, errors.New("duration_minutes must be non-negative")
	}
	if input.ObservedAt.IsZero() {
		input.ObservedAt = time.Now()
	}

	input.ID = uuid.NewString()
	input.City = strings.ToLower(input.City)
	input.HourOfDay = input.ObservedAt.Hour()
	input.DayOfWeek = (int(input.ObservedAt.Weekday()) + 6) % 7

	row := s.db.QueryRow(ctx, `
		INSERT INTO traffic_observations (id, city, observed_at, hour_of_day, day_of_week, traffic_level, duration_minutes)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING created_at
	`, input.ID, input.City, input.ObservedAt, input.HourOfDay, input.DayOfWeek, input.TrafficLevel, input.DurationMinutes)
	if err := row.Scan(&input.CreatedAt); err != nil {
		return Observation{}, err
	}

	if s.hub != nil {
		payload, _ := json.Marshal(input)
		s.hub.Broadcast(input.City, payload)
	}

	return input, nil
}

// HourlyStats returns per-hour averages and the most common traffic level
// for one city, ordered by hour. Hours with no samples are absent.
func (s *Service) HourlyStats(ctx context.Context, city string) ([]HourlyStat, error) {
	rows, err := s.db.Query(ctx, `
		SELECT hour_of_day, AVG(duration_minutes), MODE() WITHIN GROUP (ORDER BY traffic_level), COUNT(*)
		FROM traffic_observations
		WHERE city=$1
		GROUP BY hour_of_day
		ORDER BY hour_of_day
	`, strings.ToLower(city))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []HourlyStat
	for rows.Next() {
		var st HourlyStat
		if err := rows.Scan(&st.Hour, &st.AvgDurationMinutes, &st.DominantLevel, &st.SampleCount); err != nil {
			return nil, err
		}
		stats = append(stats, st)
	}
	return stats, nil
}
