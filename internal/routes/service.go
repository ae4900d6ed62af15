package routes

import (
	"context"

	"backend-routewise/internal/db"

	"github.com/google/uuid"
)

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

func (s *Service) SaveRoute(ctx context.Context, input SavedRoute) (SavedRoute, error) {
	input.ID = uuid.NewString()
	row := s.db.QueryRow(ctx, `
		INSERT INTO saved_routes (id, user_id, start_label, end_label, travel_date, duration_label)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING created_at
	`, input.ID, input.UserID, input.StartLabel, input.EndLabel, input.TravelDate, input.DurationLabel)
	if err := row.Scan(&input.CreatedAt); err != nil {
		return SavedRoute{}, err
	}
	return input, nil
}

func (s *Service) ListRoutes(ctx context.Context, userID string) ([]SavedRoute, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, start_label, end_label, travel_date, duration_label, created_at
		FROM saved_routes WHERE user_id=$1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var saved []SavedRoute
	for rows.Next() {
		var r SavedRoute
		if err := rows.Scan(&r.ID, &r.UserID, &r.StartLabel, &r.EndLabel, &r.TravelDate, &r.DurationLabel, &r.CreatedAt); err != nil {
			return nil, err
		}
		saved = append(saved, r)
	}
	return saved, nil
}

func (s *Service) DeleteRoute(ctx context.Context, id, userID string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM saved_routes WHERE id=$1 AND user_id=$2`, id, userID)
	return err
}
