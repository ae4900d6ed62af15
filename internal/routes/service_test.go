package routes

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
)

func TestSaveAndListRoutes(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	createdAt := time.Now()
	mock.ExpectQuery(`INSERT INTO saved_routes`).
		WithArgs(pgxmock.AnyArg(), "user-1", "Majestic", "Chennai Central", "2025-03-15", "5 hr 12 min").
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(createdAt))

	svc := NewService(mock)
	saved, err := svc.SaveRoute(context.Background(), SavedRoute{
		UserID:        "user-1",
		StartLabel:    "Majestic",
		EndLabel:      "Chennai Central",
		TravelDate:    "2025-03-15",
		DurationLabel: "5 hr 12 min",
	})
	if err != nil {
		t.Fatalf("save route: %v", err)
	}
	if saved.ID == "" {
		t.Fatalf("expected generated id")
	}

	mock.ExpectQuery(`SELECT id, user_id, start_label, end_label, travel_date, duration_label, created_at`).
		WithArgs("user-1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "start_label", "end_label", "travel_date", "duration_label", "created_at"}).
			AddRow(saved.ID, "user-1", "Majestic", "Chennai Central", "2025-03-15", "5 hr 12 min", createdAt))

	list, err := svc.ListRoutes(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("list routes: %v", err)
	}
	if len(list) != 1 || list[0].StartLabel != "Majestic" {
		t.Fatalf("unexpected list: %+v", list)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDeleteRouteScopedToUser(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectExec(`DELETE FROM saved_routes`).
		WithArgs("route-1", "user-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	svc := NewService(mock)
	if err := svc.DeleteRoute(context.Background(), "route-1", "user-1"); err != nil {
		t.Fatalf("delete route: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSaveRouteError(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`INSERT INTO saved_routes`).
		WithArgs(pgxmock.AnyArg(), "user-1", "a", "b", "", "").
		WillReturnError(errors.New("insert failed"))

	svc := NewService(mock)
	_, err = svc.SaveRoute(context.Background(), SavedRoute{UserID: "user-1", StartLabel: "a", EndLabel: "b"})
	if err == nil {
		t.Fatalf("expected error")
	}
}
