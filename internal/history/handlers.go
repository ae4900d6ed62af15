package history

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/observations", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			City            string  `json:"city"`
			ObservedAt      string  `json:"observed_at"`
			TrafficLevel    string  `json:"traffic_level"`
			DurationMinutes float64 `json:"duration_minutes"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}

		input := Observation{
			City:            body.City,
			TrafficLevel:    body.TrafficLevel,
			DurationMinutes: body.DurationMinutes,
		}
		if body.ObservedAt != "" {
			observedAt, err := time.Parse(time.RFC3339, body.ObservedAt)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "observed_at must be RFC3339")
			}
			input.ObservedAt = observedAt
		}

		obs, err := svc.RecordObservation(c.Context(), input)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(obs)
	})

	r.Get("/cities/:city/hourly", func(c *fiber.Ctx) error {
		stats, err := svc.HourlyStats(c.Context(), c.Params("city"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if stats == nil {
			stats = []HourlyStat{}
		}
		return c.JSON(stats)
	})
}
