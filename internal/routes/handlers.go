package routes

import (
	"context"
	"errors"
	"time"

	"backend-routewise/internal/directions"
	"backend-routewise/internal/geocode"
	"backend-routewise/internal/planner"
	"backend-routewise/internal/predict"

	"github.com/gofiber/fiber/v2"
)

// Planner is satisfied by *planner.Service.
type Planner interface {
	Plan(ctx context.Context, req planner.PlanRequest) (planner.Plan, error)
}

func RegisterRoutes(r fiber.Router, plans Planner, saved *Service, defaultCity string, authMiddleware fiber.Handler) {
	r.Post("/plan", func(c *fiber.Ctx) error {
		var body planRequestBody
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		if body.Start == "" || body.Destination == "" {
			return fiber.NewError(fiber.StatusBadRequest, "start and destination required")
		}
		if body.City == "" {
			body.City = defaultCity
		}

		req := planner.PlanRequest{
			Start:        body.Start,
			Destination:  body.Destination,
			City:         body.City,
			Variant:      predict.Variant(body.Variant),
			Alternatives: true,
		}
		if body.Alternatives != nil {
			req.Alternatives = *body.Alternatives
		}
		if body.DepartureTime != "" {
			departure, err := time.Parse(time.RFC3339, body.DepartureTime)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "departure_time must be RFC3339")
			}
			req.Departure = departure
		}

		plan, err := plans.Plan(c.Context(), req)
		if err != nil {
			return planError(err)
		}
		return c.JSON(plan)
	})

	r.Post("/saved", authMiddleware, func(c *fiber.Ctx) error {
		var body saveRouteBody
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		if body.StartLabel == "" || body.EndLabel == "" {
			return fiber.NewError(fiber.StatusBadRequest, "start_label and end_label required")
		}

		route, err := saved.SaveRoute(c.Context(), SavedRoute{
			UserID:        c.Locals("user_id").(string),
			StartLabel:    body.StartLabel,
			EndLabel:      body.EndLabel,
			TravelDate:    body.TravelDate,
			DurationLabel: body.DurationLabel,
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(route)
	})

	r.Get("/saved", authMiddleware, func(c *fiber.Ctx) error {
		saved, err := saved.ListRoutes(c.Context(), c.Locals("user_id").(string))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if saved == nil {
			saved = []SavedRoute{}
		}
		return c.JSON(saved)
	})

	r.Delete("/saved/:id", authMiddleware, func(c *fiber.Ctx) error {
		if err := saved.DeleteRoute(c.Context(), c.Params("id"), c.Locals("user_id").(string)); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}

// planError maps pipeline failures onto HTTP statuses. Nothing here retries;
// the caller sees exactly one outcome per request.
func planError(err error) error {
	switch {
	case errors.Is(err, geocode.ErrEmptyPlace), errors.Is(err, geocode.ErrResolution):
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, directions.ErrNoRoutes):
		return fiber.NewError(fiber.StatusNotFound, "no routes found")
	case errors.Is(err, directions.ErrProvider):
		return fiber.NewError(fiber.StatusBadGateway, err.Error())
	case errors.Is(err, predict.ErrModelUnavailable):
		return fiber.NewError(fiber.StatusServiceUnavailable, "prediction model unavailable")
	default:
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}
