package trip

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/generate", authMiddleware, func(c *fiber.Ctx) error {
		var req GenerateRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}

		generated, err := svc.GenerateTrip(c.Context(), userID(c), req)
		switch {
		case errors.Is(err, ErrValidation):
			return fiber.NewError(fiber.StatusBadRequest, validationMessage(req))
		case errors.Is(err, ErrSuperseded):
			return fiber.NewError(fiber.StatusConflict, "a newer generate request was issued")
		case err != nil:
			return fiber.NewError(fiber.StatusBadGateway, "route generation failed")
		}
		return c.JSON(fiber.Map{"success": true, "data": generated})
	})

	r.Post("/", authMiddleware, func(c *fiber.Ctx) error {
		var raw map[string]any
		if err := c.BodyParser(&raw); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}

		req := NormalizeSaveable(raw)
		if req.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name required")
		}

		saved, err := svc.SaveTrip(c.Context(), userID(c), req)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": fiber.Map{"id": saved.ID}})
	})

	r.Get("/", authMiddleware, func(c *fiber.Ctx) error {
		trips, stats, err := svc.ListTrips(c.Context(), userID(c))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if trips == nil {
			trips = []Trip{}
		}
		return c.JSON(fiber.Map{"success": true, "data": trips, "userStats": stats})
	})

	r.Get("/stats", authMiddleware, func(c *fiber.Ctx) error {
		stats, recent, err := svc.Stats(c.Context(), userID(c))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if recent == nil {
			recent = []Trip{}
		}
		return c.JSON(fiber.Map{"success": true, "stats": stats, "recentTrips": recent})
	})

	r.Get("/:id", authMiddleware, func(c *fiber.Ctx) error {
		t, err := svc.GetTrip(c.Context(), c.Params("id"), userID(c))
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "trip not found")
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{"success": true, "data": t})
	})

	r.Delete("/:id", authMiddleware, func(c *fiber.Ctx) error {
		err := svc.DeleteTrip(c.Context(), c.Params("id"), userID(c))
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "trip not found")
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{"success": true})
	})
}

func userID(c *fiber.Ctx) string {
	id, _ := c.Locals("user_id").(string)
	return id
}

func validationMessage(req GenerateRequest) string {
	switch {
	case req.City == "":
		return "city required"
	case !req.TripType.Valid():
		return "tripType must be hiking or cycling"
	case req.TripType == TypeCycling && req.Days < 2:
		return "cycling trips need at least 2 days"
	default:
		return "days must be at least 1"
	}
}
