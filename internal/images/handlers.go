package images

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	handler := func(c *fiber.Ctx) error {
		city := pathParam(c.Params("city"))
		if city == "" {
			return fiber.NewError(fiber.StatusBadRequest, "city required")
		}
		country := pathParam(c.Params("country"))

		image := svc.Lookup(c.Context(), city, country)
		return c.JSON(fiber.Map{"success": true, "data": image})
	}

	r.Get("/location/:city", authMiddleware, handler)
	r.Get("/location/:city/:country", authMiddleware, handler)
}

func pathParam(raw string) string {
	v, err := url.PathUnescape(raw)
	if err != nil {
		v = raw
	}
	return strings.TrimSpace(v)
}
