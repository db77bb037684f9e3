package weather

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Get("/:city", authMiddleware, func(c *fiber.Ctx) error {
		city := cityParam(c.Params("city"))
		if city == "" {
			return fiber.NewError(fiber.StatusBadRequest, "city required")
		}

		report, err := svc.Report(c.Context(), city)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{"success": true, "data": report})
	})
}

// cityParam unescapes the path segment; city names arrive URL-encoded.
func cityParam(raw string) string {
	city, err := url.PathUnescape(raw)
	if err != nil {
		city = raw
	}
	return strings.TrimSpace(city)
}
