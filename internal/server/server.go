package server

import (
	"errors"

	"github.com/DianaGur/Trip-Planner-Fullstack/internal/auth"
	"github.com/DianaGur/Trip-Planner-Fullstack/internal/config"
	"github.com/DianaGur/Trip-Planner-Fullstack/internal/images"
	"github.com/DianaGur/Trip-Planner-Fullstack/internal/trip"
	"github.com/DianaGur/Trip-Planner-Fullstack/internal/weather"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App   *fiber.App
	Cfg   config.Config
	DB    *pgxpool.Pool
	Redis *redis.Client
}

func NewServer(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client) *Server {
	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler,
	})
	app.Use(recover.New())
	app.Use(logger.New())

	s := &Server{
		App:   app,
		Cfg:   cfg,
		DB:    db,
		Redis: redisClient,
	}

	registerRoutes(s)
	return s
}

// errorHandler renders every fiber error as the one JSON envelope the
// client knows how to read.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "internal server error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}
	return c.Status(code).JSON(fiber.Map{"success": false, "message": message})
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	jwtMiddleware := auth.JWTMiddleware(s.Cfg.JWTSecret)
	api := s.App.Group("/api")

	loginLimiter := auth.NewRateLimiter(s.Cfg.LoginPerMinute, s.Cfg.LoginPerMinute)
	auth.RegisterRoutes(api.Group("/auth"), auth.NewService(s.Cfg.JWTSecret, s.DB), loginLimiter)

	planner := trip.NewPlannerClient(s.Cfg.PlannerBaseURL)
	trip.RegisterRoutes(api.Group("/trips"), trip.NewService(s.DB, planner), jwtMiddleware)

	weatherClient := weather.NewClient(s.Cfg.WeatherBaseURL, s.Cfg.WeatherAPIKey)
	weather.RegisterRoutes(api.Group("/weather"), weather.NewService(weatherClient, s.Redis), jwtMiddleware)

	imageClient := images.NewClient(s.Cfg.ImagesBaseURL, s.Cfg.ImagesAPIKey)
	images.RegisterRoutes(api.Group("/images"), images.NewService(imageClient, s.Redis), jwtMiddleware)
}
