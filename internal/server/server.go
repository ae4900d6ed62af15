package server

import (
	"backend-routewise/internal/auth"
	"backend-routewise/internal/config"
	"backend-routewise/internal/directions"
	"backend-routewise/internal/geocode"
	"backend-routewise/internal/history"
	"backend-routewise/internal/planner"
	"backend-routewise/internal/predict"
	"backend-routewise/internal/routes"
	"backend-routewise/internal/stream"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App    *fiber.App
	Cfg    config.Config
	DB     *pgxpool.Pool
	Redis  *redis.Client
	Models predict.Artifacts
	Stream *stream.Hub
}

func NewServer(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client, models predict.Artifacts) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	s := &Server{
		App:    app,
		Cfg:    cfg,
		DB:     db,
		Redis:  redisClient,
		Models: models,
		Stream: stream.NewHub(redisClient),
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	jwtMiddleware := auth.JWTMiddleware(s.Cfg.JWTSecret)

	plans := planner.NewService(
		geocode.NewClient(s.Cfg.GeocodeBaseURL, s.Cfg.MapsAPIKey, s.Redis),
		directions.NewClient(s.Cfg.DirectionsBaseURL, s.Cfg.MapsAPIKey),
		predict.NewEstimator(s.Models),
	)

	auth.RegisterRoutes(s.App.Group("/auth"), auth.NewService(s.Cfg.JWTSecret, s.DB))
	routes.RegisterRoutes(s.App.Group("/routes"), plans, routes.NewService(s.DB), s.Cfg.DefaultCity, jwtMiddleware)
	history.RegisterRoutes(s.App.Group("/history"), history.NewService(s.DB, s.Stream), jwtMiddleware)
	stream.RegisterRoutes(s.App.Group("/stream"), s.Stream)
}
