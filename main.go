package main

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/scholaria/scholaria-backend/src/config"
	"github.com/scholaria/scholaria-backend/src/connections"
	"github.com/scholaria/scholaria-backend/src/controllers"
	"github.com/scholaria/scholaria-backend/src/lib"
	"github.com/scholaria/scholaria-backend/src/realtime"
	"github.com/scholaria/scholaria-backend/src/routes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	lib.JWTSecret = cfg.JWTSecret
	lib.ConnectDB(cfg.DBPath)
	lib.AutoMigrate()

	store := connections.NewGormStore(lib.DB)
	manager := connections.NewManager(store, log.With().Str("component", "connections").Logger())
	hub := realtime.NewHub(log.With().Str("component", "realtime").Logger())

	go func() {
		if err := hub.Serve(cfg.RealtimeAddr); err != nil {
			log.Error().Err(err).Msg("realtime hub stopped")
		}
	}()

	controllers.Setup(manager, hub, cfg)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))

	routes.AuthRoutes(app)
	routes.UserRoutes(app)
	routes.ConnectionRoutes(app)
	routes.PaperRoutes(app)
	routes.MessageRoutes(app)
	routes.NotificationRoutes(app)
	routes.AnalyticsRoutes(app)

	app.Static("/uploads", cfg.UploadDir)

	log.Info().Str("port", cfg.Port).Msg("server is running")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
