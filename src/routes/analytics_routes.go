package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/scholaria/scholaria-backend/src/controllers"
	"github.com/scholaria/scholaria-backend/src/middleware"
)

// AnalyticsRoutes sets up research statistics routes.
func AnalyticsRoutes(app *fiber.App) {
	stats := app.Group("/api/v1/analytics", middleware.ProtectRoute)

	stats.Get("/", controllers.GetMyStats)
	stats.Get("/export", controllers.ExportMyStatsCSV)
}
