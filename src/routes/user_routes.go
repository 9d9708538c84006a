package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/scholaria/scholaria-backend/src/controllers"
	"github.com/scholaria/scholaria-backend/src/middleware"
)

// UserRoutes sets up profile routes.
func UserRoutes(app *fiber.App) {
	users := app.Group("/api/v1/users", middleware.ProtectRoute)

	users.Get("/suggestions", controllers.GetSuggestedScholars)
	users.Get("/:userId", controllers.GetPublicProfile)
	users.Put("/profile", controllers.UpdateProfile)
}
