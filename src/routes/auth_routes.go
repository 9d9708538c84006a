package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/scholaria/scholaria-backend/src/controllers"
	"github.com/scholaria/scholaria-backend/src/middleware"
)

// AuthRoutes sets up signup, login, logout, and current-user routes.
func AuthRoutes(app *fiber.App) {
	auth := app.Group("/api/v1/auth")

	auth.Post("/signup", controllers.Signup)
	auth.Post("/login", controllers.Login)
	auth.Post("/logout", controllers.Logout)
	auth.Get("/me", middleware.ProtectRoute, controllers.GetCurrentUser)
}
