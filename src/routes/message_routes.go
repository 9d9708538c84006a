package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/scholaria/scholaria-backend/src/controllers"
	"github.com/scholaria/scholaria-backend/src/middleware"
)

// MessageRoutes sets up direct-message routes.
func MessageRoutes(app *fiber.App) {
	messages := app.Group("/api/v1/messages", middleware.ProtectRoute)

	messages.Get("/", controllers.GetConversationPartners)
	messages.Get("/:userId", controllers.GetConversation)
	messages.Post("/:userId", controllers.SendMessage)
}
