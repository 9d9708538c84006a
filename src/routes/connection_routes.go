package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/scholaria/scholaria-backend/src/controllers"
	"github.com/scholaria/scholaria-backend/src/middleware"
)

// ConnectionRoutes sets up the network view routes: discover, request,
// accept/reject, pending list, connections list, and pair status.
func ConnectionRoutes(app *fiber.App) {
	conns := app.Group("/api/v1/connections", middleware.ProtectRoute)

	conns.Get("/discover", controllers.GetDiscoverableScholars)
	conns.Post("/request/:userId", controllers.SendConnectionRequest)
	conns.Put("/accept/:requestId", controllers.AcceptConnectionRequest)
	conns.Put("/reject/:requestId", controllers.RejectConnectionRequest)
	conns.Get("/requests", controllers.GetConnectionRequests)
	conns.Get("/", controllers.GetUserConnections)
	conns.Get("/status/:userId", controllers.GetConnectionStatus)
}
