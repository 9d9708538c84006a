package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/scholaria/scholaria-backend/src/controllers"
	"github.com/scholaria/scholaria-backend/src/middleware"
)

// NotificationRoutes sets up notification routes.
func NotificationRoutes(app *fiber.App) {
	notifications := app.Group("/api/v1/notifications", middleware.ProtectRoute)

	notifications.Get("/", controllers.GetUserNotifications)
	notifications.Put("/read-all", controllers.MarkAllNotificationsRead)
	notifications.Put("/:notificationId/read", controllers.MarkNotificationRead)
	notifications.Delete("/:notificationId", controllers.DeleteNotification)
}
