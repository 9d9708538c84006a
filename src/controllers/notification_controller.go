package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/scholaria/scholaria-backend/src/lib"
	"github.com/scholaria/scholaria-backend/src/models"
)

// GetUserNotifications returns the authenticated user's notifications,
// newest first, with the related user attached.
func GetUserNotifications(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Profile)

	var notifications []models.Notification
	err := lib.DB.Preload("RelatedUser").
		Where("recipient_id = ?", user.ID).
		Order("created_at DESC").
		Find(&notifications).Error
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch notifications")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	type notificationResponse struct {
		ID           uint                    `json:"_id"`
		Type         models.NotificationType `json:"type"`
		Read         bool                    `json:"read"`
		RelatedUser  models.ProfileDto       `json:"related_user"`
		RelatedPaper *uint                   `json:"related_paper,omitempty"`
		CreatedAt    time.Time               `json:"createdAt"`
	}

	response := make([]notificationResponse, 0, len(notifications))
	for i := range notifications {
		n := &notifications[i]
		response = append(response, notificationResponse{
			ID:           n.ID,
			Type:         n.Type,
			Read:         n.Read,
			RelatedUser:  n.RelatedUser.Dto(),
			RelatedPaper: n.RelatedPaperID,
			CreatedAt:    n.CreatedAt,
		})
	}
	return c.JSON(response)
}

func findOwnNotification(c *fiber.Ctx, user models.Profile) (*models.Notification, error) {
	notificationID, err := paramUint(c, "notificationId")
	if err != nil {
		return nil, c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid notification ID format"))
	}

	var notification models.Notification
	err = lib.DB.Where("id = ? AND recipient_id = ?", notificationID, user.ID).First(&notification).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("Notification not found"))
		}
		return nil, c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}
	return &notification, nil
}

// MarkNotificationRead marks one of the user's notifications as read.
func MarkNotificationRead(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Profile)

	notification, errResp := findOwnNotification(c, user)
	if notification == nil {
		return errResp
	}

	if err := lib.DB.Model(notification).Update("read", true).Error; err != nil {
		log.Error().Err(err).Msg("failed to mark notification read")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}
	return c.JSON(lib.MessageResponse("Notification marked as read"))
}

// MarkAllNotificationsRead marks every unread notification of the user read.
func MarkAllNotificationsRead(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Profile)

	err := lib.DB.Model(&models.Notification{}).
		Where("recipient_id = ? AND read = ?", user.ID, false).
		Update("read", true).Error
	if err != nil {
		log.Error().Err(err).Msg("failed to mark notifications read")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}
	return c.JSON(lib.MessageResponse("All notifications marked as read"))
}

// DeleteNotification removes one of the user's notifications.
func DeleteNotification(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Profile)

	notification, errResp := findOwnNotification(c, user)
	if notification == nil {
		return errResp
	}

	if err := lib.DB.Delete(notification).Error; err != nil {
		log.Error().Err(err).Msg("failed to delete notification")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}
	return c.JSON(lib.MessageResponse("Notification deleted"))
}
