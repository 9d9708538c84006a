package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/scholaria/scholaria-backend/src/lib"
	"github.com/scholaria/scholaria-backend/src/models"
)

// connectedWith reports whether the user has an accepted connection with the
// peer. Messaging is a right of established connections, on both sides alike.
func connectedWith(c *fiber.Ctx, userID, peerID uint) (bool, error) {
	views, err := connManager.Connections(c.Context(), userID)
	if err != nil {
		return false, err
	}
	for _, view := range views {
		if view.Peer.ID == peerID {
			return true, nil
		}
	}
	return false, nil
}

// GetConversationPartners returns the scholars the user has exchanged
// messages with.
func GetConversationPartners(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Profile)

	var messages []models.Message
	err := lib.DB.Where("sender_id = ? OR receiver_id = ?", user.ID, user.ID).
		Order("created_at DESC").
		Find(&messages).Error
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch messages")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	seen := map[uint]bool{}
	partners := make([]models.ProfileDto, 0)
	for _, msg := range messages {
		peerID := msg.SenderID
		if peerID == user.ID {
			peerID = msg.ReceiverID
		}
		if seen[peerID] {
			continue
		}
		seen[peerID] = true

		peer, err := lib.FindProfileByID(peerID)
		if err != nil {
			continue
		}
		partners = append(partners, peer.Dto())
	}

	return c.JSON(partners)
}

// GetConversation returns the message history between the authenticated user
// and another scholar, oldest first, and marks received messages read.
func GetConversation(c *fiber.Ctx) error {
	peerID, err := paramUint(c, "userId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid user ID format"))
	}
	user := c.Locals("user").(models.Profile)

	ok, err := connectedWith(c, user.ID, peerID)
	if err != nil {
		return connectionError(c, err)
	}
	if !ok {
		return c.Status(fiber.StatusForbidden).JSON(lib.MessageResponse("You can only message scholars you are connected with"))
	}

	var messages []models.Message
	err = lib.DB.Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
		user.ID, peerID, peerID, user.ID).
		Order("created_at ASC").
		Find(&messages).Error
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch conversation")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	err = lib.DB.Model(&models.Message{}).
		Where("sender_id = ? AND receiver_id = ? AND read = ?", peerID, user.ID, false).
		Update("read", true).Error
	if err != nil {
		log.Warn().Err(err).Msg("failed to mark messages read")
	}

	return c.JSON(messages)
}

// SendMessage sends a direct message to a connected scholar.
func SendMessage(c *fiber.Ctx) error {
	peerID, err := paramUint(c, "userId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid user ID format"))
	}
	user := c.Locals("user").(models.Profile)

	var body struct {
		Content string `json:"content" validate:"required"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid request body"))
	}
	if err := validate.Struct(body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Message content is required"))
	}

	ok, err := connectedWith(c, user.ID, peerID)
	if err != nil {
		return connectionError(c, err)
	}
	if !ok {
		return c.Status(fiber.StatusForbidden).JSON(lib.MessageResponse("You can only message scholars you are connected with"))
	}

	message := models.Message{
		SenderID:   user.ID,
		ReceiverID: peerID,
		Content:    body.Content,
	}
	if err := lib.DB.Create(&message).Error; err != nil {
		log.Error().Err(err).Msg("failed to send message")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Failed to send message"))
	}

	notifyUser(peerID, models.NotificationTypeMessageReceived, user.ID, nil)
	hub.Notify(peerID, "messages")

	return c.Status(fiber.StatusCreated).JSON(message)
}
