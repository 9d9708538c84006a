package controllers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/scholaria/scholaria-backend/src/connections"
	"github.com/scholaria/scholaria-backend/src/lib"
	"github.com/scholaria/scholaria-backend/src/models"
)

const defaultConnectMessage = "I would like to connect with you on Scholaria."

// connectionError maps the manager's sentinel errors onto HTTP responses, one
// distinct message per kind so the client never shows a generic failure for an
// expected condition.
func connectionError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, connections.ErrSelfRequest):
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("You can't send a connection request to yourself"))
	case errors.Is(err, connections.ErrDuplicateRequest):
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("A connection request already exists"))
	case errors.Is(err, connections.ErrNotAuthorized):
		return c.Status(fiber.StatusForbidden).JSON(lib.MessageResponse("Not authorized to respond to this request"))
	case errors.Is(err, connections.ErrRequestNotFound):
		return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("Connection request not found"))
	case errors.Is(err, connections.ErrAlreadyResolved):
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("This request has already been processed"))
	case errors.Is(err, connections.ErrRequestInFlight):
		return c.Status(fiber.StatusConflict).JSON(lib.MessageResponse("A response to this request is already being processed"))
	case errors.Is(err, connections.ErrStoreUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(lib.MessageResponse("Service temporarily unavailable, please retry"))
	default:
		log.Error().Err(err).Msg("unexpected connection error")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}
}

func paramUint(c *fiber.Ctx, name string) (uint, error) {
	raw, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(raw), nil
}

// GetDiscoverableScholars returns the discover view for the authenticated
// user, optionally filtered by a search term on name or institution.
func GetDiscoverableScholars(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Profile)

	// Navigating into the network view is a refresh point.
	if _, err := connManager.Refresh(c.Context(), user.ID); err != nil {
		return connectionError(c, err)
	}

	entries, err := connManager.Discoverable(c.Context(), user.ID)
	if err != nil {
		return connectionError(c, err)
	}

	if q := strings.ToLower(c.Query("search")); q != "" {
		filtered := entries[:0]
		for _, entry := range entries {
			if strings.Contains(strings.ToLower(entry.Account.FullName), q) ||
				strings.Contains(strings.ToLower(entry.Account.Institution), q) {
				filtered = append(filtered, entry)
			}
		}
		entries = filtered
	}

	return c.JSON(entries)
}

// SendConnectionRequest creates a pending request from the authenticated user
// to the target scholar.
func SendConnectionRequest(c *fiber.Ctx) error {
	targetID, err := paramUint(c, "userId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid user ID format"))
	}

	user := c.Locals("user").(models.Profile)

	var body struct {
		Message string `json:"message"`
	}
	// The note is optional; an empty body is fine.
	_ = c.BodyParser(&body)
	if body.Message == "" {
		body.Message = defaultConnectMessage
	}

	req, err := connManager.RequestConnection(c.Context(), user.ID, targetID, body.Message)
	if err != nil {
		return connectionError(c, err)
	}

	notifyUser(targetID, models.NotificationTypeConnectionRequest, user.ID, nil)
	connManager.Invalidate(targetID)
	hub.Notify(targetID, "connections")

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Connection request sent successfully",
		"request": req,
	})
}

// respondToRequest handles both accept and reject.
func respondToRequest(c *fiber.Ctx, decision connections.Decision) error {
	requestID, err := paramUint(c, "requestId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid request ID format"))
	}

	user := c.Locals("user").(models.Profile)

	resolved, err := connManager.Respond(c.Context(), requestID, user.ID, decision)
	if err != nil {
		return connectionError(c, err)
	}

	if decision == connections.DecisionAccept {
		notifyUser(resolved.SenderID, models.NotificationTypeConnectionAccepted, user.ID, nil)
	}
	connManager.Invalidate(resolved.SenderID)
	hub.Notify(resolved.SenderID, "connections")

	message := "Connection accepted successfully"
	if decision == connections.DecisionReject {
		message = "Connection request rejected"
	}
	return c.JSON(fiber.Map{
		"message": message,
		"request": resolved,
	})
}

// AcceptConnectionRequest accepts a pending connection request.
func AcceptConnectionRequest(c *fiber.Ctx) error {
	return respondToRequest(c, connections.DecisionAccept)
}

// RejectConnectionRequest rejects a pending connection request.
func RejectConnectionRequest(c *fiber.Ctx) error {
	return respondToRequest(c, connections.DecisionReject)
}

// GetConnectionRequests returns all pending incoming requests for the
// authenticated user, with the sender profile attached.
func GetConnectionRequests(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Profile)

	if _, err := connManager.Refresh(c.Context(), user.ID); err != nil {
		return connectionError(c, err)
	}
	pending, err := connManager.PendingIncoming(c.Context(), user.ID)
	if err != nil {
		return connectionError(c, err)
	}

	type pendingRequestResponse struct {
		ID        uint               `json:"_id"`
		Sender    models.ProfileDto  `json:"sender"`
		Message   string             `json:"message,omitempty"`
		Status    connections.Status `json:"status"`
		CreatedAt string             `json:"createdAt"`
	}

	response := make([]pendingRequestResponse, 0, len(pending))
	for _, req := range pending {
		sender, err := lib.FindProfileByID(req.SenderID)
		if err != nil {
			log.Warn().Err(err).Uint("sender", req.SenderID).Msg("sender profile missing for pending request")
			continue
		}
		response = append(response, pendingRequestResponse{
			ID:        req.ID,
			Sender:    sender.Dto(),
			Message:   req.Message,
			Status:    req.Status,
			CreatedAt: req.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}

	return c.JSON(response)
}

// GetUserConnections returns the scholars connected to the authenticated user.
func GetUserConnections(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Profile)

	if _, err := connManager.Refresh(c.Context(), user.ID); err != nil {
		return connectionError(c, err)
	}
	views, err := connManager.Connections(c.Context(), user.ID)
	if err != nil {
		return connectionError(c, err)
	}

	return c.JSON(views)
}

// GetConnectionStatus returns the request state between the authenticated
// user and another scholar.
func GetConnectionStatus(c *fiber.Ctx) error {
	targetID, err := paramUint(c, "userId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid user ID format"))
	}

	user := c.Locals("user").(models.Profile)
	if user.ID == targetID {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Cannot check connection status with yourself"))
	}

	entries, err := connManager.Discoverable(c.Context(), user.ID)
	if err != nil {
		return connectionError(c, err)
	}

	for _, entry := range entries {
		if entry.Account.ID != targetID {
			continue
		}
		resp := fiber.Map{"status": entry.Status}
		if entry.Status == connections.StatusPending {
			resp["direction"] = entry.Direction
			resp["requestId"] = entry.RequestID
		}
		return c.JSON(resp)
	}

	return c.JSON(fiber.Map{"status": connections.StatusNone})
}

// notifyUser records a notification, logging instead of failing the request
// when the write does not land.
func notifyUser(recipientID uint, kind models.NotificationType, relatedUserID uint, relatedPaperID *uint) {
	notification := models.Notification{
		RecipientID:    recipientID,
		Type:           kind,
		RelatedUserID:  relatedUserID,
		RelatedPaperID: relatedPaperID,
	}
	if err := lib.DB.Create(&notification).Error; err != nil {
		log.Warn().Err(err).Uint("recipient", recipientID).Str("type", string(kind)).Msg("failed to create notification")
	}
}
