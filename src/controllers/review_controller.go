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

// GetPaperReviews returns all reviews for a paper, newest first, with the
// reviewer profile attached.
func GetPaperReviews(c *fiber.Ctx) error {
	paperID, err := paramUint(c, "paperId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid paper ID format"))
	}

	var reviews []models.Review
	err = lib.DB.Preload("Reviewer").
		Where("paper_id = ?", paperID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch reviews")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	response := make([]models.ReviewDto, 0, len(reviews))
	for i := range reviews {
		r := &reviews[i]
		response = append(response, models.ReviewDto{
			ID:        r.ID,
			Rating:    r.Rating,
			Content:   r.Content,
			Reviewer:  r.Reviewer.Dto(),
			CreatedAt: r.CreatedAt,
		})
	}
	return c.JSON(response)
}

// AddReview records a review by the authenticated user on a paper.
func AddReview(c *fiber.Ctx) error {
	paperID, err := paramUint(c, "paperId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid paper ID format"))
	}
	user := c.Locals("user").(models.Profile)

	var body struct {
		Rating  int    `json:"rating" validate:"required,min=1,max=5"`
		Content string `json:"content" validate:"required"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid request body"))
	}
	if err := validate.Struct(body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse(err.Error()))
	}

	var paper models.Paper
	if err := lib.DB.First(&paper, paperID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("Paper not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	review := models.Review{
		PaperID:    paperID,
		ReviewerID: user.ID,
		Rating:     body.Rating,
		Content:    body.Content,
	}
	if err := lib.DB.Create(&review).Error; err != nil {
		log.Error().Err(err).Msg("failed to create review")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Failed to add review"))
	}

	return c.Status(fiber.StatusCreated).JSON(models.ReviewDto{
		ID:        review.ID,
		Rating:    review.Rating,
		Content:   review.Content,
		Reviewer:  user.Dto(),
		CreatedAt: review.CreatedAt,
	})
}

// CreateReviewRequest asks another scholar to review one of the authenticated
// user's papers.
func CreateReviewRequest(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Profile)

	var body struct {
		PaperID         uint       `json:"paper_id" validate:"required"`
		RequestedFromID uint       `json:"requested_from_id" validate:"required"`
		Message         string     `json:"message"`
		Deadline        *time.Time `json:"deadline"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid request body"))
	}
	if err := validate.Struct(body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse(err.Error()))
	}
	if body.RequestedFromID == user.ID {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("You can't request a review from yourself"))
	}

	var paper models.Paper
	if err := lib.DB.First(&paper, body.PaperID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("Paper not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}
	if paper.AuthorID != user.ID {
		return c.Status(fiber.StatusForbidden).JSON(lib.MessageResponse("You can only request reviews of your own papers"))
	}

	request := models.ReviewRequest{
		PaperID:         body.PaperID,
		RequestedByID:   user.ID,
		RequestedFromID: body.RequestedFromID,
		Message:         body.Message,
		Deadline:        body.Deadline,
		Status:          "pending",
	}
	if err := lib.DB.Create(&request).Error; err != nil {
		log.Error().Err(err).Msg("failed to create review request")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Failed to request review"))
	}

	notifyUser(body.RequestedFromID, models.NotificationTypeReviewRequested, user.ID, &body.PaperID)
	hub.Notify(body.RequestedFromID, "reviews")

	return c.Status(fiber.StatusCreated).JSON(request)
}

// GetMyReviewRequests returns the pending review requests addressed to the
// authenticated user, with the paper and requester attached.
func GetMyReviewRequests(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Profile)

	var requests []models.ReviewRequest
	err := lib.DB.Preload("Paper").Preload("RequestedBy").
		Where("requested_from_id = ? AND status = ?", user.ID, "pending").
		Order("created_at DESC").
		Find(&requests).Error
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch review requests")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	type reviewRequestResponse struct {
		ID          uint              `json:"_id"`
		Paper       models.PaperDto   `json:"paper"`
		RequestedBy models.ProfileDto `json:"requested_by"`
		Message     string            `json:"message,omitempty"`
		Deadline    *time.Time        `json:"deadline,omitempty"`
		CreatedAt   time.Time         `json:"createdAt"`
	}

	response := make([]reviewRequestResponse, 0, len(requests))
	for i := range requests {
		req := &requests[i]
		req.Paper.Author = req.RequestedBy
		response = append(response, reviewRequestResponse{
			ID:          req.ID,
			Paper:       paperDto(&req.Paper),
			RequestedBy: req.RequestedBy.Dto(),
			Message:     req.Message,
			Deadline:    req.Deadline,
			CreatedAt:   req.CreatedAt,
		})
	}
	return c.JSON(response)
}
