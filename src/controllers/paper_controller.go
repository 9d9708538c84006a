package controllers

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/scholaria/scholaria-backend/src/lib"
	"github.com/scholaria/scholaria-backend/src/models"
)

func paperDto(paper *models.Paper) models.PaperDto {
	reviews := make([]models.ReviewDto, 0, len(paper.Reviews))
	for i := range paper.Reviews {
		r := &paper.Reviews[i]
		reviews = append(reviews, models.ReviewDto{
			ID:        r.ID,
			Rating:    r.Rating,
			Content:   r.Content,
			Reviewer:  r.Reviewer.Dto(),
			CreatedAt: r.CreatedAt,
		})
	}
	return models.PaperDto{
		ID:            paper.ID,
		Author:        paper.Author.Dto(),
		Title:         paper.Title,
		Abstract:      paper.Abstract,
		Keywords:      paper.Keywords,
		PublishedYear: paper.PublishedYear,
		CitationCount: paper.CitationCount,
		FileURL:       paper.FileURL,
		Reviews:       reviews,
		CreatedAt:     paper.CreatedAt,
		UpdatedAt:     paper.UpdatedAt,
	}
}

// CreatePaper records a new paper for the authenticated user.
func CreatePaper(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Profile)

	var body struct {
		Title         string   `json:"title" validate:"required"`
		Abstract      string   `json:"abstract"`
		Keywords      []string `json:"keywords"`
		PublishedYear int      `json:"published_year"`
		CitationCount int      `json:"citation_count" validate:"min=0"`
		FileURL       string   `json:"file_url"`
		FileName      string   `json:"file_name"`
		FileSize      int64    `json:"file_size"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid request body"))
	}
	if err := validate.Struct(body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse(err.Error()))
	}

	paper := models.Paper{
		AuthorID:      user.ID,
		Title:         body.Title,
		Abstract:      body.Abstract,
		Keywords:      body.Keywords,
		PublishedYear: body.PublishedYear,
		CitationCount: body.CitationCount,
		FileURL:       body.FileURL,
		FileName:      body.FileName,
		FileSize:      body.FileSize,
	}
	if err := lib.DB.Create(&paper).Error; err != nil {
		log.Error().Err(err).Msg("failed to create paper")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Failed to create paper"))
	}

	paper.Author = user
	return c.Status(fiber.StatusCreated).JSON(paperDto(&paper))
}

// GetMyPapers returns the authenticated user's papers, newest first.
func GetMyPapers(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Profile)

	var papers []models.Paper
	err := lib.DB.Preload("Reviews.Reviewer").
		Where("author_id = ?", user.ID).
		Order("created_at DESC").
		Find(&papers).Error
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch papers")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	response := make([]models.PaperDto, 0, len(papers))
	for i := range papers {
		papers[i].Author = user
		response = append(response, paperDto(&papers[i]))
	}
	return c.JSON(response)
}

// GetPaperFeed returns all papers across scholars, newest first.
func GetPaperFeed(c *fiber.Ctx) error {
	var papers []models.Paper
	err := lib.DB.Preload("Author").Preload("Reviews.Reviewer").
		Order("created_at DESC").
		Find(&papers).Error
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch paper feed")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	response := make([]models.PaperDto, 0, len(papers))
	for i := range papers {
		response = append(response, paperDto(&papers[i]))
	}
	return c.JSON(response)
}

// SearchPapers filters papers by a substring match on title or abstract.
func SearchPapers(c *fiber.Ctx) error {
	query := c.Query("q")

	tx := lib.DB.Preload("Author").Order("created_at DESC")
	if authorID := c.QueryInt("author"); authorID > 0 {
		tx = tx.Where("author_id = ?", authorID)
	}
	if query != "" {
		pattern := "%" + query + "%"
		tx = tx.Where("title LIKE ? OR abstract LIKE ?", pattern, pattern)
	}

	var papers []models.Paper
	if err := tx.Find(&papers).Error; err != nil {
		log.Error().Err(err).Msg("failed to search papers")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	response := make([]models.PaperDto, 0, len(papers))
	for i := range papers {
		response = append(response, paperDto(&papers[i]))
	}
	return c.JSON(response)
}

// UpdatePaper updates a paper owned by the authenticated user.
func UpdatePaper(c *fiber.Ctx) error {
	paperID, err := paramUint(c, "paperId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid paper ID format"))
	}
	user := c.Locals("user").(models.Profile)

	var paper models.Paper
	if err := lib.DB.First(&paper, paperID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("Paper not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}
	if paper.AuthorID != user.ID {
		return c.Status(fiber.StatusForbidden).JSON(lib.MessageResponse("Not authorized to update this paper"))
	}

	var body struct {
		Title         *string   `json:"title"`
		Abstract      *string   `json:"abstract"`
		Keywords      *[]string `json:"keywords"`
		PublishedYear *int      `json:"published_year"`
		CitationCount *int      `json:"citation_count"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid request body"))
	}

	if body.Title != nil {
		paper.Title = *body.Title
	}
	if body.Abstract != nil {
		paper.Abstract = *body.Abstract
	}
	if body.Keywords != nil {
		paper.Keywords = *body.Keywords
	}
	if body.PublishedYear != nil {
		paper.PublishedYear = *body.PublishedYear
	}
	if body.CitationCount != nil {
		paper.CitationCount = *body.CitationCount
	}

	if err := lib.DB.Save(&paper).Error; err != nil {
		log.Error().Err(err).Msg("failed to update paper")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Failed to update paper"))
	}

	paper.Author = user
	return c.JSON(paperDto(&paper))
}

// DeletePaper removes a paper owned by the authenticated user.
func DeletePaper(c *fiber.Ctx) error {
	paperID, err := paramUint(c, "paperId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid paper ID format"))
	}
	user := c.Locals("user").(models.Profile)

	var paper models.Paper
	if err := lib.DB.First(&paper, paperID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("Paper not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}
	if paper.AuthorID != user.ID {
		return c.Status(fiber.StatusForbidden).JSON(lib.MessageResponse("Not authorized to delete this paper"))
	}

	if err := lib.DB.Delete(&paper).Error; err != nil {
		log.Error().Err(err).Msg("failed to delete paper")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Failed to delete paper"))
	}

	return c.JSON(lib.MessageResponse("Paper deleted successfully"))
}

// UploadPaperFile stores an uploaded PDF under the uploads directory and
// returns the file metadata to attach to a paper.
func UploadPaperFile(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Profile)

	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("No file provided"))
	}

	dir := filepath.Join(cfg.UploadDir, fmt.Sprintf("%d", user.ID))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Error().Err(err).Msg("failed to create upload directory")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Failed to store file"))
	}

	stored := uuid.NewString() + filepath.Ext(file.Filename)
	dest := filepath.Join(dir, stored)
	if err := c.SaveFile(file, dest); err != nil {
		log.Error().Err(err).Msg("failed to save uploaded file")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Failed to store file"))
	}

	return c.JSON(fiber.Map{
		"file_url":  fmt.Sprintf("/uploads/%d/%s", user.ID, stored),
		"file_name": file.Filename,
		"file_size": file.Size,
	})
}
