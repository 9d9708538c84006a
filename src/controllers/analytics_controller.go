package controllers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/scholaria/scholaria-backend/src/analytics"
	"github.com/scholaria/scholaria-backend/src/lib"
	"github.com/scholaria/scholaria-backend/src/models"
)

func myStats(c *fiber.Ctx) (analytics.Stats, error) {
	user := c.Locals("user").(models.Profile)

	var papers []models.Paper
	err := lib.DB.Where("author_id = ?", user.ID).Find(&papers).Error
	if err != nil {
		return analytics.Stats{}, err
	}
	return analytics.Compute(papers, time.Now()), nil
}

// GetMyStats returns the authenticated user's research statistics.
func GetMyStats(c *fiber.Ctx) error {
	stats, err := myStats(c)
	if err != nil {
		log.Error().Err(err).Msg("failed to compute stats")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}
	return c.JSON(stats)
}

// ExportMyStatsCSV returns the statistics as a downloadable CSV file.
func ExportMyStatsCSV(c *fiber.Ctx) error {
	stats, err := myStats(c)
	if err != nil {
		log.Error().Err(err).Msg("failed to compute stats")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	data, err := analytics.WriteCSV(stats)
	if err != nil {
		log.Error().Err(err).Msg("failed to render csv")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	filename := fmt.Sprintf("research_analytics_%s.csv", time.Now().Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(data)
}
