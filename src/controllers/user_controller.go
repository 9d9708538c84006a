package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/scholaria/scholaria-backend/src/connections"
	"github.com/scholaria/scholaria-backend/src/lib"
	"github.com/scholaria/scholaria-backend/src/models"
)

const suggestedLimit = 3

// GetSuggestedScholars returns a few discoverable scholars the user has no
// request with yet.
func GetSuggestedScholars(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Profile)

	entries, err := connManager.Discoverable(c.Context(), user.ID)
	if err != nil {
		return connectionError(c, err)
	}

	suggested := make([]connections.Account, 0, suggestedLimit)
	for _, entry := range entries {
		if entry.Status != connections.StatusNone {
			continue
		}
		suggested = append(suggested, entry.Account)
		if len(suggested) == suggestedLimit {
			break
		}
	}

	return c.JSON(suggested)
}

// GetPublicProfile returns a scholar's public profile by id.
func GetPublicProfile(c *fiber.Ctx) error {
	userID, err := paramUint(c, "userId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid user ID format"))
	}

	profile, err := lib.FindProfileByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("User not found"))
		}
		log.Error().Err(err).Msg("failed to fetch public profile")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	return c.JSON(profile)
}

// UpdateProfile updates the authenticated user's profile, restricted to the
// editable fields.
func UpdateProfile(c *fiber.Ctx) error {
	user := c.Locals("user").(models.Profile)

	var body struct {
		FullName          *string   `json:"full_name"`
		Institution       *string   `json:"institution"`
		Department        *string   `json:"department"`
		AcademicTitle     *string   `json:"academic_title"`
		ResearchInterests *[]string `json:"research_interests"`
		Skills            *[]string `json:"skills"`
		Bio               *string   `json:"bio"`
		AvatarURL         *string   `json:"avatar_url"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid request body"))
	}

	updates := map[string]interface{}{}
	if body.FullName != nil {
		updates["full_name"] = *body.FullName
	}
	if body.Institution != nil {
		updates["institution"] = *body.Institution
	}
	if body.Department != nil {
		updates["department"] = *body.Department
	}
	if body.AcademicTitle != nil {
		updates["academic_title"] = *body.AcademicTitle
	}
	if body.Bio != nil {
		updates["bio"] = *body.Bio
	}
	if body.AvatarURL != nil {
		updates["avatar_url"] = *body.AvatarURL
	}
	if len(updates) > 0 {
		if err := lib.DB.Model(&models.Profile{}).Where("id = ?", user.ID).Updates(updates).Error; err != nil {
			log.Error().Err(err).Msg("failed to update profile")
			return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Failed to update profile"))
		}
	}

	// Serialized slice columns go through the model so the JSON serializer runs.
	var fresh models.Profile
	if err := lib.DB.First(&fresh, user.ID).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}
	changed := false
	if body.ResearchInterests != nil {
		fresh.ResearchInterests = *body.ResearchInterests
		changed = true
	}
	if body.Skills != nil {
		fresh.Skills = *body.Skills
		changed = true
	}
	if changed {
		if err := lib.DB.Save(&fresh).Error; err != nil {
			log.Error().Err(err).Msg("failed to update profile lists")
			return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Failed to update profile"))
		}
	}

	fresh.Password = ""
	return c.JSON(fresh)
}
