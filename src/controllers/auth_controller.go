package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/scholaria/scholaria-backend/src/lib"
	"github.com/scholaria/scholaria-backend/src/models"
)

const authCookieName = "jwt-scholaria"

func setAuthCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     authCookieName,
		Value:    token,
		Expires:  time.Now().Add(24 * time.Hour),
		HTTPOnly: true,
		SameSite: "Strict",
		Path:     "/",
	})
}

// Signup registers a new scholar profile, hashes the password, and issues a JWT.
func Signup(c *fiber.Ctx) error {
	var body struct {
		FullName      string `json:"full_name" validate:"required"`
		Email         string `json:"email" validate:"required,email"`
		Password      string `json:"password" validate:"required,min=6"`
		Institution   string `json:"institution"`
		Department    string `json:"department"`
		AcademicTitle string `json:"academic_title"`
	}

	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid request body"))
	}
	if err := validate.Struct(body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse(err.Error()))
	}

	var existing models.Profile
	if err := lib.DB.Where("email = ?", body.Email).First(&existing).Error; err == nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Email is already registered"))
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(body.Password), 11)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Internal server error"))
	}

	title := body.AcademicTitle
	if title == "" {
		title = "Associate Professor"
	}

	profile := models.Profile{
		FullName:      body.FullName,
		Email:         body.Email,
		Password:      string(hashed),
		Institution:   body.Institution,
		Department:    body.Department,
		AcademicTitle: title,
	}

	if err := lib.DB.Create(&profile).Error; err != nil {
		log.Error().Err(err).Msg("failed to create profile")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Failed to create user"))
	}

	token, err := lib.GenerateJWT(profile.ID)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate token")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Failed to generate token"))
	}
	setAuthCookie(c, token)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"token":   token,
	})
}

// Login authenticates a scholar by email and password and issues a JWT.
func Login(c *fiber.Ctx) error {
	var body struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid request body"))
	}
	if err := validate.Struct(body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse(err.Error()))
	}

	var profile models.Profile
	err := lib.DB.Where("email = ?", body.Email).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid credentials"))
		}
		log.Error().Err(err).Msg("failed to look up profile")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.Password), []byte(body.Password)); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid credentials"))
	}

	token, err := lib.GenerateJWT(profile.ID)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate token")
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}
	setAuthCookie(c, token)

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
	})
}

// GetCurrentUser returns the currently authenticated profile.
func GetCurrentUser(c *fiber.Ctx) error {
	user := c.Locals("user")
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(lib.MessageResponse("Not authenticated"))
	}
	return c.JSON(user)
}

// Logout clears the authentication cookie.
func Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     authCookieName,
		Value:    "",
		Expires:  time.Now().Add(-1 * time.Hour),
		HTTPOnly: true,
		SameSite: "Strict",
		Path:     "/",
	})
	return c.Status(fiber.StatusOK).JSON(lib.MessageResponse("Logged out successfully"))
}
