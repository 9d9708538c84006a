package lib

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/scholaria/scholaria-backend/src/models"
)

// JWTSecret is set once at startup from the configuration.
var JWTSecret = "fallback-secret-key"

// MessageResponse returns a map with a message key for API responses.
func MessageResponse(message string) fiber.Map {
	return fiber.Map{
		"message": message,
	}
}

// GenerateJWT generates a signed token for the given profile ID.
func GenerateJWT(userID uint) (string, error) {
	claims := jwt.MapClaims{
		"userId": float64(userID),
		"exp":    time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(JWTSecret))
}

// VerifyJWT verifies and decodes a token, returning its claims.
func VerifyJWT(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(JWTSecret), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}

// FindProfileByID looks up a profile by ID with the password column excluded.
func FindProfileByID(userID uint) (*models.Profile, error) {
	var profile models.Profile
	err := DB.Omit("password").First(&profile, userID).Error
	if err != nil {
		return nil, err
	}
	profile.Password = ""

	return &profile, nil
}
