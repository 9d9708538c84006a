package lib

import (
	"github.com/rs/zerolog/log"

	"github.com/scholaria/scholaria-backend/src/models"
)

// AutoMigrate runs all database migrations.
func AutoMigrate() {
	err := DB.AutoMigrate(
		&models.Profile{},
		&models.Connection{},
		&models.Paper{},
		&models.Review{},
		&models.ReviewRequest{},
		&models.Message{},
		&models.Notification{},
	)

	if err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	log.Info().Msg("database migration completed")
}
