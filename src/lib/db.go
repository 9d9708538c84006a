package lib

import (
	"github.com/rs/zerolog/log"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var DB *gorm.DB

// ConnectDB opens the SQLite database at the given path and sets the global DB.
func ConnectDB(dbPath string) {
	var err error
	DB, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		log.Fatal().Err(err).Str("path", dbPath).Msg("failed to connect to database")
	}

	log.Info().Str("path", dbPath).Msg("connected to SQLite")
}
