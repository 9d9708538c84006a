package config

import (
	"github.com/kelseyhightower/envconfig"
)

// Config holds every runtime setting the server reads from the environment.
type Config struct {
	Port         string `envconfig:"PORT" default:"3000"`
	DBPath       string `envconfig:"DB_PATH" default:"./scholaria.db"`
	JWTSecret    string `envconfig:"JWT_SECRET" default:"fallback-secret-key"`
	UploadDir    string `envconfig:"UPLOAD_DIR" default:"./uploads"`
	RealtimeAddr string `envconfig:"REALTIME_ADDR" default:":3001"`
	AllowOrigins string `envconfig:"ALLOW_ORIGINS" default:"http://localhost:5173"`
	LogLevel     string `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
