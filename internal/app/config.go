package app

import (
	"github.com/filmvault/theater-backend/internal/platform/envutil"
)

type Config struct {
	Port        string
	LogMode     string
	ServiceName string
	Environment string
	Version     string
}

func LoadConfig() Config {
	return Config{
		Port:        envutil.Str("PORT", "8080"),
		LogMode:     envutil.Str("LOG_MODE", "development"),
		ServiceName: envutil.Str("SERVICE_NAME", "theater-backend"),
		Environment: envutil.Str("ENVIRONMENT", "development"),
		Version:     envutil.Str("SERVICE_VERSION", "dev"),
	}
}
