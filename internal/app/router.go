package app

import (
	apphttp "github.com/filmvault/theater-backend/internal/http"
	"github.com/filmvault/theater-backend/internal/platform/logger"
)

func wireServer(log *logger.Logger, cfg Config, handlerset Handlers) *apphttp.Server {
	return apphttp.NewServer(apphttp.RouterConfig{
		Log:           log,
		HealthHandler: handlerset.Health,
		MovieHandler:  handlerset.Movie,
		ServiceName:   cfg.ServiceName,
	})
}
