package app

import (
	httpH "github.com/filmvault/theater-backend/internal/http/handlers"
	"github.com/filmvault/theater-backend/internal/platform/logger"
)

type Handlers struct {
	Health *httpH.HealthHandler
	Movie  *httpH.MovieHandler
}

func wireHandlers(log *logger.Logger, serviceset Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health: httpH.NewHealthHandler(),
		Movie:  httpH.NewMovieHandler(log, serviceset.Movie),
	}
}
