package app

import (
	"gorm.io/gorm"

	"github.com/filmvault/theater-backend/internal/platform/logger"
	"github.com/filmvault/theater-backend/internal/services"
)

type Services struct {
	Movie services.MovieService
}

func wireServices(db *gorm.DB, log *logger.Logger, reposet Repos) Services {
	log.Info("Wiring services...")
	return Services{
		Movie: services.NewMovieService(
			db,
			log,
			reposet.Movie,
			reposet.Country,
			reposet.Genre,
			reposet.Actor,
			reposet.Language,
		),
	}
}
