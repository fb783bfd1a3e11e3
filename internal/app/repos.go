package app

import (
	"gorm.io/gorm"

	"github.com/filmvault/theater-backend/internal/platform/logger"
	"github.com/filmvault/theater-backend/internal/repos"
)

type Repos struct {
	Movie    repos.MovieRepo
	Country  repos.CountryRepo
	Genre    repos.GenreRepo
	Actor    repos.ActorRepo
	Language repos.LanguageRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Movie:    repos.NewMovieRepo(db, log),
		Country:  repos.NewCountryRepo(db, log),
		Genre:    repos.NewGenreRepo(db, log),
		Actor:    repos.NewActorRepo(db, log),
		Language: repos.NewLanguageRepo(db, log),
	}
}
