package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"gorm.io/gorm"

	"github.com/filmvault/theater-backend/internal/platform/apierr"
	"github.com/filmvault/theater-backend/internal/platform/logger"
	"github.com/filmvault/theater-backend/internal/repos"
	"github.com/filmvault/theater-backend/internal/types"
)

const (
	movieListBasePath = "/theater/movies"
	dateLayout        = "2006-01-02"

	// A release date may be announced ahead of time, but not further out
	// than one year.
	maxFutureDays = 365
)

type CreateMovieInput struct {
	Name      string   `json:"name" binding:"required,max=255"`
	Date      string   `json:"date" binding:"required"`
	Score     float64  `json:"score" binding:"gte=0,lte=100"`
	Overview  *string  `json:"overview"`
	Status    string   `json:"status" binding:"required"`
	Budget    float64  `json:"budget" binding:"gte=0"`
	Revenue   float64  `json:"revenue" binding:"gte=0"`
	Country   string   `json:"country" binding:"required"`
	Genres    []string `json:"genres"`
	Actors    []string `json:"actors"`
	Languages []string `json:"languages"`
}

// UpdateMovieInput is a sparse patch: only non-nil fields are applied.
// Relations are not updatable through this operation.
type UpdateMovieInput struct {
	Name     *string  `json:"name" binding:"omitempty,max=255"`
	Date     *string  `json:"date"`
	Score    *float64 `json:"score" binding:"omitempty,gte=0,lte=100"`
	Overview *string  `json:"overview"`
	Status   *string  `json:"status"`
	Budget   *float64 `json:"budget" binding:"omitempty,gte=0"`
	Revenue  *float64 `json:"revenue" binding:"omitempty,gte=0"`
}

type CountryOut struct {
	ID   uint    `json:"id"`
	Code string  `json:"code"`
	Name *string `json:"name"`
}

type NamedOut struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type MovieDetail struct {
	ID        uint       `json:"id"`
	Name      string     `json:"name"`
	Date      string     `json:"date"`
	Score     float64    `json:"score"`
	Overview  string     `json:"overview"`
	Status    string     `json:"status"`
	Budget    float64    `json:"budget"`
	Revenue   float64    `json:"revenue"`
	Country   CountryOut `json:"country"`
	Genres    []NamedOut `json:"genres"`
	Actors    []NamedOut `json:"actors"`
	Languages []NamedOut `json:"languages"`
}

type MovieListItem struct {
	ID       uint    `json:"id"`
	Name     string  `json:"name"`
	Date     string  `json:"date"`
	Score    float64 `json:"score"`
	Overview string  `json:"overview"`
}

type MovieListResult struct {
	Movies     []MovieListItem `json:"movies"`
	PrevPage   *string         `json:"prev_page"`
	NextPage   *string         `json:"next_page"`
	TotalPages int             `json:"total_pages"`
	TotalItems int64           `json:"total_items"`
}

type MovieService interface {
	List(ctx context.Context, page, perPage int) (*MovieListResult, error)
	Create(ctx context.Context, in CreateMovieInput) (*MovieDetail, error)
	Get(ctx context.Context, id uint) (*MovieDetail, error)
	Update(ctx context.Context, id uint, in UpdateMovieInput) error
	Delete(ctx context.Context, id uint) error
}

type movieService struct {
	db           *gorm.DB
	log          *logger.Logger
	movieRepo    repos.MovieRepo
	countryRepo  repos.CountryRepo
	genreRepo    repos.GenreRepo
	actorRepo    repos.ActorRepo
	languageRepo repos.LanguageRepo
}

func NewMovieService(
	db *gorm.DB,
	baseLog *logger.Logger,
	movieRepo repos.MovieRepo,
	countryRepo repos.CountryRepo,
	genreRepo repos.GenreRepo,
	actorRepo repos.ActorRepo,
	languageRepo repos.LanguageRepo,
) MovieService {
	serviceLog := baseLog.With("service", "MovieService")
	return &movieService{
		db:           db,
		log:          serviceLog,
		movieRepo:    movieRepo,
		countryRepo:  countryRepo,
		genreRepo:    genreRepo,
		actorRepo:    actorRepo,
		languageRepo: languageRepo,
	}
}

func (ms *movieService) List(ctx context.Context, page, perPage int) (*MovieListResult, error) {
	total, err := ms.movieRepo.Count(ctx, nil)
	if err != nil {
		ms.log.Error("List count failed", "error", err)
		return nil, fmt.Errorf("count movies: %w", err)
	}
	if total == 0 {
		return nil, apierr.NotFound("No movies found.")
	}

	totalPages := int(math.Ceil(float64(total) / float64(perPage)))
	if page > totalPages {
		return nil, apierr.NotFound("No movies found.")
	}

	offset := (page - 1) * perPage
	rows, err := ms.movieRepo.ListPage(ctx, nil, offset, perPage)
	if err != nil {
		ms.log.Error("List fetch failed", "error", err, "page", page, "per_page", perPage)
		return nil, fmt.Errorf("list movies: %w", err)
	}

	items := make([]MovieListItem, 0, len(rows))
	for _, m := range rows {
		items = append(items, MovieListItem{
			ID:       m.ID,
			Name:     m.Name,
			Date:     m.Date.Format(dateLayout),
			Score:    m.Score,
			Overview: m.Overview,
		})
	}

	result := &MovieListResult{
		Movies:     items,
		TotalPages: totalPages,
		TotalItems: total,
	}
	if page > 1 {
		result.PrevPage = pageLink(page-1, perPage)
	}
	if page < totalPages {
		result.NextPage = pageLink(page+1, perPage)
	}
	return result, nil
}

func (ms *movieService) Create(ctx context.Context, in CreateMovieInput) (*MovieDetail, error) {
	// All validation and the uniqueness pre-check run before any write,
	// so a rejected request never leaves reference rows behind.
	date, err := ms.validateCreate(in)
	if err != nil {
		return nil, err
	}

	exists, err := ms.movieRepo.ExistsByNameAndDate(ctx, nil, in.Name, date)
	if err != nil {
		ms.log.Error("Create uniqueness check failed", "error", err)
		return nil, fmt.Errorf("check movie uniqueness: %w", err)
	}
	if exists {
		return nil, conflictErr(in.Name, in.Date)
	}

	var movieID uint
	txErr := ms.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Re-check under the transaction; the composite unique index on
		// (name, date) backstops a create/create race.
		exists, err := ms.movieRepo.ExistsByNameAndDate(ctx, tx, in.Name, date)
		if err != nil {
			return fmt.Errorf("check movie uniqueness: %w", err)
		}
		if exists {
			return conflictErr(in.Name, in.Date)
		}

		country, err := ms.countryRepo.GetOrCreate(ctx, tx, in.Country)
		if err != nil {
			return fmt.Errorf("resolve country %q: %w", in.Country, err)
		}

		genres := make([]types.Genre, 0, len(in.Genres))
		for _, name := range dedupeNames(in.Genres) {
			genre, err := ms.genreRepo.GetOrCreate(ctx, tx, name)
			if err != nil {
				return fmt.Errorf("resolve genre %q: %w", name, err)
			}
			genres = append(genres, *genre)
		}

		actors := make([]types.Actor, 0, len(in.Actors))
		for _, name := range dedupeNames(in.Actors) {
			actor, err := ms.actorRepo.GetOrCreate(ctx, tx, name)
			if err != nil {
				return fmt.Errorf("resolve actor %q: %w", name, err)
			}
			actors = append(actors, *actor)
		}

		languages := make([]types.Language, 0, len(in.Languages))
		for _, name := range dedupeNames(in.Languages) {
			language, err := ms.languageRepo.GetOrCreate(ctx, tx, name)
			if err != nil {
				return fmt.Errorf("resolve language %q: %w", name, err)
			}
			languages = append(languages, *language)
		}

		overview := ""
		if in.Overview != nil {
			overview = *in.Overview
		}
		movie := &types.Movie{
			Name:      in.Name,
			Date:      date,
			Score:     in.Score,
			Overview:  overview,
			Status:    in.Status,
			Budget:    in.Budget,
			Revenue:   in.Revenue,
			CountryID: country.ID,
			Genres:    genres,
			Actors:    actors,
			Languages: languages,
		}
		if _, err := ms.movieRepo.Create(ctx, tx, movie); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return conflictErr(in.Name, in.Date)
			}
			return fmt.Errorf("create movie: %w", err)
		}
		movieID = movie.ID
		return nil
	})
	if txErr != nil {
		var apiErr *apierr.Error
		if errors.As(txErr, &apiErr) {
			return nil, apiErr
		}
		ms.log.Error("Create transaction failed", "error", txErr, "name", in.Name)
		return nil, txErr
	}

	movie, err := ms.movieRepo.GetByID(ctx, nil, movieID)
	if err != nil {
		ms.log.Error("Create reload failed", "error", err, "movie_id", movieID)
		return nil, fmt.Errorf("load created movie: %w", err)
	}
	if movie == nil {
		return nil, fmt.Errorf("created movie %d disappeared", movieID)
	}
	ms.log.Info("Movie created", "movie_id", movie.ID, "name", movie.Name)
	return toMovieDetail(movie), nil
}

func (ms *movieService) Get(ctx context.Context, id uint) (*MovieDetail, error) {
	movie, err := ms.movieRepo.GetByID(ctx, nil, id)
	if err != nil {
		ms.log.Error("Get failed", "error", err, "movie_id", id)
		return nil, fmt.Errorf("load movie: %w", err)
	}
	if movie == nil {
		return nil, apierr.NotFound("Movie with the given ID was not found.")
	}
	return toMovieDetail(movie), nil
}

func (ms *movieService) Update(ctx context.Context, id uint, in UpdateMovieInput) error {
	fields, err := ms.validateUpdate(in)
	if err != nil {
		return err
	}

	movie, err := ms.movieRepo.GetByID(ctx, nil, id)
	if err != nil {
		ms.log.Error("Update load failed", "error", err, "movie_id", id)
		return fmt.Errorf("load movie: %w", err)
	}
	if movie == nil {
		return apierr.NotFound("Movie with the given ID was not found.")
	}

	if err := ms.movieRepo.UpdateFields(ctx, nil, id, fields); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apierr.Conflict("A movie with the same name and release date already exists.")
		}
		ms.log.Error("Update failed", "error", err, "movie_id", id)
		return fmt.Errorf("update movie: %w", err)
	}
	ms.log.Info("Movie updated", "movie_id", id)
	return nil
}

func (ms *movieService) Delete(ctx context.Context, id uint) error {
	movie, err := ms.movieRepo.GetByID(ctx, nil, id)
	if err != nil {
		ms.log.Error("Delete load failed", "error", err, "movie_id", id)
		return fmt.Errorf("load movie: %w", err)
	}
	if movie == nil {
		return apierr.NotFound("Movie with the given ID was not found.")
	}
	if err := ms.movieRepo.Delete(ctx, nil, movie); err != nil {
		ms.log.Error("Delete failed", "error", err, "movie_id", id)
		return fmt.Errorf("delete movie: %w", err)
	}
	ms.log.Info("Movie deleted", "movie_id", id)
	return nil
}

func (ms *movieService) validateCreate(in CreateMovieInput) (time.Time, error) {
	if in.Name == "" || len(in.Name) > 255 {
		return time.Time{}, apierr.Validation("Invalid input data.")
	}
	if in.Status == "" || in.Country == "" {
		return time.Time{}, apierr.Validation("Invalid input data.")
	}
	if in.Score < 0 || in.Score > 100 {
		return time.Time{}, apierr.Validation("Invalid input data.")
	}
	if in.Budget < 0 || in.Revenue < 0 {
		return time.Time{}, apierr.Validation("Invalid input data.")
	}
	date, err := time.Parse(dateLayout, in.Date)
	if err != nil {
		return time.Time{}, apierr.Validation("Invalid input data.")
	}
	if date.After(time.Now().AddDate(0, 0, maxFutureDays)) {
		return time.Time{}, apierr.Validation("Invalid input data.")
	}
	return date, nil
}

func (ms *movieService) validateUpdate(in UpdateMovieInput) (map[string]interface{}, error) {
	fields := map[string]interface{}{}
	if in.Name != nil {
		if *in.Name == "" || len(*in.Name) > 255 {
			return nil, apierr.Validation("Invalid input data.")
		}
		fields["name"] = *in.Name
	}
	if in.Date != nil {
		date, err := time.Parse(dateLayout, *in.Date)
		if err != nil {
			return nil, apierr.Validation("Invalid input data.")
		}
		fields["date"] = date
	}
	if in.Score != nil {
		if *in.Score < 0 || *in.Score > 100 {
			return nil, apierr.Validation("Invalid input data.")
		}
		fields["score"] = *in.Score
	}
	if in.Overview != nil {
		// Explicit empty overview is a legal clear.
		fields["overview"] = *in.Overview
	}
	if in.Status != nil {
		if *in.Status == "" {
			return nil, apierr.Validation("Invalid input data.")
		}
		fields["status"] = *in.Status
	}
	if in.Budget != nil {
		if *in.Budget < 0 {
			return nil, apierr.Validation("Invalid input data.")
		}
		fields["budget"] = *in.Budget
	}
	if in.Revenue != nil {
		if *in.Revenue < 0 {
			return nil, apierr.Validation("Invalid input data.")
		}
		fields["revenue"] = *in.Revenue
	}
	return fields, nil
}

func conflictErr(name, date string) *apierr.Error {
	return apierr.Conflict("A movie with the name '%s' and release date '%s' already exists.", name, date)
}

func pageLink(page, perPage int) *string {
	link := fmt.Sprintf("%s/?page=%d&per_page=%d", movieListBasePath, page, perPage)
	return &link
}

// dedupeNames collapses duplicate entries, keeping first-seen order. The
// associations are sets; listing a genre twice links it once.
func dedupeNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

func toMovieDetail(m *types.Movie) *MovieDetail {
	detail := &MovieDetail{
		ID:        m.ID,
		Name:      m.Name,
		Date:      m.Date.Format(dateLayout),
		Score:     m.Score,
		Overview:  m.Overview,
		Status:    m.Status,
		Budget:    m.Budget,
		Revenue:   m.Revenue,
		Genres:    make([]NamedOut, 0, len(m.Genres)),
		Actors:    make([]NamedOut, 0, len(m.Actors)),
		Languages: make([]NamedOut, 0, len(m.Languages)),
	}
	if m.Country != nil {
		detail.Country = CountryOut{ID: m.Country.ID, Code: m.Country.Code, Name: m.Country.Name}
	}
	for _, g := range m.Genres {
		detail.Genres = append(detail.Genres, NamedOut{ID: g.ID, Name: g.Name})
	}
	for _, a := range m.Actors {
		detail.Actors = append(detail.Actors, NamedOut{ID: a.ID, Name: a.Name})
	}
	for _, l := range m.Languages {
		detail.Languages = append(detail.Languages, NamedOut{ID: l.ID, Name: l.Name})
	}
	return detail
}
