package repos

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/filmvault/theater-backend/internal/platform/logger"
	"github.com/filmvault/theater-backend/internal/types"
)

type MovieRepo interface {
	Create(ctx context.Context, tx *gorm.DB, movie *types.Movie) (*types.Movie, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.Movie, error)
	ExistsByNameAndDate(ctx context.Context, tx *gorm.DB, name string, date time.Time) (bool, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, id uint, fields map[string]interface{}) error
	Delete(ctx context.Context, tx *gorm.DB, movie *types.Movie) error
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
	ListPage(ctx context.Context, tx *gorm.DB, offset, limit int) ([]*types.Movie, error)
}

type movieRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMovieRepo(db *gorm.DB, baseLog *logger.Logger) MovieRepo {
	repoLog := baseLog.With("repo", "MovieRepo")
	return &movieRepo{db: db, log: repoLog}
}

func (mr *movieRepo) Create(ctx context.Context, tx *gorm.DB, movie *types.Movie) (*types.Movie, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	if err := transaction.WithContext(ctx).Create(movie).Error; err != nil {
		return nil, err
	}
	return movie, nil
}

// GetByID loads a movie with its country and all many-to-many relations.
// Returns (nil, nil) when no row has that id.
func (mr *movieRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.Movie, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	var movie types.Movie
	err := transaction.WithContext(ctx).
		Preload("Country").
		Preload("Genres").
		Preload("Actors").
		Preload("Languages").
		First(&movie, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &movie, nil
}

func (mr *movieRepo) ExistsByNameAndDate(ctx context.Context, tx *gorm.DB, name string, date time.Time) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Movie{}).
		Where("name = ? AND date = ?", name, date).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (mr *movieRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uint, fields map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	if len(fields) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&types.Movie{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// Delete removes the movie and its association rows. Reference rows
// (country/genres/actors/languages) stay untouched.
func (mr *movieRepo) Delete(ctx context.Context, tx *gorm.DB, movie *types.Movie) error {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	return transaction.WithContext(ctx).
		Select(clause.Associations).
		Delete(movie).Error
}

func (mr *movieRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Movie{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ListPage returns a page of movies ordered by id descending, newest
// first. Summaries only; relations are not loaded here.
func (mr *movieRepo) ListPage(ctx context.Context, tx *gorm.DB, offset, limit int) ([]*types.Movie, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	var movies []*types.Movie
	if err := transaction.WithContext(ctx).
		Order("id DESC").
		Offset(offset).
		Limit(limit).
		Find(&movies).Error; err != nil {
		return nil, err
	}
	return movies, nil
}
