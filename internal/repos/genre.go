package repos

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/filmvault/theater-backend/internal/platform/logger"
	"github.com/filmvault/theater-backend/internal/types"
)

type GenreRepo interface {
	GetOrCreate(ctx context.Context, tx *gorm.DB, name string) (*types.Genre, error)
}

type genreRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGenreRepo(db *gorm.DB, baseLog *logger.Logger) GenreRepo {
	repoLog := baseLog.With("repo", "GenreRepo")
	return &genreRepo{db: db, log: repoLog}
}

func (gr *genreRepo) GetOrCreate(ctx context.Context, tx *gorm.DB, name string) (*types.Genre, error) {
	transaction := tx
	if transaction == nil {
		transaction = gr.db
	}

	row := &types.Genre{Name: name}
	if err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).
		Create(row).Error; err != nil {
		return nil, err
	}

	var genre types.Genre
	if err := transaction.WithContext(ctx).
		Where("name = ?", name).
		First(&genre).Error; err != nil {
		return nil, err
	}
	return &genre, nil
}
