package repos

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/filmvault/theater-backend/internal/platform/logger"
	"github.com/filmvault/theater-backend/internal/types"
)

type LanguageRepo interface {
	GetOrCreate(ctx context.Context, tx *gorm.DB, name string) (*types.Language, error)
}

type languageRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLanguageRepo(db *gorm.DB, baseLog *logger.Logger) LanguageRepo {
	repoLog := baseLog.With("repo", "LanguageRepo")
	return &languageRepo{db: db, log: repoLog}
}

func (lr *languageRepo) GetOrCreate(ctx context.Context, tx *gorm.DB, name string) (*types.Language, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	row := &types.Language{Name: name}
	if err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).
		Create(row).Error; err != nil {
		return nil, err
	}

	var language types.Language
	if err := transaction.WithContext(ctx).
		Where("name = ?", name).
		First(&language).Error; err != nil {
		return nil, err
	}
	return &language, nil
}
