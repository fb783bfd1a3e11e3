package repos

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/filmvault/theater-backend/internal/platform/logger"
	"github.com/filmvault/theater-backend/internal/types"
)

type CountryRepo interface {
	GetOrCreate(ctx context.Context, tx *gorm.DB, code string) (*types.Country, error)
}

type countryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCountryRepo(db *gorm.DB, baseLog *logger.Logger) CountryRepo {
	repoLog := baseLog.With("repo", "CountryRepo")
	return &countryRepo{db: db, log: repoLog}
}

// GetOrCreate resolves a country by its code, inserting a row holding
// only the code when none exists. Insert-or-ignore against the unique
// index plus a re-read, so two concurrent resolvers converge on one row.
func (cr *countryRepo) GetOrCreate(ctx context.Context, tx *gorm.DB, code string) (*types.Country, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	row := &types.Country{Code: code}
	if err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}},
			DoNothing: true,
		}).
		Create(row).Error; err != nil {
		return nil, err
	}

	var country types.Country
	if err := transaction.WithContext(ctx).
		Where("code = ?", code).
		First(&country).Error; err != nil {
		return nil, err
	}
	return &country, nil
}
