package repos

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/filmvault/theater-backend/internal/platform/logger"
	"github.com/filmvault/theater-backend/internal/types"
)

type ActorRepo interface {
	GetOrCreate(ctx context.Context, tx *gorm.DB, name string) (*types.Actor, error)
}

type actorRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewActorRepo(db *gorm.DB, baseLog *logger.Logger) ActorRepo {
	repoLog := baseLog.With("repo", "ActorRepo")
	return &actorRepo{db: db, log: repoLog}
}

func (ar *actorRepo) GetOrCreate(ctx context.Context, tx *gorm.DB, name string) (*types.Actor, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	row := &types.Actor{Name: name}
	if err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).
		Create(row).Error; err != nil {
		return nil, err
	}

	var actor types.Actor
	if err := transaction.WithContext(ctx).
		Where("name = ?", name).
		First(&actor).Error; err != nil {
		return nil, err
	}
	return &actor, nil
}
