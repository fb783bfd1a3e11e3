package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/filmvault/theater-backend/internal/platform/envutil"
	"github.com/filmvault/theater-backend/internal/platform/logger"
	"github.com/filmvault/theater-backend/internal/types"
)

type Service struct {
	db  *gorm.DB
	log *logger.Logger
}

// New opens the relational store. DB_DRIVER selects postgres (default)
// or sqlite; sqlite keeps local development and CI free of a running
// postgres instance.
func New(log *logger.Logger) (*Service, error) {
	serviceLog := log.With("service", "DBService")

	driver := envutil.Str("DB_DRIVER", "postgres")

	var dialector gorm.Dialector
	switch driver {
	case "sqlite":
		path := envutil.Str("SQLITE_PATH", "theater.db")
		dialector = sqlite.Open(path)
	case "postgres":
		host := envutil.Str("POSTGRES_HOST", "localhost")
		port := envutil.Str("POSTGRES_PORT", "5432")
		user := envutil.Str("POSTGRES_USER", "postgres")
		password := envutil.Str("POSTGRES_PASSWORD", "")
		name := envutil.Str("POSTGRES_NAME", "theater")
		dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, name)
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", driver)
	}

	serviceLog.Info("Connecting to database...", "driver", driver)
	// TranslateError turns driver-specific unique violations into
	// gorm.ErrDuplicatedKey, which the movie service maps to a conflict.
	gdb, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		serviceLog.Error("Failed to connect to database", "driver", driver, "error", err)
		return nil, fmt.Errorf("connect database: %w", err)
	}

	return &Service{db: gdb, log: serviceLog}, nil
}

func (s *Service) AutoMigrateAll() error {
	s.log.Info("Auto migrating tables...")
	if err := Migrate(s.db); err != nil {
		s.log.Error("Auto migration failed", "error", err)
		return err
	}
	return nil
}

// Migrate creates the five entity tables plus the three association
// tables. Deleting a movie must never remove reference rows, so the
// movie->country relation is plain RESTRICT (gorm's default constraint).
func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&types.Country{},
		&types.Genre{},
		&types.Actor{},
		&types.Language{},
		&types.Movie{},
	)
}

func (s *Service) DB() *gorm.DB {
	return s.db
}
