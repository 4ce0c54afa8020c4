package database

import (
	"time"

	"storefront-api/models"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const slowQueryThreshold = 200 * time.Millisecond

// Connect opens the PostgreSQL database at dsn. Driver errors are translated
// so callers can match gorm.ErrDuplicatedKey.
func Connect(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		dsn = "host=localhost user=postgres password=postgres dbname=storefront port=5432 sslmode=disable"
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         NewLogger(),
	})
	if err != nil {
		return nil, errors.Wrap(err, "open database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "database handle")
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}

// NewLogger routes gorm's query log through logrus.
func NewLogger() logger.Interface {
	level := logger.Warn
	if log.IsLevelEnabled(log.DebugLevel) {
		level = logger.Info
	}
	return logger.New(log.StandardLogger(), logger.Config{
		SlowThreshold:             slowQueryThreshold,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
	})
}

// AutoMigrate creates or updates tables from the models. The SQL migrations
// are the source of truth in production; this is for local runs and tests.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return errors.Wrap(err, "auto migrate")
	}
	return nil
}
