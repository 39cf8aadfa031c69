package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Rogue-Bear-Innovations/bookmarker-back/internal/config"
)

type (
	GormForkedModel struct {
		ID        uint64 `gorm:"primarykey"`
		CreatedAt time.Time
		UpdatedAt time.Time
	}

	User struct {
		GormForkedModel
		Email     string `gorm:"unique;not null"`
		Hash      string `gorm:"not null"`
		FirstName *string
		LastName  *string
	}

	Bookmark struct {
		GormForkedModel
		Title       string `gorm:"not null"`
		Description *string
		Link        string `gorm:"not null"`
		UserID      uint64 `gorm:"not null;index"`
		User        *User  `gorm:"constraint:OnDelete:CASCADE"`
	}
)

func NewGormClient(lc fx.Lifecycle, cfg *config.Config, l *zap.Logger) (*gorm.DB, error) {
	db, err := Open(cfg, l)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return errors.Wrap(err, "get sql db")
			}
			return sqlDB.Close()
		},
	})

	return db, nil
}

// Open connects to the configured driver and migrates the schema.
func Open(cfg *config.Config, l *zap.Logger) (*gorm.DB, error) {
	newLogger := logger.New(zap.NewStdLog(l.Named("gorm")), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  gormLogLevel(l),
		IgnoreRecordNotFoundError: true,
	})

	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case config.DriverSQLite:
		dialector = sqlite.Open(sqliteDSN(cfg.DBPath))
	default:
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, cfg.DBSSLMode)
		dialector = postgres.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         newLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect database")
	}

	if err := db.AutoMigrate(&User{}); err != nil {
		return nil, errors.Wrap(err, "migrate user")
	}
	if err := db.AutoMigrate(&Bookmark{}); err != nil {
		return nil, errors.Wrap(err, "migrate bookmark")
	}

	return db, nil
}

func gormLogLevel(l *zap.Logger) logger.LogLevel {
	switch {
	case l.Core().Enabled(zap.DebugLevel):
		return logger.Info
	case l.Core().Enabled(zap.WarnLevel):
		return logger.Warn
	default:
		return logger.Error
	}
}

// sqliteDSN turns on foreign key enforcement, keeping any options already in path.
func sqliteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=on"
}
