package database

import (
	"fmt"
	"log/slog"

	"github.com/pkg/errors"
	"github.com/yukikurage/todo-simple-api/internal/config"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens the configured database. Driver errors are translated so that
// constraint violations surface as gorm.ErrForeignKeyViolated / ErrDuplicatedKey.
func Connect(cfg *config.Config, logger *slog.Logger) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         NewGormLogger(logger, !cfg.IsProduction()),
		TranslateError: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}

	logger.Info("database connection established",
		slog.String("driver", cfg.DBDriver),
		slog.String("host", cfg.DBHost),
		slog.String("name", cfg.DBName),
	)
	return db, nil
}

// Dialector builds the GORM dialector for cfg.DBDriver.
func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			cfg.DBUser,
			cfg.DBPassword,
			cfg.DBHost,
			cfg.DBPort,
			cfg.DBName,
		)
		return mysql.Open(dsn), nil
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
			cfg.DBHost,
			cfg.DBPort,
			cfg.DBUser,
			cfg.DBPassword,
			cfg.DBName,
		)
		return postgres.Open(dsn), nil
	default:
		return nil, errors.Errorf("unsupported database driver %q", cfg.DBDriver)
	}
}
