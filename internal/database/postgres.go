// Package database wires up the postgres connection and schema migrations.
package database

import (
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/pousada-alegrim/service-reservations/internal/config"
)

// Connect opens a gorm connection pool against postgres.
func Connect(cfg config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("database: connect: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("database: pool handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("database: ping: %w", err)
	}

	log.Info("database connected", zap.String("host", cfg.Host), zap.String("database", cfg.Name))
	return db, nil
}

// RunMigrations applies pending schema migrations from the given directory.
func RunMigrations(cfg config.DatabaseConfig, migrationsDir string, log *zap.Logger) error {
	m, err := migrate.New("file://"+migrationsDir, cfg.URL())
	if err != nil {
		return fmt.Errorf("database: open migrations: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil {
		if err == migrate.ErrNoChange {
			log.Info("migrations up to date")
			return nil
		}
		return fmt.Errorf("database: run migrations: %w", err)
	}

	log.Info("migrations applied")
	return nil
}
