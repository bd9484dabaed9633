package database

import (
	"embed"
	"fmt"

	"api/internal/models"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

func InitDB(config models.DatabaseConfiguration) *gorm.DB {
	var db *gorm.DB
	var err error

	switch config.Type {
	case "sqlite":
		db, err = gorm.Open(sqlite.Open(config.Path), &gorm.Config{})
	default:
		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
			config.Host, config.User, config.Password, config.Name, config.Port, config.SSLMode,
		)
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}
	if err != nil {
		zap.L().Fatal("Failed to connect to database", zap.Error(err))
	}

	runMigrations(db, config.Type)

	return db
}

func runMigrations(db *gorm.DB, dbType string) {
	sqlDB, err := db.DB()
	if err != nil {
		zap.L().Fatal("Failed to get database handle", zap.Error(err))
	}

	goose.SetBaseFS(embedMigrations)

	dialect := "postgres"
	if dbType == "sqlite" {
		dialect = "sqlite3"
	}
	if err = goose.SetDialect(dialect); err != nil {
		zap.L().Fatal("Failed to set migration dialect", zap.Error(err))
	}

	if err = goose.Up(sqlDB, "migrations"); err != nil {
		zap.L().Fatal("Failed to run migrations", zap.Error(err))
	}
}
