// config/database.go
package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/IsmetMaulanaAzhari/Tes-Saweria/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectDB opens the sqlite store and migrates the schema.
// The dsn can be a file path or a sqlite URI (tests use shared in-memory URIs).
func ConnectDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: NewGormLogger(),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Single writer: sqlite serializes writes anyway, one connection avoids SQLITE_BUSY.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("database handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.Donation{},
		&models.Setting{},
		&models.BlacklistWord{},
	); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	slog.Info("💾 Database connected", "dsn", dsn)
	return db, nil
}

// gormWriter routes gorm's log lines into the process slog handler.
type gormWriter struct{}

func (gormWriter) Printf(format string, args ...interface{}) {
	slog.Warn("gorm", "detail", fmt.Sprintf(format, args...))
}

// NewGormLogger logs slow queries and real errors. A missing row is a normal
// answer (an unset setting), not an error.
func NewGormLogger() logger.Interface {
	return logger.New(gormWriter{}, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

// CloseDB closes the underlying connection pool.
func CloseDB(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		slog.Warn("close database", "err", err)
		return
	}
	slog.Info("💾 Database ditutup")
}
