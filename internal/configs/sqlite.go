package config

import (
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	model "flowtime-logger.com/flowtime-logger/internal/models"
)

// New opens the SQLite database and runs the idempotent schema migration.
// Schema setup happens once here at startup, never inside save.
func New(dsn string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}

	if err := db.AutoMigrate(&model.TaskRecord{}, &model.PeriodRecord{}); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	return db
}
