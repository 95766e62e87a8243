package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"buildxpert/internal/models"
	"buildxpert/internal/notify"
)

// Connect opens the gorm handle.
func Connect(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return db, nil
}

// Migrate creates the schema and installs the notification triggers.
// AutoMigrate is additive, so repeated runs are safe.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Job{},
		&models.Upload{},
		&models.Message{},
		&models.Contact{},
		&models.Bounce{},
		&models.EmailTemplate{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	// The triggers are what make the messages table the single
	// publishing point: every INSERT and read-flip notifies listeners
	// without any application-level hook.
	for _, stmt := range notify.TriggerDDL {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("install trigger: %w", err)
		}
	}

	return nil
}
