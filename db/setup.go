package db

import (
	"time"

	"github.com/pulsecheck-dev/pulsecheck/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Unique over the service while an incident is unresolved. This is what makes
// concurrent cycles safe: two cycles may both observe "no active incident",
// but only one insert can succeed.
const activeIncidentIndex = `
CREATE UNIQUE INDEX IF NOT EXISTS idx_incidents_one_active_per_service
ON incidents (service_id)
WHERE status <> 'resolved'`

func Connect(dsn string) (*gorm.DB, error) {
	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
	})

	if err != nil {
		return nil, err
	}

	sqlDB, err := conn.DB()

	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(15 * time.Minute)

	return conn, nil
}

func Migrate(conn *gorm.DB) error {
	tables := []interface{}{
		&models.Service{},
		&models.StatusCheck{},
		&models.Incident{},
		&models.IncidentUpdate{},
	}

	migrator := conn.Migrator()

	for _, table := range tables {
		if !migrator.HasTable(table) {
			if err := conn.AutoMigrate(table); err != nil {
				return err
			}
		}
	}

	return conn.Exec(activeIncidentIndex).Error
}

// Seed inserts the configured services once, on an empty services table.
// Services are owned by configuration and read-only afterwards.
func Seed(conn *gorm.DB, services []models.Service) error {
	if len(services) == 0 {
		return nil
	}

	var count int64

	if err := conn.Model(&models.Service{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return nil
	}

	return conn.Create(&services).Error
}
