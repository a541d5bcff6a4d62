package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pulsecheck-dev/pulsecheck/internal/models"
	"github.com/pulsecheck-dev/pulsecheck/internal/types"
	"gorm.io/gorm"
)

type gormStore struct {
	conn *gorm.DB
}

// New wraps an open gorm connection in the Store interface. The connection
// must have been opened with TranslateError so unique violations surface as
// gorm.ErrDuplicatedKey.
func New(conn *gorm.DB) Store {
	return &gormStore{conn: conn}
}

func (s *gormStore) ListServices(ctx context.Context) ([]models.Service, error) {
	var services []models.Service

	if err := s.conn.WithContext(ctx).Order("id").Find(&services).Error; err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}

	return services, nil
}

func (s *gormStore) InsertStatusCheck(ctx context.Context, serviceID uint, status string, responseTime *int, errorMessage string) (models.StatusCheck, error) {
	check := models.StatusCheck{
		ServiceID:    serviceID,
		Status:       status,
		ResponseTime: responseTime,
		ErrorMessage: errorMessage,
		CheckedAt:    time.Now().UTC(),
	}

	if err := s.conn.WithContext(ctx).Create(&check).Error; err != nil {
		return models.StatusCheck{}, fmt.Errorf("failed to insert status check for service %d: %w", serviceID, err)
	}

	return check, nil
}

func (s *gormStore) ChecksInWindow(ctx context.Context, serviceID uint, days int) ([]models.StatusCheck, error) {
	var checks []models.StatusCheck

	cutoff := time.Now().UTC().AddDate(0, 0, -days)

	if err := s.conn.WithContext(ctx).
		Where("service_id = ? AND checked_at > ?", serviceID, cutoff).
		Order("checked_at ASC").
		Find(&checks).Error; err != nil {
		return nil, fmt.Errorf("failed to query checks for service %d: %w", serviceID, err)
	}

	return checks, nil
}

func (s *gormStore) FindActiveIncident(ctx context.Context, serviceID uint) (*models.Incident, error) {
	var incident models.Incident

	err := s.conn.WithContext(ctx).
		Where("service_id = ? AND status <> ?", serviceID, types.IncidentResolved).
		Order("started_at DESC").
		First(&incident).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to find active incident for service %d: %w", serviceID, err)
	}

	return &incident, nil
}

func (s *gormStore) InsertIncident(ctx context.Context, serviceID uint, title, description string) (*models.Incident, error) {
	incident := models.Incident{
		ServiceID:   serviceID,
		Title:       title,
		Description: description,
		Status:      types.IncidentInvestigating,
		StartedAt:   time.Now().UTC(),
	}

	err := s.conn.WithContext(ctx).Create(&incident).Error

	// A concurrent cycle already opened an incident for this service; the
	// partial unique index rejected ours and the invariant holds.
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to insert incident for service %d: %w", serviceID, err)
	}

	return &incident, nil
}

func (s *gormStore) ResolveIncident(ctx context.Context, incidentID uint) error {
	// The status guard keeps resolved_at write-once under overlapping cycles.
	err := s.conn.WithContext(ctx).
		Model(&models.Incident{}).
		Where("id = ? AND status <> ?", incidentID, types.IncidentResolved).
		Updates(map[string]interface{}{
			"status":      types.IncidentResolved,
			"resolved_at": time.Now().UTC(),
		}).Error

	if err != nil {
		return fmt.Errorf("failed to resolve incident %d: %w", incidentID, err)
	}

	return nil
}

func (s *gormStore) InsertIncidentUpdate(ctx context.Context, incidentID uint, message, status string) (models.IncidentUpdate, error) {
	update := models.IncidentUpdate{
		IncidentID: incidentID,
		Message:    message,
		Status:     status,
	}

	if err := s.conn.WithContext(ctx).Create(&update).Error; err != nil {
		return models.IncidentUpdate{}, fmt.Errorf("failed to insert update for incident %d: %w", incidentID, err)
	}

	return update, nil
}

func (s *gormStore) ListIncidents(ctx context.Context, sinceDays int) ([]models.Incident, error) {
	var incidents []models.Incident

	cutoff := time.Now().UTC().AddDate(0, 0, -sinceDays)

	err := s.conn.WithContext(ctx).
		Preload("Updates", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("incident_updates.created_at DESC")
		}).
		Preload("Service").
		Where("started_at > ?", cutoff).
		Order("started_at DESC").
		Find(&incidents).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list incidents: %w", err)
	}

	return incidents, nil
}
