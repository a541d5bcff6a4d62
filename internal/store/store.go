package store

import (
	"context"

	"github.com/pulsecheck-dev/pulsecheck/internal/models"
)

// Store is the narrow persistence interface the monitoring core depends on.
// Implementations must enforce the one-active-incident-per-service constraint
// at the storage layer; InsertIncident reports a lost race as (nil, nil).
type Store interface {
	ListServices(ctx context.Context) ([]models.Service, error)

	InsertStatusCheck(ctx context.Context, serviceID uint, status string, responseTime *int, errorMessage string) (models.StatusCheck, error)
	ChecksInWindow(ctx context.Context, serviceID uint, days int) ([]models.StatusCheck, error)

	FindActiveIncident(ctx context.Context, serviceID uint) (*models.Incident, error)
	InsertIncident(ctx context.Context, serviceID uint, title, description string) (*models.Incident, error)
	ResolveIncident(ctx context.Context, incidentID uint) error
	InsertIncidentUpdate(ctx context.Context, incidentID uint, message, status string) (models.IncidentUpdate, error)
	ListIncidents(ctx context.Context, sinceDays int) ([]models.Incident, error)
}
