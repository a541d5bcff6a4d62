// Package storetest provides an in-memory Store for tests. It mimics the
// Postgres behavior the core relies on, including the partial unique index
// that rejects a second active incident per service.
package storetest

import (
	"context"
	"sync"
	"time"

	"github.com/pulsecheck-dev/pulsecheck/internal/models"
	"github.com/pulsecheck-dev/pulsecheck/internal/types"
)

type Fake struct {
	mu sync.Mutex

	Services  []models.Service
	Checks    []models.StatusCheck
	Incidents []models.Incident
	Updates   []models.IncidentUpdate

	nextID uint

	// Error injection
	ListServicesErr   error
	FindActiveErr     error
	InsertIncidentErr error
	ResolveErr        error
	InsertUpdateErr   error
	ChecksErr         error
	ListIncidentsErr  error
	InsertStatusErr   error
	FailChecksFor     uint // limit InsertStatusErr to this service ID
	ForceInsertNoOp   bool // InsertIncident behaves as a lost race
}

func New(services ...models.Service) *Fake {
	f := &Fake{}

	for _, service := range services {
		service.ID = f.id()
		f.Services = append(f.Services, service)
	}

	return f
}

func (f *Fake) id() uint {
	f.nextID++
	return f.nextID
}

func (f *Fake) ListServices(ctx context.Context) ([]models.Service, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.ListServicesErr != nil {
		return nil, f.ListServicesErr
	}

	services := make([]models.Service, len(f.Services))
	copy(services, f.Services)

	return services, nil
}

func (f *Fake) InsertStatusCheck(ctx context.Context, serviceID uint, status string, responseTime *int, errorMessage string) (models.StatusCheck, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.InsertStatusErr != nil && (f.FailChecksFor == 0 || f.FailChecksFor == serviceID) {
		return models.StatusCheck{}, f.InsertStatusErr
	}

	check := models.StatusCheck{
		BaseModel:    models.BaseModel{ID: f.id()},
		ServiceID:    serviceID,
		Status:       status,
		ResponseTime: responseTime,
		ErrorMessage: errorMessage,
		CheckedAt:    time.Now().UTC(),
	}

	f.Checks = append(f.Checks, check)

	return check, nil
}

func (f *Fake) ChecksInWindow(ctx context.Context, serviceID uint, days int) ([]models.StatusCheck, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.ChecksErr != nil {
		return nil, f.ChecksErr
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -days)

	var checks []models.StatusCheck

	for _, check := range f.Checks {
		if check.ServiceID == serviceID && check.CheckedAt.After(cutoff) {
			checks = append(checks, check)
		}
	}

	return checks, nil
}

func (f *Fake) FindActiveIncident(ctx context.Context, serviceID uint) (*models.Incident, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.FindActiveErr != nil {
		return nil, f.FindActiveErr
	}

	return f.activeIncident(serviceID), nil
}

func (f *Fake) activeIncident(serviceID uint) *models.Incident {
	for i := len(f.Incidents) - 1; i >= 0; i-- {
		if f.Incidents[i].ServiceID == serviceID && f.Incidents[i].Active() {
			incident := f.Incidents[i]
			return &incident
		}
	}

	return nil
}

func (f *Fake) InsertIncident(ctx context.Context, serviceID uint, title, description string) (*models.Incident, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.InsertIncidentErr != nil {
		return nil, f.InsertIncidentErr
	}

	// The partial unique index rejects a second active incident; the store
	// maps that conflict to a benign no-op.
	if f.ForceInsertNoOp || f.activeIncident(serviceID) != nil {
		return nil, nil
	}

	incident := models.Incident{
		BaseModel:   models.BaseModel{ID: f.id()},
		ServiceID:   serviceID,
		Title:       title,
		Description: description,
		Status:      types.IncidentInvestigating,
		StartedAt:   time.Now().UTC(),
	}

	f.Incidents = append(f.Incidents, incident)

	return &incident, nil
}

func (f *Fake) ResolveIncident(ctx context.Context, incidentID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.ResolveErr != nil {
		return f.ResolveErr
	}

	for i := range f.Incidents {
		if f.Incidents[i].ID != incidentID || f.Incidents[i].Status == types.IncidentResolved {
			continue
		}

		now := time.Now().UTC()
		f.Incidents[i].Status = types.IncidentResolved
		f.Incidents[i].ResolvedAt = &now
	}

	return nil
}

func (f *Fake) InsertIncidentUpdate(ctx context.Context, incidentID uint, message, status string) (models.IncidentUpdate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.InsertUpdateErr != nil {
		return models.IncidentUpdate{}, f.InsertUpdateErr
	}

	update := models.IncidentUpdate{
		BaseModel:  models.BaseModel{ID: f.id(), CreatedAt: time.Now().UTC()},
		IncidentID: incidentID,
		Message:    message,
		Status:     status,
	}

	f.Updates = append(f.Updates, update)

	return update, nil
}

func (f *Fake) ListIncidents(ctx context.Context, sinceDays int) ([]models.Incident, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.ListIncidentsErr != nil {
		return nil, f.ListIncidentsErr
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -sinceDays)

	var incidents []models.Incident

	for i := len(f.Incidents) - 1; i >= 0; i-- {
		incident := f.Incidents[i]

		if !incident.StartedAt.After(cutoff) {
			continue
		}

		for _, update := range f.Updates {
			if update.IncidentID == incident.ID {
				incident.Updates = append(incident.Updates, update)
			}
		}

		for _, service := range f.Services {
			if service.ID == incident.ServiceID {
				incident.Service = service
			}
		}

		incidents = append(incidents, incident)
	}

	return incidents, nil
}
