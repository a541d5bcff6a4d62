package incidents

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pulsecheck-dev/pulsecheck/internal/models"
	"github.com/pulsecheck-dev/pulsecheck/internal/notify"
	"github.com/pulsecheck-dev/pulsecheck/internal/store"
	"github.com/pulsecheck-dev/pulsecheck/internal/types"
)

const ResolvedMessage = "The issue has been resolved. All services are operational."

// Manager drives the automatic incident lifecycle for a service:
// none -> investigating when health degrades, active -> resolved when it
// recovers, and no transition otherwise. Operator-set statuses (identified,
// monitoring) count as active and are never touched here.
type Manager struct {
	store    store.Store
	notifier *notify.Notifier
}

func NewManager(st store.Store, notifier *notify.Notifier) *Manager {
	return &Manager{
		store:    st,
		notifier: notifier,
	}
}

// Handle applies the state machine for one service given its latest
// classification. It is idempotent: repeated failures keep the one open
// incident, repeated recoveries do nothing.
func (m *Manager) Handle(ctx context.Context, service models.Service, status string) error {
	active, err := m.store.FindActiveIncident(ctx, service.ID)

	if err != nil {
		return err
	}

	switch status {
	case types.StatusDown, types.StatusDegraded:
		if active != nil {
			return nil
		}

		return m.open(ctx, service, status)
	case types.StatusOperational:
		if active == nil {
			return nil
		}

		return m.resolve(ctx, service, active)
	default:
		return fmt.Errorf("unknown classification %q for service %d", status, service.ID)
	}
}

func (m *Manager) open(ctx context.Context, service models.Service, status string) error {
	statusText := "degraded performance"

	if status == types.StatusDown {
		statusText = "outage"
	}

	title := fmt.Sprintf("%s %s", service.Name, statusText)
	description := fmt.Sprintf("We are investigating issues with %s.", service.Name)

	incident, err := m.store.InsertIncident(ctx, service.ID, title, description)

	if err != nil {
		return err
	}

	// nil incident means a concurrent cycle won the insert race.
	if incident == nil {
		slog.Info("incident already opened by concurrent cycle",
			slog.String("service", service.Name))
		return nil
	}

	slog.Warn("incident opened",
		slog.String("service", service.Name),
		slog.String("title", incident.Title))

	m.sendNotification(service, *incident, true)

	return nil
}

func (m *Manager) resolve(ctx context.Context, service models.Service, incident *models.Incident) error {
	if err := m.store.ResolveIncident(ctx, incident.ID); err != nil {
		return err
	}

	if _, err := m.store.InsertIncidentUpdate(ctx, incident.ID, ResolvedMessage, types.IncidentResolved); err != nil {
		return err
	}

	slog.Info("incident resolved",
		slog.String("service", service.Name),
		slog.String("title", incident.Title))

	now := time.Now().UTC()
	incident.Status = types.IncidentResolved
	incident.ResolvedAt = &now

	m.sendNotification(service, *incident, false)

	return nil
}

// sendNotification is best-effort: a webhook failure never fails the
// incident transition.
func (m *Manager) sendNotification(service models.Service, incident models.Incident, opened bool) {
	if m.notifier == nil {
		return
	}

	var err error

	if opened {
		err = m.notifier.IncidentOpened(service, incident)
	} else {
		err = m.notifier.IncidentResolved(service, incident)
	}

	if err != nil {
		slog.Error("failed to send incident notification",
			slog.String("service", service.Name),
			slog.Any("error", err))
	}
}
