package monitor

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/pulsecheck-dev/pulsecheck/internal/checker"
	"github.com/pulsecheck-dev/pulsecheck/internal/incidents"
	"github.com/pulsecheck-dev/pulsecheck/internal/models"
	"github.com/pulsecheck-dev/pulsecheck/internal/store"
)

// ServiceStatus is the composed outcome of one probe, as returned to callers.
type ServiceStatus struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	URL          string    `json:"url"`
	Type         string    `json:"type"`
	Status       string    `json:"status"`
	ResponseTime *int      `json:"responseTime"`
	LastChecked  time.Time `json:"lastChecked"`
	ErrorMessage string    `json:"errorMessage,omitempty"`
}

// CycleFailure reports a persistence or incident-handling error for one
// service. Probe failures are not cycle failures; they classify as down.
type CycleFailure struct {
	ServiceID   uint   `json:"serviceId"`
	ServiceName string `json:"serviceName"`
	Error       string `json:"error"`
}

type CycleResult struct {
	Services  []ServiceStatus `json:"services"`
	Failures  []CycleFailure  `json:"failures,omitempty"`
	CheckedAt time.Time       `json:"timestamp"`
}

// Monitor runs one cycle across all services: probe concurrently, persist
// each check, drive the incident state machine per service.
type Monitor struct {
	store     store.Store
	checker   *checker.Checker
	incidents *incidents.Manager
}

func New(st store.Store, chk *checker.Checker, mgr *incidents.Manager) *Monitor {
	return &Monitor{
		store:     st,
		checker:   chk,
		incidents: mgr,
	}
}

// RunCycle probes every service once. Probes run concurrently, each bounded
// by its own timeout; persistence and incident handling happen inside each
// service's task so one service can never delay or abort another. Results
// come back in service-list order regardless of completion order.
func (m *Monitor) RunCycle(ctx context.Context) (CycleResult, error) {
	services, err := m.store.ListServices(ctx)

	if err != nil {
		return CycleResult{}, err
	}

	statuses := make([]ServiceStatus, len(services))

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		failures []CycleFailure
	)

	fail := func(service models.Service, err error) {
		slog.Error("cycle failure",
			slog.String("service", service.Name),
			slog.Any("error", err))

		mu.Lock()
		failures = append(failures, CycleFailure{
			ServiceID:   service.ID,
			ServiceName: service.Name,
			Error:       err.Error(),
		})
		mu.Unlock()
	}

	for i, service := range services {
		wg.Add(1)

		go func(i int, service models.Service) {
			defer wg.Done()

			result := m.checker.Check(ctx, service)

			statuses[i] = ServiceStatus{
				ID:           service.ID,
				Name:         service.Name,
				URL:          service.URL,
				Type:         service.Type,
				Status:       result.Status,
				ResponseTime: result.ResponseTime,
				LastChecked:  time.Now().UTC(),
				ErrorMessage: result.ErrorMessage,
			}

			if _, err := m.store.InsertStatusCheck(ctx, service.ID, result.Status, result.ResponseTime, result.ErrorMessage); err != nil {
				fail(service, err)
			}

			if err := m.incidents.Handle(ctx, service, result.Status); err != nil {
				fail(service, err)
			}
		}(i, service)
	}

	wg.Wait()

	return CycleResult{
		Services:  statuses,
		Failures:  failures,
		CheckedAt: time.Now().UTC(),
	}, nil
}
