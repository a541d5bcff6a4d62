package handlers

import (
	"github.com/pulsecheck-dev/pulsecheck/internal/monitor"
	"github.com/pulsecheck-dev/pulsecheck/internal/store"
	"github.com/pulsecheck-dev/pulsecheck/internal/uptime"
)

// Handler carries the API surface's dependencies. Everything is injected at
// construction; handlers hold no ambient state.
type Handler struct {
	store   store.Store
	monitor *monitor.Monitor
	uptime  *uptime.Aggregator

	// setupDatabase migrates and seeds; wired by main, exposed via /api/init.
	setupDatabase func() error
}

func New(st store.Store, mon *monitor.Monitor, agg *uptime.Aggregator, setupDatabase func() error) *Handler {
	return &Handler{
		store:         st,
		monitor:       mon,
		uptime:        agg,
		setupDatabase: setupDatabase,
	}
}
