package types

// Check and service status classifications. These values are wire-stable:
// they are stored in status_checks.status and returned verbatim by the API.
const (
	StatusOperational = "operational"
	StatusDegraded    = "degraded"
	StatusDown        = "down"

	// StatusNoData is only valid for day buckets in the uptime history,
	// never for an individual check.
	StatusNoData = "nodata"
)

// Incident lifecycle statuses. The automatic engine only ever assigns
// "investigating" and "resolved"; "identified" and "monitoring" come from
// operators, and anything other than "resolved" counts as active.
const (
	IncidentInvestigating = "investigating"
	IncidentIdentified    = "identified"
	IncidentMonitoring    = "monitoring"
	IncidentResolved      = "resolved"
)
