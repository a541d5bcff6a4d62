package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pulsecheck-dev/pulsecheck/internal/models"
)

type IncidentSummary struct {
	ID          uint            `json:"id"`
	ServiceName string          `json:"serviceName"`
	ServiceType string          `json:"serviceType"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Status      string          `json:"status"`
	StartedAt   time.Time       `json:"startedAt"`
	ResolvedAt  *time.Time      `json:"resolvedAt"`
	Updates     []UpdateSummary `json:"updates"`
}

type UpdateSummary struct {
	ID        uint      `json:"id"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// Incidents returns incidents started in the trailing window, newest first,
// with their full update logs.
func (h *Handler) Incidents(ctx *gin.Context) {
	days, err := queryInt(ctx, "days", 30)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	incidents, err := h.store.ListIncidents(ctx.Request.Context(), days)

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to retrieve incidents"})
		return
	}

	summaries := make([]IncidentSummary, 0, len(incidents))

	for _, incident := range incidents {
		summaries = append(summaries, buildIncidentSummary(incident))
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success":   true,
		"incidents": summaries,
	})
}

func buildIncidentSummary(incident models.Incident) IncidentSummary {
	updates := make([]UpdateSummary, 0, len(incident.Updates))

	for _, update := range incident.Updates {
		updates = append(updates, UpdateSummary{
			ID:        update.ID,
			Message:   update.Message,
			Status:    update.Status,
			CreatedAt: update.CreatedAt,
		})
	}

	return IncidentSummary{
		ID:          incident.ID,
		ServiceName: incident.Service.Name,
		ServiceType: incident.Service.Type,
		Title:       incident.Title,
		Description: incident.Description,
		Status:      incident.Status,
		StartedAt:   incident.StartedAt,
		ResolvedAt:  incident.ResolvedAt,
		Updates:     updates,
	}
}
