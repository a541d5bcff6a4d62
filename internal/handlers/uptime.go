package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pulsecheck-dev/pulsecheck/internal/uptime"
)

type ServiceUptime struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
	uptime.Stats
}

// Uptime returns per-service uptime statistics over the trailing window.
func (h *Handler) Uptime(ctx *gin.Context) {
	days, err := queryInt(ctx, "days", 30)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	services, err := h.store.ListServices(ctx.Request.Context())

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to retrieve services"})
		return
	}

	results := make([]ServiceUptime, 0, len(services))

	for _, service := range services {
		stats, err := h.uptime.Stats(ctx.Request.Context(), service.ID, days)

		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}

		results = append(results, ServiceUptime{
			ID:    service.ID,
			Name:  service.Name,
			Type:  service.Type,
			Stats: stats,
		})
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"uptime":  results,
		"period":  fmt.Sprintf("%d days", days),
	})
}

// UptimeHistory returns the gap-free day-bucketed status series for one
// service, plus its overall uptime for the same window.
func (h *Handler) UptimeHistory(ctx *gin.Context) {
	serviceID, err := queryInt(ctx, "serviceId", 1)

	if err != nil || serviceID < 1 {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid serviceId"})
		return
	}

	days, err := queryInt(ctx, "days", 90)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	history, err := h.uptime.DailySeries(ctx.Request.Context(), uint(serviceID), days)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	stats, err := h.uptime.Stats(ctx.Request.Context(), uint(serviceID), days)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"history": history,
		"uptime":  stats.Uptime,
		"days":    days,
	})
}
