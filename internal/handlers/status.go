package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Status runs one monitoring cycle and returns the composed service list.
func (h *Handler) Status(ctx *gin.Context) {
	result, err := h.monitor.RunCycle(ctx.Request.Context())

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success":   true,
		"services":  result.Services,
		"failures":  result.Failures,
		"timestamp": result.CheckedAt,
	})
}

// Cron is the external scheduler's trigger. Identical to Status apart from
// the bearer-secret guard applied in the router.
func (h *Handler) Cron(ctx *gin.Context) {
	result, err := h.monitor.RunCycle(ctx.Request.Context())

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Monitoring check completed",
		"services":  result.Services,
		"failures":  result.Failures,
		"timestamp": result.CheckedAt,
	})
}
