package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Init migrates the schema and seeds the configured services.
func (h *Handler) Init(ctx *gin.Context) {
	if h.setupDatabase == nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Initialization is not configured"})
		return
	}

	if err := h.setupDatabase(); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Database initialized and services seeded successfully",
	})
}
