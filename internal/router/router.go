package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/pulsecheck-dev/pulsecheck/internal/handlers"
	"github.com/pulsecheck-dev/pulsecheck/internal/middleware"
)

func NewRouter(h *handlers.Handler, cronSecret string) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/status", h.Status)
		api.GET("/cron", middleware.CronAuth(cronSecret), h.Cron)
		api.GET("/incidents", h.Incidents)
		api.GET("/uptime", h.Uptime)
		api.GET("/uptime-history", h.UptimeHistory)
		api.POST("/init", h.Init)
	}

	return r
}
