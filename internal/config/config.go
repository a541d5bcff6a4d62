package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/pulsecheck-dev/pulsecheck/internal/models"
)

type Config struct {
	Port        string
	DatabaseURL string
	CronSecret  string

	// CheckInterval is a cron expression for the external trigger cadence.
	CheckInterval string

	ProbeTimeout      time.Duration
	DegradedThreshold time.Duration

	DiscordWebhook string
	SlackWebhook   string

	SeedServices []models.Service
}

type seedService struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Type string `json:"type"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", slog.Any("error", err))
	}

	cfg := &Config{
		Port:              getEnv("PORT", "3000"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		CronSecret:        os.Getenv("CRON_SECRET"),
		CheckInterval:     getEnv("CHECK_INTERVAL", "@every 1m"),
		ProbeTimeout:      10 * time.Second,
		DegradedThreshold: 3 * time.Second,
		DiscordWebhook:    os.Getenv("DISCORD_WEBHOOK_URL"),
		SlackWebhook:      os.Getenv("SLACK_WEBHOOK_URL"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	if raw := os.Getenv("PROBE_TIMEOUT_MS"); raw != "" {
		timeout, err := parseMillis(raw)

		if err != nil {
			return nil, fmt.Errorf("invalid PROBE_TIMEOUT_MS: %w", err)
		}

		cfg.ProbeTimeout = timeout
	}

	if raw := os.Getenv("DEGRADED_THRESHOLD_MS"); raw != "" {
		threshold, err := parseMillis(raw)

		if err != nil {
			return nil, fmt.Errorf("invalid DEGRADED_THRESHOLD_MS: %w", err)
		}

		cfg.DegradedThreshold = threshold
	}

	seeds, err := parseSeedServices(os.Getenv("SEED_SERVICES"))

	if err != nil {
		return nil, err
	}

	cfg.SeedServices = seeds

	return cfg, nil
}

func parseSeedServices(raw string) ([]models.Service, error) {
	if raw == "" {
		return nil, nil
	}

	var seeds []seedService

	if err := json.Unmarshal([]byte(raw), &seeds); err != nil {
		return nil, fmt.Errorf("invalid SEED_SERVICES: %w", err)
	}

	services := make([]models.Service, 0, len(seeds))

	for _, seed := range seeds {
		if seed.Name == "" || seed.URL == "" {
			return nil, fmt.Errorf("SEED_SERVICES entries require name and url")
		}

		services = append(services, models.Service{
			Name: seed.Name,
			URL:  seed.URL,
			Type: seed.Type,
		})
	}

	return services, nil
}

func parseMillis(raw string) (time.Duration, error) {
	var ms int

	if _, err := fmt.Sscanf(raw, "%d", &ms); err != nil {
		return 0, err
	}

	if ms <= 0 {
		return 0, fmt.Errorf("must be positive, got %d", ms)
	}

	return time.Duration(ms) * time.Millisecond, nil
}

func getEnv(key string, fallback string) string {
	value, exists := os.LookupEnv(key)

	if !exists {
		return fallback
	}

	return value
}
