package main

import (
	"log/slog"
	"os"

	"github.com/pulsecheck-dev/pulsecheck/db"
	"github.com/pulsecheck-dev/pulsecheck/internal/checker"
	"github.com/pulsecheck-dev/pulsecheck/internal/config"
	"github.com/pulsecheck-dev/pulsecheck/internal/handlers"
	"github.com/pulsecheck-dev/pulsecheck/internal/incidents"
	"github.com/pulsecheck-dev/pulsecheck/internal/monitor"
	"github.com/pulsecheck-dev/pulsecheck/internal/notify"
	"github.com/pulsecheck-dev/pulsecheck/internal/router"
	"github.com/pulsecheck-dev/pulsecheck/internal/scheduler"
	"github.com/pulsecheck-dev/pulsecheck/internal/store"
	"github.com/pulsecheck-dev/pulsecheck/internal/uptime"
)

func main() {
	cfg, err := config.Load()

	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	conn, err := db.Connect(cfg.DatabaseURL)

	if err != nil {
		slog.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}

	setupDatabase := func() error {
		if err := db.Migrate(conn); err != nil {
			return err
		}

		return db.Seed(conn, cfg.SeedServices)
	}

	if err := setupDatabase(); err != nil {
		slog.Error("failed to initialize database", slog.Any("error", err))
		os.Exit(1)
	}

	st := store.New(conn)
	chk := checker.New(cfg.ProbeTimeout, cfg.DegradedThreshold)
	notifier := notify.New(cfg.DiscordWebhook, cfg.SlackWebhook)
	mgr := incidents.NewManager(st, notifier)
	mon := monitor.New(st, chk, mgr)
	agg := uptime.NewAggregator(st)

	sched := scheduler.New(mon)

	if err := sched.Start(cfg.CheckInterval); err != nil {
		slog.Error("failed to start scheduler", slog.Any("error", err))
		os.Exit(1)
	}

	defer sched.Stop()

	h := handlers.New(st, mon, agg, setupDatabase)
	r := router.NewRouter(h, cfg.CronSecret)

	slog.Info("starting server", slog.String("port", cfg.Port))

	if err := r.Run(":" + cfg.Port); err != nil {
		slog.Error("failed to start server", slog.Any("error", err))
		os.Exit(1)
	}
}
