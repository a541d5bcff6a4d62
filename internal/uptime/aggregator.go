package uptime

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/pulsecheck-dev/pulsecheck/internal/models"
	"github.com/pulsecheck-dev/pulsecheck/internal/store"
	"github.com/pulsecheck-dev/pulsecheck/internal/types"
)

const maxWindowDays = 365

type Stats struct {
	Uptime          string `json:"uptime"`
	AvgResponseTime int    `json:"avgResponseTime"`
	TotalChecks     int    `json:"totalChecks"`
}

// DayStatus is one calendar-day bucket in the uptime history. Incidents
// counts the non-operational checks that day.
type DayStatus struct {
	Date      string `json:"date"`
	Status    string `json:"status"`
	Incidents int    `json:"incidents"`
}

// Aggregator computes read-only uptime statistics over persisted checks.
type Aggregator struct {
	store store.Store
}

func NewAggregator(st store.Store) *Aggregator {
	return &Aggregator{store: st}
}

// Stats returns uptime percentage, average response time and check count for
// a service over the trailing window.
func (a *Aggregator) Stats(ctx context.Context, serviceID uint, days int) (Stats, error) {
	if err := validateWindow(days); err != nil {
		return Stats{}, err
	}

	checks, err := a.store.ChecksInWindow(ctx, serviceID, days)

	if err != nil {
		return Stats{}, err
	}

	return computeStats(checks), nil
}

// DailySeries returns exactly one entry per calendar day in the window,
// oldest first, gap-filled with nodata days.
func (a *Aggregator) DailySeries(ctx context.Context, serviceID uint, days int) ([]DayStatus, error) {
	if err := validateWindow(days); err != nil {
		return nil, err
	}

	checks, err := a.store.ChecksInWindow(ctx, serviceID, days)

	if err != nil {
		return nil, err
	}

	return buildDailySeries(checks, days, time.Now().UTC()), nil
}

func validateWindow(days int) error {
	if days < 1 || days > maxWindowDays {
		return fmt.Errorf("window must be between 1 and %d days, got %d", maxWindowDays, days)
	}

	return nil
}

func computeStats(checks []models.StatusCheck) Stats {
	stats := Stats{
		Uptime: "0.00",
	}

	if len(checks) == 0 {
		return stats
	}

	var operational, responseTimeSum, responseTimeCount int

	for _, check := range checks {
		if check.Status != types.StatusOperational {
			continue
		}

		operational++

		if check.ResponseTime != nil {
			responseTimeSum += *check.ResponseTime
			responseTimeCount++
		}
	}

	stats.TotalChecks = len(checks)
	stats.Uptime = fmt.Sprintf("%.2f", float64(operational)/float64(len(checks))*100)

	if responseTimeCount > 0 {
		stats.AvgResponseTime = int(math.Round(float64(responseTimeSum) / float64(responseTimeCount)))
	}

	return stats
}

type dayBucket struct {
	total    int
	degraded int
	down     int
}

func buildDailySeries(checks []models.StatusCheck, days int, now time.Time) []DayStatus {
	buckets := make(map[string]*dayBucket)

	for _, check := range checks {
		date := check.CheckedAt.UTC().Format(time.DateOnly)

		bucket, ok := buckets[date]

		if !ok {
			bucket = &dayBucket{}
			buckets[date] = bucket
		}

		bucket.total++

		switch check.Status {
		case types.StatusDown:
			bucket.down++
		case types.StatusDegraded:
			bucket.degraded++
		}
	}

	series := make([]DayStatus, 0, days)
	first := now.AddDate(0, 0, -(days - 1))

	for i := 0; i < days; i++ {
		date := first.AddDate(0, 0, i).Format(time.DateOnly)

		bucket, ok := buckets[date]

		if !ok {
			series = append(series, DayStatus{
				Date:   date,
				Status: types.StatusNoData,
			})
			continue
		}

		// Precedence: any down check marks the day down, otherwise any
		// degraded check marks it degraded.
		status := types.StatusOperational

		switch {
		case bucket.down > 0:
			status = types.StatusDown
		case bucket.degraded > 0:
			status = types.StatusDegraded
		}

		series = append(series, DayStatus{
			Date:      date,
			Status:    status,
			Incidents: bucket.down + bucket.degraded,
		})
	}

	return series
}
