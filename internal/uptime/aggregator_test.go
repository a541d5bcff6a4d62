package uptime

import (
	"context"
	"testing"
	"time"

	"github.com/pulsecheck-dev/pulsecheck/internal/models"
	"github.com/pulsecheck-dev/pulsecheck/internal/store/storetest"
	"github.com/pulsecheck-dev/pulsecheck/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func check(status string, responseTime int, checkedAt time.Time) models.StatusCheck {
	return models.StatusCheck{
		ServiceID:    1,
		Status:       status,
		ResponseTime: &responseTime,
		CheckedAt:    checkedAt,
	}
}

func TestComputeStatsUptimePercentage(t *testing.T) {
	now := time.Now().UTC()

	var checks []models.StatusCheck

	for i := 0; i < 8; i++ {
		checks = append(checks, check(types.StatusOperational, 100, now))
	}
	checks = append(checks, check(types.StatusDown, 0, now))
	checks = append(checks, check(types.StatusDegraded, 5000, now))

	stats := computeStats(checks)

	assert.Equal(t, "80.00", stats.Uptime)
	assert.Equal(t, 10, stats.TotalChecks)
}

func TestComputeStatsAverageOverOperationalOnly(t *testing.T) {
	now := time.Now().UTC()

	checks := []models.StatusCheck{
		check(types.StatusOperational, 100, now),
		check(types.StatusOperational, 300, now),
		check(types.StatusDegraded, 9000, now), // excluded
		check(types.StatusDown, 0, now),        // excluded
	}

	stats := computeStats(checks)

	assert.Equal(t, 200, stats.AvgResponseTime)
	assert.Equal(t, "50.00", stats.Uptime)
}

func TestComputeStatsEmptyWindow(t *testing.T) {
	stats := computeStats(nil)

	assert.Equal(t, "0.00", stats.Uptime)
	assert.Equal(t, 0, stats.AvgResponseTime)
	assert.Equal(t, 0, stats.TotalChecks)
}

func TestComputeStatsIgnoresNilResponseTimes(t *testing.T) {
	now := time.Now().UTC()

	checks := []models.StatusCheck{
		check(types.StatusOperational, 100, now),
		{ServiceID: 1, Status: types.StatusOperational, CheckedAt: now},
	}

	stats := computeStats(checks)

	assert.Equal(t, 100, stats.AvgResponseTime)
	assert.Equal(t, "100.00", stats.Uptime)
}

func TestDailySeriesGapFree(t *testing.T) {
	now := time.Now().UTC()

	// 5 checks across 5 distinct recent days in a 90-day window.
	var checks []models.StatusCheck

	for i := 0; i < 5; i++ {
		checks = append(checks, check(types.StatusOperational, 100, now.AddDate(0, 0, -i)))
	}

	series := buildDailySeries(checks, 90, now)

	require.Len(t, series, 90)

	var nodata int

	for i, day := range series {
		if i > 0 {
			assert.Greater(t, day.Date, series[i-1].Date, "series must be date-ascending")
		}

		if day.Status == types.StatusNoData {
			nodata++
			assert.Zero(t, day.Incidents)
		}
	}

	assert.Equal(t, 85, nodata)
	assert.Equal(t, now.Format(time.DateOnly), series[89].Date)
}

func TestDailySeriesPrecedence(t *testing.T) {
	now := time.Now().UTC()

	checks := []models.StatusCheck{
		check(types.StatusOperational, 100, now),
		check(types.StatusDown, 0, now),
		check(types.StatusDegraded, 4000, now.AddDate(0, 0, -1)),
		check(types.StatusOperational, 100, now.AddDate(0, 0, -1)),
		check(types.StatusOperational, 100, now.AddDate(0, 0, -2)),
	}

	series := buildDailySeries(checks, 3, now)

	require.Len(t, series, 3)

	assert.Equal(t, types.StatusOperational, series[0].Status)
	assert.Equal(t, 0, series[0].Incidents)

	assert.Equal(t, types.StatusDegraded, series[1].Status)
	assert.Equal(t, 1, series[1].Incidents)

	// Any down check that day wins over operational ones.
	assert.Equal(t, types.StatusDown, series[2].Status)
	assert.Equal(t, 1, series[2].Incidents)
}

func TestWindowValidation(t *testing.T) {
	agg := NewAggregator(storetest.New())

	_, err := agg.Stats(context.Background(), 1, 0)
	assert.Error(t, err)

	_, err = agg.Stats(context.Background(), 1, 366)
	assert.Error(t, err)

	_, err = agg.DailySeries(context.Background(), 1, -5)
	assert.Error(t, err)
}

func TestAggregatorAgainstStore(t *testing.T) {
	fake := storetest.New(models.Service{Name: "Frontend", URL: "https://example.com", Type: "frontend"})

	ctx := context.Background()

	rt := 120
	_, err := fake.InsertStatusCheck(ctx, 1, types.StatusOperational, &rt, "")
	require.NoError(t, err)
	_, err = fake.InsertStatusCheck(ctx, 1, types.StatusDown, nil, "HTTP 502")
	require.NoError(t, err)

	agg := NewAggregator(fake)

	stats, err := agg.Stats(ctx, 1, 30)
	require.NoError(t, err)
	assert.Equal(t, "50.00", stats.Uptime)
	assert.Equal(t, 120, stats.AvgResponseTime)
	assert.Equal(t, 2, stats.TotalChecks)

	series, err := agg.DailySeries(ctx, 1, 7)
	require.NoError(t, err)
	require.Len(t, series, 7)
	assert.Equal(t, types.StatusDown, series[6].Status)
	assert.Equal(t, 1, series[6].Incidents)
}
