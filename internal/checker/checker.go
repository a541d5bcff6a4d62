package checker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/pulsecheck-dev/pulsecheck/internal/models"
	"github.com/pulsecheck-dev/pulsecheck/internal/types"
)

// Result is one classified health observation. Probe failures are data, not
// errors: every expected network condition maps onto a status.
type Result struct {
	Status       string
	ResponseTime *int // milliseconds, nil when unmeasurable
	ErrorMessage string
}

type Checker struct {
	timeout           time.Duration
	degradedThreshold time.Duration
	client            *http.Client
}

func New(timeout, degradedThreshold time.Duration) *Checker {
	return &Checker{
		timeout:           timeout,
		degradedThreshold: degradedThreshold,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Check probes one service and classifies the outcome. The probe kind is
// dispatched on the URL scheme; anything unrecognized is treated as HTTP.
func (c *Checker) Check(ctx context.Context, service models.Service) Result {
	parsed, err := url.Parse(service.URL)

	if err != nil {
		return Result{
			Status:       types.StatusDown,
			ErrorMessage: "invalid URL: " + err.Error(),
		}
	}

	switch parsed.Scheme {
	case "postgres", "postgresql", "mysql":
		return c.checkDatabase(ctx, parsed)
	case "dns":
		return c.checkDNS(ctx, parsed)
	default:
		return c.checkHTTP(ctx, service)
	}
}

func (c *Checker) checkHTTP(ctx context.Context, service models.Service) Result {
	method := http.MethodGet
	headers := map[string]string{}

	if len(service.Config) > 0 {
		var cfg types.HTTPProbeConfig
		if err := json.Unmarshal(service.Config, &cfg); err == nil {
			if cfg.Method != "" {
				method = cfg.Method
			}
			headers = cfg.Headers
		} else {
			slog.Warn("invalid probe config, using defaults",
				slog.String("service", service.Name),
				slog.Any("error", err))
		}
	}

	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, method, service.URL, nil)

	if err != nil {
		return Result{
			Status:       types.StatusDown,
			ErrorMessage: err.Error(),
		}
	}

	for key, value := range headers {
		req.Header.Add(key, value)
	}

	resp, err := c.client.Do(req)
	elapsed := time.Since(start)

	if err != nil {
		slog.Debug("probe transport failure",
			slog.String("url", service.URL),
			slog.Duration("elapsed", elapsed),
			slog.Any("error", err))

		return Result{
			Status:       types.StatusDown,
			ErrorMessage: err.Error(),
		}
	}

	defer resp.Body.Close()

	return c.classify(resp.StatusCode, elapsed)
}

// classify applies the status-code and latency rules. The client has already
// followed any redirects, so a 3xx here is a chain that never reached 2xx.
func (c *Checker) classify(code int, elapsed time.Duration) Result {
	responseTime := millis(elapsed)

	switch {
	case code >= 500:
		return Result{
			Status:       types.StatusDown,
			ResponseTime: responseTime,
			ErrorMessage: fmt.Sprintf("HTTP %d", code),
		}
	case code >= 300 || code < 200:
		return Result{
			Status:       types.StatusDegraded,
			ResponseTime: responseTime,
			ErrorMessage: fmt.Sprintf("HTTP %d", code),
		}
	case elapsed > c.degradedThreshold:
		return Result{
			Status:       types.StatusDegraded,
			ResponseTime: responseTime,
		}
	default:
		return Result{
			Status:       types.StatusOperational,
			ResponseTime: responseTime,
		}
	}
}

// latencyResult classifies a successful non-HTTP probe.
func (c *Checker) latencyResult(elapsed time.Duration) Result {
	status := types.StatusOperational

	if elapsed > c.degradedThreshold {
		status = types.StatusDegraded
	}

	return Result{
		Status:       status,
		ResponseTime: millis(elapsed),
	}
}

func millis(elapsed time.Duration) *int {
	ms := int(elapsed.Milliseconds())
	return &ms
}
