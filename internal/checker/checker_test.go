package checker

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pulsecheck-dev/pulsecheck/internal/models"
	"github.com/pulsecheck-dev/pulsecheck/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func newTestChecker() *Checker {
	return New(2*time.Second, 3*time.Second)
}

func service(url string) models.Service {
	return models.Service{
		BaseModel: models.BaseModel{ID: 1},
		Name:      "Test Service",
		URL:       url,
		Type:      "backend",
	}
}

func TestCheckOperational(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	result := newTestChecker().Check(context.Background(), service(srv.URL))

	assert.Equal(t, types.StatusOperational, result.Status)
	assert.Empty(t, result.ErrorMessage)
	require.NotNil(t, result.ResponseTime)
	assert.GreaterOrEqual(t, *result.ResponseTime, 0)
}

func TestCheckSlowResponseDegraded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(30 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	// Threshold below the handler's sleep.
	chk := New(2*time.Second, 10*time.Millisecond)

	result := chk.Check(context.Background(), service(srv.URL))

	assert.Equal(t, types.StatusDegraded, result.Status)
	assert.Empty(t, result.ErrorMessage)
	require.NotNil(t, result.ResponseTime)
}

func TestCheckClientErrorDegraded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	result := newTestChecker().Check(context.Background(), service(srv.URL))

	assert.Equal(t, types.StatusDegraded, result.Status)
	assert.Equal(t, "HTTP 404", result.ErrorMessage)
	require.NotNil(t, result.ResponseTime)
}

func TestCheckServerErrorDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	result := newTestChecker().Check(context.Background(), service(srv.URL))

	assert.Equal(t, types.StatusDown, result.Status)
	assert.Equal(t, "HTTP 503", result.ErrorMessage)
}

func TestCheckTransportFailureDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	result := newTestChecker().Check(context.Background(), service(srv.URL))

	assert.Equal(t, types.StatusDown, result.Status)
	assert.Nil(t, result.ResponseTime)
	assert.NotEmpty(t, result.ErrorMessage)
}

func TestCheckTimeoutDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	chk := New(20*time.Millisecond, 3*time.Second)

	result := chk.Check(context.Background(), service(srv.URL))

	assert.Equal(t, types.StatusDown, result.Status)
	assert.Nil(t, result.ResponseTime)
	assert.NotEmpty(t, result.ErrorMessage)
}

func TestCheckFollowsRedirects(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/ok", http.StatusFound)
	})
	mux.HandleFunc("/ok", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	result := newTestChecker().Check(context.Background(), service(srv.URL))

	assert.Equal(t, types.StatusOperational, result.Status)
}

func TestCheckInvalidURLDown(t *testing.T) {
	result := newTestChecker().Check(context.Background(), service("http://invalid url with spaces"))

	assert.Equal(t, types.StatusDown, result.Status)
	assert.NotEmpty(t, result.ErrorMessage)
}

func TestCheckUsesProbeConfig(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead || r.Header.Get("X-Probe") != "pulsecheck" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	svc := service(srv.URL)
	svc.Config = datatypes.JSON(`{"method":"HEAD","headers":{"X-Probe":"pulsecheck"}}`)

	result := newTestChecker().Check(context.Background(), svc)

	assert.Equal(t, types.StatusOperational, result.Status)
}

func TestClassifyBoundaries(t *testing.T) {
	chk := newTestChecker()

	cases := []struct {
		name    string
		code    int
		elapsed time.Duration
		status  string
		message string
	}{
		{"fast 200", 200, time.Second, types.StatusOperational, ""},
		{"boundary 299", 299, time.Second, types.StatusOperational, ""},
		{"boundary 300", 300, time.Second, types.StatusDegraded, "HTTP 300"},
		{"client error 499", 499, time.Second, types.StatusDegraded, "HTTP 499"},
		{"boundary 500", 500, time.Second, types.StatusDown, "HTTP 500"},
		{"gateway 502", 502, time.Second, types.StatusDown, "HTTP 502"},
		{"slow 200", 200, 4 * time.Second, types.StatusDegraded, ""},
		{"threshold is exclusive", 200, 3 * time.Second, types.StatusOperational, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := chk.classify(tc.code, tc.elapsed)

			assert.Equal(t, tc.status, result.Status)
			assert.Equal(t, tc.message, result.ErrorMessage)
			require.NotNil(t, result.ResponseTime)
			assert.Equal(t, int(tc.elapsed.Milliseconds()), *result.ResponseTime)
		})
	}
}
