package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pulsecheck-dev/pulsecheck/internal/middleware"
	"github.com/stretchr/testify/assert"
)

func request(secret, header string) int {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/cron", middleware.CronAuth(secret), func(ctx *gin.Context) {
		ctx.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/cron", nil)

	if header != "" {
		req.Header.Set("Authorization", header)
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	return rec.Code
}

func TestCronAuth(t *testing.T) {
	assert.Equal(t, http.StatusOK, request("", ""), "empty secret leaves the endpoint open")
	assert.Equal(t, http.StatusUnauthorized, request("s3cret", ""))
	assert.Equal(t, http.StatusUnauthorized, request("s3cret", "Bearer nope"))
	assert.Equal(t, http.StatusUnauthorized, request("s3cret", "s3cret"), "scheme prefix is required")
	assert.Equal(t, http.StatusOK, request("s3cret", "Bearer s3cret"))
}
