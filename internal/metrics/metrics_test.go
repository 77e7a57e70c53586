package metrics_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/installment-console/internal/metrics"
	"github.com/maxviazov/installment-console/internal/repository"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutcome(t *testing.T) {
	tests := []struct {
		name   string
		status int
		err    error
		want   string
	}{
		{"success", 200, nil, metrics.OutcomeOK},
		{"not found", 404, &repository.APIError{Status: 404}, metrics.OutcomeNotFound},
		{"validation", 400, &repository.APIError{Status: 400, Message: "x"}, metrics.OutcomeRejected},
		{"server", 500, &repository.APIError{Status: 500}, metrics.OutcomeServerError},
		{"transport", 0, fmt.Errorf("ping: %w: dial", repository.ErrUnavailable), metrics.OutcomeUnavailable},
		{"decode", 200, fmt.Errorf("x: %w", repository.ErrBadResponse), metrics.OutcomeBadResponse},
		{"canceled", 0, fmt.Errorf("x: %w", context.Canceled), metrics.OutcomeCanceled},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, metrics.Outcome(tc.status, tc.err))
		})
	}
}

func TestObserveCall_CountsByOutcome(t *testing.T) {
	r := metrics.New(false)
	r.ObserveCall("customers.list", 200, 10*time.Millisecond, nil)
	r.ObserveCall("customers.list", 200, 12*time.Millisecond, nil)
	r.ObserveCall("customers.get", 404, time.Millisecond, &repository.APIError{Status: 404})

	expected := `
# HELP installment_console_backend_calls_total Backend calls by operation and outcome.
# TYPE installment_console_backend_calls_total counter
installment_console_backend_calls_total{op="customers.get",outcome="not_found"} 1
installment_console_backend_calls_total{op="customers.list",outcome="ok"} 2
`
	require.NoError(t, testutil.GatherAndCompare(r.Gatherer(), strings.NewReader(expected), "installment_console_backend_calls_total"))
}

func TestMiddleware_UsesRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := metrics.New(false)
	engine := gin.New()
	engine.Use(r.Middleware())
	engine.GET("/customer/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/customer/1", "/customer/2", "/nowhere"} {
		engine.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	expected := `
# HELP installment_console_http_requests_total Console HTTP requests by route and status.
# TYPE installment_console_http_requests_total counter
installment_console_http_requests_total{method="GET",route="/customer/:id",status="200"} 2
installment_console_http_requests_total{method="GET",route="unmatched",status="404"} 1
`
	require.NoError(t, testutil.GatherAndCompare(r.Gatherer(), strings.NewReader(expected), "installment_console_http_requests_total"))
}

func TestHandler_ServesExposition(t *testing.T) {
	r := metrics.New(true)
	r.ObserveCall("ping", 0, time.Millisecond, errors.Join(repository.ErrUnavailable))

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `installment_console_backend_calls_total{op="ping",outcome="unavailable"} 1`)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
