package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/task-tracker-api/internal/logging"
)

func TestMetrics_InstrumentCountsByRoute(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(m.Instrument())
	r.GET("/tasks/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	for _, path := range []string{"/tasks/1", "/tasks/2", "/missing"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	// One series for the matched route, one for the unmatched path
	count, err := testutil.GatherAndCount(reg, "task_tracker_http_request_count")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestMetrics_DoubleRegistrationFails(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewMetrics(reg)
	require.NoError(t, err)

	_, err = NewMetrics(reg)
	assert.Error(t, err)
}

func TestRequestLogger_LogsRouteAndStatus(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf, "debug")

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestLogger(logger))
	r.GET("/tasks/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/tasks/7", nil))

	out := buf.String()
	assert.Contains(t, out, "route=/tasks/:id")
	assert.Contains(t, out, "status=404")
	assert.Contains(t, out, "level=warn")
}
