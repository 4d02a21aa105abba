package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardcomply/internal/domain"
	"cardcomply/internal/metrics"
)

func TestObserveFindings(t *testing.T) {
	m := metrics.New()

	m.ObserveFindings(false, []domain.ComplianceFinding{
		{Category: domain.CategoryLogoUsage, Status: domain.FindingStatusPassed},
		{Category: domain.CategoryLogoUsage, Status: domain.FindingStatusPassed},
		{Category: domain.CategoryColorPalette, Status: domain.FindingStatusFailed},
	})
	m.ObserveFindings(true, nil)

	expected := `
# HELP cardcomply_analyses_total Compliance analyses completed, by mode.
# TYPE cardcomply_analyses_total counter
cardcomply_analyses_total{mode="demo"} 1
cardcomply_analyses_total{mode="live"} 1
`
	require.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "cardcomply_analyses_total"))
	assert.Equal(t, 2, testutil.CollectAndCount(m.Registry(), "cardcomply_findings_total"))
}

func TestObserveTrackAndExtraction(t *testing.T) {
	m := metrics.New()

	m.ObserveTrack("image", 2*time.Second, false)
	m.ObserveTrack("text", time.Second, true)
	m.ObserveExtraction(domain.ExtractionStatusCompleted)
	m.ObserveExtraction(domain.ExtractionStatusCompleted)

	assert.Equal(t, 2, testutil.CollectAndCount(m.Registry(), "cardcomply_track_duration_seconds"))
	assert.Equal(t, 1, testutil.CollectAndCount(m.Registry(), "cardcomply_reference_extractions_total"))
}

func TestMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := metrics.New()
	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `cardcomply_http_requests_total{code="200",method="GET",route="/ping"} 1`)
}
