package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"growthcast/adapters/forecast/engine"
	"growthcast/adapters/stats/fitting"
	"growthcast/app"
	"growthcast/domain/forecast"
	"growthcast/internal/testkit"
)

func newTestServer() *Server {
	gin.SetMode(gin.TestMode)
	service := app.NewForecastService(
		fitting.NewFitter(),
		engine.NewSimulator(engine.DefaultOptions()),
		forecast.FamilyAuto,
	)
	return NewServer(service, nil, testkit.DemoBaseline())
}

func postJSON(t *testing.T, server *Server, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	server.Router().ServeHTTP(w, req)
	return w
}

func TestHandleForecast_DefaultBaseline(t *testing.T) {
	server := newTestServer()

	w := postJSON(t, server, "/api/forecast", forecastRequest{Initiative: forecast.InitiativeNone})
	require.Equal(t, http.StatusOK, w.Code)

	var resp forecastResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Baseline, forecast.Months)
	require.Len(t, resp.Display.Baseline, forecast.Months)
	assert.NotEmpty(t, resp.ForecastID)
	for i := range resp.Incremental {
		assert.Zero(t, resp.Incremental[i])
	}
}

func TestHandleForecast_InlineBaselineWins(t *testing.T) {
	server := newTestServer()

	tiny := testkit.DemoBaseline()
	for k := range tiny.CurrentDAU {
		tiny.CurrentDAU[k] = 1
	}
	for k := range tiny.WeeklyAcquisitions {
		tiny.WeeklyAcquisitions[k] = 0
	}

	w := postJSON(t, server, "/api/forecast", forecastRequest{
		Initiative: forecast.InitiativeNone,
		Baseline:   &tiny,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp forecastResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Less(t, resp.Baseline[0], 10.0)
}

func TestHandleForecast_ValidationError(t *testing.T) {
	server := newTestServer()

	w := postJSON(t, server, "/api/forecast", forecastRequest{
		Initiative:   forecast.InitiativeNone,
		ExposureRate: 150,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "exposure")
}

func TestHandleForecast_MalformedBody(t *testing.T) {
	server := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/api/forecast", strings.NewReader("{not json"))
	w := httptest.NewRecorder()
	server.Router().ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleForecastReport_RendersHTML(t *testing.T) {
	server := newTestServer()

	wire := forecastRequest{
		Initiative:  forecast.InitiativeAcquisition,
		Acquisition: forecast.AcquisitionPlan{WeeklyInstalls: 70_000, LeadWeeks: 2, DurationWeeks: 12},
	}
	w := postJSON(t, server, "/api/forecast/report", wire)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "<table>")
	assert.Contains(t, w.Body.String(), "Summary")
}

func TestBaselineEndpoints_DisabledWithoutStorage(t *testing.T) {
	server := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/api/baselines", nil)
	w := httptest.NewRecorder()
	server.Router().ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotImplemented, w.Code)
}

func TestHandleHealth(t *testing.T) {
	server := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	server.Router().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
