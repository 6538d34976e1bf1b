package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"growthcast/domain/core"
	"growthcast/domain/forecast"
	"growthcast/ports"
)

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleForecast runs one simulation and returns the structured result.
func (s *Server) handleForecast(c *gin.Context) {
	req, ok := s.bindRequest(c)
	if !ok {
		return
	}

	result, err := s.forecasts.Forecast(c.Request.Context(), req)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newForecastResponse(result))
}

// handleForecastReport runs one simulation and renders the HTML report.
func (s *Server) handleForecastReport(c *gin.Context) {
	req, ok := s.bindRequest(c)
	if !ok {
		return
	}

	result, err := s.forecasts.Forecast(c.Request.Context(), req)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.String(http.StatusOK, string(RenderHTML(BuildReport(req, result))))
}

// bindRequest decodes the wire request and resolves its baseline: inline
// wins, then a stored name, then the server default.
func (s *Server) bindRequest(c *gin.Context) (forecast.SimulationRequest, bool) {
	var wire forecastRequest
	if err := c.ShouldBindJSON(&wire); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return forecast.SimulationRequest{}, false
	}

	req := forecast.SimulationRequest{
		Initiative:     wire.Initiative,
		Acquisition:    wire.Acquisition,
		Retention:      wire.Retention,
		SegmentFilter:  wire.SegmentFilter,
		PlatformFilter: wire.PlatformFilter,
		ExposureRate:   wire.ExposureRate,
	}

	switch {
	case wire.Baseline != nil:
		req.Baseline = *wire.Baseline
	case wire.BaselineName != "":
		if s.baselines == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "baseline storage is not configured"})
			return forecast.SimulationRequest{}, false
		}
		stored, err := s.baselines.GetByName(c.Request.Context(), wire.BaselineName)
		if err != nil {
			s.respondError(c, err)
			return forecast.SimulationRequest{}, false
		}
		req.Baseline = stored.Dataset
	default:
		req.Baseline = s.defaultBaseline
	}
	return req, true
}

func (s *Server) handleListBaselines(c *gin.Context) {
	if s.baselines == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "baseline storage is not configured"})
		return
	}
	baselines, err := s.baselines.List(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"baselines": baselines, "count": len(baselines)})
}

func (s *Server) handleGetBaseline(c *gin.Context) {
	if s.baselines == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "baseline storage is not configured"})
		return
	}
	baseline, err := s.baselines.GetByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, baseline)
}

func (s *Server) handleSaveBaseline(c *gin.Context) {
	if s.baselines == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "baseline storage is not configured"})
		return
	}

	var wire baselineRequest
	if err := c.ShouldBindJSON(&wire); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	if wire.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "baseline name is required"})
		return
	}
	if err := wire.Dataset.Validate(); err != nil {
		s.respondError(c, err)
		return
	}

	named := &ports.NamedBaseline{Name: wire.Name, Dataset: wire.Dataset}
	if err := s.baselines.Save(c.Request.Context(), named); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, named)
}

func (s *Server) handleDeleteBaseline(c *gin.Context) {
	if s.baselines == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "baseline storage is not configured"})
		return
	}
	if err := s.baselines.Delete(c.Request.Context(), c.Param("name")); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// respondError maps domain errors onto HTTP statuses.
func (s *Server) respondError(c *gin.Context, err error) {
	switch {
	case core.IsValidationError(err):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case core.IsNotFoundError(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		s.log.Error("[API] request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
