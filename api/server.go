package api

import (
	"github.com/gin-gonic/gin"

	"growthcast/domain/forecast"
	"growthcast/internal"
	"growthcast/ports"
)

// Server exposes the forecasting engine over HTTP. The engine stays a pure
// function; this layer owns baseline resolution, display rounding and report
// rendering.
type Server struct {
	router          *gin.Engine
	forecasts       ports.ForecastPort
	baselines       ports.BaselineRepository // nil when persistence is disabled
	defaultBaseline forecast.BaselineDataset
	log             *internal.Logger
}

// NewServer creates the API server and registers its routes
func NewServer(forecasts ports.ForecastPort, baselines ports.BaselineRepository, defaultBaseline forecast.BaselineDataset) *Server {
	s := &Server{
		router:          gin.Default(),
		forecasts:       forecasts,
		baselines:       baselines,
		defaultBaseline: defaultBaseline,
		log:             internal.DefaultLogger,
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.GET("/healthz", s.handleHealth)

	apiGroup := s.router.Group("/api")
	apiGroup.POST("/forecast", s.handleForecast)
	apiGroup.POST("/forecast/report", s.handleForecastReport)

	apiGroup.GET("/baselines", s.handleListBaselines)
	apiGroup.GET("/baselines/:name", s.handleGetBaseline)
	apiGroup.POST("/baselines", s.handleSaveBaseline)
	apiGroup.DELETE("/baselines/:name", s.handleDeleteBaseline)
}

// Router returns the underlying gin engine, mainly for tests
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start runs the HTTP server on the given port
func (s *Server) Start(port string) error {
	s.log.Info("[API] listening on :%s", port)
	return s.router.Run(":" + port)
}
