package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"growthcast/adapters/excel"
	"growthcast/adapters/forecast/engine"
	"growthcast/adapters/postgres"
	"growthcast/adapters/stats/fitting"
	"growthcast/api"
	"growthcast/app"
	"growthcast/domain/forecast"
	"growthcast/internal"
	"growthcast/internal/config"
	"growthcast/internal/testkit"
	"growthcast/ports"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}
	logger := internal.DefaultLogger

	service := app.NewForecastService(
		fitting.NewFitter(),
		engine.NewSimulator(engine.Options{
			ChurnModel:  cfg.Engine.ChurnModel,
			Ramp:        cfg.Engine.Ramp,
			Granularity: cfg.Engine.Granularity,
		}),
		cfg.Engine.CurveFamily,
	)

	var baselines ports.BaselineRepository
	if cfg.Database.URL != "" {
		db, err := postgres.Connect(cfg.Database.URL)
		if err != nil {
			log.Fatal("Failed to connect to database:", err)
		}
		defer db.Close()
		baselines = postgres.NewBaselineRepository(db)
	} else {
		logger.Warn("[API] DATABASE_URL not set, baseline persistence disabled")
	}

	defaultBaseline := loadDefaultBaseline(cfg, logger)

	if cfg.Profiling.Enabled {
		go startDebugServer(cfg.Profiling.Port, logger)
	}

	server := api.NewServer(service, baselines, defaultBaseline)
	if err := server.Start(cfg.Server.Port); err != nil {
		log.Fatal("Server failed:", err)
	}
}

// loadDefaultBaseline prefers the configured workbook and falls back to the
// built-in demo dataset.
func loadDefaultBaseline(cfg *config.Config, logger *internal.Logger) forecast.BaselineDataset {
	if cfg.Paths.BaselineWorkbook == "" {
		return testkit.DemoBaseline()
	}
	reader := excel.NewBaselineReader(cfg.Paths.BaselineWorkbook)
	baseline, err := reader.Read("")
	if err != nil {
		logger.Warn("[API] failed to load baseline workbook, using demo baseline: %v", err)
		return testkit.DemoBaseline()
	}
	logger.Info("[API] loaded default baseline from %s", cfg.Paths.BaselineWorkbook)
	return *baseline
}

// startDebugServer runs the ops sidecar: health probe plus pprof.
func startDebugServer(port string, logger *internal.Logger) {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Mount("/debug", middleware.Profiler())

	logger.Info("[debug] sidecar listening on :%s", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		logger.Error("[debug] sidecar failed: %v", err)
	}
}
