package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"growthcast/adapters/excel"
	"growthcast/adapters/forecast/engine"
	"growthcast/adapters/stats/fitting"
	"growthcast/app"
	"growthcast/domain/forecast"
	"growthcast/internal/config"
	"growthcast/internal/testkit"
)

func main() {
	workbook := flag.String("workbook", "", "baseline workbook path (default: built-in demo baseline)")
	initiative := flag.String("initiative", "none", "initiative kind: none|acquisition|retention|combined")
	weeklyInstalls := flag.Float64("weekly-installs", 0, "campaign weekly install volume")
	leadWeeks := flag.Int("lead-weeks", 0, "campaign lead time in weeks")
	durationWeeks := flag.Int("duration-weeks", 0, "campaign duration in weeks")
	target := flag.String("target", "all", "retention target cohort: new|existing|all")
	monthsToStart := flag.Int("months-to-start", 0, "retention initiative launch delay in months")
	gain := flag.Float64("gain", 0, "retention gain in percentage points, applied at every offset")
	exposure := flag.Float64("exposure", 100, "exposure rate in percent")
	asJSON := flag.Bool("json", false, "emit the full result as JSON")
	flag.Parse()

	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	baseline := testkit.DemoBaseline()
	if *workbook != "" {
		loaded, err := excel.NewBaselineReader(*workbook).Read("")
		if err != nil {
			log.Fatal("Failed to read baseline workbook:", err)
		}
		baseline = *loaded
	}

	gains := make(map[int]float64, len(forecast.RetentionDays))
	for _, day := range forecast.RetentionDays {
		gains[day] = *gain
	}

	req := forecast.SimulationRequest{
		Initiative: forecast.InitiativeKind(*initiative),
		Acquisition: forecast.AcquisitionPlan{
			WeeklyInstalls: *weeklyInstalls,
			LeadWeeks:      *leadWeeks,
			DurationWeeks:  *durationWeeks,
		},
		Retention: forecast.RetentionPlan{
			TargetCohort:  forecast.TargetCohort(*target),
			MonthsToStart: *monthsToStart,
			DayGainPoints: gains,
		},
		ExposureRate: *exposure,
		Baseline:     baseline,
	}

	service := app.NewForecastService(
		fitting.NewFitter(),
		engine.NewSimulator(engine.Options{
			ChurnModel:  cfg.Engine.ChurnModel,
			Ramp:        cfg.Engine.Ramp,
			Granularity: cfg.Engine.Granularity,
		}),
		cfg.Engine.CurveFamily,
	)

	result, err := service.Forecast(context.Background(), req)
	if err != nil {
		log.Fatal("Forecast failed:", err)
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			log.Fatal("Failed to encode result:", err)
		}
		return
	}

	printTable(result)
}

func printTable(result *forecast.SimulationResult) {
	fmt.Printf("Forecast %s\n\n", result.ForecastID)
	fmt.Printf("%5s %14s %17s %13s\n", "Month", "Baseline", "With Initiative", "Incremental")
	for m := 0; m < forecast.Months; m++ {
		fmt.Printf("%5d %14.0f %17.0f %13.0f\n",
			m+1, result.Baseline[m], result.WithInitiative[m], result.Incremental[m])
	}

	sum := result.Summary
	fmt.Printf("\nTotal impact:     %.0f DAU-days\n", sum.TotalImpact)
	fmt.Printf("Peak incremental: %.0f DAU in month %d (%.1f%% lift)\n",
		sum.PeakIncremental, sum.PeakMonth+1, sum.PeakLiftPercent)
	fmt.Printf("Breakdown:        existing %.0f | new users %.0f | acquisition %.0f\n",
		sum.Breakdown.ExistingUsers, sum.Breakdown.NewUsers, sum.Breakdown.NewAcquisition)
}
