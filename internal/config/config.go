package config

import (
	"os"
	"strconv"

	"growthcast/domain/forecast"
	"growthcast/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Engine    EngineConfig
	Paths     PathConfig
	Profiling ProfilingConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// DatabaseConfig holds database connection settings. The URL is optional:
// without it the API runs with baseline persistence disabled.
type DatabaseConfig struct {
	URL     string
	SSLMode string
}

// EngineConfig holds the simulation behavior switches
type EngineConfig struct {
	ChurnModel  forecast.ChurnModel
	Ramp        bool
	Granularity forecast.Granularity
	CurveFamily forecast.CurveFamily
}

// PathConfig holds file system paths
type PathConfig struct {
	// BaselineWorkbook is the default baseline dataset workbook, used when a
	// request carries no inline baseline and names no stored one.
	BaselineWorkbook string
}

// ProfilingConfig holds the debug sidecar settings
type ProfilingConfig struct {
	Port    string
	Enabled bool
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "release"),
		},
		Database: DatabaseConfig{
			URL:     os.Getenv("DATABASE_URL"),
			SSLMode: getEnvOrDefault("SSL_MODE", "disable"),
		},
		Engine: EngineConfig{
			ChurnModel:  forecast.ChurnModel(getEnvOrDefault("CHURN_MODEL", string(forecast.ChurnFixedExponential))),
			Ramp:        getEnvBoolOrDefault("CAMPAIGN_RAMP", true),
			Granularity: forecast.Granularity(getEnvOrDefault("GRANULARITY", string(forecast.GranularityMonthly))),
			CurveFamily: forecast.CurveFamily(getEnvOrDefault("CURVE_FAMILY", string(forecast.FamilyAuto))),
		},
		Paths: PathConfig{
			BaselineWorkbook: getEnvOrDefault("BASELINE_WORKBOOK", ""),
		},
		Profiling: ProfilingConfig{
			Port:    getEnvOrDefault("PPROF_PORT", "6060"),
			Enabled: getEnvBoolOrDefault("PPROF_ENABLED", false),
		},
	}

	if err := validate(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func validate(config *Config) error {
	switch config.Engine.ChurnModel {
	case forecast.ChurnFixedExponential, forecast.ChurnFittedCurve:
	default:
		return errors.ConfigInvalid("CHURN_MODEL must be fixed-exponential or fitted-curve")
	}
	switch config.Engine.Granularity {
	case forecast.GranularityMonthly, forecast.GranularityDaily:
	default:
		return errors.ConfigInvalid("GRANULARITY must be monthly or daily")
	}
	switch config.Engine.CurveFamily {
	case forecast.FamilyAuto, forecast.FamilyPower, forecast.FamilyExponential:
	default:
		return errors.ConfigInvalid("CURVE_FAMILY must be auto, power or exponential")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
