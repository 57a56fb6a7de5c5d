// Package config defines the global configuration structure for the FeedGuard
// optimizer service. Configuration is loaded once at process initialization
// and is immutable thereafter. It follows 12-Factor App principles by strictly
// separating code from configuration.
//
// Values are resolved via a priority chain:
//
//	OS Environment (Highest) -> Dotenv File -> Struct Defaults (Lowest)
//
// Any missing required value or invalid format causes the application to fail
// immediately on startup (fail fast).
package config

import "time"

// Config is the top-level configuration struct for the service. It is
// populated once during process initialization and never modified.
// Sub-components receive only the specific config subsets they require
// (Least Privilege principle).
type Config struct {
	// System Metadata
	Environment string `envconfig:"APP_ENV" default:"local" validate:"required,oneof=local dev staging prod"`
	Service     string `envconfig:"SERVICE_NAME" default:"feedguard-optimizer"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`

	// Domain Configurations
	Server    ServerConfig
	Security  SecurityConfig
	Traffic   TrafficConfig
	Optimizer OptimizerConfig

	// Build Metadata (Injected via ldflags, not Env)
	Build BuildInfo
}

// ServerConfig holds HTTP server tuning parameters.
type ServerConfig struct {
	Port            string        `envconfig:"PORT" default:"8080"`
	RequestTimeout  time.Duration `envconfig:"REQUEST_TIMEOUT" default:"15s"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// SecurityConfig holds CORS settings for the browser frontend.
type SecurityConfig struct {
	CorsAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
}

// TrafficConfig holds rate limiting and response compression settings.
type TrafficConfig struct {
	RateLimitRPS   float64 `envconfig:"RATE_LIMIT_RPS" default:"20" validate:"gt=0"`
	RateLimitBurst int     `envconfig:"RATE_LIMIT_BURST" default:"40" validate:"gt=0"`
	EnableGzip     bool    `envconfig:"ENABLE_GZIP" default:"true"`
}

// OptimizerConfig holds the economic coefficients shared by the optimizers.
// Rates default to the plant's local utility pricing (INR).
type OptimizerConfig struct {
	EnergyRatePerKWh float64 `envconfig:"ENERGY_RATE_PER_KWH" default:"8.5" validate:"gt=0"`
	LaborRatePerHour float64 `envconfig:"LABOR_RATE_PER_HOUR" default:"150" validate:"gt=0"`
	WasteValuePerKg  float64 `envconfig:"WASTE_VALUE_PER_KG" default:"50" validate:"gt=0"`
	GridCarbonFactor float64 `envconfig:"GRID_CARBON_FACTOR" default:"0.82" validate:"gt=0"`
}

// BuildInfo carries compile-time version metadata.
type BuildInfo struct {
	Version   string
	Commit    string
	BuildTime string
}
