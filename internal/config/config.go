package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config is the full runtime configuration, read from the environment.
type Config struct {
	App    AppConfig
	Data   DataConfig
	Output OutputConfig
	Plan   PlanConfig
}

// AppConfig selects the environment and log verbosity.
type AppConfig struct {
	Env      string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// DataConfig locates the input CSV files and names their date column.
type DataConfig struct {
	Dir        string `envconfig:"DATA_DIR" default:"."`
	DateColumn string `envconfig:"DATE_COLUMN" default:"date"`
}

// OutputConfig sets where charts and exports are written and the chart size in pixels.
type OutputConfig struct {
	Dir    string `envconfig:"OUTPUT_DIR" default:"."`
	Width  int    `envconfig:"CHART_WIDTH" default:"1000"`
	Height int    `envconfig:"CHART_HEIGHT" default:"600"`
}

// PlanConfig chooses the plan to run and the default correlogram depth.
type PlanConfig struct {
	// File is an optional YAML plan; empty runs the built-in plan.
	File string `envconfig:"PLAN_FILE"`
	// ACFLags applies to acf steps that set no lag count.
	ACFLags int `envconfig:"ACF_LAGS" default:"20"`
}

// Validate reports the first setting that cannot produce a run.
func (c *Config) Validate() error {
	if c.Output.Width < 100 || c.Output.Height < 100 {
		return fmt.Errorf("chart size must be at least 100x100, got %dx%d", c.Output.Width, c.Output.Height)
	}
	if c.Plan.ACFLags < 1 {
		return fmt.Errorf("ACF_LAGS must be positive, got %d", c.Plan.ACFLags)
	}
	if c.Data.DateColumn == "" {
		return fmt.Errorf("DATE_COLUMN must not be empty")
	}
	return nil
}

// Load reads configuration from the environment, after loading a .env file if present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process env config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}
