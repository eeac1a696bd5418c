package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"StockMonitor/internal/calendar"
)

// API holds the market-data API settings passed to the collector.
type API struct {
	Key            string `yaml:"key"`
	BarsURL        string `yaml:"bars_url"`
	OpenCloseURL   string `yaml:"open_close_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	Proxy          string `yaml:"proxy"`
}

// Timeout returns the per-request timeout.
func (a API) Timeout() time.Duration {
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// Config holds all application configuration.
type Config struct {
	API    API `yaml:"api"`
	Prompt struct {
		MaxAttempts int `yaml:"max_attempts"`
	} `yaml:"prompt"`
	Calendar struct {
		TradingDays string   `yaml:"trading_days"`
		Holidays    []string `yaml:"holidays"`
	} `yaml:"calendar"`
	Chart struct {
		Height     int `yaml:"height"`
		MaxCandles int `yaml:"max_candles"`
	} `yaml:"chart"`
	Log struct {
		Level string `yaml:"level"`
		File  string `yaml:"file"`
	} `yaml:"log"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
// A missing file is not an error: everything has a default except the API key.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	cfg.Prompt.MaxAttempts = -1

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("API_KEY"); v != "" {
		cfg.API.Key = v
	}
	if v := os.Getenv("POLYGON_API_KEY"); v != "" {
		cfg.API.Key = v
	}
	if v := os.Getenv("API_URL_BARS"); v != "" {
		cfg.API.BarsURL = v
	}
	if v := os.Getenv("API_URL_OC"); v != "" {
		cfg.API.OpenCloseURL = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.API.Proxy = v
	}
	if v := os.Getenv("API_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.API.TimeoutSeconds = n
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}

	// Defaults
	if cfg.API.BarsURL == "" {
		cfg.API.BarsURL = "https://api.polygon.io/v2"
	}
	if cfg.API.OpenCloseURL == "" {
		cfg.API.OpenCloseURL = "https://api.polygon.io/v1"
	}
	if cfg.API.TimeoutSeconds == 0 {
		cfg.API.TimeoutSeconds = 30
	}
	if cfg.Prompt.MaxAttempts < 0 {
		cfg.Prompt.MaxAttempts = 5
	}
	if cfg.Calendar.TradingDays == "" {
		cfg.Calendar.TradingDays = calendar.DefaultTradingDays
	}
	if len(cfg.Calendar.Holidays) == 0 {
		cfg.Calendar.Holidays = append([]string(nil), calendar.DefaultHolidays...)
	}
	if cfg.Chart.Height == 0 {
		cfg.Chart.Height = 16
	}
	if cfg.Chart.MaxCandles == 0 {
		cfg.Chart.MaxCandles = 60
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "warn"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.API.Key == "" {
		return fmt.Errorf("api.key is required (set POLYGON_API_KEY or API_KEY)")
	}
	if c.API.BarsURL == "" {
		return fmt.Errorf("api.bars_url is required")
	}
	if c.API.OpenCloseURL == "" {
		return fmt.Errorf("api.open_close_url is required")
	}
	if c.API.TimeoutSeconds <= 0 {
		return fmt.Errorf("api.timeout_seconds must be positive")
	}
	if c.Chart.Height < 4 {
		return fmt.Errorf("chart.height must be at least 4")
	}
	if c.Chart.MaxCandles <= 0 {
		return fmt.Errorf("chart.max_candles must be positive")
	}
	if _, err := calendar.New(c.Calendar.TradingDays, c.Calendar.Holidays); err != nil {
		return fmt.Errorf("calendar: %w", err)
	}
	return nil
}
