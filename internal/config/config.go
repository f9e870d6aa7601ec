package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Provider struct {
		BaseURL        string `yaml:"base_url"`
		APIKey         string `yaml:"api_key"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"provider"`
	Engine struct {
		HorizonDays       int `yaml:"horizon_days"`
		BudgetSeconds     int `yaml:"budget_seconds"`
		SparseHistoryDays int `yaml:"sparse_history_days"`
	} `yaml:"engine"`
	Risk struct {
		CashflowThreshold  float64 `yaml:"cashflow_threshold"`
		CriticalDays       int     `yaml:"critical_days"`
		RecurringCostRatio float64 `yaml:"recurring_cost_ratio"`
		HiringGrowthRatio  float64 `yaml:"hiring_growth_ratio"`
	} `yaml:"risk"`
	Schedule struct {
		DailyCron  string `yaml:"daily_cron"`
		DigestCron string `yaml:"digest_cron"`
	} `yaml:"schedule"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

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
	if v := os.Getenv("FORECAST_BASE_URL"); v != "" {
		cfg.Provider.BaseURL = v
	}
	if v := os.Getenv("FORECAST_API_KEY"); v != "" {
		cfg.Provider.APIKey = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("CRON_DAILY"); v != "" {
		cfg.Schedule.DailyCron = v
	}

	// Defaults
	if cfg.Provider.TimeoutSeconds == 0 {
		cfg.Provider.TimeoutSeconds = 3
	}
	if cfg.Engine.HorizonDays == 0 {
		cfg.Engine.HorizonDays = 90
	}
	if cfg.Engine.BudgetSeconds == 0 {
		cfg.Engine.BudgetSeconds = 5
	}
	if cfg.Engine.SparseHistoryDays == 0 {
		cfg.Engine.SparseHistoryDays = 30
	}
	if cfg.Risk.CashflowThreshold == 0 {
		cfg.Risk.CashflowThreshold = 0.10
	}
	if cfg.Risk.CriticalDays == 0 {
		cfg.Risk.CriticalDays = 30
	}
	if cfg.Risk.RecurringCostRatio == 0 {
		cfg.Risk.RecurringCostRatio = 0.30
	}
	if cfg.Risk.HiringGrowthRatio == 0 {
		cfg.Risk.HiringGrowthRatio = 0.25
	}
	if cfg.Schedule.DailyCron == "" {
		cfg.Schedule.DailyCron = "0 0 7 * * *"
	}
	if cfg.Schedule.DigestCron == "" {
		cfg.Schedule.DigestCron = "0 0 8 * * 1"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/scenario_lens.db"
	}

	return cfg, nil
}

// Validate checks that all required fields are set and in range.
func (c *Config) Validate() error {
	if c.Engine.HorizonDays <= 0 {
		return fmt.Errorf("engine.horizon_days must be positive")
	}
	if c.Risk.CashflowThreshold <= 0 || c.Risk.CashflowThreshold >= 1 {
		return fmt.Errorf("risk.cashflow_threshold must be in (0, 1)")
	}
	if c.Risk.CriticalDays <= 0 {
		return fmt.Errorf("risk.critical_days must be positive")
	}
	if c.Database.SQLitePath == "" {
		return fmt.Errorf("database.sqlite_path is required")
	}
	return nil
}
