package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config конфигурация клиента
type Config struct {
	API     APIConfig     `toml:"api"`
	Storage StorageConfig `toml:"storage"`
	Logs    LogsConfig    `toml:"logs"`
	Metrics MetricsConfig `toml:"metrics"`
	Web     WebConfig     `toml:"web"`
	Booking BookingConfig `toml:"booking"`
}

// APIConfig настройки подключения к backend API
type APIConfig struct {
	BaseURL string `toml:"base_url"`
	Timeout int    `toml:"timeout"` // секунды
}

// StorageConfig настройки локального хранилища учетных данных
type StorageConfig struct {
	Dir string `toml:"dir"`
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки метрик
type MetricsConfig struct {
	Enabled    bool   `toml:"enabled"`
	ClientName string `toml:"client_name"`
}

// WebConfig адрес веб-дашборда, куда перенаправляются back-office роли
type WebConfig struct {
	DashboardURL string `toml:"dashboard_url"`
}

// BookingConfig настройки подбора слотов
type BookingConfig struct {
	SlotStepMinutes   int `toml:"slot_step_minutes"`
	CandidateDayCount int `toml:"candidate_day_count"`
}

// Load загружает конфигурацию из toml-файла
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyDefaults подставляет значения по умолчанию для незаполненных полей
func (c *Config) applyDefaults() {
	if c.API.Timeout <= 0 {
		c.API.Timeout = 10
	}
	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}
	if c.Metrics.ClientName == "" {
		c.Metrics.ClientName = "sbm-client"
	}
	if c.Booking.SlotStepMinutes <= 0 {
		c.Booking.SlotStepMinutes = 30
	}
	if c.Booking.CandidateDayCount <= 0 {
		c.Booking.CandidateDayCount = 30
	}
}

// validate проверяет обязательные поля
func (c *Config) validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("config: api.base_url is required")
	}
	if c.Storage.Dir == "" {
		return fmt.Errorf("config: storage.dir is required")
	}
	return nil
}
