package config

import "time"

// Config is the full service configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Source    SourceConfig    `yaml:"source" mapstructure:"source"`
	Dashboard DashboardConfig `yaml:"dashboard" mapstructure:"dashboard"`
	Charts    ChartsConfig    `yaml:"charts" mapstructure:"charts"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr" mapstructure:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
}

// StoreConfig selects the record store backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"` // postgres | mysql
	DSN         string `yaml:"dsn" mapstructure:"dsn"`
	Table       string `yaml:"table" mapstructure:"table"`
	SampleSize  int    `yaml:"sample_size" mapstructure:"sample_size"`
	AutoMigrate bool   `yaml:"auto_migrate" mapstructure:"auto_migrate"`
}

// SourceConfig configures where the dashboard reads raw records from. An
// empty BaseURL reads from the local store.
type SourceConfig struct {
	BaseURL string        `yaml:"base_url" mapstructure:"base_url"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

type DashboardConfig struct {
	Granularity    string `yaml:"granularity" mapstructure:"granularity"`
	RefreshOnStart bool   `yaml:"refresh_on_start" mapstructure:"refresh_on_start"`
}

// ChartsConfig is the initial size of every surface.
type ChartsConfig struct {
	Width  int `yaml:"width" mapstructure:"width"`
	Height int `yaml:"height" mapstructure:"height"`
}
