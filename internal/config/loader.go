package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"shop-analytics-service/internal/metrics/core/domain"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override (SHOP_SERVER_ADDR, ...).
const EnvPrefix = "SHOP"

var ErrInvalidConfig = errors.New("invalid config")

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,62}$`)

// Load builds the configuration from defaults, an optional YAML file and the
// environment, in increasing precedence. path falls back to $SHOP_CONFIG.
// The legacy POSTGRES_DSN variable still sets store.dsn.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("store.dsn", EnvPrefix+"_STORE_DSN", "POSTGRES_DSN"); err != nil {
		return nil, err
	}

	if path == "" {
		path = os.Getenv(EnvPrefix + "_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override it.
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout)
	v.SetDefault("store.driver", d.Store.Driver)
	v.SetDefault("store.dsn", d.Store.DSN)
	v.SetDefault("store.table", d.Store.Table)
	v.SetDefault("store.sample_size", d.Store.SampleSize)
	v.SetDefault("store.auto_migrate", d.Store.AutoMigrate)
	v.SetDefault("source.base_url", d.Source.BaseURL)
	v.SetDefault("source.timeout", d.Source.Timeout)
	v.SetDefault("dashboard.granularity", d.Dashboard.Granularity)
	v.SetDefault("dashboard.refresh_on_start", d.Dashboard.RefreshOnStart)
	v.SetDefault("charts.width", d.Charts.Width)
	v.SetDefault("charts.height", d.Charts.Height)
}

// Validate reports every problem at once.
func (c *Config) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	if c.Server.Addr == "" {
		add("server.addr is required")
	}
	if c.Server.ShutdownTimeout <= 0 {
		add("server.shutdown_timeout must be positive")
	}

	switch c.Store.Driver {
	case "postgres", "mysql":
	default:
		add("store.driver %q is not one of postgres, mysql", c.Store.Driver)
	}
	if c.Store.DSN == "" {
		add("store.dsn is required (SHOP_STORE_DSN or POSTGRES_DSN)")
	}
	if !tableName.MatchString(c.Store.Table) {
		add("store.table %q is not a valid table name", c.Store.Table)
	}
	if c.Store.SampleSize <= 0 {
		add("store.sample_size must be positive")
	}

	if c.Source.BaseURL != "" && !strings.HasPrefix(c.Source.BaseURL, "http://") && !strings.HasPrefix(c.Source.BaseURL, "https://") {
		add("source.base_url %q must be an http(s) URL", c.Source.BaseURL)
	}
	if c.Source.Timeout <= 0 {
		add("source.timeout must be positive")
	}

	if _, ok := domain.ParseGranularity(c.Dashboard.Granularity); !ok {
		add("dashboard.granularity %q is not one of day, week, month, quarter, year", c.Dashboard.Granularity)
	}

	if c.Charts.Width <= 0 || c.Charts.Height <= 0 {
		add("charts.width and charts.height must be positive")
	}

	return errors.Join(errs...)
}

// Granularity returns the parsed dashboard granularity. Call after Validate.
func (c *Config) Granularity() domain.Granularity {
	g, _ := domain.ParseGranularity(c.Dashboard.Granularity)
	return g
}
