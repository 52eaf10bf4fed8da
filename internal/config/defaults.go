package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: 5 * time.Second,
		},
		Store: StoreConfig{
			Driver:      "postgres",
			Table:       "records",
			SampleSize:  25,
			AutoMigrate: true,
		},
		Source: SourceConfig{
			Timeout: 5 * time.Second,
		},
		Dashboard: DashboardConfig{
			Granularity:    "day",
			RefreshOnStart: true,
		},
		Charts: ChartsConfig{
			Width:  600,
			Height: 400,
		},
	}
}

// WriteDefault writes the default configuration as YAML to path.
func WriteDefault(path string) error {
	out, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return err
	}
	header := []byte("# shop-analytics-service configuration\n# Every key can be overridden with SHOP_<SECTION>_<KEY>, e.g. SHOP_STORE_DSN.\n")
	return os.WriteFile(path, append(header, out...), 0o644)
}
