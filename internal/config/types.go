package config

import "time"

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Defaults for a fresh config.
const (
	DefaultBaseURL = "https://cyber-production-7ec6.up.railway.app"
	DefaultTimeout = 30 * time.Second
)

// MinRefreshInterval is the shortest auto-refresh accepted. Zero disables
// auto-refresh entirely.
const MinRefreshInterval = time.Second

// Config represents the complete .gridwatch.yaml configuration file.
type Config struct {
	Version int `yaml:"version" mapstructure:"version"`

	// BaseURL is the analysis service root, e.g. https://grid.example.com.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// Timeout bounds each request to the service. Zero means no limit.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// RefreshInterval re-runs the simulation on a timer in the dashboard.
	// Zero means manual triggering only.
	RefreshInterval time.Duration `yaml:"refresh_interval" mapstructure:"refresh_interval"`

	Output OutputConfig `yaml:"output" mapstructure:"output"`
}

// OutputConfig controls terminal output formatting.
type OutputConfig struct {
	// Color mode: "auto", "always", or "never".
	// "auto" disables color when output is piped.
	Color string `yaml:"color" mapstructure:"color"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentConfigVersion,
		BaseURL: DefaultBaseURL,
		Timeout: DefaultTimeout,
		Output: OutputConfig{
			Color: "auto",
		},
	}
}

// fileConfig is the on-disk shape. Durations are written as strings so the
// file stays readable ("30s" rather than nanoseconds).
type fileConfig struct {
	Version         int          `yaml:"version"`
	BaseURL         string       `yaml:"base_url"`
	Timeout         string       `yaml:"timeout"`
	RefreshInterval string       `yaml:"refresh_interval,omitempty"`
	Output          OutputConfig `yaml:"output"`
}

func toFile(cfg *Config) fileConfig {
	fc := fileConfig{
		Version: cfg.Version,
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout.String(),
		Output:  cfg.Output,
	}
	if cfg.RefreshInterval > 0 {
		fc.RefreshInterval = cfg.RefreshInterval.String()
	}
	return fc
}
