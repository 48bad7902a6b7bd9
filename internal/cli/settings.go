package cli

import (
	"fmt"
	"time"

	"github.com/gridsec/gridwatch/internal/client"
	"github.com/gridsec/gridwatch/internal/config"
	"github.com/gridsec/gridwatch/internal/errors"
	"github.com/gridsec/gridwatch/internal/ui"
)

// loadSettings resolves the config file, applies flag overrides, validates
// the result and configures color output.
func loadSettings() (*config.Config, error) {
	cfg, _, err := config.Resolve(cfgFile)
	if err != nil {
		return nil, err
	}
	if err := applyOverrides(cfg, baseURLFlag, timeoutFlag); err != nil {
		return nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	if !noColor {
		ui.ApplyColorMode(cfg.Output.Color)
	}
	return cfg, nil
}

// applyOverrides layers --base-url and --timeout onto cfg.
func applyOverrides(cfg *config.Config, baseURL, timeout string) error {
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if timeout != "" {
		d, err := parseDurationFlag("--timeout", timeout)
		if err != nil {
			return err
		}
		cfg.Timeout = d
	}
	return nil
}

// parseDurationFlag parses a duration flag value.
func parseDurationFlag(name, value string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("%s '%s' doesn't look like a valid duration", name, value),
			"Try something like 10s, 1m, or 500ms.")
	}
	return d, nil
}

// parseIntervalFlag resolves the auto-refresh interval: the flag wins over
// the configured value and must respect the minimum.
func parseIntervalFlag(value string, configured time.Duration) (time.Duration, error) {
	if value == "" {
		return configured, nil
	}
	d, err := parseDurationFlag("--interval", value)
	if err != nil {
		return 0, err
	}
	if d < 0 || (d > 0 && d < config.MinRefreshInterval) {
		return 0, errors.New(errors.ErrConfig,
			fmt.Sprintf("--interval %v is out of range", d),
			fmt.Sprintf("Use 0 for manual refresh or at least %v.", config.MinRefreshInterval))
	}
	return d, nil
}

// newClient builds the service client for cfg.
func newClient(cfg *config.Config) (*client.Client, error) {
	return client.New(cfg.BaseURL,
		client.WithTimeout(cfg.Timeout),
		client.WithLogger(commandLogger()),
	)
}
