package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/gridsec/gridwatch/internal/errors"
)

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but gridwatch only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Upgrade gridwatch to the latest release")
	}

	if err := ValidateBaseURL(cfg.BaseURL); err != nil {
		return err
	}

	if cfg.Timeout < 0 {
		return errors.New(errors.ErrConfig,
			"timeout can't be negative",
			"Use a duration like '30s', or 0 to wait indefinitely")
	}

	if err := validateRefresh(cfg); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(),
			"Use a duration like '10s', or 0 to refresh manually")
	}

	if err := validateOutput(cfg.Output); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Fix the output section")
	}

	return nil
}

// ValidateBaseURL checks that raw is an absolute http(s) URL with a host.
func ValidateBaseURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return errors.New(errors.ErrConfig,
			"base_url is empty",
			"Set base_url in .gridwatch.yaml or export GRIDWATCH_BASE_URL")
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("base_url '%s' isn't a valid service URL", raw),
			"Use a full URL like https://grid.example.com or http://localhost:8000")
	}
	return nil
}

func validateRefresh(cfg *Config) error {
	switch {
	case cfg.RefreshInterval < 0:
		return fmt.Errorf("refresh_interval can't be negative")
	case cfg.RefreshInterval > 0 && cfg.RefreshInterval < MinRefreshInterval:
		return fmt.Errorf("refresh_interval %v is too short - the minimum is %v", cfg.RefreshInterval, MinRefreshInterval)
	}
	return nil
}

// validateOutput checks output configuration.
func validateOutput(out OutputConfig) error {
	validColors := map[string]bool{"auto": true, "always": true, "never": true, "": true}
	if !validColors[out.Color] {
		return fmt.Errorf("output.color '%s' isn't valid - use 'auto', 'always', or 'never'", out.Color)
	}
	return nil
}
