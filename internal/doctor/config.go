package doctor

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/gridsec/gridwatch/internal/config"
	"github.com/gridsec/gridwatch/internal/errors"
)

// ConfigFileCheck reports which config file is in use. Running without one
// is allowed, so a missing file only warns.
type ConfigFileCheck struct {
	ConfigPath string // Explicit path, or empty to search
}

func (c *ConfigFileCheck) Name() string     { return "config_file" }
func (c *ConfigFileCheck) Category() string { return CategoryConfig }

func (c *ConfigFileCheck) Run(_ context.Context) CheckResult {
	path, err := config.Find(c.ConfigPath)
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    errors.Human(err),
			Suggestion: "Check the --config path, or run 'gridwatch init' to create a config",
		}
	}
	if path == "" {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    "No config file found, using defaults",
			Suggestion: "Run 'gridwatch init' to create a " + config.ConfigFileName,
		}
	}
	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: "Config file: " + path,
	}
}

// ConfigValidCheck loads the effective settings and validates them.
type ConfigValidCheck struct {
	ConfigPath string
}

func (c *ConfigValidCheck) Name() string     { return "config_valid" }
func (c *ConfigValidCheck) Category() string { return CategoryConfig }

func (c *ConfigValidCheck) Run(_ context.Context) CheckResult {
	cfg, _, err := config.Resolve(c.ConfigPath)
	if err == nil {
		err = config.Validate(cfg)
	}
	if err != nil {
		suggestion := "Check the YAML in your config file"
		var gwErr *errors.Error
		if stderrors.As(err, &gwErr) && gwErr.Suggestion != "" {
			suggestion = gwErr.Suggestion
		}
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    errors.Human(err),
			Suggestion: suggestion,
		}
	}
	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("Settings valid (backend %s, timeout %v)", cfg.BaseURL, cfg.Timeout),
	}
}

// NewConfigChecks returns the config checks for configPath.
func NewConfigChecks(configPath string) []Check {
	return []Check{
		&ConfigFileCheck{ConfigPath: configPath},
		&ConfigValidCheck{ConfigPath: configPath},
	}
}
