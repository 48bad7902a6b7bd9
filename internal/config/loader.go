package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/gridsec/gridwatch/internal/errors"
)

const (
	// ConfigFileName is the default config file name.
	ConfigFileName = ".gridwatch.yaml"
	// GlobalConfigDir is the directory for global config.
	GlobalConfigDir = ".config/gridwatch"
	// GlobalConfigFile is the global config file name.
	GlobalConfigFile = "config.yaml"
	// EnvPrefix prefixes environment overrides, e.g. GRIDWATCH_BASE_URL.
	EnvPrefix = "GRIDWATCH"
	// DotEnvFile is loaded from the working directory before env overrides apply.
	DotEnvFile = ".env"
)

// Load reads config from the specified path. Environment overrides apply on
// top of the file.
func Load(path string) (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Config file not found",
				"Run 'gridwatch init' to create a config file, or specify one with --config")
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read config file",
			"Check the file exists and is valid YAML")
	}

	return parseConfig(v, path)
}

// Find locates the config file using the search order:
// 1. Explicit path (from --config flag)
// 2. .gridwatch.yaml in current directory
// 3. .gridwatch.yaml in parent directories (stops at git root or home)
// 4. ~/.config/gridwatch/config.yaml (global defaults)
//
// Returns the path to the config file, or empty string if not found.
func Find(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot determine current directory",
			"Check directory permissions")
	}

	if path := filepath.Join(cwd, ConfigFileName); exists(path) {
		return path, nil
	}

	home, _ := os.UserHomeDir()
	dir := cwd
	for {
		if exists(filepath.Join(dir, ".git")) {
			break
		}
		parent := filepath.Dir(dir)
		if parent == dir || (home != "" && parent == home) {
			break
		}
		dir = parent

		if path := filepath.Join(dir, ConfigFileName); exists(path) {
			return path, nil
		}
	}

	if home != "" {
		if global := filepath.Join(home, GlobalConfigDir, GlobalConfigFile); exists(global) {
			return global, nil
		}
	}

	return "", nil
}

// Resolve finds and loads the config for explicit (may be empty). When no
// file exists the defaults are used, still subject to environment overrides.
// The returned path is empty in that case.
func Resolve(explicit string) (*Config, string, error) {
	path, err := Find(explicit)
	if err != nil {
		return nil, "", err
	}
	if path == "" {
		cfg, err := LoadOrDefault()
		return cfg, "", err
	}
	cfg, err := Load(path)
	return cfg, path, err
}

// LoadOrDefault returns the defaults with environment overrides applied,
// without reading any config file. Commands like 'gridwatch init' use it.
func LoadOrDefault() (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}
	return parseConfig(newViper(), "")
}

// Marshal renders cfg as the YAML written to .gridwatch.yaml.
func Marshal(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(toFile(cfg)); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig, "Failed to encode config", "")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig, "Failed to encode config", "")
	}
	return buf.Bytes(), nil
}

// Write saves cfg to path. An existing file is only replaced when force is set.
func Write(path string, cfg *Config, force bool) error {
	if !force && exists(path) {
		return errors.New(errors.ErrConfig,
			"Config already exists: "+path,
			"Use --force to overwrite it")
	}

	data, err := Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to write config file",
			"Check directory permissions")
	}
	return nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// setDefaults registers every key so AutomaticEnv can override it during
// Unmarshal.
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("version", d.Version)
	v.SetDefault("base_url", d.BaseURL)
	v.SetDefault("timeout", d.Timeout.String())
	v.SetDefault("refresh_interval", "0s")
	v.SetDefault("output.color", d.Output.Color)
}

// parseConfig converts viper config to our Config struct with defaults merged in.
func parseConfig(v *viper.Viper, path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		where := "the environment"
		if path != "" {
			where = path
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the YAML syntax and duration values in "+where)
	}
	cfg.BaseURL = strings.TrimSpace(cfg.BaseURL)
	return cfg, nil
}

func loadDotEnv() error {
	if !exists(DotEnvFile) {
		return nil
	}
	if err := godotenv.Load(DotEnvFile); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read "+DotEnvFile,
			"Check the file uses KEY=value lines")
	}
	return nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
