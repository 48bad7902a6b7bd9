package config

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gridsec/gridwatch/internal/errors"
)

// settableKeys are the dotted keys accepted by SetValue, with a check for
// each value.
var settableKeys = map[string]func(string) error{
	"base_url":         ValidateBaseURL,
	"timeout":          checkDuration(false),
	"refresh_interval": checkDuration(true),
	"output.color": func(v string) error {
		return validateOutput(OutputConfig{Color: v})
	},
}

// SettableKeys returns the keys SetValue accepts, sorted.
func SettableKeys() []string {
	keys := make([]string, 0, len(settableKeys))
	for k := range settableKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SetValue writes key=value into the config file at configPath.
// It preserves the existing YAML structure and comments, creating
// intermediate mappings as needed.
func SetValue(configPath, key, value string) error {
	check, ok := settableKeys[key]
	if !ok {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown config key '%s'", key),
			"Settable keys: "+strings.Join(SettableKeys(), ", "))
	}
	if err := check(value); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, errors.Human(err), "")
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	// empty file
	if root.Kind == 0 {
		root = yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{{Kind: yaml.MappingNode, Tag: "!!map"}}}
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return fmt.Errorf("invalid YAML document structure")
	}

	node := root.Content[0]
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("expected mapping at document root")
	}

	parts := strings.Split(key, ".")
	for _, part := range parts[:len(parts)-1] {
		child := findMapValue(node, part)
		if child == nil {
			child = &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
			node.Content = append(node.Content, scalar(part), child)
		}
		if child.Kind != yaml.MappingNode {
			return fmt.Errorf("'%s' is not a mapping in config", part)
		}
		node = child
	}

	leaf := parts[len(parts)-1]
	if existing := findMapValue(node, leaf); existing != nil {
		existing.Kind = yaml.ScalarNode
		existing.Tag = "!!str"
		existing.Value = value
		existing.Content = nil
	} else {
		node.Content = append(node.Content, scalar(leaf), scalar(value))
	}

	var buf strings.Builder
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&root); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	encoder.Close()

	if err := os.WriteFile(configPath, []byte(buf.String()), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func scalar(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}

// findMapValue finds a value in a mapping node by key name.
func findMapValue(node *yaml.Node, key string) *yaml.Node {
	if node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i < len(node.Content)-1; i += 2 {
		if k := node.Content[i]; k.Kind == yaml.ScalarNode && k.Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

func checkDuration(refresh bool) func(string) error {
	return func(v string) error {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("'%s' doesn't look like a valid duration - try something like '10s' or '1m'", v)
		}
		if refresh {
			return validateRefresh(&Config{RefreshInterval: d})
		}
		if d < 0 {
			return fmt.Errorf("timeout can't be negative")
		}
		return nil
	}
}
