package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/docpress/docpress/internal/registry"
)

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (DOCPRESS_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Overlay environment variables: DOCPRESS_PORT -> port, etc.
	if err := k.Load(env.Provider("DOCPRESS_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, "DOCPRESS_")), "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// validModes is the set of recognized source mode values.
var validModes = map[SourceMode]bool{
	SourceExport: true,
	SourceDir:    true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}

	if c.Source.Mode == "" {
		return fmt.Errorf("source mode is required")
	}
	if !validModes[c.Source.Mode] {
		return fmt.Errorf("invalid source mode %q: must be one of export, dir", c.Source.Mode)
	}
	if c.Source.Mode == SourceDir && c.Source.Dir == "" {
		return fmt.Errorf("source dir is required when source mode is dir")
	}
	if c.Source.TimeoutSeconds < 0 {
		return fmt.Errorf("source timeout_seconds must be non-negative")
	}

	for _, d := range c.Documents {
		if d.ID == "" {
			return fmt.Errorf("document %q: id is required", d.Name)
		}
		if d.Name == "" {
			return fmt.Errorf("document %q: name is required", d.ID)
		}
	}

	return nil
}

// Registry builds the immutable document registry from the configured
// documents. A document without an explicit route is served under
// /docs/<name>.
func (c *Config) Registry() (*registry.Registry, error) {
	docs := make([]registry.Document, 0, len(c.Documents))
	for _, d := range c.Documents {
		route := d.Route
		if route == "" {
			route = "/docs/" + d.Name
		}
		docs = append(docs, registry.Document{
			ExternalID: d.ID,
			Route:      route,
			Name:       d.Name,
		})
	}
	return registry.New(docs)
}
