package config

import (
	"os"
	"path/filepath"
)

// Save writes the config as YAML to the user's config directory.
func (c *Config) Save() error {
	return c.SaveTo(filepath.Join(ConfigDir(), "config.yaml"))
}

// SaveTo writes the config to a specific path. The extension selects YAML
// or TOML.
func (c *Config) SaveTo(path string) error {
	codec, err := codecFor(path)
	if err != nil {
		return err
	}

	// Create parent directory if needed
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := codec.marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
