// Package config handles blockyimport configuration loading and management.
package config

import (
	"fmt"
	"strings"
)

// Config holds all importer settings.
type Config struct {
	Import  ImportConfig  `yaml:"import" toml:"import"`
	Export  ExportConfig  `yaml:"export" toml:"export"`
	Watch   WatchConfig   `yaml:"watch" toml:"watch"`
	Logging LoggingConfig `yaml:"logging" toml:"logging"`
}

// ImportConfig holds model conversion settings.
type ImportConfig struct {
	TextureWidth     int    `yaml:"texture_width" toml:"texture_width"`   // Atlas width in pixels
	TextureHeight    int    `yaml:"texture_height" toml:"texture_height"` // Atlas height in pixels
	TexturePath      string `yaml:"texture_path" toml:"texture_path"`     // When set, width/height come from the image
	Root             bool   `yaml:"root" toml:"root"`                     // Wrap the model in a container named after the file
	UpAxis           string `yaml:"up_axis" toml:"up_axis"`               // "y" or "z"
	MaxDepth         int    `yaml:"max_depth" toml:"max_depth"`
	MissingTransform string `yaml:"missing_transform" toml:"missing_transform"` // "default" or "error"
	UnknownShape     string `yaml:"unknown_shape" toml:"unknown_shape"`         // "error" or "ignore"
}

// ExportConfig holds output settings.
type ExportConfig struct {
	Format    string `yaml:"format" toml:"format"`         // glb, gltf or obj
	OutputDir string `yaml:"output_dir" toml:"output_dir"` // Empty means next to the input
}

// WatchConfig holds settings for the watch command.
type WatchConfig struct {
	DebounceMS int  `yaml:"debounce_ms" toml:"debounce_ms"`
	Textures   bool `yaml:"textures" toml:"textures"` // Also re-import when the texture changes
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" toml:"level"`
	LogFile string `yaml:"log_file" toml:"log_file"`
}

// Supported export formats.
const (
	FormatGLB  = "glb"
	FormatGLTF = "gltf"
	FormatOBJ  = "obj"
)

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Import: ImportConfig{
			TextureWidth:     32,
			TextureHeight:    32,
			Root:             true,
			UpAxis:           "y",
			MaxDepth:         256,
			MissingTransform: "default",
			UnknownShape:     "error",
		},
		Export: ExportConfig{
			Format: FormatGLB,
		},
		Watch: WatchConfig{
			DebounceMS: 200,
			Textures:   true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	im := c.Import
	if im.TextureWidth <= 0 || im.TextureHeight <= 0 {
		return fmt.Errorf("texture size must be positive, got %dx%d", im.TextureWidth, im.TextureHeight)
	}
	if im.MaxDepth <= 0 {
		return fmt.Errorf("max_depth must be positive, got %d", im.MaxDepth)
	}
	if err := oneOf("up_axis", im.UpAxis, "y", "z"); err != nil {
		return err
	}
	if err := oneOf("missing_transform", im.MissingTransform, "default", "error"); err != nil {
		return err
	}
	if err := oneOf("unknown_shape", im.UnknownShape, "error", "ignore"); err != nil {
		return err
	}
	if err := oneOf("format", c.Export.Format, FormatGLB, FormatGLTF, FormatOBJ); err != nil {
		return err
	}
	if c.Watch.DebounceMS < 0 {
		return fmt.Errorf("debounce_ms must not be negative, got %d", c.Watch.DebounceMS)
	}
	return nil
}

func oneOf(key, value string, allowed ...string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return fmt.Errorf("invalid %s %q (want one of %s)", key, value, strings.Join(allowed, ", "))
}
