package config

import "github.com/spf13/pflag"

// Flags holds command-line overrides. Register it on a command's flag set;
// only flags the user actually set override the file.
type Flags struct {
	fs *pflag.FlagSet

	ConfigPath    string
	Debug         bool
	LogLevel      string
	LogFile       string
	TexturePath   string
	TextureWidth  int
	TextureHeight int
	Root          bool
	UpAxis        string
	MaxDepth      int
	Strict        bool
	IgnoreUnknown bool
	Format        string
	OutputDir     string
	DebounceMS    int
}

// Register adds the flags to fs.
func (f *Flags) Register(fs *pflag.FlagSet) {
	f.fs = fs
	fs.StringVarP(&f.ConfigPath, "config", "c", "", "Path to config file (.yaml or .toml)")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.StringVar(&f.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&f.LogFile, "log-file", "", "Also write JSON logs to this file")
	fs.StringVarP(&f.TexturePath, "texture", "t", "", "Texture atlas; its size overrides --texture-width/--texture-height")
	fs.IntVar(&f.TextureWidth, "texture-width", 0, "Atlas width in pixels")
	fs.IntVar(&f.TextureHeight, "texture-height", 0, "Atlas height in pixels")
	fs.BoolVar(&f.Root, "root", true, "Wrap the model in a container node named after the file")
	fs.StringVar(&f.UpAxis, "up-axis", "", "Up axis of the output (y or z)")
	fs.IntVar(&f.MaxDepth, "max-depth", 0, "Maximum node nesting depth")
	fs.BoolVar(&f.Strict, "strict", false, "Fail on nodes without position or orientation")
	fs.BoolVar(&f.IgnoreUnknown, "ignore-unknown", false, "Skip unknown shape types instead of failing")
	fs.StringVarP(&f.Format, "format", "f", "", "Output format (glb, gltf, obj)")
	fs.StringVarP(&f.OutputDir, "output-dir", "d", "", "Directory for converted files")
	fs.IntVar(&f.DebounceMS, "debounce", 0, "Watch debounce in milliseconds")
}

func (f *Flags) changed(name string) bool {
	return f.fs != nil && f.fs.Changed(name)
}

// applyFlags applies CLI flag overrides to the config.
func (f *Flags) applyFlags(cfg *Config) {
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.changed("log-level") {
		cfg.Logging.Level = f.LogLevel
	}
	if f.changed("log-file") {
		cfg.Logging.LogFile = f.LogFile
	}
	if f.changed("texture") {
		cfg.Import.TexturePath = f.TexturePath
	}
	if f.TextureWidth > 0 {
		cfg.Import.TextureWidth = f.TextureWidth
	}
	if f.TextureHeight > 0 {
		cfg.Import.TextureHeight = f.TextureHeight
	}
	if f.changed("root") {
		cfg.Import.Root = f.Root
	}
	if f.UpAxis != "" {
		cfg.Import.UpAxis = f.UpAxis
	}
	if f.MaxDepth > 0 {
		cfg.Import.MaxDepth = f.MaxDepth
	}
	if f.Strict {
		cfg.Import.MissingTransform = "error"
	}
	if f.IgnoreUnknown {
		cfg.Import.UnknownShape = "ignore"
	}
	if f.Format != "" {
		cfg.Export.Format = f.Format
	}
	if f.changed("output-dir") {
		cfg.Export.OutputDir = f.OutputDir
	}
	if f.DebounceMS > 0 {
		cfg.Watch.DebounceMS = f.DebounceMS
	}
}
