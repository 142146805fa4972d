package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Faultbox/blockyimport/internal/config"
	"github.com/Faultbox/blockyimport/internal/export/gltf"
	"github.com/Faultbox/blockyimport/internal/export/obj"
	"github.com/Faultbox/blockyimport/internal/scene"
)

// exporter is a host that can write itself to disk.
type exporter interface {
	scene.Host
	Save(path string) error
}

func newExporter(format string) (exporter, error) {
	switch format {
	case config.FormatGLB, config.FormatGLTF:
		return gltf.New(), nil
	case config.FormatOBJ:
		return obj.New(), nil
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
}

// formatOf returns the format implied by an explicit output path, falling
// back to def when the extension is not one we write.
func formatOf(path, def string) string {
	switch ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")); ext {
	case config.FormatGLB, config.FormatGLTF, config.FormatOBJ:
		return ext
	default:
		return def
	}
}

// outputPath replaces the input extension with the format's and moves the
// file into dir when set.
func outputPath(input, dir, format string) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input)) + "." + format
	if dir == "" {
		dir = filepath.Dir(input)
	}
	return filepath.Join(dir, base)
}
