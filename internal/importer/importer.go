// Package importer is the entry point that turns a .blockymodel file into
// objects on a scene.Host.
package importer

import (
	"context"
	"errors"
	"fmt"
	gomath "math"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/blockyimport/internal/config"
	"github.com/Faultbox/blockyimport/internal/hierarchy"
	"github.com/Faultbox/blockyimport/internal/logger"
	"github.com/Faultbox/blockyimport/internal/scene"
	"github.com/Faultbox/blockyimport/internal/texture"
	"github.com/Faultbox/blockyimport/internal/uvmap"
	"github.com/Faultbox/blockyimport/pkg/blockymodel"
	"github.com/Faultbox/blockyimport/pkg/math"
)

// Up axes of the produced scene.
const (
	UpAxisY = "y" // Model frame unchanged
	UpAxisZ = "z" // Rotated +90° about X for Z-up hosts
)

// ErrInvalidTextureSize is returned when a configured texture size has a
// non-positive side. Leaving both sides zero selects the default size.
var ErrInvalidTextureSize = errors.New("invalid texture size")

// ImportConfig is everything one import needs.
type ImportConfig struct {
	InputPath     string
	TextureWidth  int
	TextureHeight int
	// TexturePath, when set, is probed and its size replaces
	// TextureWidth/TextureHeight.
	TexturePath string
	// Prober caches texture probes across imports. Optional.
	Prober *texture.Prober

	Root     bool   // Create a container node for the whole model
	RootName string // Defaults to DefaultRootName(InputPath)
	UpAxis   string

	MaxDepth         int
	MissingTransform hierarchy.MissingTransform
	UnknownShape     hierarchy.UnknownShape
}

// FromConfig builds an ImportConfig for input from loaded settings.
func FromConfig(c config.ImportConfig, input string) ImportConfig {
	return ImportConfig{
		InputPath:        input,
		TextureWidth:     c.TextureWidth,
		TextureHeight:    c.TextureHeight,
		TexturePath:      c.TexturePath,
		Root:             c.Root,
		UpAxis:           c.UpAxis,
		MaxDepth:         c.MaxDepth,
		MissingTransform: hierarchy.MissingTransform(c.MissingTransform),
		UnknownShape:     hierarchy.UnknownShape(c.UnknownShape),
	}
}

// Result describes a finished import.
type Result struct {
	Model    *blockymodel.Model
	Tree     *hierarchy.Tree
	Mapping  *scene.Mapping
	Root     scene.Handle // NoHandle without a container
	Texture  uvmap.TextureSize
	Duration time.Duration
}

// DefaultRootName is the file name up to its first dot, so
// "hero.v2.blockymodel" becomes "hero".
func DefaultRootName(path string) string {
	base := filepath.Base(path)
	// A leading dot belongs to the name.
	if i := strings.IndexByte(base[1:], '.'); i >= 0 {
		return base[:i+1]
	}
	return base
}

// upRotation returns the rotation applied to the model for an up axis.
func upRotation(axis string) (math.Quat, error) {
	switch axis {
	case "", UpAxisY:
		return math.QuatIdentity(), nil
	case UpAxisZ:
		return math.QuatFromAxisAngle(math.Vec3{X: 1}, gomath.Pi/2), nil
	default:
		return math.Quat{}, fmt.Errorf("unsupported up axis %q", axis)
	}
}

// Import loads cfg.InputPath, builds the hierarchy and applies it to host.
// Loading and building have no host side effects; the first error after
// that leaves already created host objects in place.
func Import(ctx context.Context, cfg ImportConfig, host scene.Host) (*Result, error) {
	start := time.Now()
	log := logger.Named("import").With(zap.String("path", cfg.InputPath))

	up, err := upRotation(cfg.UpAxis)
	if err != nil {
		return nil, err
	}
	tex, err := textureSize(cfg)
	if err != nil {
		return nil, err
	}

	model, err := blockymodel.Load(cfg.InputPath)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("import %s: %w", cfg.InputPath, err)
	}

	tree, err := hierarchy.Build(model, hierarchy.Options{
		Texture:          tex,
		MaxDepth:         cfg.MaxDepth,
		MissingTransform: cfg.MissingTransform,
		UnknownShape:     cfg.UnknownShape,
	})
	if err != nil {
		return nil, fmt.Errorf("import %s: %w", cfg.InputPath, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("import %s: %w", cfg.InputPath, err)
	}

	res := &Result{Model: model, Tree: tree, Root: scene.NoHandle, Texture: tex}

	if cfg.Root {
		name := cfg.RootName
		if name == "" {
			name = DefaultRootName(cfg.InputPath)
		}
		if res.Root, err = createRoot(host, name, up); err != nil {
			return res, fmt.Errorf("import %s: root: %w", cfg.InputPath, err)
		}
	} else if !up.IsIdentity() {
		reorient(tree, up)
	}

	res.Mapping, err = scene.Apply(host, tree, res.Root)
	if err != nil {
		return res, fmt.Errorf("import %s: %w", cfg.InputPath, err)
	}

	res.Duration = time.Since(start)
	log.Info("imported model",
		zap.Int("nodes", len(tree.Nodes)),
		zap.Int("meshes", len(tree.Meshes)),
		zap.Float32("texture_width", tex.Width),
		zap.Float32("texture_height", tex.Height),
		zap.Duration("took", res.Duration))
	return res, nil
}

func textureSize(cfg ImportConfig) (uvmap.TextureSize, error) {
	if cfg.TexturePath == "" {
		if cfg.TextureWidth == 0 && cfg.TextureHeight == 0 {
			return uvmap.DefaultTextureSize, nil
		}
		tex := uvmap.TextureSize{Width: float32(cfg.TextureWidth), Height: float32(cfg.TextureHeight)}
		if !tex.Valid() {
			return uvmap.TextureSize{}, fmt.Errorf("%w: %dx%d", ErrInvalidTextureSize, cfg.TextureWidth, cfg.TextureHeight)
		}
		return tex, nil
	}

	probe := texture.ProbeSize
	if cfg.Prober != nil {
		probe = cfg.Prober.Probe
	}
	info, err := probe(cfg.TexturePath)
	if err != nil {
		return uvmap.TextureSize{}, err
	}
	return info.Size, nil
}

func createRoot(host scene.Host, name string, up math.Quat) (scene.Handle, error) {
	h, err := host.CreateTransformNode(name)
	if err != nil {
		return scene.NoHandle, err
	}
	if err := host.InsertIntoScene(h); err != nil {
		return h, err
	}
	if err := host.SetLocalTransform(h, math.Vec3{}, up, math.One); err != nil {
		return h, err
	}
	return h, nil
}

// reorient applies up to every top-level node, which is what a rotated
// container would have done.
func reorient(tree *hierarchy.Tree, up math.Quat) {
	for _, n := range tree.Roots {
		n.Position = up.Rotate(n.Position)
		n.Rotation = up.Mul(n.Rotation)
	}
}
