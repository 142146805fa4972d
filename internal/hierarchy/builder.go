package hierarchy

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/blockyimport/internal/logger"
	"github.com/Faultbox/blockyimport/internal/mesh"
	"github.com/Faultbox/blockyimport/internal/uvmap"
	"github.com/Faultbox/blockyimport/pkg/blockymodel"
	"github.com/Faultbox/blockyimport/pkg/math"
)

// Builder converts model nodes into transform nodes, accumulating a Tree.
type Builder struct {
	opts Options
	tree *Tree
}

// NewBuilder creates a builder. Zero-valued options fall back to
// DefaultOptions.
func NewBuilder(opts Options) *Builder {
	def := DefaultOptions()
	if !opts.Texture.Valid() {
		opts.Texture = def.Texture
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = def.MaxDepth
	}
	if opts.MissingTransform == "" {
		opts.MissingTransform = def.MissingTransform
	}
	if opts.UnknownShape == "" {
		opts.UnknownShape = def.UnknownShape
	}
	return &Builder{opts: opts, tree: &Tree{}}
}

// Build converts a whole model. Every model node yields exactly one
// TransformNode; the first error aborts the build.
func Build(model *blockymodel.Model, opts Options) (*Tree, error) {
	return NewBuilder(opts).Build(model)
}

// Build converts a whole model into a fresh tree.
func (b *Builder) Build(model *blockymodel.Model) (*Tree, error) {
	b.tree = &Tree{}
	for i := range model.Nodes {
		if _, err := b.BuildNode(&model.Nodes[i], nil); err != nil {
			return nil, err
		}
	}

	logger.Debug("hierarchy built",
		zap.Int("roots", len(b.tree.Roots)),
		zap.Int("nodes", len(b.tree.Nodes)),
		zap.Int("meshes", len(b.tree.Meshes)))
	return b.tree, nil
}

// Tree returns the tree accumulated so far.
func (b *Builder) Tree() *Tree {
	return b.tree
}

// BuildNode converts node and its descendants, attaching the result under
// parent (nil for a top-level node).
func (b *Builder) BuildNode(node *blockymodel.Node, parent *TransformNode) (*TransformNode, error) {
	name := node.DisplayName()
	tn := &TransformNode{
		Name:     name,
		Path:     name,
		Rotation: math.QuatIdentity(),
		Scale:    math.One,
		Parent:   parent,
		Source:   node,
	}
	if parent != nil {
		tn.Path = parent.Path + "/" + name
		tn.Depth = parent.Depth + 1
	}

	if tn.Depth >= b.opts.MaxDepth {
		return nil, &NodeError{Path: tn.Path, Err: fmt.Errorf("%w (%d)", ErrMaxDepthExceeded, b.opts.MaxDepth)}
	}

	if err := b.applyTransform(tn, node); err != nil {
		return nil, err
	}

	if err := b.attachShape(tn, node.Shape); err != nil {
		return nil, err
	}

	if parent == nil {
		b.tree.Roots = append(b.tree.Roots, tn)
	} else {
		parent.Children = append(parent.Children, tn)
	}
	b.tree.Nodes = append(b.tree.Nodes, tn)
	if tn.Mesh != nil {
		b.tree.Meshes = append(b.tree.Meshes, tn.Mesh)
	}

	for i := range node.Children {
		if _, err := b.BuildNode(&node.Children[i], tn); err != nil {
			return nil, err
		}
	}
	return tn, nil
}

func (b *Builder) applyTransform(tn *TransformNode, node *blockymodel.Node) error {
	if node.Position != nil {
		tn.Position = node.Position.Vec3()
	} else if b.opts.MissingTransform == MissingTransformError {
		return &NodeError{Path: tn.Path, Err: fmt.Errorf("%w: position", blockymodel.ErrMissingField)}
	}
	tn.Position = tn.Position.Add(node.Shape.OffsetOrZero())

	if node.Orientation != nil {
		tn.Rotation = node.Orientation.Quat()
	} else if b.opts.MissingTransform == MissingTransformError {
		return &NodeError{Path: tn.Path, Err: fmt.Errorf("%w: orientation", blockymodel.ErrMissingField)}
	}

	tn.Scale = node.Shape.StretchOrOne()
	return nil
}

func (b *Builder) attachShape(tn *TransformNode, shape *blockymodel.Shape) error {
	if shape == nil {
		return nil
	}

	switch shape.Type {
	case blockymodel.ShapeBox, blockymodel.ShapeQuad:
	case blockymodel.ShapeNone:
		return nil
	default:
		if b.opts.UnknownShape == UnknownShapeIgnore {
			logger.Warn("ignoring unknown shape type",
				zap.String("node", tn.Path),
				zap.String("type", string(shape.Type)))
			return nil
		}
		return &NodeError{Path: tn.Path, Err: fmt.Errorf("%w: %q", blockymodel.ErrUnknownShapeType, shape.Type)}
	}

	if !shape.IsVisible() {
		logger.Debug("skipping hidden shape", zap.String("node", tn.Path))
		return nil
	}

	if shape.Type == blockymodel.ShapeBox {
		tn.Mesh = mesh.Box(tn.Name, shape, b.opts.Texture)
		return nil
	}

	size := shape.Size()
	stretch := shape.StretchOrOne()
	tn.Mesh = mesh.Quad(tn.Name, size.X*stretch.X, size.Y*stretch.Y)
	tn.Mesh.SetFaceUV(0, uvmap.ComputeQuadUV(shape, b.opts.Texture))
	return nil
}
