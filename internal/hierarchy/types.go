// Package hierarchy turns a blockymodel node tree into transform nodes and
// primitive meshes. Building is pure: nothing is inserted into a host scene
// here, see package scene for that.
package hierarchy

import (
	"errors"
	"fmt"

	"github.com/Faultbox/blockyimport/internal/mesh"
	"github.com/Faultbox/blockyimport/internal/uvmap"
	"github.com/Faultbox/blockyimport/pkg/blockymodel"
	"github.com/Faultbox/blockyimport/pkg/math"
)

// DefaultMaxDepth bounds recursion for pathological documents.
const DefaultMaxDepth = 256

// ErrMaxDepthExceeded is returned when nesting goes past Options.MaxDepth.
var ErrMaxDepthExceeded = errors.New("model exceeds maximum node depth")

// MissingTransform decides what happens when a node lacks position or
// orientation.
type MissingTransform string

const (
	MissingTransformDefault MissingTransform = "default" // origin / identity
	MissingTransformError   MissingTransform = "error"
)

// UnknownShape decides what happens with shape types other than box, quad
// and none.
type UnknownShape string

const (
	UnknownShapeError  UnknownShape = "error"
	UnknownShapeIgnore UnknownShape = "ignore"
)

// Options configures a Builder.
type Options struct {
	Texture          uvmap.TextureSize
	MaxDepth         int
	MissingTransform MissingTransform
	UnknownShape     UnknownShape
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Texture:          uvmap.DefaultTextureSize,
		MaxDepth:         DefaultMaxDepth,
		MissingTransform: MissingTransformDefault,
		UnknownShape:     UnknownShapeError,
	}
}

// TransformNode is a mesh-less hierarchy node with a local transform.
type TransformNode struct {
	Name     string
	Path     string // Slash-separated names from the top-level node
	Depth    int
	Position math.Vec3
	Rotation math.Quat
	Scale    math.Vec3
	Mesh     *mesh.Mesh // Optional child geometry
	Parent   *TransformNode
	Children []*TransformNode
	Source   *blockymodel.Node
}

// LocalMatrix composes the node's translation, rotation and scale.
func (n *TransformNode) LocalMatrix() math.Mat4 {
	return math.FromTRS(n.Position, n.Rotation, n.Scale)
}

// WorldMatrix composes local matrices from the top-level ancestor down.
func (n *TransformNode) WorldMatrix() math.Mat4 {
	m := n.LocalMatrix()
	for p := n.Parent; p != nil; p = p.Parent {
		m = p.LocalMatrix().Mul(m)
	}
	return m
}

// Tree is the result of a build.
type Tree struct {
	Roots  []*TransformNode
	Nodes  []*TransformNode // Pre-order; parents precede children
	Meshes []*mesh.Mesh     // Creation order
}

// Find returns the first node with the given path.
func (t *Tree) Find(path string) *TransformNode {
	for _, n := range t.Nodes {
		if n.Path == path {
			return n
		}
	}
	return nil
}

// NodeError attaches the offending node path to a build error.
type NodeError struct {
	Path string
	Err  error
}

func (e *NodeError) Error() string {
	return fmt.Sprintf("node %s: %v", e.Path, e.Err)
}

func (e *NodeError) Unwrap() error {
	return e.Err
}
